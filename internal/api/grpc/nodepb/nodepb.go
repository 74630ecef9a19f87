// Package nodepb describes the cryptochain.Node gRPC service over well-known protobuf types.
//
// Blocks, chains and transactions travel as JSON documents in BytesValue messages, which keeps
// nanosecond timestamps and amounts exact.
package nodepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "cryptochain.Node"

// Full method names.
const (
	GetUptimeFullMethodName           = "/" + ServiceName + "/GetUptime"
	PingDBFullMethodName              = "/" + ServiceName + "/PingDB"
	GetBlockchainFullMethodName       = "/" + ServiceName + "/GetBlockchain"
	GetBlockchainLengthFullMethodName = "/" + ServiceName + "/GetBlockchainLength"
	MineBlockFullMethodName           = "/" + ServiceName + "/MineBlock"
	TransactFullMethodName            = "/" + ServiceName + "/Transact"
	GetWalletInfoFullMethodName       = "/" + ServiceName + "/GetWalletInfo"
	GetTransactionsFullMethodName     = "/" + ServiceName + "/GetTransactions"
)

// NodeServer is the server API for the cryptochain.Node service.
type NodeServer interface {
	GetUptime(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	PingDB(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	GetBlockchain(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	GetBlockchainLength(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	MineBlock(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Transact(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
	GetWalletInfo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetTransactions(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
}

// RegisterNodeServer registers srv on s.
func RegisterNodeServer(s grpc.ServiceRegistrar, srv NodeServer) {
	s.RegisterService(&NodeServiceDesc, srv)
}

// NodeServiceDesc is the grpc.ServiceDesc for the cryptochain.Node service.
var NodeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NodeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetUptime", Handler: emptyHandler(GetUptimeFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.GetUptime(ctx, in)
		})},
		{MethodName: "PingDB", Handler: emptyHandler(PingDBFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.PingDB(ctx, in)
		})},
		{MethodName: "GetBlockchain", Handler: emptyHandler(GetBlockchainFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.GetBlockchain(ctx, in)
		})},
		{MethodName: "GetBlockchainLength", Handler: emptyHandler(GetBlockchainLengthFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.GetBlockchainLength(ctx, in)
		})},
		{MethodName: "MineBlock", Handler: emptyHandler(MineBlockFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.MineBlock(ctx, in)
		})},
		{MethodName: "Transact", Handler: transactHandler},
		{MethodName: "GetWalletInfo", Handler: emptyHandler(GetWalletInfoFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.GetWalletInfo(ctx, in)
		})},
		{MethodName: "GetTransactions", Handler: emptyHandler(GetTransactionsFullMethodName, func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.GetTransactions(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cryptochain/node.proto",
}

type emptyCall func(s NodeServer, ctx context.Context, in *emptypb.Empty) (interface{}, error)

// emptyHandler builds the method handler of an RPC taking google.protobuf.Empty.
func emptyHandler(fullMethod string, call emptyCall) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NodeServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(NodeServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func transactHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServer).Transact(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TransactFullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Transact(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// NodeClient is the client API for the cryptochain.Node service.
type NodeClient interface {
	GetUptime(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	PingDB(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetBlockchain(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	GetBlockchainLength(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	MineBlock(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Transact(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	GetWalletInfo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetTransactions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type nodeClient struct {
	cc grpc.ClientConnInterface
}

// NewNodeClient returns a NodeClient calling through cc.
func NewNodeClient(cc grpc.ClientConnInterface) NodeClient {
	return &nodeClient{cc: cc}
}

func (c *nodeClient) GetUptime(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, GetUptimeFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) PingDB(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, PingDBFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) GetBlockchain(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, GetBlockchainFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) GetBlockchainLength(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, GetBlockchainLengthFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) MineBlock(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, MineBlockFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) Transact(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, TransactFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) GetWalletInfo(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetWalletInfoFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeClient) GetTransactions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, GetTransactionsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
