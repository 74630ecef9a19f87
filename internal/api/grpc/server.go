// Package grpc provides functionality for initializing the node gRPC server.
package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danilovkiri/dk_go_cryptochain/internal/api/grpc/handlers"
	"github.com/danilovkiri/dk_go_cryptochain/internal/api/grpc/interceptors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/api/grpc/nodepb"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/node"
)

// Check interface implementation explicitly
var (
	_ nodepb.NodeServer = (*NodeServer)(nil)
)

// NodeServer defines server methods and attributes.
type NodeServer struct {
	grpcHandler *handlers.GRPCHandler
}

// InitServer returns a NodeServer object ready to be registered.
func InitServer(processor node.Processor) (*NodeServer, error) {
	grpcHandler, err := handlers.InitGRPCHandler(processor)
	if err != nil {
		return nil, err
	}
	return &NodeServer{grpcHandler: grpcHandler}, nil
}

// NewGRPCServer returns a grpc.Server serving s behind the recovery and logging interceptors.
func NewGRPCServer(s *NodeServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		interceptors.LoggingUnaryServerInterceptor(zap.L()),
		interceptors.RecoveryUnaryServerInterceptor(),
	))
	srv := grpc.NewServer(opts...)
	nodepb.RegisterNodeServer(srv, s)
	return srv
}

// GetUptime is a GRPC method for getting node uptime in seconds.
func (s *NodeServer) GetUptime(_ context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return s.grpcHandler.HandleGetUptime(), nil
}

// PingDB is a GRPC method to check the block storage.
func (s *NodeServer) PingDB(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return s.grpcHandler.HandlePingDB(ctx)
}

// GetBlockchain is a GRPC method for getting the whole chain.
func (s *NodeServer) GetBlockchain(_ context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return s.grpcHandler.HandleGetBlockchain()
}

// GetBlockchainLength is a GRPC method for getting the chain length.
func (s *NodeServer) GetBlockchainLength(_ context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return s.grpcHandler.HandleGetBlockchainLength(), nil
}

// MineBlock is a GRPC method mining the pooled transactions into a new block.
func (s *NodeServer) MineBlock(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return s.grpcHandler.HandleMineBlock(ctx)
}

// Transact is a GRPC method making the node wallet send an amount to a recipient.
func (s *NodeServer) Transact(ctx context.Context, request *structpb.Struct) (*wrapperspb.BytesValue, error) {
	return s.grpcHandler.HandleTransact(ctx, request)
}

// GetWalletInfo is a GRPC method for getting the node wallet address and balance.
func (s *NodeServer) GetWalletInfo(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.grpcHandler.HandleGetWalletInfo()
}

// GetTransactions is a GRPC method for getting the pooled transactions.
func (s *NodeServer) GetTransactions(_ context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return s.grpcHandler.HandleGetTransactions()
}
