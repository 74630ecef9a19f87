// Package handlers implements the cryptochain.Node gRPC methods over the node service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	serviceErrors "github.com/danilovkiri/dk_go_cryptochain/internal/service/errors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/node"
	storageErrors "github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
)

const (
	storageTimeout   = 500 * time.Millisecond
	mineTimeout      = time.Minute
	broadcastTimeout = 10 * time.Second
)

// GRPCHandler defines data structure handling and provides support for adding new implementations.
type GRPCHandler struct {
	processor node.Processor
}

// InitGRPCHandler initializes a GRPCHandler object and sets its attributes.
func InitGRPCHandler(processor node.Processor) (*GRPCHandler, error) {
	if processor == nil {
		return nil, fmt.Errorf("nil Node Service was passed to service GRPC Handler initializer")
	}
	return &GRPCHandler{processor: processor}, nil
}

// HandleGetUptime provides client with the node uptime in seconds.
func (h *GRPCHandler) HandleGetUptime() *wrapperspb.Int64Value {
	return wrapperspb.Int64(int64(h.processor.Uptime().Seconds()))
}

// HandlePingDB checks the block storage.
func (h *GRPCHandler) HandlePingDB(ctx context.Context) (*emptypb.Empty, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	if err := h.processor.PingDB(ctx); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// HandleGetBlockchain provides client with the whole chain as a JSON document.
func (h *GRPCHandler) HandleGetBlockchain() (*wrapperspb.BytesValue, error) {
	return jsonValue(h.processor.Blockchain())
}

// HandleGetBlockchainLength provides client with the chain length.
func (h *GRPCHandler) HandleGetBlockchainLength() *wrapperspb.Int64Value {
	return wrapperspb.Int64(int64(h.processor.BlockchainLength()))
}

// HandleMineBlock mines the pooled transactions and provides client with the new block.
func (h *GRPCHandler) HandleMineBlock(ctx context.Context) (*wrapperspb.BytesValue, error) {
	ctx, cancel := context.WithTimeout(ctx, mineTimeout)
	defer cancel()
	block, err := h.processor.Mine(ctx)
	if err != nil {
		zap.L().Warn("HandleMineBlock", zap.Error(err))
		return nil, toStatus(err)
	}
	return jsonValue(block)
}

// HandleTransact accepts a {recipient, amount} struct and provides client with the pooled transaction.
func (h *GRPCHandler) HandleTransact(ctx context.Context, request *structpb.Struct) (*wrapperspb.BytesValue, error) {
	ctx, cancel := context.WithTimeout(ctx, broadcastTimeout)
	defer cancel()
	fields := request.GetFields()
	recipient := fields["recipient"].GetStringValue()
	amount, ok := fields["amount"].GetKind().(*structpb.Value_NumberValue)
	if recipient == "" || !ok {
		return nil, status.Error(codes.InvalidArgument, "recipient and amount are required")
	}
	if amount.NumberValue != float64(int64(amount.NumberValue)) {
		return nil, status.Error(codes.InvalidArgument, "amount must be an integer")
	}
	transaction, err := h.processor.Transact(ctx, recipient, int64(amount.NumberValue))
	if err != nil {
		zap.L().Info("HandleTransact", zap.Error(err))
		return nil, toStatus(err)
	}
	return jsonValue(transaction)
}

// HandleGetWalletInfo provides client with the node wallet address and balance.
func (h *GRPCHandler) HandleGetWalletInfo() (*structpb.Struct, error) {
	info := h.processor.WalletInfo()
	response, err := structpb.NewStruct(map[string]interface{}{
		"address": info.Address,
		"balance": info.Balance,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return response, nil
}

// HandleGetTransactions provides client with the pooled transactions as a JSON document.
func (h *GRPCHandler) HandleGetTransactions() (*wrapperspb.BytesValue, error) {
	return jsonValue(h.processor.Transactions())
}

func jsonValue(v interface{}) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(b), nil
}

// toStatus maps service errors to gRPC status errors.
func toStatus(err error) error {
	var invalid *serviceErrors.ServiceInvalidTransactionError
	switch {
	case errors.As(err, &invalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, blockchain.ErrStaleBlock):
		return status.Error(codes.Aborted, err.Error())
	case errors.As(err, &storageErrors.ContextTimeoutExceededError{}), errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
