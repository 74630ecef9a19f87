// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	serviceErrors "github.com/danilovkiri/dk_go_cryptochain/internal/service/errors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/node"
	storageErrors "github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
)

const (
	welcomeMessage = "Welcome to the blockchain!"
	// storageTimeout bounds handlers touching block storage only
	storageTimeout = 500 * time.Millisecond
	// mineTimeout bounds proof of work together with persistence
	mineTimeout = time.Minute
	// broadcastTimeout bounds publishing a transaction to the network
	broadcastTimeout = 10 * time.Second
)

// NodeHandler defines data structure handling and provides support for adding new implementations.
type NodeHandler struct {
	processor node.Processor
}

// InitNodeHandler initializes a NodeHandler object and sets its attributes.
func InitNodeHandler(processor node.Processor) (*NodeHandler, error) {
	if processor == nil {
		return nil, fmt.Errorf("nil Node Service was passed to service Node Handler initializer")
	}
	return &NodeHandler{processor: processor}, nil
}

// HandleWelcome greets the client.
func (h *NodeHandler) HandleWelcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(welcomeMessage))
	}
}

// HandleGetBlockchain provides client with the whole chain.
func (h *NodeHandler) HandleGetBlockchain() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.processor.Blockchain())
	}
}

// HandleGetBlockchainRange provides client with the blocks in [start, end) counted from the newest block.
func (h *NodeHandler) HandleGetBlockchainRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := strconv.Atoi(r.URL.Query().Get("start"))
		if err != nil || start < 0 {
			writeError(w, http.StatusBadRequest, "start must be a non-negative integer")
			return
		}
		end, err := strconv.Atoi(r.URL.Query().Get("end"))
		if err != nil || end < start {
			writeError(w, http.StatusBadRequest, "end must be an integer not less than start")
			return
		}
		writeJSON(w, http.StatusOK, h.processor.BlockchainRange(start, end))
	}
}

// HandleGetBlockchainLength provides client with the number of blocks.
func (h *NodeHandler) HandleGetBlockchainLength() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.processor.BlockchainLength())
	}
}

// HandleMine mines the pooled transactions into a new block and provides client with it.
func (h *NodeHandler) HandleMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), mineTimeout)
		defer cancel()
		block, err := h.processor.Mine(ctx)
		if err != nil {
			zap.L().Warn("HandleMine", zap.Error(err))
			switch {
			case errors.Is(err, blockchain.ErrStaleBlock):
				writeError(w, http.StatusConflict, err.Error())
			case isTimeout(err):
				writeError(w, http.StatusGatewayTimeout, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, block)
	}
}

// HandleTransact accepts JSON as {"recipient":"<address>","amount":<amount>} and provides client
// with the resulting pooled transaction.
func (h *NodeHandler) HandleTransact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), broadcastTimeout)
		defer cancel()
		// check for POST body content type compliance
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			writeError(w, http.StatusBadRequest, "Invalid Content-Type")
			return
		}
		var req modeldto.RequestTransact
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		transaction, err := h.processor.Transact(ctx, req.Recipient, req.Amount)
		if err != nil {
			zap.L().Info("HandleTransact", zap.Error(err))
			var invalid *serviceErrors.ServiceInvalidTransactionError
			switch {
			case errors.As(err, &invalid):
				writeError(w, http.StatusBadRequest, err.Error())
			case isTimeout(err):
				writeError(w, http.StatusGatewayTimeout, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, transaction)
	}
}

// HandleWalletInfo provides client with the node wallet address and balance.
func (h *NodeHandler) HandleWalletInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.processor.WalletInfo())
	}
}

// HandleKnownAddresses provides client with every address seen on the chain.
func (h *NodeHandler) HandleKnownAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.processor.KnownAddresses())
	}
}

// HandleTransactions provides client with the pooled transactions.
func (h *NodeHandler) HandleTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.processor.Transactions())
	}
}

// HandleGetStats provides client with the size of the node state.
func (h *NodeHandler) HandleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.processor.Stats())
	}
}

// HandlePingDB checks the block storage.
func (h *NodeHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		if err := h.processor.PingDB(ctx); err != nil {
			zap.L().Warn("HandlePingDB", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func isTimeout(err error) bool {
	return errors.As(err, &storageErrors.ContextTimeoutExceededError{}) || errors.Is(err, context.DeadlineExceeded)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	resBody, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(resBody)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	resBody, _ := json.Marshal(modeldto.NewResponseError(msg))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(resBody)
}
