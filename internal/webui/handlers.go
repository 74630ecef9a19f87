package webui

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/nodeclient"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/modelnode"
	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

const (
	// BlocksPerPage is the number of blocks rendered on a Blockchain page.
	BlocksPerPage  = 5
	backendTimeout = 10 * time.Second
	mineTimeout    = time.Minute
)

// page is the data every view is rendered with.
type page struct {
	Title string
	View  string
	Error string
	Data  interface{}
}

type blockchainData struct {
	Page   int
	Pages  []int
	Blocks []blockchain.Block
}

type conductTransactionData struct {
	Recipient      string
	Amount         string
	KnownAddresses []string
}

// ViewHandler renders the frontend views from the node state.
type ViewHandler struct {
	backend Backend
	views   map[string]*template.Template
}

// InitViewHandler initializes a ViewHandler object and parses its templates.
func InitViewHandler(backend Backend) (*ViewHandler, error) {
	if backend == nil {
		return nil, errors.New("nil Backend was passed to View Handler initializer")
	}
	views, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &ViewHandler{backend: backend, views: views}, nil
}

// Handler returns the handler rendering view.
func (h *ViewHandler) Handler(view string) http.HandlerFunc {
	switch view {
	case ViewApp:
		return h.HandleApp()
	case ViewBlockchain:
		return h.HandleBlockchain()
	case ViewConductTransaction:
		return h.HandleConductTransaction()
	case ViewTransactionPool:
		return h.HandleTransactionPool()
	default:
		return http.NotFound
	}
}

// HandleApp renders the node wallet.
func (h *ViewHandler) HandleApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
		defer cancel()
		info, err := h.backend.WalletInfo(ctx)
		if err != nil {
			h.renderBackendError(w, ViewApp, err)
			return
		}
		h.render(w, http.StatusOK, page{Title: "Home", View: ViewApp, Data: info})
	}
}

// HandleBlockchain renders a page of blocks, newest first.
func (h *ViewHandler) HandleBlockchain() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
		defer cancel()
		current := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				h.render(w, http.StatusBadRequest, page{Title: "Blockchain", View: ViewBlockchain, Error: "page must be a positive number", Data: blockchainData{}})
				return
			}
			current = n
		}
		length, err := h.backend.BlockchainLength(ctx)
		if err != nil {
			h.renderBackendError(w, ViewBlockchain, err)
			return
		}
		start := (current - 1) * BlocksPerPage
		blocks, err := h.backend.BlockchainRange(ctx, start, start+BlocksPerPage)
		if err != nil {
			h.renderBackendError(w, ViewBlockchain, err)
			return
		}
		h.render(w, http.StatusOK, page{
			Title: "Blockchain",
			View:  ViewBlockchain,
			Data: blockchainData{
				Page:   current,
				Pages:  pageNumbers(length),
				Blocks: blocks,
			},
		})
	}
}

// HandleConductTransaction renders the transaction form together with the known addresses.
func (h *ViewHandler) HandleConductTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
		defer cancel()
		h.renderConductTransaction(ctx, w, http.StatusOK, conductTransactionData{}, "")
	}
}

// HandlePostTransaction submits the form to the node and redirects to the transaction pool.
func (h *ViewHandler) HandlePostTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
		defer cancel()
		if err := r.ParseForm(); err != nil {
			h.renderConductTransaction(ctx, w, http.StatusBadRequest, conductTransactionData{}, err.Error())
			return
		}
		form := conductTransactionData{
			Recipient: strings.TrimSpace(r.PostForm.Get("recipient")),
			Amount:    strings.TrimSpace(r.PostForm.Get("amount")),
		}
		amount, err := strconv.ParseInt(form.Amount, 10, 64)
		if err != nil {
			h.renderConductTransaction(ctx, w, http.StatusBadRequest, form, "amount must be a whole number")
			return
		}
		if _, err := h.backend.Transact(ctx, form.Recipient, amount); err != nil {
			zap.L().Info("HandlePostTransaction", zap.Error(err))
			h.renderConductTransaction(ctx, w, http.StatusBadRequest, form, errorMessage(err))
			return
		}
		http.Redirect(w, r, "/transaction-pool", http.StatusSeeOther)
	}
}

// HandleTransactionPool renders the transactions pooled by the node.
func (h *ViewHandler) HandleTransactionPool() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
		defer cancel()
		transactions, err := h.backend.Transactions(ctx)
		if err != nil {
			h.renderBackendError(w, ViewTransactionPool, err)
			return
		}
		h.render(w, http.StatusOK, page{Title: "Transaction Pool", View: ViewTransactionPool, Data: transactions})
	}
}

// HandleMine makes the node mine its pool and redirects to the blockchain.
func (h *ViewHandler) HandleMine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), mineTimeout)
		defer cancel()
		if _, err := h.backend.Mine(ctx); err != nil {
			zap.L().Warn("HandleMine", zap.Error(err))
			h.renderBackendError(w, ViewTransactionPool, err)
			return
		}
		http.Redirect(w, r, "/blockchain", http.StatusSeeOther)
	}
}

func (h *ViewHandler) renderConductTransaction(ctx context.Context, w http.ResponseWriter, code int, form conductTransactionData, message string) {
	addresses, err := h.backend.KnownAddresses(ctx)
	if err != nil {
		h.renderBackendError(w, ViewConductTransaction, err)
		return
	}
	form.KnownAddresses = addresses
	h.render(w, code, page{Title: "Conduct a Transaction", View: ViewConductTransaction, Error: message, Data: form})
}

// renderBackendError renders view with the node error and a 502 status.
func (h *ViewHandler) renderBackendError(w http.ResponseWriter, view string, err error) {
	zap.L().Warn("backend request", zap.String("view", view), zap.Error(err))
	var data interface{}
	switch view {
	case ViewApp:
		data = modelnode.WalletInfo{}
	case ViewTransactionPool:
		data = []wallet.Transaction{}
	case ViewBlockchain:
		data = blockchainData{}
	case ViewConductTransaction:
		data = conductTransactionData{}
	}
	h.render(w, http.StatusBadGateway, page{Title: view, View: view, Error: errorMessage(err), Data: data})
}

func (h *ViewHandler) render(w http.ResponseWriter, code int, p page) {
	var buf bytes.Buffer
	if err := h.views[p.View].Execute(&buf, p); err != nil {
		zap.L().Error("rendering view", zap.String("view", p.View), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

func errorMessage(err error) string {
	var apiErr *nodeclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// pageNumbers returns the page numbers needed to show length blocks.
func pageNumbers(length int) []int {
	n := (length + BlocksPerPage - 1) / BlocksPerPage
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
