package webui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_cryptochain/internal/config"
)

// NewRouter mounts the route table on a chi router.
func NewRouter(backend Backend) (*chi.Mux, error) {
	viewHandler, err := InitViewHandler(backend)
	if err != nil {
		return nil, err
	}
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Logger(zap.L()))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CompressHandle)
	for _, route := range Routes() {
		r.Get(route.Path, viewHandler.Handler(route.View))
	}
	r.Post("/conduct-transaction", viewHandler.HandlePostTransaction())
	r.Post("/transaction-pool/mine", viewHandler.HandleMine())
	return r, nil
}

// InitServer returns a http.Server object serving the frontend.
func InitServer(cfg *config.Config, backend Backend) (*http.Server, error) {
	r, err := NewRouter(backend)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Addr:         cfg.FrontendAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
	}
	return srv, nil
}
