// Package rest provides functionality for initializing the node REST server.
package rest

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_cryptochain/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_cryptochain/internal/config"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/node"
)

var publishUptime sync.Once

// NewRouter returns the node API router.
func NewRouter(cfg *config.Config, processor node.Processor, gatherer prometheus.Gatherer) (*chi.Mux, error) {
	nodeHandler, err := handlers.InitNodeHandler(processor)
	if err != nil {
		return nil, err
	}
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg.TrustedSubnet)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Logger(zap.L()))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)
	r.Get("/", nodeHandler.HandleWelcome())
	r.Get("/blockchain", nodeHandler.HandleGetBlockchain())
	r.Get("/blockchain/range", nodeHandler.HandleGetBlockchainRange())
	r.Get("/blockchain/length", nodeHandler.HandleGetBlockchainLength())
	r.Get("/blockchain/mine", nodeHandler.HandleMine())
	r.Post("/blockchain/mine", nodeHandler.HandleMine())
	r.Post("/wallet/transact", nodeHandler.HandleTransact())
	r.Get("/wallet/info", nodeHandler.HandleWalletInfo())
	r.Get("/known-addresses", nodeHandler.HandleKnownAddresses())
	r.Get("/transactions", nodeHandler.HandleTransactions())
	r.Get("/ping", nodeHandler.HandlePingDB())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{DisableCompression: true}))
	r.Group(func(r chi.Router) {
		r.Use(trustedNetHandler.TrustedNetworkHandler)
		r.Get("/api/internal/stats", nodeHandler.HandleGetStats())
		r.Mount("/debug", chiMiddleware.Profiler()) // see https://github.com/go-chi/chi/blob/master/middleware/profiler.go
	})
	publishUptime.Do(func() {
		expvar.Publish("node.uptime", expvar.Func(func() interface{} {
			return int64(processor.Uptime().Seconds())
		}))
	})
	return r, nil
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(cfg *config.Config, processor node.Processor, gatherer prometheus.Gatherer) (*http.Server, error) {
	r, err := NewRouter(cfg, processor, gatherer)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
	}
	return srv, nil
}
