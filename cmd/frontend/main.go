package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/config"
	"github.com/danilovkiri/dk_go_cryptochain/internal/logger"
	"github.com/danilovkiri/dk_go_cryptochain/internal/nodeclient"
	"github.com/danilovkiri/dk_go_cryptochain/internal/webui"
)

func main() {
	// get configuration
	cfg := config.NewDefaultConfiguration()
	if err := cfg.Parse(); err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = zlog.Sync()
	}()
	zap.ReplaceGlobals(zlog)

	// initialize server
	server, err := webui.InitServer(cfg, nodeclient.New(cfg.BackendURL, 0))
	if err != nil {
		zlog.Fatal("frontend initialization failed", zap.Error(err))
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		zlog.Info("frontend shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			zlog.Error("frontend shutdown failed", zap.Error(err))
		}
	}()
	// start up the server
	zlog.Info("frontend start attempted", zap.String("address", cfg.FrontendAddress), zap.String("backend", cfg.BackendURL))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("frontend failed", zap.Error(err))
	}
	zlog.Info("frontend shutdown succeeded")
}
