package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	grpcapi "github.com/danilovkiri/dk_go_cryptochain/internal/api/grpc"
	"github.com/danilovkiri/dk_go_cryptochain/internal/api/rest"
	"github.com/danilovkiri/dk_go_cryptochain/internal/config"
	"github.com/danilovkiri/dk_go_cryptochain/internal/keystore"
	"github.com/danilovkiri/dk_go_cryptochain/internal/logger"
	"github.com/danilovkiri/dk_go_cryptochain/internal/metrics"
	"github.com/danilovkiri/dk_go_cryptochain/internal/nodeclient"
	"github.com/danilovkiri/dk_go_cryptochain/internal/pubsub"
	"github.com/danilovkiri/dk_go_cryptochain/internal/pubsub/gcp"
	"github.com/danilovkiri/dk_go_cryptochain/internal/pubsub/local"
	"github.com/danilovkiri/dk_go_cryptochain/internal/service/node/v1"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/infile"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/insql"
	"github.com/danilovkiri/dk_go_cryptochain/internal/syncer"
)

const shutdownTimeout = 5 * time.Second

// build parameters set with -ldflags "-X main.buildVersion=..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

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
	zlog.Info("build metadata",
		zap.String("version", orNA(buildVersion)),
		zap.String("date", orNA(buildDate)),
		zap.String("commit", orNA(buildCommit)),
	)
	if err := run(cfg); err != nil {
		zlog.Fatal("node failed", zap.Error(err))
	}
	zlog.Info("node shutdown succeeded")
}

func run(cfg *config.Config) (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	// wait for goroutines closing storage before returning
	wg := &sync.WaitGroup{}
	defer wg.Wait()
	defer cancel()

	// initialize (or retrieve if present) storage, switch between "insql", "infile" and "inmemory" modules
	st, err := initStorage(ctx, wg, cfg)
	if err != nil {
		return err
	}
	key, err := keystore.RetrieveOrCreate(cfg.PrivateKeyPath, cfg.WalletPassphrase)
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	ps, err := initPubSub(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := ps.Close(); errClose != nil {
			err = multierror.Append(err, errClose)
		}
	}()

	n, err := node.InitNode(ctx, st, ps, key, metrics.New(registry), node.Options{MineRate: cfg.MineRate})
	if err != nil {
		return err
	}
	if err := ps.Subscribe(ctx, n); err != nil {
		return err
	}
	if cfg.Peer {
		peerSync := syncer.New(nodeclient.New(cfg.RootURL, 0), n, 0)
		if err := peerSync.SyncOnce(ctx); err != nil {
			zap.L().Warn("initial peer sync", zap.String("root", cfg.RootURL), zap.Error(err))
		}
		if cfg.SyncSchedule != "" {
			if err := peerSync.Start(cfg.SyncSchedule); err != nil {
				return err
			}
			defer peerSync.Stop()
		}
	}
	if cfg.SeedData {
		if err := n.Seed(ctx); err != nil {
			return err
		}
	}

	// initialize servers
	server, err := rest.InitServer(cfg, n, registry)
	if err != nil {
		return err
	}
	serveErrors := make(chan error, 2)
	go func() {
		zap.L().Info("REST server start attempted", zap.String("address", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrors <- err
		}
	}()
	var grpcServer *grpc.Server
	if cfg.GRPCAddress != "" {
		grpcServer, err = initGRPCServer(cfg.GRPCAddress, n, serveErrors)
		if err != nil {
			return multierror.Append(err, server.Close())
		}
	}

	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-done:
		zap.L().Info("server shutdown attempted")
	case err = <-serveErrors:
		zap.L().Error("server failed", zap.Error(err))
	}
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	ctxTO, cancelTO := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelTO()
	if errShutdown := server.Shutdown(ctxTO); errShutdown != nil {
		result = multierror.Append(result, errShutdown)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	return result.ErrorOrNil()
}

func initStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (storage.BlockStorage, error) {
	switch {
	case cfg.DatabaseDSN != "":
		return insql.InitStorage(ctx, wg, cfg.DatabaseDSN)
	case cfg.FileStoragePath != "":
		return infile.InitStorage(ctx, wg, cfg.FileStoragePath)
	default:
		zap.L().Warn("no persistent storage configured, the chain lives in memory")
		return inmemory.InitStorage(), nil
	}
}

func initPubSub(ctx context.Context, cfg *config.Config) (pubsub.PubSub, error) {
	nodeID, err := pubsub.NewNodeID()
	if err != nil {
		return nil, err
	}
	zap.L().Info("node identity", zap.String("node_id", nodeID))
	if cfg.PubSubProjectID == "" {
		zap.L().Warn("no pub/sub project configured, broadcasts stay within this process")
		return local.NewBus().Join(nodeID), nil
	}
	return gcp.New(ctx, cfg.PubSubProjectID, nodeID)
}

func initGRPCServer(address string, n *node.Node, serveErrors chan<- error) (*grpc.Server, error) {
	listen, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	nodeServer, err := grpcapi.InitServer(n)
	if err != nil {
		_ = listen.Close()
		return nil, err
	}
	s := grpcapi.NewGRPCServer(nodeServer)
	go func() {
		zap.L().Info("gRPC server start attempted", zap.String("address", address))
		if err := s.Serve(listen); err != nil {
			serveErrors <- err
		}
	}()
	return s, nil
}
