// Package config provides types for handling configuration parameters.
package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config handles node and frontend constants and parameters.
type Config struct {
	ServerAddress    string        `json:"server_address" env:"SERVER_ADDRESS"`
	GRPCAddress      string        `json:"grpc_address" env:"GRPC_ADDRESS"`
	FrontendAddress  string        `json:"frontend_address" env:"FRONTEND_ADDRESS"`
	BackendURL       string        `json:"backend_url" env:"BACKEND_URL"`
	FileStoragePath  string        `json:"file_storage_path" env:"FILE_STORAGE_PATH"`
	DatabaseDSN      string        `json:"database_dsn" env:"DATABASE_DSN"`
	PrivateKeyPath   string        `json:"private_key_path" env:"PRIVATE_KEY_PATH"`
	WalletPassphrase string        `json:"wallet_passphrase" env:"WALLET_PASSPHRASE"`
	Peer             bool          `json:"peer" env:"PEER"`
	RootURL          string        `json:"root_url" env:"ROOT_URL"`
	SyncSchedule     string        `json:"sync_schedule" env:"SYNC_SCHEDULE"`
	PubSubProjectID  string        `json:"pubsub_project_id" env:"PUBSUB_PROJECT_ID"`
	TrustedSubnet    string        `json:"trusted_subnet" env:"TRUSTED_SUBNET"`
	SeedData         bool          `json:"seed_data" env:"SEED_DATA"`
	MineRate         time.Duration `json:"mine_rate" env:"MINE_RATE"`
	LogLevel         string        `json:"log_level" env:"LOG_LEVEL"`
	ConfigPath       string        `json:"-" env:"CONFIG"`
}

// NewDefaultConfiguration sets up a configuration holding default values.
func NewDefaultConfiguration() *Config {
	return &Config{
		ServerAddress:   ":5000",
		FrontendAddress: ":3000",
		BackendURL:      "http://localhost:5000",
		PrivateKeyPath:  "wallet.pem",
		RootURL:         "http://localhost:5000",
		MineRate:        4 * time.Second,
		LogLevel:        "info",
	}
}

// Parse loads the configuration from .env, a JSON config file, environment and command line
// arguments, each source overriding the previous one.
func (c *Config) Parse() error {
	return c.ParseArgs(os.Args[1:])
}

// ParseArgs is Parse with explicit command line arguments.
func (c *Config) ParseArgs(args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	// command line arguments are parsed twice: first to find the config file, then to
	// override whatever the file and environment set
	scratch := *c
	if err := scratch.flagSet().Parse(args); err != nil {
		return err
	}
	path := scratch.ConfigPath
	if path == "" {
		path = os.Getenv("CONFIG")
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return err
		}
		c.ConfigPath = path
	} else if err := cleanenv.ReadEnv(c); err != nil {
		return err
	}
	return c.flagSet().Parse(args)
}

// flagSet binds command line flags to c using current values as defaults.
func (c *Config) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("cryptochain", flag.ContinueOnError)
	fs.StringVar(&c.ServerAddress, "a", c.ServerAddress, "REST server address")
	fs.StringVar(&c.GRPCAddress, "g", c.GRPCAddress, "gRPC server address, disabled if empty")
	fs.StringVar(&c.FrontendAddress, "w", c.FrontendAddress, "Frontend server address")
	fs.StringVar(&c.BackendURL, "b", c.BackendURL, "Node URL used by the frontend")
	fs.StringVar(&c.FileStoragePath, "f", c.FileStoragePath, "File storage path")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "Database DSN (postgres:// or mysql://)")
	fs.StringVar(&c.PrivateKeyPath, "k", c.PrivateKeyPath, "Wallet private key path")
	fs.BoolVar(&c.Peer, "p", c.Peer, "Run as a peer syncing from the root node")
	fs.StringVar(&c.RootURL, "r", c.RootURL, "Root node URL")
	fs.StringVar(&c.TrustedSubnet, "t", c.TrustedSubnet, "Trusted subnet in CIDR notation")
	fs.StringVar(&c.ConfigPath, "c", c.ConfigPath, "JSON config file path")
	return fs
}
