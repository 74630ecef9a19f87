// Package insql provides functionality for dumping/retrieving blocks to/from a SQL database.
// Postgres is served by the pgx driver and MySQL by go-sql-driver, selected by the DSN scheme.
package insql

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_cryptochain/internal/blockchain"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_cryptochain/internal/storage/errors"
	"github.com/danilovkiri/dk_go_cryptochain/internal/storage/modelstorage"
)

const mysqlDuplicateEntry = 1062

const createTableQuery = `CREATE TABLE IF NOT EXISTS blocks (
	height BIGINT NOT NULL PRIMARY KEY,
	block_timestamp BIGINT NOT NULL,
	last_hash VARCHAR(128) NOT NULL,
	hash VARCHAR(128) NOT NULL,
	data TEXT NOT NULL,
	difficulty INT NOT NULL,
	nonce BIGINT NOT NULL
)`

const (
	countQuery     = "SELECT COUNT(*) FROM blocks"
	insertQuery    = "INSERT INTO blocks (height, block_timestamp, last_hash, hash, data, difficulty, nonce) VALUES (?, ?, ?, ?, ?, ?, ?)"
	deleteQuery    = "DELETE FROM blocks"
	selectAllQuery = "SELECT height, block_timestamp, last_hash, hash, data, difficulty, nonce FROM blocks ORDER BY height"
)

// Check interface implementation explicitly
var (
	_ storage.BlockStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu sync.Mutex
	DB *sqlx.DB
}

// InitStorage connects to the database at dsn, creates the blocks table if needed and closes
// the connection once ctx is done.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, dsn string) (*Storage, error) {
	driverName, dataSourceName, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	st := NewStorage(db)
	if err := st.CreateTable(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			zap.L().Error("closing SQL DB connection", zap.Error(err))
			return
		}
		zap.L().Info("SQL DB connection closed successfully", zap.String("driver", driverName))
	}()
	return st, nil
}

// NewStorage wraps an open database handle.
func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{DB: db}
}

// ParseDSN returns the driver name and driver specific data source name for a URL-style DSN.
func ParseDSN(dsn string) (driverName, dataSourceName string, err error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", err
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return "pgx", dsn, nil
	case "mysql":
		cfg := mysql.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Passwd, _ = u.User.Password()
		}
		cfg.Params = make(map[string]string)
		for key, values := range u.Query() {
			if len(values) > 0 {
				cfg.Params[key] = values[0]
			}
		}
		return "mysql", cfg.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// CreateTable creates the blocks table if it does not exist.
func (s *Storage) CreateTable(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, createTableQuery)
	if err != nil {
		return storageErrors.StatementSQLError{Msg: "creating blocks table", Err: err}
	}
	return nil
}

// Dump inserts a block at the given height which must be the next free one.
func (s *Storage) Dump(ctx context.Context, height int, block blockchain.Block) error {
	entry, err := modelstorage.NewBlockSQLEntry(height, block)
	if err != nil {
		return err
	}
	// create channels for listening to the go routine result
	dumpDone := make(chan bool, 1)
	dumpError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.dump(ctx, entry); err != nil {
			dumpError <- err
			return
		}
		dumpDone <- true
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		zap.L().Warn("dumping block", zap.Error(ctx.Err()))
		return storageErrors.ContextTimeoutExceededError{}
	case err := <-dumpError:
		zap.L().Warn("dumping block", zap.Error(err))
		return err
	case <-dumpDone:
		zap.L().Debug("block inserted", zap.Int("height", height), zap.String("hash", block.Hash))
		return nil
	}
}

// Replace deletes every stored block and inserts chain within one transaction.
func (s *Storage) Replace(ctx context.Context, chain []blockchain.Block) error {
	entries := make([]modelstorage.BlockSQLEntry, 0, len(chain))
	for height, block := range chain {
		entry, err := modelstorage.NewBlockSQLEntry(height, block)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	replaceDone := make(chan bool, 1)
	replaceError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.replace(ctx, entries); err != nil {
			replaceError <- err
			return
		}
		replaceDone <- true
	}()

	select {
	case <-ctx.Done():
		zap.L().Warn("replacing chain", zap.Error(ctx.Err()))
		return storageErrors.ContextTimeoutExceededError{}
	case err := <-replaceError:
		zap.L().Warn("replacing chain", zap.Error(err))
		return err
	case <-replaceDone:
		zap.L().Info("chain replaced in SQL DB", zap.Int("length", len(chain)))
		return nil
	}
}

// RetrieveAll returns every stored block ordered by height.
func (s *Storage) RetrieveAll(ctx context.Context) ([]blockchain.Block, error) {
	retrieveDone := make(chan []blockchain.Block, 1)
	retrieveError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		var entries []modelstorage.BlockSQLEntry
		// use SelectContext due to struct usage and slices
		if err := s.DB.SelectContext(ctx, &entries, selectAllQuery); err != nil {
			retrieveError <- storageErrors.StatementSQLError{Msg: "selecting blocks", Err: err}
			return
		}
		blocks := make([]blockchain.Block, 0, len(entries))
		for _, entry := range entries {
			block, err := entry.Block()
			if err != nil {
				retrieveError <- fmt.Errorf("block at height %d: %w", entry.Height, err)
				return
			}
			blocks = append(blocks, block)
		}
		retrieveDone <- blocks
	}()

	select {
	case <-ctx.Done():
		zap.L().Warn("retrieving chain", zap.Error(ctx.Err()))
		return nil, storageErrors.ContextTimeoutExceededError{}
	case err := <-retrieveError:
		zap.L().Warn("retrieving chain", zap.Error(err))
		return nil, err
	case blocks := <-retrieveDone:
		return blocks, nil
	}
}

// PingDB checks the database connection.
func (s *Storage) PingDB(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// CloseDB closes the database connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

// dump inserts entry unless its height is taken, all within one transaction.
func (s *Storage) dump(ctx context.Context, entry modelstorage.BlockSQLEntry) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return storageErrors.StatementSQLError{Msg: "starting transaction", Err: err}
	}
	defer tx.Rollback()
	var count int
	if err := tx.GetContext(ctx, &count, countQuery); err != nil {
		return storageErrors.StatementSQLError{Msg: "counting blocks", Err: err}
	}
	if count != entry.Height {
		return storageErrors.StorageAlreadyExistsError{Height: entry.Height}
	}
	if err := insertBlock(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErrors.StatementSQLError{Msg: "committing block", Err: err}
	}
	return nil
}

// replace swaps every stored row for entries within one transaction.
func (s *Storage) replace(ctx context.Context, entries []modelstorage.BlockSQLEntry) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return storageErrors.StatementSQLError{Msg: "starting transaction", Err: err}
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, deleteQuery); err != nil {
		return storageErrors.StatementSQLError{Msg: "deleting blocks", Err: err}
	}
	for _, entry := range entries {
		if err := insertBlock(ctx, tx, entry); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErrors.StatementSQLError{Msg: "committing chain", Err: err}
	}
	return nil
}

func insertBlock(ctx context.Context, tx *sqlx.Tx, entry modelstorage.BlockSQLEntry) error {
	_, err := tx.ExecContext(ctx, tx.Rebind(insertQuery),
		entry.Height, entry.Timestamp, entry.LastHash, entry.Hash, entry.Data, entry.Difficulty, entry.Nonce)
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return storageErrors.StorageAlreadyExistsError{Height: entry.Height}
	}
	return storageErrors.StatementSQLError{Msg: "inserting block", Err: err}
}

// isUniqueViolation reports whether err is a primary key violation in either dialect.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return false
}
