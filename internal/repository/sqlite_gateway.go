package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fridge-service/internal/domain"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteGateway stores the collection as one value in a key-value table.
// Writes go through a single connection guarded by a mutex.
type SQLiteGateway struct {
	db     *sql.DB
	key    string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSQLiteGateway opens (or creates) the database at path and migrates it
func NewSQLiteGateway(path, key string, logger *zap.Logger) (*SQLiteGateway, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := migrate(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteGateway{
		db:     db,
		key:    key,
		logger: logger,
	}, nil
}

func migrate(db *sql.DB, logger *zap.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger.Sugar()})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through zap
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Debugf(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }

func (g *SQLiteGateway) Load(ctx context.Context) (domain.Collection, error) {
	var data []byte
	err := g.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, g.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return DecodeCollection(data)
}

func (g *SQLiteGateway) Save(ctx context.Context, items domain.Collection) error {
	data, err := EncodeCollection(items)
	if err != nil {
		return err
	}
	if err := g.put(ctx, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	g.logger.Debug("Snapshot written to sqlite",
		zap.String("key", g.key),
		zap.Int("items", len(items)),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (g *SQLiteGateway) put(ctx context.Context, data []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, g.key, data, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Close closes the database connection
func (g *SQLiteGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}
