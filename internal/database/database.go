// Package database manages the MySQL connection to an API catalog.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/dbsmedya/apideps/internal/config"
	"github.com/dbsmedya/apideps/internal/logger"
)

const (
	defaultRetries = 3
	defaultBackoff = time.Second
)

// Manager owns the catalog connection.
type Manager struct {
	Catalog *sql.DB
	config  *config.DatabaseConfig
	log     *logger.Logger

	retries int
	backoff time.Duration
}

// NewManager creates a catalog connection manager. A nil logger discards
// connection diagnostics.
func NewManager(cfg *config.DatabaseConfig, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		config:  cfg,
		log:     log,
		retries: defaultRetries,
		backoff: defaultBackoff,
	}
}

// Connect opens the catalog connection and verifies it with a ping.
func (m *Manager) Connect(ctx context.Context) error {
	if m.config == nil {
		return fmt.Errorf("catalog database is not configured")
	}

	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	m.Catalog = db
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var err error
	backoff := m.backoff

	for i := 0; i < m.retries; i++ {
		var db *sql.DB
		db, err = m.open()
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				return db, nil
			}
			db.Close()
		}

		m.log.Warnw("catalog connection attempt failed",
			"attempt", i+1,
			"host", m.config.Host,
			"database", m.config.Database,
			"error", err,
		)

		if i < m.retries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", m.retries, err)
}

func (m *Manager) open() (*sql.DB, error) {
	db, err := sql.Open("mysql", BuildDSN(m.config))
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	params := "?parseTime=true&interpolateParams=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// Close closes the catalog connection if it is open.
func (m *Manager) Close() error {
	if m.Catalog == nil {
		return nil
	}
	if err := m.Catalog.Close(); err != nil {
		return fmt.Errorf("catalog close: %w", err)
	}
	m.Catalog = nil
	return nil
}

// Ping verifies the catalog connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.Catalog == nil {
		return fmt.Errorf("catalog database is not connected")
	}
	if err := m.Catalog.PingContext(ctx); err != nil {
		return fmt.Errorf("catalog ping failed: %w", err)
	}
	return nil
}
