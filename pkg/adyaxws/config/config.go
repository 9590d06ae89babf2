package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
	"github.com/tendant/adyax-ws/pkg/adyaxws/repo/memory"
	repopg "github.com/tendant/adyax-ws/pkg/adyaxws/repo/postgres"
	reporedis "github.com/tendant/adyax-ws/pkg/adyaxws/repo/redis"
	reposqlite "github.com/tendant/adyax-ws/pkg/adyaxws/repo/sqlite"
)

// Supported database types.
const (
	DatabaseMemory   = "memory"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseRedis    = "redis"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		DatabaseType:       DatabaseMemory,
		DBSchema:           "",
		NodeTypes:          append([]string(nil), adyaxws.DefaultNodeTypes...),
		MaxBodyBytes:       1 << 20,
		LogLevel:           "info",
		LogFormat:          "text",
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the node web service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres", "sqlite", "redis"
	DBSchema     string // Postgres schema to use (search_path)

	// Node types accepted by the constraint checker
	NodeTypes []string

	// Largest accepted request body; 0 disables the limit
	MaxBodyBytes int64

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json

	EnableEventLogging bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.DatabaseType {
	case DatabaseMemory:
	case DatabasePostgres, DatabaseSQLite, DatabaseRedis:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required when using %s", c.DatabaseType)
		}
	default:
		return errors.New("database_type must be 'memory', 'postgres', 'sqlite' or 'redis'")
	}

	if len(c.NodeTypes) == 0 {
		return errors.New("at least one node type is required")
	}

	if c.MaxBodyBytes < 0 {
		return errors.New("max_body_bytes cannot be negative")
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be 'text' or 'json', got: %s", c.LogFormat)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration.
// The returned cleanup function releases the repository connections.
func (c *ServerConfig) BuildService(ctx context.Context, opts ...adyaxws.Option) (adyaxws.Service, func(), error) {
	repo, cleanup, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}

	checker, err := adyaxws.NewFieldConstraints(c.NodeTypes...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	options := []adyaxws.Option{
		adyaxws.WithRepository(repo),
		adyaxws.WithConstraintChecker(checker),
	}
	if c.EnableEventLogging {
		options = append(options, adyaxws.WithEventSink(adyaxws.NewLoggingEventSink(nil)))
	}
	options = append(options, opts...)

	svc, err := adyaxws.New(options...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// BuildRepository creates a Repository based on the configuration
func (c *ServerConfig) BuildRepository(ctx context.Context) (adyaxws.Repository, func(), error) {
	switch c.DatabaseType {
	case DatabaseMemory:
		return memory.New(), func() {}, nil
	case DatabasePostgres:
		pool, err := newPostgresPool(ctx, c.DatabaseURL, c.DBSchema)
		if err != nil {
			return nil, nil, err
		}
		repo := repopg.NewWithPool(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	case DatabaseSQLite:
		repo, err := reposqlite.New(sqlitePath(c.DatabaseURL))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	case DatabaseRedis:
		repo, err := reporedis.NewFromURL(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func sqlitePath(url string) string {
	return strings.TrimPrefix(url, "sqlite://")
}

func newPostgresPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SET search_path TO "+pgx.Identifier{schema}.Sanitize())
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}
