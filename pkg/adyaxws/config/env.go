package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// settings is the flat set of keys read from the environment or a config file.
// Empty values leave the current configuration untouched.
type settings struct {
	Port         string   `yaml:"port" json:"port" toml:"port" env:"PORT"`
	Environment  string   `yaml:"environment" json:"environment" toml:"environment" env:"ENVIRONMENT"`
	DatabaseURL  string   `yaml:"database_url" json:"database_url" toml:"database_url" env:"DATABASE_URL"`
	DBSchema     string   `yaml:"db_schema" json:"db_schema" toml:"db_schema" env:"DB_SCHEMA"`
	NodeTypes    []string `yaml:"node_types" json:"node_types" toml:"node_types" env:"NODE_TYPES" env-separator:","`
	MaxBodyBytes int64    `yaml:"max_body_bytes" json:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	LogLevel     string   `yaml:"log_level" json:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat    string   `yaml:"log_format" json:"log_format" toml:"log_format" env:"LOG_FORMAT"`
}

// WithEnv applies environment variable overrides.
//
// Server:
//
//	PORT - Server port (default: "8080")
//	ENVIRONMENT - Runtime environment (default: "development")
//
// Database:
//
//	DATABASE_URL - Connection string. The scheme selects the repository:
//	               "memory" or empty - in-memory
//	               "postgres://..." or "postgresql://..." - Postgres
//	               "sqlite:///path/to/nodes.db" - SQLite file
//	               "redis://host:6379/0" - Redis
//	DB_SCHEMA - Postgres search_path
//
// Validation and limits:
//
//	NODE_TYPES - Comma separated list of accepted node types
//	MAX_BODY_BYTES - Largest accepted request body
//
// Logging:
//
//	LOG_LEVEL - debug, info, warn or error
//	LOG_FORMAT - text or json
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var s settings
		if err := cleanenv.ReadEnv(&s); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
		return s.apply(c)
	}
}

// WithFile reads a YAML, JSON or TOML config file. Environment variables take
// precedence over values from the file.
func WithFile(path string) Option {
	return func(c *ServerConfig) error {
		var s settings
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
		return s.apply(c)
	}
}

func (s settings) apply(c *ServerConfig) error {
	if s.Port != "" {
		c.Port = s.Port
	}
	if s.Environment != "" {
		c.Environment = s.Environment
	}
	if s.DatabaseURL != "" {
		if err := applyDatabaseURL(s.DatabaseURL, c); err != nil {
			return err
		}
	}
	if s.DBSchema != "" {
		c.DBSchema = s.DBSchema
	}
	if types := trimAll(s.NodeTypes); len(types) > 0 {
		c.NodeTypes = types
	}
	if s.MaxBodyBytes != 0 {
		c.MaxBodyBytes = s.MaxBodyBytes
	}
	if s.LogLevel != "" {
		c.LogLevel = strings.ToLower(s.LogLevel)
	}
	if s.LogFormat != "" {
		c.LogFormat = strings.ToLower(s.LogFormat)
	}
	return nil
}

// applyDatabaseURL detects the database type from the URL scheme
func applyDatabaseURL(dbURL string, c *ServerConfig) error {
	switch {
	case dbURL == "memory" || dbURL == "memory://":
		c.DatabaseType = DatabaseMemory
		c.DatabaseURL = ""
	case strings.HasPrefix(dbURL, "postgresql://"), strings.HasPrefix(dbURL, "postgres://"):
		c.DatabaseType = DatabasePostgres
		c.DatabaseURL = dbURL
	case strings.HasPrefix(dbURL, "sqlite://"):
		if sqlitePath(dbURL) == "" {
			return fmt.Errorf("sqlite path cannot be empty in DATABASE_URL")
		}
		c.DatabaseType = DatabaseSQLite
		c.DatabaseURL = dbURL
	case strings.HasPrefix(dbURL, "redis://"), strings.HasPrefix(dbURL, "rediss://"):
		c.DatabaseType = DatabaseRedis
		c.DatabaseURL = dbURL
	default:
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory', 'postgresql://...', 'sqlite://...' or 'redis://...')", dbURL)
	}
	return nil
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
