package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		switch dbType {
		case DatabaseMemory:
		case DatabasePostgres, DatabaseSQLite, DatabaseRedis:
			if url == "" {
				return fmt.Errorf("database URL is required for %s", dbType)
			}
		default:
			return fmt.Errorf("database type must be 'memory', 'postgres', 'sqlite' or 'redis', got: %s", dbType)
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithNodeTypes replaces the accepted node types
func WithNodeTypes(types ...string) Option {
	return func(c *ServerConfig) error {
		types = trimAll(types)
		if len(types) == 0 {
			return fmt.Errorf("at least one node type is required")
		}
		c.NodeTypes = types
		return nil
	}
}

// WithMaxBodyBytes limits the size of request bodies
func WithMaxBodyBytes(n int64) Option {
	return func(c *ServerConfig) error {
		if n < 0 {
			return fmt.Errorf("max body bytes cannot be negative, got: %d", n)
		}
		c.MaxBodyBytes = n
		return nil
	}
}

// WithLogging sets the log level and output format
func WithLogging(level, format string) Option {
	return func(c *ServerConfig) error {
		c.LogLevel = level
		c.LogFormat = format
		return nil
	}
}

// WithEventLogging enables or disables event logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}
