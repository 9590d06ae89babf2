package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

// Schema creates the node table when it does not exist yet.
const Schema = `
CREATE TABLE IF NOT EXISTS node (
	id         BIGSERIAL PRIMARY KEY,
	uuid       UUID NOT NULL UNIQUE,
	type       VARCHAR(32) NOT NULL,
	title      VARCHAR(255) NOT NULL,
	body       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements adyaxws.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// EnsureSchema creates the node table if needed.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return r.handlePostgresError("ensure schema", err)
	}
	return nil
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("node already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "22001": // string_data_right_truncation
			return fmt.Errorf("value too long for column %s", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return adyaxws.ErrNodeNotFound
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) GetNode(ctx context.Context, id int64) (*adyaxws.Node, error) {
	query := `
		SELECT id, uuid, type, title, body, created_at, updated_at
		FROM node WHERE id = $1`

	var node adyaxws.Node
	err := r.db.QueryRow(ctx, query, id).Scan(
		&node.ID, &node.UUID, &node.Type, &node.Title, &node.Body,
		&node.CreatedAt, &node.UpdatedAt)
	if err != nil {
		return nil, r.handlePostgresError("get node", err)
	}

	return &node, nil
}

func (r *Repository) CreateNode(ctx context.Context, node *adyaxws.Node) error {
	query := `
		INSERT INTO node (uuid, type, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		node.UUID, node.Type, node.Title, node.Body,
		node.CreatedAt, node.UpdatedAt).Scan(&node.ID)
	if err != nil {
		return r.handlePostgresError("create node", err)
	}

	return nil
}

func (r *Repository) UpdateNode(ctx context.Context, node *adyaxws.Node) error {
	query := `
		UPDATE node SET
			type = $2, title = $3, body = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		node.ID, node.Type, node.Title, node.Body, node.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update node", err)
	}
	if tag.RowsAffected() == 0 {
		return adyaxws.ErrNodeNotFound
	}

	return nil
}

func (r *Repository) DeleteNode(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM node WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete node", err)
	}
	if tag.RowsAffected() == 0 {
		return adyaxws.ErrNodeNotFound
	}

	return nil
}
