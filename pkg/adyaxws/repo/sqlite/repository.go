package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Repository implements adyaxws.Repository using SQLite.
type Repository struct {
	db *sqlx.DB
}

// nodeRow represents a node row in the database.
type nodeRow struct {
	ID        int64  `db:"id"`
	UUID      string `db:"uuid"`
	Type      string `db:"type"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// New opens the SQLite database at dsn and runs migrations.
func New(dsn string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("New", 0, "failed to open database", ErrConnectionFailed)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("New", 0, "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("New", 0, err.Error(), ErrMigrationFailed)
	}

	return &Repository{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) GetNode(ctx context.Context, id int64) (*adyaxws.Node, error) {
	var row nodeRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM node WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetNode", id, "node not found", adyaxws.ErrNodeNotFound)
		}
		return nil, NewStoreError("GetNode", id, err.Error(), err)
	}

	return rowToNode(&row)
}

func (r *Repository) CreateNode(ctx context.Context, node *adyaxws.Node) error {
	query := `
		INSERT INTO node (uuid, type, title, body, created_at, updated_at)
		VALUES (:uuid, :type, :title, :body, :created_at, :updated_at)`

	result, err := r.db.NamedExecContext(ctx, query, nodeToRow(node))
	if err != nil {
		return NewStoreError("CreateNode", 0, err.Error(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return NewStoreError("CreateNode", 0, "failed to read inserted id", err)
	}
	node.ID = id

	return nil
}

func (r *Repository) UpdateNode(ctx context.Context, node *adyaxws.Node) error {
	query := `
		UPDATE node SET
			type = :type, title = :title, body = :body, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, nodeToRow(node))
	if err != nil {
		return NewStoreError("UpdateNode", node.ID, err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("UpdateNode", node.ID, "node not found", adyaxws.ErrNodeNotFound)
	}

	return nil
}

func (r *Repository) DeleteNode(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM node WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeleteNode", id, err.Error(), err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return NewStoreError("DeleteNode", id, "node not found", adyaxws.ErrNodeNotFound)
	}

	return nil
}

func nodeToRow(node *adyaxws.Node) nodeRow {
	return nodeRow{
		ID:        node.ID,
		UUID:      node.UUID.String(),
		Type:      node.Type,
		Title:     node.Title,
		Body:      node.Body,
		CreatedAt: node.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: node.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func rowToNode(row *nodeRow) (*adyaxws.Node, error) {
	id, err := uuid.Parse(row.UUID)
	if err != nil {
		return nil, NewStoreError("GetNode", row.ID, "invalid uuid", ErrInvalidData)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, NewStoreError("GetNode", row.ID, "invalid created_at", ErrInvalidData)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("GetNode", row.ID, "invalid updated_at", ErrInvalidData)
	}

	return &adyaxws.Node{
		ID:        row.ID,
		UUID:      id,
		Type:      row.Type,
		Title:     row.Title,
		Body:      row.Body,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
