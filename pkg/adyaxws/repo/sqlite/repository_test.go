package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "nodes.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func createTestNode(t *testing.T, repo *Repository, title string) *adyaxws.Node {
	t.Helper()
	now := time.Now().UTC()
	node := &adyaxws.Node{
		UUID:      uuid.New(),
		Type:      "adyax_rest_test",
		Title:     title,
		Body:      "Body of " + title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateNode(context.Background(), node))
	return node
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := setupTestRepository(t)

	node := createTestNode(t, repo, "first")
	assert.Equal(t, int64(1), node.ID)

	retrieved, err := repo.GetNode(context.Background(), node.ID)
	require.NoError(t, err)
	assert.Equal(t, node.UUID, retrieved.UUID)
	assert.Equal(t, node.Type, retrieved.Type)
	assert.Equal(t, node.Title, retrieved.Title)
	assert.Equal(t, node.Body, retrieved.Body)
	assert.True(t, node.CreatedAt.Equal(retrieved.CreatedAt))
}

func TestSQLiteRepository_GetNotFound(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.GetNode(context.Background(), 42)
	assert.ErrorIs(t, err, adyaxws.ErrNodeNotFound)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "GetNode", storeErr.Op)
	assert.Equal(t, int64(42), storeErr.ID)
}

func TestSQLiteRepository_Update(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	node := createTestNode(t, repo, "before")
	node.Title = "after"
	node.Type = "page"
	node.UpdatedAt = node.UpdatedAt.Add(time.Hour)
	require.NoError(t, repo.UpdateNode(ctx, node))

	retrieved, err := repo.GetNode(ctx, node.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", retrieved.Title)
	assert.Equal(t, "page", retrieved.Type)
	assert.True(t, node.UpdatedAt.Equal(retrieved.UpdatedAt))

	node.ID = 999
	assert.ErrorIs(t, repo.UpdateNode(ctx, node), adyaxws.ErrNodeNotFound)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	node := createTestNode(t, repo, "delete me")
	require.NoError(t, repo.DeleteNode(ctx, node.ID))

	_, err := repo.GetNode(ctx, node.ID)
	assert.ErrorIs(t, err, adyaxws.ErrNodeNotFound)
	assert.ErrorIs(t, repo.DeleteNode(ctx, node.ID), adyaxws.ErrNodeNotFound)
}

func TestSQLiteRepository_ReopenKeepsData(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "reopen.db")

	repo, err := New(dsn)
	require.NoError(t, err)
	node := createTestNode(t, repo, "persisted")
	require.NoError(t, repo.Close())

	reopened, err := New(dsn)
	require.NoError(t, err)
	defer reopened.Close()

	retrieved, err := reopened.GetNode(context.Background(), node.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", retrieved.Title)
}
