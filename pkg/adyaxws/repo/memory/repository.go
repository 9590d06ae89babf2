package memory

import (
	"context"
	"sync"

	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

// Repository implements adyaxws.Repository using in-memory storage
type Repository struct {
	mu     sync.RWMutex
	nodes  map[int64]*adyaxws.Node
	lastID int64
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		nodes: make(map[int64]*adyaxws.Node),
	}
}

func (r *Repository) GetNode(ctx context.Context, id int64) (*adyaxws.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, exists := r.nodes[id]
	if !exists {
		return nil, adyaxws.ErrNodeNotFound
	}

	// Return a copy to prevent external modifications
	nodeCopy := *node
	return &nodeCopy, nil
}

func (r *Repository) CreateNode(ctx context.Context, node *adyaxws.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	node.ID = r.lastID

	nodeCopy := *node
	r.nodes[node.ID] = &nodeCopy

	return nil
}

func (r *Repository) UpdateNode(ctx context.Context, node *adyaxws.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[node.ID]; !exists {
		return adyaxws.ErrNodeNotFound
	}

	nodeCopy := *node
	r.nodes[node.ID] = &nodeCopy

	return nil
}

func (r *Repository) DeleteNode(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[id]; !exists {
		return adyaxws.ErrNodeNotFound
	}
	delete(r.nodes, id)

	return nil
}

// Len returns the number of stored nodes.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}
