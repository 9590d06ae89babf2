package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/tendant/adyax-ws/pkg/adyaxws"
)

const (
	sequenceKey = "node:seq"
	indexKey    = "nodes"
)

// Repository provides node persistence in Redis.
type Repository struct {
	client *goredis.Client
}

// New creates a new Redis repository.
func New(client *goredis.Client) *Repository {
	return &Repository{client: client}
}

// NewFromURL parses a redis:// URL and connects to it.
func NewFromURL(ctx context.Context, url string) (*Repository, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis (%s): %w", opts.Addr, err)
	}
	return New(client), nil
}

// Close closes the underlying client.
func (r *Repository) Close() error {
	return r.client.Close()
}

func nodeKey(id int64) string {
	return fmt.Sprintf("node:%d", id)
}

func nodeTypeKey(nodeType string) string {
	return fmt.Sprintf("nodes:type:%s", nodeType)
}

// GetNode retrieves a node by ID.
func (r *Repository) GetNode(ctx context.Context, id int64) (*adyaxws.Node, error) {
	data, err := r.client.Get(ctx, nodeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, adyaxws.ErrNodeNotFound
		}
		return nil, err
	}
	var node adyaxws.Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode node %d: %w", id, err)
	}
	return &node, nil
}

// CreateNode allocates an id from the sequence and stores the node.
func (r *Repository) CreateNode(ctx context.Context, node *adyaxws.Node) error {
	id, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return fmt.Errorf("allocate node id: %w", err)
	}
	node.ID = id
	return r.save(ctx, node, "")
}

// UpdateNode overwrites an existing node.
func (r *Repository) UpdateNode(ctx context.Context, node *adyaxws.Node) error {
	existing, err := r.GetNode(ctx, node.ID)
	if err != nil {
		return err
	}
	return r.save(ctx, node, existing.Type)
}

func (r *Repository) save(ctx context.Context, node *adyaxws.Node, previousType string) error {
	data, err := json.Marshal(node)
	if err != nil {
		return err
	}
	member := fmt.Sprintf("%d", node.ID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, nodeKey(node.ID), data, 0)
	pipe.SAdd(ctx, indexKey, member)
	if previousType != "" && previousType != node.Type {
		pipe.SRem(ctx, nodeTypeKey(previousType), member)
	}
	pipe.SAdd(ctx, nodeTypeKey(node.Type), member)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteNode removes a node by ID.
func (r *Repository) DeleteNode(ctx context.Context, id int64) error {
	// First get the node to know its type for cleanup
	node, err := r.GetNode(ctx, id)
	if err != nil {
		return err
	}

	member := fmt.Sprintf("%d", id)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, nodeKey(id))
	pipe.SRem(ctx, indexKey, member)
	pipe.SRem(ctx, nodeTypeKey(node.Type), member)
	_, err = pipe.Exec(ctx)
	return err
}
