package adyaxws

import (
	"context"
)

// Repository defines the interface for node persistence
type Repository interface {
	// GetNode returns ErrNodeNotFound when no node has the given id.
	GetNode(ctx context.Context, id int64) (*Node, error)

	// CreateNode stores an unsaved node and assigns its ID.
	CreateNode(ctx context.Context, node *Node) error

	// UpdateNode overwrites a saved node.
	UpdateNode(ctx context.Context, node *Node) error

	// DeleteNode removes a node. Returns ErrNodeNotFound when it does not exist.
	DeleteNode(ctx context.Context, id int64) error
}

// ConstraintChecker validates node field values.
type ConstraintChecker interface {
	// Check returns one message per violated constraint on the given fields,
	// in field order. An empty result means the node is valid.
	Check(node *Node, fields []string) []string
}

// Codec decodes request bodies and encodes nodes for responses.
type Codec interface {
	// Decode parses a request body into a field map.
	Decode(data []byte) (map[string]interface{}, error)

	// Encode converts a node into its response representation.
	Encode(node *Node) map[string]interface{}
}

// EventSink defines the interface for event handling
type EventSink interface {
	// NodeCreated is fired when a node is created
	NodeCreated(ctx context.Context, node *Node) error

	// NodeUpdated is fired when a node is updated
	NodeUpdated(ctx context.Context, node *Node) error

	// NodeDeleted is fired when a node is deleted
	NodeDeleted(ctx context.Context, nodeID int64) error
}
