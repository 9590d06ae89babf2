package adyaxws

import (
	"context"
)

// Service defines the main interface for the adyax web service library.
//
// Every operation takes the raw request input. Input and schema problems are
// reported as *ValidationError; any other error comes from a collaborator.
type Service interface {
	// GetNode resolves the node referenced by rawID.
	GetNode(ctx context.Context, rawID string) (*Node, error)

	// CreateNode validates body and stores a new node.
	CreateNode(ctx context.Context, body []byte) (*Node, error)

	// UpdateNode validates body and applies it to the node referenced by rawID.
	UpdateNode(ctx context.Context, rawID string, body []byte) (*Node, error)

	// DeleteNode removes the node referenced by rawID.
	DeleteNode(ctx context.Context, rawID string) error

	// Encode returns the response representation of a node.
	Encode(node *Node) map[string]interface{}
}
