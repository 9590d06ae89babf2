package adyaxws

import (
	"time"

	"github.com/google/uuid"
)

// Field names accepted by the web service.
const (
	FieldTitle = "title"
	FieldType  = "type"
	FieldBody  = "body"
)

// RequiredFields is the ordered set of fields every create or update payload
// must supply. It is also the subset the constraint checker reports on.
var RequiredFields = []string{FieldTitle, FieldType, FieldBody}

// DefaultNodeTypes are the bundles accepted when no node types are configured.
var DefaultNodeTypes = []string{"article", "page", "adyax_rest_test"}

// Node represents a content item.
//
// A zero ID means the node has not been saved yet.
type Node struct {
	ID        int64     `json:"id" db:"id"`
	UUID      uuid.UUID `json:"uuid" db:"uuid"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsNew reports whether the node still has to be created in a repository.
func (n *Node) IsNew() bool {
	return n.ID == 0
}

// Payload holds the validated required fields of a create or update request.
type Payload struct {
	Title string
	Type  string
	Body  string
}

// Apply copies the payload fields onto the node.
func (p Payload) Apply(node *Node) {
	node.Title = p.Title
	node.Type = p.Type
	node.Body = p.Body
}

// NewNode builds an unsaved node from a payload.
func NewNode(p Payload, now time.Time) *Node {
	node := &Node{
		UUID:      uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Apply(node)
	return node
}
