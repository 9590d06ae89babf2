package adyaxws

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrNodeNotFound indicates a node was not found
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidNodeID indicates an identifier that can never reference a node
	ErrInvalidNodeID = errors.New("invalid node id")
)

// Messages reported to web service clients.
const (
	MsgInvalidNodeID  = "Please, provide a valid node id."
	MsgNodeNotFound   = "Node does not exists."
	MsgInvalidJSON    = "Please, provide a valid json data."
	MsgMissingFields  = "Please, provide required fields: title, type and body."
	MsgNodeSaved      = "Node successfully saved."
	MsgNodeUpdated    = "Node successfully updated."
	MsgNodeDeleted    = "Node successfully deleted."
	msgPrimitiveValue = "%s: This value should be of the correct primitive type."
)

// ValidationError collects every input or schema problem found while
// handling a single request. Messages are kept in the order they were raised.
type ValidationError struct {
	messages []string
}

// NewValidationError creates a validation error holding the given messages.
func NewValidationError(messages ...string) *ValidationError {
	e := &ValidationError{}
	for _, m := range messages {
		e.Add(m)
	}
	return e
}

// Add appends a message. Empty messages are dropped.
func (e *ValidationError) Add(message string) {
	if message == "" {
		return
	}
	e.messages = append(e.messages, message)
}

// Len returns the number of collected messages.
func (e *ValidationError) Len() int {
	return len(e.messages)
}

// Messages returns a copy of the collected messages.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// ErrOrNil returns e as an error when it holds at least one message.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.messages) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.messages, "; ")
}

// Messages returns the validation messages carried by err, or nil when err is
// not a validation error.
func Messages(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	return verr.Messages()
}

// IsValidationError reports whether err carries validation messages.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// NodeError represents an error related to node operations
type NodeError struct {
	NodeID int64
	Op     string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node operation %s failed for node %d: %v", e.Op, e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
