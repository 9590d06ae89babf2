package adyaxws

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// NodeCreated does nothing and returns nil
func (n *NoopEventSink) NodeCreated(ctx context.Context, node *Node) error {
	return nil
}

// NodeUpdated does nothing and returns nil
func (n *NoopEventSink) NodeUpdated(ctx context.Context, node *Node) error {
	return nil
}

// NodeDeleted does nothing and returns nil
func (n *NoopEventSink) NodeDeleted(ctx context.Context, nodeID int64) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other action
// Useful for development and debugging
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// NodeCreated logs the node creation event
func (l *LoggingEventSink) NodeCreated(ctx context.Context, node *Node) error {
	l.logger.InfoContext(ctx, "Node created", "node_id", node.ID, "uuid", node.UUID, "type", node.Type)
	return nil
}

// NodeUpdated logs the node update event
func (l *LoggingEventSink) NodeUpdated(ctx context.Context, node *Node) error {
	l.logger.InfoContext(ctx, "Node updated", "node_id", node.ID, "type", node.Type)
	return nil
}

// NodeDeleted logs the node deletion event
func (l *LoggingEventSink) NodeDeleted(ctx context.Context, nodeID int64) error {
	l.logger.InfoContext(ctx, "Node deleted", "node_id", nodeID)
	return nil
}
