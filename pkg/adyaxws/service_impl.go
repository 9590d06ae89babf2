package adyaxws

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// service implements the Service interface
type service struct {
	repository Repository
	checker    ConstraintChecker
	codec      Codec
	eventSink  EventSink
	logger     *slog.Logger
	now        func() time.Time
	validator  *RequestValidator
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithConstraintChecker sets the field constraint checker
func WithConstraintChecker(checker ConstraintChecker) Option {
	return func(s *service) {
		s.checker = checker
	}
}

// WithCodec sets the request/response codec
func WithCodec(codec Codec) Option {
	return func(s *service) {
		s.codec = codec
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the logger used for non fatal failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithClock overrides the time source used for node timestamps
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		codec:     NewJSONCodec(),
		eventSink: NewNoopEventSink(),
		logger:    slog.Default(),
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.checker == nil {
		checker, err := NewFieldConstraints()
		if err != nil {
			return nil, err
		}
		s.checker = checker
	}

	s.validator = NewRequestValidator(s.repository, s.checker, s.codec)
	return s, nil
}

func (s *service) GetNode(ctx context.Context, rawID string) (*Node, error) {
	return s.validator.ResolveNode(ctx, rawID)
}

func (s *service) CreateNode(ctx context.Context, body []byte) (*Node, error) {
	payload, err := s.validator.ExtractPayload(body)
	if err != nil {
		return nil, err
	}

	node, err := s.validator.ValidateNode(NewNode(payload, s.now()))
	if err != nil {
		return nil, err
	}

	if err := s.repository.CreateNode(ctx, node); err != nil {
		return nil, &NodeError{NodeID: node.ID, Op: "create", Err: err}
	}

	if err := s.eventSink.NodeCreated(ctx, node); err != nil {
		s.logger.Warn("Failed to dispatch node created event", "node_id", node.ID, "error", err)
	}

	return node, nil
}

func (s *service) UpdateNode(ctx context.Context, rawID string, body []byte) (*Node, error) {
	node, err := s.validator.ResolveNode(ctx, rawID)
	if err != nil {
		return nil, err
	}

	payload, err := s.validator.ExtractPayload(body)
	if err != nil {
		return nil, err
	}

	payload.Apply(node)
	if _, err := s.validator.ValidateNode(node); err != nil {
		return nil, err
	}

	node.UpdatedAt = s.now()
	if err := s.repository.UpdateNode(ctx, node); err != nil {
		return nil, &NodeError{NodeID: node.ID, Op: "update", Err: err}
	}

	if err := s.eventSink.NodeUpdated(ctx, node); err != nil {
		s.logger.Warn("Failed to dispatch node updated event", "node_id", node.ID, "error", err)
	}

	return node, nil
}

func (s *service) DeleteNode(ctx context.Context, rawID string) error {
	node, err := s.validator.ResolveNode(ctx, rawID)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteNode(ctx, node.ID); err != nil {
		return &NodeError{NodeID: node.ID, Op: "delete", Err: err}
	}

	if err := s.eventSink.NodeDeleted(ctx, node.ID); err != nil {
		s.logger.Warn("Failed to dispatch node deleted event", "node_id", node.ID, "error", err)
	}

	return nil
}

func (s *service) Encode(node *Node) map[string]interface{} {
	return s.codec.Encode(node)
}
