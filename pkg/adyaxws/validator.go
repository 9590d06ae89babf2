package adyaxws

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RequestValidator turns raw request input into resolved nodes and validated
// payloads. It never writes to the repository.
type RequestValidator struct {
	repository Repository
	checker    ConstraintChecker
	codec      Codec
}

// NewRequestValidator creates a request validator over the given collaborators.
func NewRequestValidator(repository Repository, checker ConstraintChecker, codec Codec) *RequestValidator {
	return &RequestValidator{
		repository: repository,
		checker:    checker,
		codec:      codec,
	}
}

// ParseNodeID converts a raw identifier into a node id.
//
// An empty or zero identifier yields ErrInvalidNodeID. Anything else that is
// not a positive integer cannot reference a node and yields ErrNodeNotFound.
func ParseNodeID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, ErrInvalidNodeID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNodeNotFound
	}
	return id, nil
}

// ResolveNode loads the node referenced by rawID.
func (v *RequestValidator) ResolveNode(ctx context.Context, rawID string) (*Node, error) {
	id, err := ParseNodeID(rawID)
	if errors.Is(err, ErrInvalidNodeID) {
		return nil, NewValidationError(MsgInvalidNodeID)
	}
	if err != nil {
		return nil, NewValidationError(MsgNodeNotFound)
	}

	node, err := v.repository.GetNode(ctx, id)
	if errors.Is(err, ErrNodeNotFound) {
		return nil, NewValidationError(MsgNodeNotFound)
	}
	if err != nil {
		return nil, &NodeError{NodeID: id, Op: "load", Err: err}
	}
	return node, nil
}

// ExtractPayload decodes body and keeps only the required fields. Unknown
// fields are dropped silently.
func (v *RequestValidator) ExtractPayload(body []byte) (Payload, error) {
	data, err := v.codec.Decode(body)
	if err != nil {
		return Payload{}, NewValidationError(MsgInvalidJSON)
	}

	for _, field := range RequiredFields {
		if _, ok := data[field]; !ok {
			return Payload{}, NewValidationError(MsgMissingFields)
		}
	}

	verr := &ValidationError{}
	payload := Payload{
		Title: fieldString(verr, FieldTitle, data[FieldTitle]),
		Type:  fieldString(verr, FieldType, data[FieldType]),
		Body:  fieldString(verr, FieldBody, data[FieldBody]),
	}
	if err := verr.ErrOrNil(); err != nil {
		return Payload{}, err
	}
	return payload, nil
}

// ValidateNode runs the constraint checker over the required fields and
// reports every violation at once.
func (v *RequestValidator) ValidateNode(node *Node) (*Node, error) {
	verr := NewValidationError(v.checker.Check(node, RequiredFields)...)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return node, nil
}

func fieldString(verr *ValidationError, field string, value interface{}) string {
	s, ok := coerceString(value)
	if !ok {
		verr.Add(fmt.Sprintf(msgPrimitiveValue, field))
	}
	return s
}

// coerceString accepts scalars and the normalized field shapes
// ({"value": x}, {"target_id": x} and single item lists of those).
func coerceString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case map[string]interface{}:
		if inner, ok := v["value"]; ok {
			return coerceString(inner)
		}
		if inner, ok := v["target_id"]; ok {
			return coerceString(inner)
		}
	case []interface{}:
		switch len(v) {
		case 0:
			return "", true
		case 1:
			return coerceString(v[0])
		}
	}
	return "", false
}
