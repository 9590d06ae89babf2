package adyaxws

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var errEmptyBody = errors.New("empty request body")

// JSONCodec implements Codec on top of json-iterator.
type JSONCodec struct {
	api jsoniter.API
}

// NewJSONCodec creates a codec compatible with encoding/json semantics.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{api: jsoniter.ConfigCompatibleWithStandardLibrary}
}

// Decode parses data as a JSON document. A document that is valid JSON but
// not an object decodes to an empty field map.
func (c *JSONCodec) Decode(data []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyBody
	}

	var raw interface{}
	if err := c.api.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	fields, ok := raw.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return fields, nil
}

// Encode returns the response representation of a node.
func (c *JSONCodec) Encode(node *Node) map[string]interface{} {
	return map[string]interface{}{
		"id":      node.ID,
		"uuid":    node.UUID.String(),
		"type":    node.Type,
		"title":   node.Title,
		"body":    node.Body,
		"created": node.CreatedAt.Unix(),
		"changed": node.UpdatedAt.Unix(),
	}
}
