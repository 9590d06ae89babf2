package adyaxws

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxTitleLength is the longest title accepted by the constraint checker.
const MaxTitleLength = 255

// nodeFields mirrors the validated part of a node. Field order defines the
// order in which violations are reported.
type nodeFields struct {
	Title string `json:"title" validate:"required,max=255"`
	Type  string `json:"type" validate:"required,nodetype"`
	Body  string `json:"body" validate:"required"`
}

// FieldConstraints implements ConstraintChecker with go-playground/validator.
type FieldConstraints struct {
	v         *validator.Validate
	nodeTypes map[string]struct{}
}

// NewFieldConstraints creates a checker accepting the given node types. When
// none are given DefaultNodeTypes are used.
func NewFieldConstraints(nodeTypes ...string) (*FieldConstraints, error) {
	if len(nodeTypes) == 0 {
		nodeTypes = DefaultNodeTypes
	}

	c := &FieldConstraints{
		v:         validator.New(),
		nodeTypes: make(map[string]struct{}, len(nodeTypes)),
	}
	for _, t := range nodeTypes {
		if t = strings.TrimSpace(t); t != "" {
			c.nodeTypes[t] = struct{}{}
		}
	}

	c.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := c.v.RegisterValidation("nodetype", c.isNodeType); err != nil {
		return nil, fmt.Errorf("register nodetype validation: %w", err)
	}

	return c, nil
}

// HasNodeType reports whether the checker accepts the given bundle.
func (c *FieldConstraints) HasNodeType(nodeType string) bool {
	_, ok := c.nodeTypes[nodeType]
	return ok
}

func (c *FieldConstraints) isNodeType(fl validator.FieldLevel) bool {
	return c.HasNodeType(fl.Field().String())
}

// Check validates the node and returns one message per failing field that is
// part of fields.
func (c *FieldConstraints) Check(node *Node, fields []string) []string {
	err := c.v.Struct(nodeFields{Title: node.Title, Type: node.Type, Body: node.Body})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	wanted := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		wanted[f] = struct{}{}
	}

	var messages []string
	for _, fe := range verrs {
		if _, ok := wanted[fe.Field()]; !ok {
			continue
		}
		messages = append(messages, violationMessage(fe))
	}
	return messages
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: This value should not be null.", fe.Field())
	case "max":
		return fmt.Sprintf("%s: This value is too long. It should have %s characters or less.", fe.Field(), fe.Param())
	case "nodetype":
		return fmt.Sprintf("%s: The referenced entity (node_type: %v) does not exist.", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s: This value is not valid.", fe.Field())
	}
}
