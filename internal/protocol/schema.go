package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var schemaFiles = map[string]string{
	TypeCreateCard:   "create_card.schema.json",
	TypeUpdateCard:   "update_card.schema.json",
	TypeDeleteCard:   "delete_card.schema.json",
	TypeMoveCard:     "move_card.schema.json",
	TypeCreateColumn: "create_column.schema.json",
	TypeUpdateColumn: "update_column.schema.json",
	TypeDeleteColumn: "delete_column.schema.json",
}

// Validator checks inbound mutation payloads against their JSON schemas
// before they reach the dispatch point.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(schemaFiles))}
	for msgType, name := range schemaFiles {
		raw, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		s, err := c.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[msgType] = s
	}
	return v, nil
}

// ValidatePayload validates the raw payload of msgType. msgType must be a
// client message type.
func (v *Validator) ValidatePayload(msgType string, payload json.RawMessage) error {
	s, ok := v.schemas[msgType]
	if !ok {
		return fmt.Errorf("no schema for message type %q", msgType)
	}
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return err
	}
	return s.Validate(doc)
}
