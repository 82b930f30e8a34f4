package tools

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var schemaCache sync.Map // key -> *jsonschema.Schema

func schemaCacheKey(toolName string, schema []byte) string {
	sum := sha256.Sum256(schema)
	return toolName + ":" + hex.EncodeToString(sum[:])
}

func compileSchema(toolName string, schema []byte) (*jsonschema.Schema, error) {
	key := schemaCacheKey(toolName, schema)
	if v, ok := schemaCache.Load(key); ok {
		return v.(*jsonschema.Schema), nil
	}
	s, err := jsonschema.CompileString(toolName+".json", string(schema))
	if err != nil {
		return nil, err
	}
	schemaCache.Store(key, s)
	return s, nil
}

func firstLeafValidationError(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return err
	}
	for _, c := range err.Causes {
		if leaf := firstLeafValidationError(c); leaf != nil {
			return leaf
		}
	}
	return err
}

// validateArgs checks args against the tool's parameter schema. Tools
// without a parameter schema accept anything.
func validateArgs(t *Tool, args map[string]any) error {
	if t.Parameters == nil {
		return nil
	}

	schema, err := json.Marshal(t.Parameters)
	if err != nil {
		return fmt.Errorf("invalid parameters schema for %s: %w", t.Name, err)
	}
	s, err := compileSchema(t.Name, schema)
	if err != nil {
		return fmt.Errorf("invalid parameters schema for %s: %w", t.Name, err)
	}

	if err := s.Validate(any(args)); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := firstLeafValidationError(ve)
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msg := leaf.Message
			if msg == "" {
				msg = leaf.Error()
			}
			return fmt.Errorf("invalid arguments for %s at %s: %s", t.Name, loc, msg)
		}
		return fmt.Errorf("invalid arguments for %s: %v", t.Name, err)
	}

	return nil
}
