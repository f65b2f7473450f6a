// Package validation checks Draft.js raw content states against an embedded
// JSON schema and verifies entity references.
package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-mdraft/internal/draft"
)

//go:embed contentstate.schema.json
var contentStateSchema []byte

const schemaResource = "contentstate.schema.json"

var (
	ErrSchemaInvalid         = errors.New("content state schema invalid")
	ErrContentStateInvalid   = errors.New("content state invalid")
	ErrContentStateMalformed = errors.New("content state is not valid JSON")
)

// Issue is a single validation failure located by JSON pointer.
type Issue struct {
	Location string
	Message  string
}

// ContentStateError reports every issue found in a payload.
type ContentStateError struct {
	Issues []Issue
}

func (e *ContentStateError) Error() string {
	if len(e.Issues) == 0 {
		return ErrContentStateInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ContentStateError) Unwrap() error {
	return ErrContentStateInvalid
}

// Issues extracts validation issues from err.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var stateErr *ContentStateError
	if errors.As(err, &stateErr) {
		return stateErr.Issues
	}
	return []Issue{{Message: err.Error()}}
}

// Validator holds the compiled content state schema. It is safe for
// concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns a shared validator compiled on first use.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator()
	})
	return defaultValidator, defaultErr
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(contentStateSchema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateJSON validates a serialised content state.
func (v *Validator) ValidateJSON(payload []byte) error {
	var instance any
	if err := json.Unmarshal(payload, &instance); err != nil {
		return fmt.Errorf("%w: %v", ErrContentStateMalformed, err)
	}
	if err := v.schema.Validate(instance); err != nil {
		var schemaErr *jsonschema.ValidationError
		if errors.As(err, &schemaErr) {
			return &ContentStateError{Issues: collectIssues(schemaErr)}
		}
		return &ContentStateError{Issues: []Issue{{Message: err.Error()}}}
	}

	if issues := referenceIssues(instance); len(issues) > 0 {
		return &ContentStateError{Issues: issues}
	}
	return nil
}

// ValidateDocument serialises doc and validates the result.
func (v *Validator) ValidateDocument(doc *draft.Document) error {
	if doc == nil {
		return &ContentStateError{Issues: []Issue{{Message: "document is nil"}}}
	}
	payload, err := doc.JSON(false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentStateMalformed, err)
	}
	return v.ValidateJSON(payload)
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// referenceIssues reports entity ranges whose key is missing from the map.
// Runs after the schema check, so the shape is known.
func referenceIssues(instance any) []Issue {
	root, _ := instance.(map[string]any)
	entities, _ := root["entityMap"].(map[string]any)
	blocks, _ := root["blocks"].([]any)

	var issues []Issue
	for b, rawBlock := range blocks {
		block, _ := rawBlock.(map[string]any)
		ranges, _ := block["entityRanges"].([]any)
		for r, rawRange := range ranges {
			entityRange, _ := rawRange.(map[string]any)
			key := fmt.Sprint(entityRange["key"])
			if _, ok := entities[key]; ok && !isSentinel(entities) {
				continue
			}
			issues = append(issues, Issue{
				Location: fmt.Sprintf("/blocks/%d/entityRanges/%d/key", b, r),
				Message:  fmt.Sprintf("entity %q is not in entityMap", key),
			})
		}
	}
	return issues
}

func isSentinel(entities map[string]any) bool {
	_, hasType := entities["type"]
	_, hasData := entities["data"]
	return hasType && hasData
}
