// Package seed loads initial lists and tasks from a JSON document.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todolists/internal/models"
	"todolists/internal/store"
)

//go:embed schema.json
var schemaJSON string

//go:embed default.json
var defaultJSON []byte

const schemaURL = "seed.schema.json"

// Document is the top-level seed document.
type Document struct {
	Lists []List `json:"lists"`
}

// List describes one list to create. Tasks are given in display order,
// newest first.
type List struct {
	Title  string `json:"title"`
	Filter string `json:"filter,omitempty"`
	Tasks  []Task `json:"tasks,omitempty"`
}

// Task describes one task to create.
type Task struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ValidationError reports where a seed document failed schema validation.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("seed validation failed at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("seed validation failed: %s", e.Message)
}

// Default returns the built-in demo document.
func Default() (*Document, error) {
	return Parse(bytes.NewReader(defaultJSON))
}

// LoadFile reads and validates the seed document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a seed document and validates it against the embedded schema.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, mapSchemaError(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &doc, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add seed schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	return schema, nil
}

// mapSchemaError converts a jsonschema error into a ValidationError
// pointing at the first leaf cause.
func mapSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path:    strings.TrimPrefix(ve.InstanceLocation, "#"),
		Message: ve.Message,
	}
}

// Apply creates every list and task of doc in s. It stops at the first
// error; lists created before the failure are kept.
func Apply(ctx context.Context, s store.Store, doc *Document) (int, error) {
	created := 0
	for _, l := range doc.Lists {
		listID, err := s.AddList(ctx, l.Title)
		if err != nil {
			return created, fmt.Errorf("seed list %q: %w", l.Title, err)
		}
		created++

		// AddTask prepends, so walk backwards to keep document order.
		for i := len(l.Tasks) - 1; i >= 0; i-- {
			t := l.Tasks[i]
			taskID, err := s.AddTask(ctx, listID, t.Title)
			if err != nil {
				return created, fmt.Errorf("seed task %q: %w", t.Title, err)
			}
			if t.Done {
				if err := s.SetTaskDone(ctx, listID, taskID, true); err != nil {
					return created, fmt.Errorf("seed task %q: %w", t.Title, err)
				}
			}
		}

		filter, err := models.ParseFilter(l.Filter)
		if err != nil {
			return created, fmt.Errorf("seed list %q: %w", l.Title, err)
		}
		if err := s.SetFilter(ctx, listID, filter); err != nil {
			return created, fmt.Errorf("seed list %q: %w", l.Title, err)
		}
	}
	return created, nil
}
