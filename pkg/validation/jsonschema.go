// Package validation gates generated records through a JSON Schema (Draft
// 2020-12). The schema engine itself is an external collaborator; this
// package compiles the supplied schema once and reports failing field paths
// per record.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Issue is one validation failure with the instance path that caused it.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// RecordError aggregates every issue found while validating one record.
type RecordError struct {
	Issues []Issue
}

func (e *RecordError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation: record failed schema validation:")
	for _, issue := range e.Issues {
		sb.WriteString("\n- ")
		if issue.Path != "" {
			sb.WriteString(issue.Path)
			sb.WriteString(": ")
		}
		sb.WriteString(issue.Message)
	}
	return sb.String()
}

// Compile builds a reusable schema from a raw Draft 2020-12 document. name
// identifies the schema in error messages.
func Compile(name string, raw []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("validation: add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema %s: %w", name, err)
	}
	return schema, nil
}

// Validate checks a decoded JSON instance against the schema. It returns nil
// on success and a *RecordError listing the failing paths otherwise.
func Validate(schema *jsonschema.Schema, instance any) error {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("validation: %w", err)
	}

	issues := collectIssues(validationErr, nil)
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Message < issues[j].Message
	})
	return &RecordError{Issues: issues}
}

// collectIssues walks to the leaf causes; intermediate nodes only restate
// their children.
func collectIssues(err *jsonschema.ValidationError, issues []Issue) []Issue {
	if len(err.Causes) == 0 {
		return append(issues, Issue{
			Path:    err.InstanceLocation,
			Message: err.Message,
		})
	}
	for _, cause := range err.Causes {
		issues = collectIssues(cause, issues)
	}
	return issues
}
