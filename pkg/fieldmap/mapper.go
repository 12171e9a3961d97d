package fieldmap

import (
	"fmt"

	"github.com/goliatone/go-custdoc/pkg/pointer"
)

// BuildContext evaluates compiled fields against a record, in declaration
// order, and returns the flat rendering context. Path-resolution failures and
// unknown-function failures abort the whole record's mapping; only formatting
// failures are absorbed (inside ApplyFormat).
func BuildContext(record map[string]any, fields []Field, funcs *Registry) (map[string]any, error) {
	if funcs == nil {
		funcs = NewRegistry()
	}

	context := make(map[string]any, len(fields))
	for _, field := range fields {
		var (
			value any
			err   error
		)
		switch field.Source.Kind {
		case SourcePath:
			value, err = pointer.Resolve(record, field.Source.Ref)
		case SourceFunc:
			value, err = funcs.Call(field.Source.Ref)
		default:
			err = UnsupportedSourceError{Source: field.Source.Ref}
		}
		if err != nil {
			return nil, fmt.Errorf("fieldmap: field %q: %w", field.Key, err)
		}
		context[field.Key] = ApplyFormat(value, field.Format)
	}
	return context, nil
}
