package fieldmap

import (
	"fmt"
	"strings"
)

// Declaration is the raw config shape of a field mapping entry: an output key,
// a value source, and an optional format spec.
type Declaration struct {
	Key    string `json:"key" yaml:"key"`
	Source string `json:"source" yaml:"source"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// Field is a compiled declaration with its source parsed into a tagged
// variant.
type Field struct {
	Key    string
	Source Source
	Format string
}

// Compile parses every declaration's source and checks key uniqueness. Any
// declaration without a source, with an unrecognized source prefix, or with a
// duplicate key is a configuration error.
func Compile(decls []Declaration) ([]Field, error) {
	fields := make([]Field, 0, len(decls))
	seen := make(map[string]struct{}, len(decls))

	for i, decl := range decls {
		key := strings.TrimSpace(decl.Key)
		if key == "" {
			return nil, fmt.Errorf("fieldmap: declaration %d has no key", i)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("fieldmap: duplicate field key %q", key)
		}
		seen[key] = struct{}{}

		if decl.Source == "" {
			return nil, fmt.Errorf("fieldmap: field %q has no source", key)
		}
		src, err := ParseSource(decl.Source)
		if err != nil {
			return nil, fmt.Errorf("fieldmap: field %q: %w", key, err)
		}

		fields = append(fields, Field{Key: key, Source: src, Format: decl.Format})
	}
	return fields, nil
}
