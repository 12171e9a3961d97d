package fieldmap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-custdoc/pkg/pointer"
)

// SourceKind discriminates the two value-source forms a field declaration may
// use.
type SourceKind int

const (
	// SourcePath resolves a restricted slash pointer against the record.
	SourcePath SourceKind = iota
	// SourceFunc calls a named zero-argument function from the registry.
	SourceFunc
)

const funcPrefix = "func:"

// Source is the parsed form of a declaration's source string. Parsing happens
// once at config load so unrecognized forms are rejected before any record is
// processed.
type Source struct {
	Kind SourceKind
	Ref  string
}

// UnsupportedSourceError reports a source string with an unrecognized prefix.
type UnsupportedSourceError struct {
	Source string
}

func (e UnsupportedSourceError) Error() string {
	return fmt.Sprintf("fieldmap: unsupported source %q", e.Source)
}

// ParseSource classifies a raw source string as a path lookup or a computed
// function reference. Path sources are validated against the pointer grammar
// here, so malformed pointers fail at load time rather than per record.
func ParseSource(raw string) (Source, error) {
	if strings.HasPrefix(raw, pointer.Separator) {
		if _, err := pointer.Split(raw); err != nil {
			return Source{}, err
		}
		return Source{Kind: SourcePath, Ref: raw}, nil
	}
	if name, ok := strings.CutPrefix(raw, funcPrefix); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return Source{}, UnsupportedSourceError{Source: raw}
		}
		return Source{Kind: SourceFunc, Ref: name}, nil
	}
	return Source{}, UnsupportedSourceError{Source: raw}
}
