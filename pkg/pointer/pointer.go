// Package pointer resolves a restricted slash-delimited path syntax against
// nested mappings. The grammar is deliberately minimal: /a/b/c only, no array
// indices, no wildcards, no escaping. Anything outside that shape is rejected
// rather than silently degraded.
package pointer

import (
	"fmt"
	"strings"
)

// Separator delimits components in the restricted pointer grammar.
const Separator = "/"

// InvalidPointerError reports a pointer outside the restricted grammar:
// empty, missing the leading separator, or containing an empty component.
type InvalidPointerError struct {
	Pointer string
}

func (e InvalidPointerError) Error() string {
	return fmt.Sprintf("pointer: invalid pointer %q", e.Pointer)
}

// NotFoundError reports a pointer whose components cannot be followed through
// the document, either because a key is absent or because an intermediate
// value is not a mapping.
type NotFoundError struct {
	Pointer string
	Segment string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("pointer: %q not found (stopped at %q)", e.Pointer, e.Segment)
}

// Split validates ptr against the restricted grammar and returns its
// components.
func Split(ptr string) ([]string, error) {
	if ptr == "" || !strings.HasPrefix(ptr, Separator) {
		return nil, InvalidPointerError{Pointer: ptr}
	}
	parts := strings.Split(strings.Trim(ptr, Separator), Separator)
	for _, part := range parts {
		if part == "" {
			return nil, InvalidPointerError{Pointer: ptr}
		}
	}
	return parts, nil
}

// Resolve follows ptr through nested mappings in doc and returns the value it
// designates. It never returns a partial or defaulted value: a missing key or
// a non-mapping intermediate yields a NotFoundError.
func Resolve(doc map[string]any, ptr string) (any, error) {
	parts, err := Split(ptr)
	if err != nil {
		return nil, err
	}

	var current any = doc
	for _, part := range parts {
		mapping, ok := current.(map[string]any)
		if !ok {
			return nil, NotFoundError{Pointer: ptr, Segment: part}
		}
		next, ok := mapping[part]
		if !ok {
			return nil, NotFoundError{Pointer: ptr, Segment: part}
		}
		current = next
	}
	return current, nil
}
