package fieldmap

import (
	"fmt"
	"time"
)

// Func computes a value without consulting the record.
type Func func() (any, error)

// UnknownFunctionError reports a func: source naming a function the registry
// does not know.
type UnknownFunctionError struct {
	Name string
}

func (e UnknownFunctionError) Error() string {
	return fmt.Sprintf("fieldmap: unknown function %q", e.Name)
}

// Registry holds the fixed set of named zero-argument functions usable as
// computed sources.
type Registry struct {
	now   func() time.Time
	funcs map[string]Func
}

// RegistryOption configures a Registry before construction.
type RegistryOption func(*Registry)

// WithNow overrides the clock used by time-based functions. Tests use it to
// pin "today".
func WithNow(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry builds a registry with the built-in functions registered.
// Currently the only built-in is "today", which returns the current date in
// ISO-8601 form.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{now: time.Now}
	for _, opt := range opts {
		opt(reg)
	}
	reg.funcs = map[string]Func{
		"today": func() (any, error) {
			return reg.now().Format("2006-01-02"), nil
		},
	}
	return reg
}

// Call invokes the named function. An unknown name yields an
// UnknownFunctionError, which callers treat as fatal for the record.
func (r *Registry) Call(name string) (any, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, UnknownFunctionError{Name: name}
	}
	return fn()
}
