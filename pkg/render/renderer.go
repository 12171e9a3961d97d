package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-custdoc/pkg/config"
	"github.com/goliatone/go-custdoc/pkg/fieldmap"
	"github.com/goliatone/go-custdoc/pkg/pointer"
)

// Status classifies the outcome of rendering one record.
type Status int

const (
	// StatusRendered means a document file was written.
	StatusRendered Status = iota
	// StatusSkipped means the record lacks the document's prerequisite
	// sub-structure. A valid empty outcome, not a failure.
	StatusSkipped
	// StatusFailed means rendering this record failed. The batch driver
	// isolates it and continues.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Document is the result of rendering one record.
type Document struct {
	Status Status
	Path   string
}

// DocType describes a document kind: its default output pattern, the record
// sub-structure it requires, and whether it selects a country variant.
type DocType struct {
	Name           string
	DefaultPattern string
	// Prerequisite is a pointer to the sub-structure the document needs;
	// empty means the document renders for every record.
	Prerequisite string
	// VariantPrefix enables country-variant template selection when
	// non-empty.
	VariantPrefix string
}

// Built-in document types.
var (
	NRIC = DocType{
		Name:           "nric",
		DefaultPattern: "nric_{customer_id}.html",
	}
	Passport = DocType{
		Name:           "passport",
		DefaultPattern: "passport_{customer_id}.html",
		Prerequisite:   "/id_documents/passport",
		VariantPrefix:  "passport_",
	}
)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithFuncRegistry overrides the computed-function registry, letting tests
// pin time-based functions.
func WithFuncRegistry(funcs *fieldmap.Registry) RendererOption {
	return func(r *Renderer) {
		if funcs != nil {
			r.funcs = funcs
		}
	}
}

// Renderer renders one document type for any number of records using a
// single rendering config. Templates receive two bindings: the flat field
// context ("fields") and the full record ("customer"), so a template can
// reach data outside the declared field set.
type Renderer struct {
	doc      DocType
	cfg      config.Rendering
	engine   *Engine
	funcs    *fieldmap.Registry
	selector *Selector
	outDir   string
	pattern  string
}

// NewRenderer validates the config against the document type and prepares
// the renderer. Variant rules compile here, before any record is processed.
func NewRenderer(doc DocType, cfg config.Rendering, engine *Engine, outDir string, opts ...RendererOption) (*Renderer, error) {
	if engine == nil {
		return nil, errors.New("render: engine is required")
	}
	if len(cfg.Compiled) == 0 {
		return nil, fmt.Errorf("render: %s config has no compiled fields", doc.Name)
	}

	renderer := &Renderer{
		doc:     doc,
		cfg:     cfg,
		engine:  engine,
		funcs:   fieldmap.NewRegistry(),
		outDir:  outDir,
		pattern: cfg.OutputPattern,
	}
	if renderer.pattern == "" {
		renderer.pattern = doc.DefaultPattern
	}
	if doc.VariantPrefix != "" {
		selector, err := NewSelector(doc.VariantPrefix, cfg.VariantRule)
		if err != nil {
			return nil, err
		}
		renderer.selector = selector
	}
	for _, opt := range opts {
		opt(renderer)
	}
	return renderer, nil
}

// Type returns the document type being rendered.
func (r *Renderer) Type() DocType { return r.doc }

// Render produces the document for one record. A missing prerequisite
// sub-structure yields StatusSkipped with a nil error; every other non-write
// outcome is an error the caller isolates per record.
func (r *Renderer) Render(customer map[string]any) (Document, error) {
	if r.doc.Prerequisite != "" {
		if _, err := pointer.Resolve(customer, r.doc.Prerequisite); err != nil {
			var notFound pointer.NotFoundError
			if errors.As(err, &notFound) {
				return Document{Status: StatusSkipped}, nil
			}
			return Document{Status: StatusFailed}, err
		}
	}

	fields, err := fieldmap.BuildContext(customer, r.cfg.Compiled, r.funcs)
	if err != nil {
		return Document{Status: StatusFailed}, err
	}

	tmpl, err := r.resolveTemplate(fields, customer)
	if err != nil {
		return Document{Status: StatusFailed}, err
	}

	html, err := r.engine.Render(tmpl, map[string]any{
		"fields":   fields,
		"customer": customer,
	})
	if err != nil {
		return Document{Status: StatusFailed}, err
	}

	id, err := customerID(customer)
	if err != nil {
		return Document{Status: StatusFailed}, err
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return Document{Status: StatusFailed}, fmt.Errorf("render: create output dir: %w", err)
	}
	outPath := filepath.Join(r.outDir, strings.ReplaceAll(r.pattern, "{customer_id}", id))
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return Document{Status: StatusFailed}, fmt.Errorf("render: write %s: %w", outPath, err)
	}
	return Document{Status: StatusRendered, Path: outPath}, nil
}

// resolveTemplate picks the variant template when the document type has one.
// Only a variant template that does not exist falls back to the generic
// template from the config; a variant that exists but fails to load or
// parse surfaces, as does a missing generic template.
func (r *Renderer) resolveTemplate(fields, customer map[string]any) (*pongo2.Template, error) {
	if r.selector != nil {
		variant := r.selector.Variant(fields, customer)
		tmpl, err := r.engine.Template(r.selector.TemplateName(variant))
		if err == nil {
			return tmpl, nil
		}
		var notFound TemplateNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return r.engine.Template(r.cfg.Template)
}

func customerID(customer map[string]any) (string, error) {
	id, _ := customer["customer_id"].(string)
	if id == "" {
		return "", errors.New("render: record has no customer_id")
	}
	return id, nil
}
