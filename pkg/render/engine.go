// Package render turns a rendering context and a customer record into an
// HTML document on disk. Templates are pongo2 (Django/Jinja2 style) with
// autoescaping on, so record data flowing into markup is escaped by default.
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// TemplateNotFoundError reports a template name none of the configured
// loaders can see. Callers use it to tell a missing template apart from one
// that exists but fails to load or parse.
type TemplateNotFoundError struct {
	Name string
}

func (e TemplateNotFoundError) Error() string {
	return fmt.Sprintf("render: template %q not found", e.Name)
}

// EngineOption configures the template engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	baseDir string
	fsys    fs.FS
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS. When combined with WithBaseDir the
// directory is consulted first, so callers can overlay embedded defaults with
// on-disk overrides.
func WithFS(fsys fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.fsys = fsys
	}
}

// Engine wraps a pongo2 template set with a small parse cache. Loaded
// templates are reused across every record in a batch.
type Engine struct {
	mu      sync.RWMutex
	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	baseDir string
	fsys    fs.FS
}

// NewEngine constructs an engine from the supplied loaders.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.fsys == nil {
		return nil, errors.New("render: need a base dir or an fs.FS for templates")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: create template loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.fsys != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.fsys))
	}

	registerDefaultFilters()

	return &Engine{
		set:     pongo2.NewSet("custdoc", loaders...),
		cache:   make(map[string]*pongo2.Template),
		baseDir: cfg.baseDir,
		fsys:    cfg.fsys,
	}, nil
}

func (e *Engine) exists(name string) bool {
	if e.baseDir != "" {
		if _, err := os.Stat(filepath.Join(e.baseDir, name)); err == nil {
			return true
		}
	}
	if e.fsys != nil {
		if _, err := fs.Stat(e.fsys, name); err == nil {
			return true
		}
	}
	return false
}

// Template loads and caches the named template. A name no loader can see
// yields a TemplateNotFoundError; any other error means the template exists
// but cannot be loaded or parsed.
func (e *Engine) Template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.cache[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	if !e.exists(name) {
		return nil, TemplateNotFoundError{Name: name}
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

// Render executes a template with the supplied bindings.
func (e *Engine) Render(tmpl *pongo2.Template, data map[string]any) (string, error) {
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return out, nil
}
