// Package custdoc synthesizes fake customer records against a JSON Schema
// and renders identity documents (NRIC cards, passports) from them through a
// declarative field-mapping pipeline. Everything generated is synthetic;
// identity numbers only look plausible.
package custdoc

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-custdoc/pkg/batch"
	"github.com/goliatone/go-custdoc/pkg/config"
	"github.com/goliatone/go-custdoc/pkg/render"
)

// Aliases exported via the root package for convenience.
type (
	// Rendering is a document-type rendering config.
	Rendering = config.Rendering
	// Constraints tunes record generation.
	Constraints = config.Constraints
	// Result summarizes a batch run.
	Result = batch.Result
)

// Built-in document types.
var (
	NRIC     = render.NRIC
	Passport = render.Passport
)

// NewEngine builds a template engine that prefers templatesRoot on disk and
// falls back to the embedded generic templates.
func NewEngine(templatesRoot string) (*render.Engine, error) {
	options := []render.EngineOption{render.WithFS(render.DefaultTemplates())}
	if templatesRoot != "" {
		options = append([]render.EngineOption{render.WithBaseDir(templatesRoot)}, options...)
	}
	return render.NewEngine(options...)
}

// RenderFile renders one document type for every record in a JSONL file,
// with per-record failure isolation. It is the simplest entry point for
// callers that just want documents on disk.
func RenderFile(doc render.DocType, cfgPath, templatesRoot, outDir, inputPath string, log *zap.SugaredLogger) (batch.Result, error) {
	cfg, err := config.LoadRendering(cfgPath)
	if err != nil {
		return batch.Result{}, err
	}

	engine, err := NewEngine(templatesRoot)
	if err != nil {
		return batch.Result{}, err
	}
	renderer, err := render.NewRenderer(doc, cfg, engine, outDir)
	if err != nil {
		return batch.Result{}, err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return batch.Result{}, fmt.Errorf("custdoc: open input %s: %w", inputPath, err)
	}
	defer input.Close()

	return batch.NewRunner(renderer, log).Run(input)
}
