// Package batch drives a renderer over a stream of records with per-record
// failure isolation: one bad record never aborts the run.
package batch

import (
	"errors"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/goliatone/go-custdoc/internal/jsonl"
	"github.com/goliatone/go-custdoc/pkg/render"
)

// Result summarizes one batch run.
type Result struct {
	Rendered int
	Skipped  int
	Failed   int
}

// Total returns the number of records processed.
func (r Result) Total() int {
	return r.Rendered + r.Skipped + r.Failed
}

// Runner processes records one at a time, in input order.
type Runner struct {
	renderer *render.Renderer
	log      *zap.SugaredLogger
}

// NewRunner pairs a renderer with a logger for per-record warnings.
func NewRunner(renderer *render.Renderer, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{renderer: renderer, log: log}
}

// Run renders every record in the JSONL stream. Per-record failures
// (resolution errors, unknown functions, missing templates, write failures,
// undecodable lines) are logged with the record identifier and counted; the
// run continues. Only a broken input stream aborts the run.
func (r *Runner) Run(input io.Reader) (Result, error) {
	decoder := jsonl.NewDecoder(input)
	docName := r.renderer.Type().Name

	var result Result
	for {
		record, err := decoder.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var lineErr *jsonl.LineError
			if errors.As(err, &lineErr) {
				result.Failed++
				r.warn("?", err)
				continue
			}
			return result, err
		}

		doc, err := r.renderer.Render(record)
		if err != nil {
			result.Failed++
			r.warn(recordID(record), err)
			continue
		}
		switch doc.Status {
		case render.StatusSkipped:
			result.Skipped++
			r.log.Infof("no %s for customer %s, skipping", docName, recordID(record))
		default:
			result.Rendered++
			r.log.Debugf("rendered %s for customer %s at %s", docName, recordID(record), doc.Path)
		}
	}
	return result, nil
}

func (r *Runner) warn(id string, err error) {
	r.log.Warnf("%s failed to render %s for customer %s: %v",
		color.YellowString("[warn]"), r.renderer.Type().Name, id, err)
}

func recordID(record map[string]any) string {
	if id, ok := record["customer_id"].(string); ok && id != "" {
		return id
	}
	return "?"
}
