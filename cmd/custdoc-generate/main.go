package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	custdoc "github.com/goliatone/go-custdoc"
	"github.com/goliatone/go-custdoc/internal/jsonl"
	"github.com/goliatone/go-custdoc/internal/logging"
	"github.com/goliatone/go-custdoc/pkg/batch"
	"github.com/goliatone/go-custdoc/pkg/config"
	"github.com/goliatone/go-custdoc/pkg/generator"
	"github.com/goliatone/go-custdoc/pkg/render"
	"github.com/goliatone/go-custdoc/pkg/validation"
)

func main() {
	schemaPath := flag.String("schema", "", "path to customer.schema.json (required)")
	count := flag.Int("count", 10, "number of records")
	constraintsPath := flag.String("constraints", "", "path to constraints JSON/YAML")
	out := flag.String("out", "customers.jsonl", "output JSONL file")
	seed := flag.Int64("seed", 0, "random seed (0 uses a time-based seed)")
	nricConfig := flag.String("nric-config", "", "NRIC rendering config; renders an NRIC card per record when set")
	templatesRoot := flag.String("templates-root", ".", "root folder for HTML templates")
	docOut := flag.String("doc-out", "docs_out", "output folder for rendered documents")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	log := logging.New(level)
	defer log.Sync()

	if *schemaPath == "" {
		log.Fatal("-schema is required")
	}

	schemaRaw, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	schema, err := validation.Compile(filepath.Base(*schemaPath), schemaRaw)
	if err != nil {
		log.Fatalf("compile schema: %v", err)
	}

	cons, err := config.LoadConstraints(*constraintsPath)
	if err != nil {
		log.Fatalf("load constraints: %v", err)
	}

	var options []generator.Option
	if *seed != 0 {
		options = append(options, generator.WithSeed(*seed))
	}
	gen := generator.New(schema, cons, options...)

	// Optional inline NRIC rendering, with the same per-record isolation
	// the batch tools use.
	var nricRenderer *render.Renderer
	if *nricConfig != "" {
		cfg, err := config.LoadRendering(*nricConfig)
		if err != nil {
			log.Fatalf("load nric config: %v", err)
		}
		engine, err := custdoc.NewEngine(*templatesRoot)
		if err != nil {
			log.Fatalf("create template engine: %v", err)
		}
		nricRenderer, err = render.NewRenderer(render.NRIC, cfg, engine, *docOut)
		if err != nil {
			log.Fatalf("create nric renderer: %v", err)
		}
	}

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
	}
	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output file: %v", err)
	}
	defer outFile.Close()

	encoder := jsonl.NewEncoder(outFile)
	var summary batch.Result
	for i := 0; i < *count; i++ {
		record, err := gen.Generate()
		if err != nil {
			// Schema validation failure is fatal for the run.
			log.Fatalf("generate record %d: %v", i+1, err)
		}
		if err := encoder.Encode(record); err != nil {
			log.Fatalf("write record %d: %v", i+1, err)
		}

		if nricRenderer != nil {
			doc, err := nricRenderer.Render(record)
			if err != nil {
				summary.Failed++
				log.Warnf("failed to render nric for %v: %v", record["customer_id"], err)
				continue
			}
			if doc.Status == render.StatusSkipped {
				summary.Skipped++
			} else {
				summary.Rendered++
			}
		}
	}

	fmt.Printf("Wrote %d customers to %s\n", *count, *out)
	if nricRenderer != nil {
		fmt.Printf("Rendered %d NRIC documents to %s (%d skipped, %d failed)\n",
			summary.Rendered, *docOut, summary.Skipped, summary.Failed)
	}
}
