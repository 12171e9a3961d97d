package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap/zapcore"

	custdoc "github.com/goliatone/go-custdoc"
	"github.com/goliatone/go-custdoc/internal/logging"
)

func main() {
	input := flag.String("input", "", "input JSONL file with customers (required)")
	cfgPath := flag.String("config", "", "NRIC rendering config JSON/YAML (required)")
	templatesRoot := flag.String("templates-root", ".", "root folder for HTML templates")
	outDir := flag.String("out", "docs_out", "output folder for rendered documents")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	log := logging.New(level)
	defer log.Sync()

	if *input == "" || *cfgPath == "" {
		log.Fatal("-input and -config are required")
	}

	result, err := custdoc.RenderFile(custdoc.NRIC, *cfgPath, *templatesRoot, *outDir, *input, log)
	if err != nil {
		log.Fatalf("render nric documents: %v", err)
	}

	fmt.Printf("Rendered %d NRIC documents to %s (%d skipped, %d failed)\n",
		result.Rendered, *outDir, result.Skipped, result.Failed)
}
