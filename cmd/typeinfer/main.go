package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/funvibe/typeinfer/internal/config"
	"github.com/funvibe/typeinfer/internal/diagnostics"
	"github.com/funvibe/typeinfer/internal/pipeline"
	"github.com/funvibe/typeinfer/internal/report"
	"github.com/funvibe/typeinfer/internal/verify"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typeinfer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to "+config.ConfigFileName+" (default: searched upwards from the source file)")
	unsolved := fs.String("unsolved", "", "policy for unsolved parameters: omit or unknown")
	write := fs.Bool("w", false, "write the annotated source next to the input")
	output := fs.String("o", "", "write the annotated source to this path (- for stdout, which moves the report to stderr)")
	dbPath := fs.String("db", "", "record the run in this SQLite database")
	noVerify := fs.Bool("no-verify", false, "skip verification of the annotated source")
	verbose := fs.Bool("v", false, "log traversal details and every verification diagnostic")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: typeinfer [flags] file.js\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	sourcePath := fs.Arg(0)

	cfg, err := loadConfig(*configPath, sourcePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %s\n", err)
		return exitUsage
	}
	if *unsolved != "" {
		cfg.Annotate.Unsolved = *unsolved
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Invalid -unsolved: %s\n", err)
			return exitUsage
		}
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(stderr, "", 0)
	}
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if *noVerify {
		opts = append(opts, pipeline.WithoutVerification())
	}

	result := pipeline.RunFile(ctx, sourcePath, cfg, opts...)
	if result.HasCode(diagnostics.ErrR001) {
		report.NewPrinter(stderr).PrintErrors(result.Errors)
		return exitUsage
	}

	// With the annotated source on stdout, the report goes to stderr.
	reportOut := stdout
	if *output == "-" {
		reportOut = stderr
	}
	printer := report.NewPrinter(reportOut)
	if result.Report != nil {
		printer.PrintReport(result.Report)
	}
	if result.Verification != nil {
		printer.PrintVerification(result.Verification)
		if *verbose {
			report.WriteDiagnostics(logger, result.Verification)
		}
	}
	report.NewPrinter(stderr).PrintErrors(result.Errors)

	if result.Annotated != nil {
		target := *output
		if target == "" && *write {
			target = verify.AnnotatedName(sourcePath)
		}
		if err := writeOutput(target, result.Annotated.Source, stdout); err != nil {
			fmt.Fprintf(stderr, "Error writing annotated source: %s\n", err)
			return exitUsage
		}
	}

	if *dbPath != "" && result.Report != nil {
		id, err := saveRun(ctx, *dbPath, result)
		if err != nil {
			fmt.Fprintf(stderr, "Error recording run: %s\n", err)
			return exitUsage
		}
		logger.Printf("run %s recorded in %s", id, *dbPath)
	}

	if !result.Succeeded() {
		return exitFailed
	}
	return exitOK
}

func loadConfig(path, sourcePath string) (*config.Config, error) {
	if path == "" {
		found, ok := config.Find(filepath.Dir(sourcePath))
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

func writeOutput(target, source string, stdout io.Writer) error {
	switch target {
	case "":
		return nil
	case "-":
		_, err := io.WriteString(stdout, source)
		return err
	}
	return os.WriteFile(target, []byte(source), 0644)
}

func saveRun(ctx context.Context, path string, result *pipeline.PipelineContext) (string, error) {
	store, err := report.Open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()
	return store.Save(ctx, result.Report, result.Verification)
}
