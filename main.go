package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/insightdelivered/statement-scorer/internal/api"
	"github.com/insightdelivered/statement-scorer/internal/config"
	"github.com/insightdelivered/statement-scorer/internal/extractor"
	"github.com/insightdelivered/statement-scorer/internal/logging"
	"github.com/insightdelivered/statement-scorer/internal/metrics"
	"github.com/insightdelivered/statement-scorer/internal/statement"
	"github.com/insightdelivered/statement-scorer/internal/upload"
	"github.com/insightdelivered/statement-scorer/internal/writer"
)

const version = "1.0.0"

const shutdownTimeout = 10 * time.Second

func main() {
	// CLI flags
	formatFlag := flag.String("format", "json", "Report format: json, csv, xlsx")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with the format extension, - for stdout)")
	workersFlag := flag.Int("workers", -1, "Pages processed in parallel (overrides WORKERS)")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of processing files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Scorer
by Insight Delivered (QEA AutoLens)

Reads the transaction tables of bank statement PDFs and reports
cash-in and cash-out statistics.

Usage:
  statement-scorer [flags] <input.pdf> [input2.pdf ...]
  statement-scorer --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print the JSON summary next to the input
  statement-scorer statement.pdf

  # Export the classified transactions
  statement-scorer --format=csv --output=ledger.csv statement.pdf

  # Serve POST /api/processScore on $PORT
  statement-scorer --serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-scorer v%s\n", version)
		os.Exit(0)
	}

	if *helpFlag || (!*serveFlag && flag.NArg() == 0) {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("Invalid configuration: %v\n", err)
	}
	if *workersFlag >= 0 {
		cfg.Processor.Workers = *workersFlag
	}

	logger, err := logging.New(logging.Config{
		Environment: logging.Environment(cfg.Logging.Environment),
		Level:       cfg.Logging.Level,
	})
	if err != nil {
		fatalf("Failed to create logger: %v\n", err)
	}
	defer logger.Sync() //nolint:errcheck

	layout := extractor.DefaultLayout()
	layout.BlockGap = cfg.Processor.BlockGap
	source := extractor.NewPDFSource(layout)

	var rec *metrics.Recorder
	if cfg.Metrics.Enabled && *serveFlag {
		rec = metrics.New()
	}

	svc := statement.NewService(source, statement.Options{
		Workers: cfg.Processor.Workers,
		Logger:  logger,
		Metrics: rec,
	})

	if *serveFlag {
		if err := serve(cfg, svc, rec, logger); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
		return
	}

	w, err := writer.New(*formatFlag)
	if err != nil {
		fatalf("%v\n", err)
	}

	// Process each input file
	for _, inputPath := range flag.Args() {
		if err := processFile(svc, w, inputPath, *formatFlag, *outputFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func processFile(svc *statement.Service, w writer.Writer, inputPath, format, outputPath string) error {
	// Validate input file
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Fprintf(os.Stderr, "Processing: %s\n", inputPath)

	report, err := svc.Process(context.Background(), inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "  Read %d page(s), %d transaction(s)\n", report.PageCount, len(report.Ledger))
	for _, p := range report.FailedPages() {
		fmt.Fprintf(os.Stderr, "  Warning: page %d skipped: %s\n", p.Page+1, p.Error)
	}

	if outputPath == "-" {
		return w.Write(os.Stdout, report)
	}

	// Determine output path
	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	if err := writer.WriteToFile(w, outPath, report); err != nil {
		return fmt.Errorf("report write failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "  Total: %s\n", report.Total.String())
	fmt.Fprintf(os.Stderr, "  Output: %s\n", outPath)
	fmt.Fprintln(os.Stderr, "  Done.")
	return nil
}

func serve(cfg *config.Config, svc *statement.Service, rec *metrics.Recorder, logger *zap.Logger) error {
	h := &api.Handler{
		Processor: svc,
		Store:     upload.Store{Dir: cfg.Processor.TempDir},
		Logger:    logger,
		Version:   version,
	}
	app := api.NewApp(h, api.Options{
		BodyLimit:          cfg.Server.BodyLimit(),
		RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
		RateLimitBurst:     cfg.Server.RateLimitBurst,
		Metrics:            rec,
		Logger:             logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr()), zap.String("version", version))
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
