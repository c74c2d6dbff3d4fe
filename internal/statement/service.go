package statement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-scorer/internal/extractor"
	"github.com/insightdelivered/statement-scorer/internal/metrics"
	"github.com/insightdelivered/statement-scorer/internal/models"
)

// ErrFatal marks failures that prevent a statement from being processed at
// all, as opposed to per-page failures which are recorded in the Report.
var ErrFatal = errors.New("fatal processing error")

// Options configures a Service. Zero values are usable.
type Options struct {
	Workers int
	Logger  *zap.Logger
	Metrics *metrics.Recorder
	Tracer  trace.Tracer
}

// Service processes whole statements: it counts pages, fans them out over a
// Pool and aggregates the results.
type Service struct {
	source    extractor.TableSource
	processor *Processor
	pool      Pool
	logger    *zap.Logger
	metrics   *metrics.Recorder
}

// NewService returns a Service reading pages from source.
func NewService(source extractor.TableSource, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		processor: NewProcessor(source, opts.Tracer, opts.Metrics),
		pool:      Pool{Workers: opts.Workers},
		logger:    logger,
		metrics:   opts.Metrics,
	}
}

// Process runs the full pipeline over the document at path. The returned
// error wraps ErrFatal; page-level problems never surface here.
func (s *Service) Process(ctx context.Context, path string) (*models.Report, error) {
	start := time.Now()

	pages, err := s.pageCount(path)
	if err != nil {
		s.metrics.ObserveStatement(metrics.StatusFatal)
		s.logger.Error("failed to read statement", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFatal, err)
	}

	results := s.pool.Run(ctx, pages, func(ctx context.Context, page int) models.PageResult {
		return s.processor.ProcessPage(ctx, path, page)
	})

	for _, r := range results {
		if !r.OK() {
			s.logger.Warn("page skipped", zap.Int("page", r.Page), zap.String("error", r.Err))
		}
	}

	report := Aggregate(results)
	s.metrics.ObserveStatement(metrics.StatusOK)
	s.logger.Info("statement processed",
		zap.Int("pages", report.PageCount),
		zap.Int("failed_pages", len(report.FailedPages())),
		zap.Int("cash_in", len(report.AllCashIn)),
		zap.Int("cash_out", len(report.AllCashOut)),
		zap.String("total", report.Total.String()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &report, nil
}

func (s *Service) pageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page count panicked: %v", r)
		}
	}()
	return s.source.PageCount(path)
}
