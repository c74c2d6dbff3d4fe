package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/insightdelivered/statement-scorer/internal/extractor"
	"github.com/insightdelivered/statement-scorer/internal/metrics"
	"github.com/insightdelivered/statement-scorer/internal/models"
	"github.com/insightdelivered/statement-scorer/internal/parser"
)

const tracerName = "github.com/insightdelivered/statement-scorer/internal/statement"

// Processor runs the extract, parse and classify pipeline for single pages.
// It holds no per-page state and may be shared by concurrent workers.
type Processor struct {
	source  extractor.TableSource
	tracer  trace.Tracer
	metrics *metrics.Recorder
}

// NewProcessor returns a Processor reading from source. A nil tracer uses the
// global OpenTelemetry provider; a nil recorder disables metrics.
func NewProcessor(source extractor.TableSource, tracer trace.Tracer, rec *metrics.Recorder) *Processor {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Processor{source: source, tracer: tracer, metrics: rec}
}

// ProcessPage returns the result for one page. It never panics and never
// returns an error: every failure becomes a failed PageResult.
func (p *Processor) ProcessPage(ctx context.Context, path string, page int) (result models.PageResult) {
	start := time.Now()
	_, span := p.tracer.Start(ctx, "statement.page", trace.WithAttributes(attribute.Int("page", page)))

	defer func() {
		if r := recover(); r != nil {
			result = models.Failed(page, fmt.Errorf("%v", r))
		}
		outcome := metrics.OutcomeOK
		if !result.OK() {
			outcome = metrics.OutcomeFailed
			span.SetStatus(codes.Error, result.Err)
		}
		span.SetAttributes(attribute.Int("rows", len(result.Rows)), attribute.String("outcome", outcome))
		span.End()
		p.metrics.ObservePage(result.OK(), time.Since(start))
	}()

	blocks, err := p.source.ExtractTables(path, page)
	if err != nil {
		return models.Failed(page, err)
	}

	table, err := parser.ParseTable(blocks)
	if err != nil {
		return models.Failed(page, err)
	}

	return classifyRows(page, table)
}

func classifyRows(page int, table *parser.Table) models.PageResult {
	result := models.PageResult{
		Page:    page,
		Header:  table.Header,
		Rows:    table.Rows,
		Score:   decimal.Zero,
		CashIn:  []decimal.Decimal{},
		CashOut: []decimal.Decimal{},

		Transactions: []models.Transaction{},
	}

	for _, row := range table.Rows {
		txn, ok := parser.Classify(row, table.AmountCol, table.TypeCol)
		if !ok {
			continue
		}
		txn.Page = page
		result.Transactions = append(result.Transactions, txn)
		result.Score = result.Score.Add(txn.Amount)
		switch txn.Direction {
		case models.CashIn:
			result.CashIn = append(result.CashIn, txn.Amount)
		case models.CashOut:
			result.CashOut = append(result.CashOut, txn.Amount)
		}
	}
	return result
}
