package statement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/insightdelivered/statement-scorer/internal/extractor/extractortest"
	"github.com/insightdelivered/statement-scorer/internal/metrics"
	"github.com/insightdelivered/statement-scorer/internal/models"
)

func twoPageStatement() *extractortest.Source {
	return &extractortest.Source{Pages: [][]models.RawTableBlock{
		extractortest.Ledger([2]string{"CASH_IN", "100"}, [2]string{"CASH_OUT", "50"}),
		extractortest.Ledger([2]string{"CASH_IN", "30"}),
	}}
}

func TestService_Process(t *testing.T) {
	rec := metrics.New()
	svc := NewService(twoPageStatement(), Options{Workers: 2, Metrics: rec})

	report, err := svc.Process(context.Background(), "statement.pdf")
	require.NoError(t, err)

	assert.Equal(t, "180", report.Total.String())
	assert.Equal(t, []string{"100", "30"}, strs(report.AllCashIn))
	assert.Equal(t, "65", report.CashIn.Mean.String())
	assert.Equal(t, []string{"50"}, strs(report.AllCashOut))
	assert.Equal(t, "50", report.CashOut.Mean.String())
	assert.Equal(t, "100", report.CashIn.Max.String())
	assert.Equal(t, "30", report.CashIn.Min.String())
	assert.Equal(t, 2, report.PageCount)
	assert.Empty(t, report.FailedPages())

	require.Len(t, report.Ledger, 3)
	assert.Equal(t, 0, report.Ledger[1].Page)
	assert.Equal(t, models.CashOut, report.Ledger[1].Direction)
	assert.Equal(t, 1, report.Ledger[2].Page)

	body := scrape(t, rec)
	assert.Contains(t, body, `statement_pages_total{outcome="ok"} 2`)
	assert.Contains(t, body, `statement_requests_total{status="ok"} 1`)
}

func TestService_Process_OrderIndependent(t *testing.T) {
	src := twoPageStatement()
	src.Delay = func(page int) time.Duration {
		if page == 0 {
			return 20 * time.Millisecond
		}
		return 0
	}
	svc := NewService(src, Options{Workers: 2})

	report, err := svc.Process(context.Background(), "statement.pdf")
	require.NoError(t, err)

	assert.Equal(t, "180", report.Total.String())
	assert.Equal(t, []string{"100", "30"}, strs(report.AllCashIn))
}

func TestService_Process_PageFailure(t *testing.T) {
	src := twoPageStatement()
	src.Pages = append(src.Pages, extractortest.Ledger([2]string{"CASH_IN", "999"}))
	src.Panics = map[int]any{2: "corrupt page"}

	core, logs := observer.New(zap.WarnLevel)
	svc := NewService(src, Options{Logger: zap.New(core)})

	report, err := svc.Process(context.Background(), "statement.pdf")
	require.NoError(t, err)

	assert.Equal(t, "180", report.Total.String())
	assert.Equal(t, []string{"100", "30"}, strs(report.AllCashIn))
	require.Len(t, report.FailedPages(), 1)
	assert.Equal(t, "corrupt page", report.FailedPages()[0].Error)

	warned := logs.FilterMessage("page skipped").All()
	require.Len(t, warned, 1)
	assert.Equal(t, int64(2), warned[0].ContextMap()["page"])
}

func TestService_Process_Fatal(t *testing.T) {
	src := &extractortest.Source{CountErr: errors.New("not a PDF")}
	rec := metrics.New()
	svc := NewService(src, Options{Metrics: rec})

	report, err := svc.Process(context.Background(), "statement.pdf")

	assert.Nil(t, report)
	require.ErrorIs(t, err, ErrFatal)
	assert.EqualError(t, err, "fatal processing error: not a PDF")
	assert.Equal(t, 0, src.Calls())
	assert.Contains(t, scrape(t, rec), `statement_requests_total{status="fatal"} 1`)
}
