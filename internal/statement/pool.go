package statement

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/statement-scorer/internal/models"
)

// PageFunc processes a single page.
type PageFunc func(ctx context.Context, page int) models.PageResult

// Pool runs a PageFunc over every page of a document with bounded
// parallelism. Workers <= 0 means one worker per available CPU.
type Pool struct {
	Workers int
}

func (p Pool) size() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run calls fn for pages 0..pages-1 and blocks until all of them finish.
// results[i] always holds page i's result, whatever order workers complete in.
func (p Pool) Run(ctx context.Context, pages int, fn PageFunc) []models.PageResult {
	if pages <= 0 {
		return nil
	}

	results := make([]models.PageResult, pages)

	var g errgroup.Group
	g.SetLimit(p.size())
	for page := range pages {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[page] = models.Failed(page, fmt.Errorf("%v", r))
				}
			}()
			results[page] = fn(ctx, page)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
