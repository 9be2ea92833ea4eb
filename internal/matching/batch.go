package matching

import (
	"context"

	"github.com/jonathan/resume-match/internal/types"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds AnalyzeBatch when no limit is given.
const defaultConcurrency = 4

// BatchItem is the outcome for one résumé of a batch.
type BatchItem struct {
	Index  int
	Result *types.MatchResult
	Err    error
}

// AnalyzeBatch analyzes every résumé against the same job description with at most
// concurrency analyses in flight. Per-résumé failures are reported in the items; the
// returned error is non-nil only when ctx is cancelled. Items keep the order of resumes.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, resumes []string, jobDescText string, currentYear, concurrency int) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	items := make([]BatchItem, len(resumes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, resume := range resumes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, err := a.Analyze(resume, jobDescText, currentYear)
			items[i] = BatchItem{Index: i, Result: result, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
