// Package batch expands independent hunks concurrently.
package batch

import (
	"context"
	"fmt"

	"github.com/fwojciec/hunkctx"
	"golang.org/x/sync/errgroup"
)

// ExpandAll expands every request and returns the hunks in request order.
// At most limit expansions run at once; limit <= 0 means no limit. The first
// failure cancels the remaining work and is returned with the index of the
// request that caused it.
func ExpandAll(ctx context.Context, reqs []hunkctx.Request, limit int) ([]hunkctx.Hunk, error) {
	hunks := make([]hunkctx.Hunk, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := req.Expand()
			if err != nil {
				return fmt.Errorf("hunk %d: %w", i, err)
			}
			hunks[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hunks, nil
}
