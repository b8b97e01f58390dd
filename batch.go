package sisl

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ProbeAll probes many files concurrently and returns their sizes in
// input order. The first failure cancels the remaining probes and is
// returned wrapped with the offending path.
func ProbeAll(ctx context.Context, paths []string, opts ...Option) ([]Sizes, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	out := make([]Sizes, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sz, err := ProbeSizes(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = sz
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
