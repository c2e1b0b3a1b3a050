package subst

import (
	"context"

	"github.com/pkg/errors"
	"github.com/skein-lang/skein/pkg/skein"
	"golang.org/x/sync/errgroup"
)

// SubstituteAll rewrites independent terms concurrently under the same
// environment, one goroutine per term. Terms and environments are immutable,
// so the calls share nothing mutable; results keep their input order. The
// first failure cancels the remaining work via ctx and is returned.
func (s *Substitutor) SubstituteAll(ctx context.Context, terms []*skein.Par, env Env) ([]*skein.Par, error) {
	results := make([]*skein.Par, len(terms))
	eg, ctx := errgroup.WithContext(ctx)
	for i, term := range terms {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := s.Substitute(term, env)
			if err != nil {
				return errors.Wrapf(err, "term %d", i)
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
