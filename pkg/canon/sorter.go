package canon

import (
	"slices"

	"github.com/skein-lang/skein/pkg/skein"
	"github.com/skein-lang/skein/pkg/subst"
)

// Sorter implements subst.Canonicalizer. It assumes children have already
// been canonicalized bottom-up (which is how the substitution dispatcher
// calls it) and only re-sorts the slices whose order is not significant: a
// Par's child lists, set elements, and map pairs. Everything else (send
// data, receive binds, match cases) is ordered syntax and passes through.
type Sorter struct{}

var _ subst.Canonicalizer = Sorter{}

func (Sorter) Par(p *skein.Par) *skein.Par {
	return &skein.Par{
		Sends:       sorted(p.Sends, compareSend),
		Receives:    sorted(p.Receives, compareReceive),
		News:        sorted(p.News, compareNew),
		Matches:     sorted(p.Matches, compareMatch),
		Evals:       sorted(p.Evals, compareEval),
		Exprs:       sorted(p.Exprs, compareExpr),
		FreeCount:   p.FreeCount,
		LocallyFree: p.LocallyFree,
	}
}

func (Sorter) Send(s *skein.Send) *skein.Send          { return s }
func (Sorter) Receive(r *skein.Receive) *skein.Receive { return r }
func (Sorter) New(n *skein.New) *skein.New             { return n }
func (Sorter) Match(m *skein.Match) *skein.Match       { return m }
func (Sorter) Channel(c skein.Channel) skein.Channel   { return c }

func (Sorter) Expr(e skein.Expr) skein.Expr {
	switch e := e.(type) {
	case *skein.ESet:
		return &skein.ESet{
			Elems:       sorted(e.Elems, Compare),
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree,
		}
	case *skein.EMap:
		return &skein.EMap{
			Pairs:       sorted(e.Pairs, comparePair),
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree,
		}
	default:
		return e
	}
}

// sorted clones before sorting; canonical form never mutates its input.
func sorted[T any](xs []T, f func(T, T) int) []T {
	out := slices.Clone(xs)
	slices.SortStableFunc(out, f)
	return out
}
