package skein

import "slices"

// NilPar returns the empty parallel composition.
func NilPar() *Par {
	return &Par{}
}

// IsNil reports whether the term has no children of any kind.
func (p *Par) IsNil() bool {
	return p == nil ||
		len(p.Sends) == 0 &&
			len(p.Receives) == 0 &&
			len(p.News) == 0 &&
			len(p.Matches) == 0 &&
			len(p.Evals) == 0 &&
			len(p.Exprs) == 0
}

// Merge returns a fresh term combining the children of both terms in
// parallel. Free counts add and locally-free sets union; neither input is
// modified.
func (p *Par) Merge(other *Par) *Par {
	if other == nil {
		return p
	}
	if p == nil {
		return other
	}
	return &Par{
		Sends:       slices.Concat(p.Sends, other.Sends),
		Receives:    slices.Concat(p.Receives, other.Receives),
		News:        slices.Concat(p.News, other.News),
		Matches:     slices.Concat(p.Matches, other.Matches),
		Evals:       slices.Concat(p.Evals, other.Evals),
		Exprs:       slices.Concat(p.Exprs, other.Exprs),
		FreeCount:   p.FreeCount + other.FreeCount,
		LocallyFree: p.LocallyFree.Union(other.LocallyFree),
	}
}

// FromSend wraps a single send as a term.
func FromSend(s *Send) *Par {
	return &Par{Sends: []*Send{s}, FreeCount: s.FreeCount, LocallyFree: s.LocallyFree}
}

// FromReceive wraps a single receive as a term.
func FromReceive(r *Receive) *Par {
	return &Par{Receives: []*Receive{r}, FreeCount: r.FreeCount, LocallyFree: r.LocallyFree}
}

// FromNew wraps a single scope block as a term.
func FromNew(n *New) *Par {
	return &Par{News: []*New{n}, LocallyFree: n.LocallyFree}
}

// FromMatch wraps a single match as a term.
func FromMatch(m *Match) *Par {
	return &Par{Matches: []*Match{m}, FreeCount: m.FreeCount, LocallyFree: m.LocallyFree}
}

// FromEval wraps a single dereference as a term.
func FromEval(e *Eval) *Par {
	return &Par{Evals: []*Eval{e}, LocallyFree: channelLocallyFree(e.Chan)}
}

// FromExpr wraps a single expression as a term.
func FromExpr(e Expr) *Par {
	return &Par{Exprs: []Expr{e}, LocallyFree: exprLocallyFree(e)}
}

// FromBoundVar wraps a bound-variable reference as a term. The reference is
// recorded in the term's locally-free set.
func FromBoundVar(index int) *Par {
	return &Par{
		Exprs:       []Expr{ExprVar{V: BoundVar(index)}},
		LocallyFree: NewBitSet(index),
	}
}

func channelLocallyFree(c Channel) BitSet {
	switch c := c.(type) {
	case Quote:
		return c.P.LocallyFree
	case ChanVar:
		if b, ok := c.V.(BoundVar); ok {
			return NewBitSet(int(b))
		}
	}
	return nil
}

func exprLocallyFree(e Expr) BitSet {
	switch e := e.(type) {
	case ExprVar:
		if b, ok := e.V.(BoundVar); ok {
			return NewBitSet(int(b))
		}
		return nil
	case Unary:
		return e.Arg.LocallyFree
	case Binary:
		return e.Left.LocallyFree.Union(e.Right.LocallyFree)
	case *EList:
		return e.LocallyFree
	case *ETuple:
		return e.LocallyFree
	case *ESet:
		return e.LocallyFree
	case *EMap:
		return e.LocallyFree
	default:
		return nil
	}
}
