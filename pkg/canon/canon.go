// Package canon establishes the canonical form of terms: the unique
// representative of each class of structurally equivalent trees, used for
// comparison and content addressing. Consensus depends on semantically
// identical contract state comparing and hashing identically, so every
// function here must be deterministic.
package canon

import (
	"crypto/sha256"

	"github.com/skein-lang/skein/pkg/skein"
)

var sorter Sorter

// Canon returns the canonical form of a term, canonicalizing every nested
// node bottom-up. Already-canonical terms come back structurally unchanged.
func Canon(p *skein.Par) *skein.Par {
	if p == nil {
		return nil
	}
	out := &skein.Par{
		FreeCount:   p.FreeCount,
		LocallyFree: p.LocallyFree,
	}
	for _, s := range p.Sends {
		out.Sends = append(out.Sends, CanonSend(s))
	}
	for _, r := range p.Receives {
		out.Receives = append(out.Receives, CanonReceive(r))
	}
	for _, n := range p.News {
		out.News = append(out.News, CanonNew(n))
	}
	for _, m := range p.Matches {
		out.Matches = append(out.Matches, CanonMatch(m))
	}
	for _, e := range p.Evals {
		out.Evals = append(out.Evals, &skein.Eval{Chan: CanonChannel(e.Chan)})
	}
	for _, e := range p.Exprs {
		out.Exprs = append(out.Exprs, CanonExpr(e))
	}
	return sorter.Par(out)
}

// CanonSend canonicalizes a send's channel and data.
func CanonSend(s *skein.Send) *skein.Send {
	out := &skein.Send{
		Chan:        CanonChannel(s.Chan),
		Data:        canonPars(s.Data),
		Persistent:  s.Persistent,
		FreeCount:   s.FreeCount,
		LocallyFree: s.LocallyFree,
	}
	return sorter.Send(out)
}

// CanonReceive canonicalizes a receive's sources and body. Bind clause
// order stays fixed: the body's de Bruijn indices depend on it.
func CanonReceive(r *skein.Receive) *skein.Receive {
	out := &skein.Receive{
		Body:        Canon(r.Body),
		Persistent:  r.Persistent,
		BindCount:   r.BindCount,
		FreeCount:   r.FreeCount,
		LocallyFree: r.LocallyFree,
	}
	for _, b := range r.Binds {
		out.Binds = append(out.Binds, &skein.ReceiveBind{
			FreeCount: b.FreeCount,
			Source:    CanonChannel(b.Source),
		})
	}
	return sorter.Receive(out)
}

// CanonNew canonicalizes a scope block's body.
func CanonNew(n *skein.New) *skein.New {
	return sorter.New(&skein.New{
		BindCount:   n.BindCount,
		Body:        Canon(n.Body),
		LocallyFree: n.LocallyFree,
	})
}

// CanonMatch canonicalizes a match's target, patterns, and bodies. Case
// order stays fixed: matching is first-wins.
func CanonMatch(m *skein.Match) *skein.Match {
	out := &skein.Match{
		Target:      Canon(m.Target),
		FreeCount:   m.FreeCount,
		LocallyFree: m.LocallyFree,
	}
	for _, c := range m.Cases {
		out.Cases = append(out.Cases, &skein.MatchCase{
			Pattern: Canon(c.Pattern),
			Body:    Canon(c.Body),
		})
	}
	return sorter.Match(out)
}

// CanonChannel canonicalizes a channel; quoted-term channels wrap a
// canonicalized term.
func CanonChannel(c skein.Channel) skein.Channel {
	if q, ok := c.(skein.Quote); ok {
		return sorter.Channel(skein.Quote{P: Canon(q.P)})
	}
	return sorter.Channel(c)
}

// CanonExpr canonicalizes an expression's operands and collection elements.
func CanonExpr(e skein.Expr) skein.Expr {
	switch e := e.(type) {
	case skein.Unary:
		return sorter.Expr(skein.Unary{Op: e.Op, Arg: Canon(e.Arg)})
	case skein.Binary:
		return sorter.Expr(skein.Binary{Op: e.Op, Left: Canon(e.Left), Right: Canon(e.Right)})
	case *skein.EList:
		return sorter.Expr(&skein.EList{
			Elems:       canonPars(e.Elems),
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree,
		})
	case *skein.ETuple:
		return sorter.Expr(&skein.ETuple{
			Elems:       canonPars(e.Elems),
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree,
		})
	case *skein.ESet:
		return sorter.Expr(&skein.ESet{
			Elems:       canonPars(e.Elems),
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree,
		})
	case *skein.EMap:
		out := &skein.EMap{
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree,
		}
		for _, kv := range e.Pairs {
			out.Pairs = append(out.Pairs, skein.KeyValue{Key: Canon(kv.Key), Value: Canon(kv.Value)})
		}
		return sorter.Expr(out)
	default:
		return sorter.Expr(e)
	}
}

func canonPars(ps []*skein.Par) []*skein.Par {
	out := make([]*skein.Par, len(ps))
	for i, p := range ps {
		out[i] = Canon(p)
	}
	return out
}

// Digest content-addresses a term: the SHA-256 of its canonical form's JSON
// encoding. Structurally equivalent terms digest identically.
func Digest(p *skein.Par) ([sha256.Size]byte, error) {
	data, err := skein.MarshalTerm(Canon(p))
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(data), nil
}
