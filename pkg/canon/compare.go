package canon

import (
	"cmp"
	"strings"

	"github.com/skein-lang/skein/pkg/skein"
)

// Compare is a deterministic total order over term shapes: node kinds rank
// first, then fields compare lexicographically, recursing into children.
// Bookkeeping fields (free counts, locally-free sets) are derived from
// structure and do not participate, so two terms compare equal exactly when
// they are structurally equivalent.
func Compare(a, b *skein.Par) int {
	if c := compareSlice(a.Sends, b.Sends, compareSend); c != 0 {
		return c
	}
	if c := compareSlice(a.Receives, b.Receives, compareReceive); c != 0 {
		return c
	}
	if c := compareSlice(a.News, b.News, compareNew); c != 0 {
		return c
	}
	if c := compareSlice(a.Matches, b.Matches, compareMatch); c != 0 {
		return c
	}
	if c := compareSlice(a.Evals, b.Evals, compareEval); c != 0 {
		return c
	}
	return compareSlice(a.Exprs, b.Exprs, compareExpr)
}

// Equal reports whether two terms are structurally equivalent under the
// canonical order.
func Equal(a, b *skein.Par) bool {
	return Compare(a, b) == 0
}

func compareSlice[T any](a, b []T, f func(T, T) int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := f(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareBool(a, b bool) int {
	return cmp.Compare(boolRank(a), boolRank(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareVar(a, b skein.Var) int {
	if c := cmp.Compare(varRank(a), varRank(b)); c != 0 {
		return c
	}
	switch a := a.(type) {
	case skein.BoundVar:
		return cmp.Compare(int(a), int(b.(skein.BoundVar)))
	case skein.FreeVar:
		return cmp.Compare(int(a), int(b.(skein.FreeVar)))
	default:
		return 0
	}
}

func varRank(v skein.Var) int {
	switch v.(type) {
	case skein.BoundVar:
		return 0
	case skein.FreeVar:
		return 1
	default:
		return 2
	}
}

func compareChannel(a, b skein.Channel) int {
	qa, aQuote := a.(skein.Quote)
	qb, bQuote := b.(skein.Quote)
	if c := compareBool(!aQuote, !bQuote); c != 0 {
		return c
	}
	if aQuote {
		return Compare(qa.P, qb.P)
	}
	return compareVar(a.(skein.ChanVar).V, b.(skein.ChanVar).V)
}

func compareSend(a, b *skein.Send) int {
	if c := compareChannel(a.Chan, b.Chan); c != 0 {
		return c
	}
	if c := compareSlice(a.Data, b.Data, Compare); c != 0 {
		return c
	}
	return compareBool(a.Persistent, b.Persistent)
}

func compareBind(a, b *skein.ReceiveBind) int {
	if c := cmp.Compare(a.FreeCount, b.FreeCount); c != 0 {
		return c
	}
	return compareChannel(a.Source, b.Source)
}

func compareReceive(a, b *skein.Receive) int {
	if c := compareSlice(a.Binds, b.Binds, compareBind); c != 0 {
		return c
	}
	if c := Compare(a.Body, b.Body); c != 0 {
		return c
	}
	if c := compareBool(a.Persistent, b.Persistent); c != 0 {
		return c
	}
	return cmp.Compare(a.BindCount, b.BindCount)
}

func compareNew(a, b *skein.New) int {
	if c := cmp.Compare(a.BindCount, b.BindCount); c != 0 {
		return c
	}
	return Compare(a.Body, b.Body)
}

func compareCase(a, b *skein.MatchCase) int {
	if c := Compare(a.Pattern, b.Pattern); c != 0 {
		return c
	}
	return Compare(a.Body, b.Body)
}

func compareMatch(a, b *skein.Match) int {
	if c := Compare(a.Target, b.Target); c != 0 {
		return c
	}
	return compareSlice(a.Cases, b.Cases, compareCase)
}

func compareEval(a, b *skein.Eval) int {
	return compareChannel(a.Chan, b.Chan)
}

func compareExpr(a, b skein.Expr) int {
	if c := cmp.Compare(exprRank(a), exprRank(b)); c != 0 {
		return c
	}
	switch a := a.(type) {
	case skein.GBool:
		return compareBool(bool(a), bool(b.(skein.GBool)))
	case skein.GInt:
		return cmp.Compare(int64(a), int64(b.(skein.GInt)))
	case skein.GString:
		return strings.Compare(string(a), string(b.(skein.GString)))
	case skein.GUri:
		return strings.Compare(string(a), string(b.(skein.GUri)))
	case skein.ExprVar:
		return compareVar(a.V, b.(skein.ExprVar).V)
	case skein.Unary:
		bu := b.(skein.Unary)
		if c := cmp.Compare(int(a.Op), int(bu.Op)); c != 0 {
			return c
		}
		return Compare(a.Arg, bu.Arg)
	case skein.Binary:
		bb := b.(skein.Binary)
		if c := cmp.Compare(int(a.Op), int(bb.Op)); c != 0 {
			return c
		}
		if c := Compare(a.Left, bb.Left); c != 0 {
			return c
		}
		return Compare(a.Right, bb.Right)
	case *skein.EList:
		bl := b.(*skein.EList)
		if c := compareSlice(a.Elems, bl.Elems, Compare); c != 0 {
			return c
		}
		return compareBool(a.Wildcard, bl.Wildcard)
	case *skein.ETuple:
		return compareSlice(a.Elems, b.(*skein.ETuple).Elems, Compare)
	case *skein.ESet:
		bs := b.(*skein.ESet)
		if c := compareSlice(a.Elems, bs.Elems, Compare); c != 0 {
			return c
		}
		return compareBool(a.Wildcard, bs.Wildcard)
	case *skein.EMap:
		bm := b.(*skein.EMap)
		if c := compareSlice(a.Pairs, bm.Pairs, comparePair); c != 0 {
			return c
		}
		return compareBool(a.Wildcard, bm.Wildcard)
	default:
		return 0
	}
}

func comparePair(a, b skein.KeyValue) int {
	if c := Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return Compare(a.Value, b.Value)
}

func exprRank(e skein.Expr) int {
	switch e.(type) {
	case skein.GBool:
		return 0
	case skein.GInt:
		return 1
	case skein.GString:
		return 2
	case skein.GUri:
		return 3
	case skein.ExprVar:
		return 4
	case skein.Unary:
		return 5
	case skein.Binary:
		return 6
	case *skein.EList:
		return 7
	case *skein.ETuple:
		return 8
	case *skein.ESet:
		return 9
	case *skein.EMap:
		return 10
	default:
		return 11
	}
}
