package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skein-lang/skein/pkg/skein"
)

func intPar(n int64) *skein.Par {
	return skein.FromExpr(skein.GInt(n))
}

func send(name string, datum int64) *skein.Send {
	return &skein.Send{
		Chan: skein.Quote{P: skein.FromExpr(skein.GString(name))},
		Data: []*skein.Par{intPar(datum)},
	}
}

func messyTerm() *skein.Par {
	return &skein.Par{
		Sends: []*skein.Send{send("z", 3), send("a", 1)},
		News: []*skein.New{
			{BindCount: 2, Body: skein.FromBoundVar(1)},
			{BindCount: 1, Body: skein.FromBoundVar(0)},
		},
		Evals: []*skein.Eval{
			{Chan: skein.ChanVar{V: skein.BoundVar(2)}},
			{Chan: skein.Quote{P: intPar(5)}},
		},
		Exprs: []skein.Expr{
			skein.GString("b"),
			skein.GInt(9),
			&skein.ESet{Elems: []*skein.Par{intPar(2), intPar(1)}},
			&skein.EMap{Pairs: []skein.KeyValue{
				{Key: skein.FromExpr(skein.GString("k2")), Value: intPar(2)},
				{Key: skein.FromExpr(skein.GString("k1")), Value: intPar(1)},
			}},
		},
	}
}

func TestCanonIdempotent(t *testing.T) {
	first := Canon(messyTerm())
	second := Canon(first)
	assert.True(t, Equal(first, second))
	assert.Equal(t, first.String(), second.String(),
		"canonicalizing an already-canonical term must return it unchanged")
}

func TestCanonOrderIndependent(t *testing.T) {
	a := skein.FromSend(send("a", 1)).
		Merge(skein.FromSend(send("b", 2))).
		Merge(skein.FromExpr(skein.GInt(3)))
	b := skein.FromExpr(skein.GInt(3)).
		Merge(skein.FromSend(send("b", 2))).
		Merge(skein.FromSend(send("a", 1)))

	assert.True(t, Equal(Canon(a), Canon(b)),
		"permuted parallel compositions must share a canonical form")
}

func TestCanonSortsChildren(t *testing.T) {
	out := Canon(messyTerm())

	require.Len(t, out.Sends, 2)
	assert.LessOrEqual(t, compareSend(out.Sends[0], out.Sends[1]), 0)

	require.Len(t, out.News, 2)
	assert.Equal(t, 1, out.News[0].BindCount, "news sort by bind count first")

	require.Len(t, out.Exprs, 4)
	for i := 1; i < len(out.Exprs); i++ {
		assert.LessOrEqual(t, compareExpr(out.Exprs[i-1], out.Exprs[i]), 0)
	}
}

func TestCanonSortsCollections(t *testing.T) {
	t.Run("set elements", func(t *testing.T) {
		out := CanonExpr(&skein.ESet{Elems: []*skein.Par{intPar(3), intPar(1), intPar(2)}})
		set, ok := out.(*skein.ESet)
		require.True(t, ok)
		var got []string
		for _, e := range set.Elems {
			got = append(got, e.String())
		}
		assert.Equal(t, []string{"1", "2", "3"}, got)
	})

	t.Run("map pairs sort by key", func(t *testing.T) {
		out := CanonExpr(&skein.EMap{Pairs: []skein.KeyValue{
			{Key: intPar(2), Value: intPar(20)},
			{Key: intPar(1), Value: intPar(10)},
		}})
		m, ok := out.(*skein.EMap)
		require.True(t, ok)
		assert.Equal(t, "{1: 10, 2: 20}", m.String())
	})

	t.Run("list and tuple order is preserved", func(t *testing.T) {
		out := CanonExpr(&skein.EList{Elems: []*skein.Par{intPar(2), intPar(1)}})
		list, ok := out.(*skein.EList)
		require.True(t, ok)
		assert.Equal(t, "[2, 1]", list.String())
	})
}

func TestCanonRecursesIntoQuotes(t *testing.T) {
	inner := skein.FromSend(send("b", 2)).Merge(skein.FromSend(send("a", 1)))
	permuted := skein.FromSend(send("a", 1)).Merge(skein.FromSend(send("b", 2)))

	a := Canon(skein.FromEval(&skein.Eval{Chan: skein.Quote{P: inner}}))
	b := Canon(skein.FromEval(&skein.Eval{Chan: skein.Quote{P: permuted}}))
	assert.True(t, Equal(a, b))
}

func TestCompareTotalOrder(t *testing.T) {
	terms := []*skein.Par{
		skein.NilPar(),
		intPar(1),
		intPar(2),
		skein.FromExpr(skein.GString("a")),
		skein.FromSend(send("a", 1)),
		skein.FromNew(&skein.New{BindCount: 1, Body: skein.NilPar()}),
		skein.FromBoundVar(0),
	}
	for i, a := range terms {
		for j, b := range terms {
			c1, c2 := Compare(a, b), Compare(b, a)
			assert.Equal(t, -c2, c1, "antisymmetry for %d vs %d", i, j)
			if i == j {
				assert.Zero(t, c1)
			}
		}
	}
}

func TestMatchCaseOrderSignificant(t *testing.T) {
	caseA := &skein.MatchCase{Pattern: intPar(1), Body: intPar(10)}
	caseB := &skein.MatchCase{Pattern: intPar(2), Body: intPar(20)}

	a := skein.FromMatch(&skein.Match{Target: skein.NilPar(), Cases: []*skein.MatchCase{caseA, caseB}})
	b := skein.FromMatch(&skein.Match{Target: skein.NilPar(), Cases: []*skein.MatchCase{caseB, caseA}})
	assert.False(t, Equal(Canon(a), Canon(b)), "matching is first-wins; case order must survive")
}

func TestDigest(t *testing.T) {
	a := skein.FromSend(send("a", 1)).Merge(skein.FromSend(send("b", 2)))
	b := skein.FromSend(send("b", 2)).Merge(skein.FromSend(send("a", 1)))

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db, "structurally equivalent terms content-address identically")

	dc, err := Digest(intPar(1))
	require.NoError(t, err)
	assert.NotEqual(t, da, dc)
}
