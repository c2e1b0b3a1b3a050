package skein

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func representativeTerm() *Par {
	quoted := FromExpr(GString("name"))
	return &Par{
		Sends: []*Send{{
			Chan:        Quote{P: quoted},
			Data:        []*Par{FromExpr(GInt(42)), FromBoundVar(1)},
			Persistent:  true,
			FreeCount:   0,
			LocallyFree: NewBitSet(1),
		}},
		Receives: []*Receive{{
			Binds:     []*ReceiveBind{{FreeCount: 2, Source: ChanVar{V: BoundVar(0)}}},
			Body:      FromBoundVar(2),
			BindCount: 2,
		}},
		News: []*New{{BindCount: 1, Body: FromBoundVar(0)}},
		Matches: []*Match{{
			Target: FromBoundVar(0),
			Cases: []*MatchCase{
				{Pattern: &Par{FreeCount: 1, Exprs: []Expr{ExprVar{V: FreeVar(0)}}}, Body: FromBoundVar(0)},
				{Pattern: FromExpr(ExprVar{V: Wildcard{}}), Body: NilPar()},
			},
		}},
		Evals: []*Eval{{Chan: Quote{P: quoted}}},
		Exprs: []Expr{
			GBool(true),
			GInt(-7),
			GString("s"),
			GUri("registry:one"),
			Unary{Op: OpNot, Arg: FromExpr(GBool(false))},
			Binary{Op: OpLte, Left: FromExpr(GInt(1)), Right: FromExpr(GInt(2))},
			&EList{Elems: []*Par{FromExpr(GInt(1))}, Wildcard: true},
			&ETuple{Elems: []*Par{FromExpr(GInt(1)), FromExpr(GInt(2))}},
			&ESet{Elems: []*Par{FromExpr(GInt(3))}},
			&EMap{Pairs: []KeyValue{{Key: FromExpr(GString("k")), Value: FromExpr(GInt(1))}}},
		},
		LocallyFree: NewBitSet(0, 1, 2),
	}
}

func TestTermRoundTrip(t *testing.T) {
	term := representativeTerm()

	data, err := MarshalTerm(term)
	require.NoError(t, err)

	back, err := UnmarshalTerm(data)
	require.NoError(t, err)

	// The codec must preserve structure and bookkeeping exactly.
	again, err := MarshalTerm(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
	assert.Equal(t, term.String(), back.String())
	assert.True(t, term.LocallyFree.Equal(back.LocallyFree))
	assert.True(t, back.Sends[0].Persistent)
	assert.Equal(t, 2, back.Receives[0].BindCount)
}

func TestParImplementsJSONInterfaces(t *testing.T) {
	// Par is used directly inside caller-defined JSON documents, e.g.
	// environment-bindings files keyed by index.
	doc := map[string]*Par{"0": FromExpr(GInt(5))}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var back map[string]*Par
	require.NoError(t, json.Unmarshal(data, &back))
	require.Contains(t, back, "0")
	assert.Equal(t, "5", back["0"].String())
}

func TestUnmarshalErrors(t *testing.T) {
	cases := map[string]string{
		"unknown expr kind":   `{"exprs":[{"kind":"frob"}]}`,
		"unknown var kind":    `{"exprs":[{"kind":"var","var":{"kind":"weird"}}]}`,
		"channelless send":    `{"sends":[{"chan":{}}]}`,
		"unknown binary op":   `{"exprs":[{"kind":"binary","op":"xor"}]}`,
		"missing ground data": `{"exprs":[{"kind":"int"}]}`,

		// A JSON null in any node array decodes to a nil wire pointer;
		// the decoder must reject it rather than dereference it.
		"null expr":       `{"exprs":[null]}`,
		"null send":       `{"sends":[null]}`,
		"null receive":    `{"receives":[null]}`,
		"null bind":       `{"receives":[{"binds":[null],"body":{},"bindCount":1}]}`,
		"null scope":      `{"news":[null]}`,
		"null match":      `{"matches":[null]}`,
		"null match case": `{"matches":[{"target":{},"cases":[null]}]}`,
		"null deref":      `{"evals":[null]}`,
		"null send datum": `{"sends":[{"chan":{"quote":{}},"data":[null]}]}`,
		"null map pair":   `{"exprs":[{"kind":"map","pairs":[null]}]}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalTerm([]byte(input))
			assert.Error(t, err)
		})
	}
}
