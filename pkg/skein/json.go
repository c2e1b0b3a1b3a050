package skein

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// The JSON codec is the interchange format for fully elaborated trees. It
// mirrors the node kinds, one wire struct per kind, with the closed sums
// (Var, Channel, Expr) encoded as tagged objects.

// MarshalTerm encodes a term as JSON.
func MarshalTerm(p *Par) ([]byte, error) {
	return json.Marshal(parToWire(p))
}

// UnmarshalTerm decodes a term from JSON.
func UnmarshalTerm(data []byte) (*Par, error) {
	var w parWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "decoding term")
	}
	return parFromWire(&w)
}

// MarshalJSON implements json.Marshaler.
func (p *Par) MarshalJSON() ([]byte, error) {
	return MarshalTerm(p)
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Par) UnmarshalJSON(data []byte) error {
	out, err := UnmarshalTerm(data)
	if err != nil {
		return err
	}
	*p = *out
	return nil
}

type parWire struct {
	Sends       []*sendWire    `json:"sends,omitempty"`
	Receives    []*receiveWire `json:"receives,omitempty"`
	News        []*newWire     `json:"news,omitempty"`
	Matches     []*matchWire   `json:"matches,omitempty"`
	Evals       []*evalWire    `json:"evals,omitempty"`
	Exprs       []*exprWire    `json:"exprs,omitempty"`
	FreeCount   int            `json:"freeCount,omitempty"`
	LocallyFree []int          `json:"locallyFree,omitempty"`
}

type varWire struct {
	Kind  string `json:"kind"`
	Index int    `json:"index,omitempty"`
}

type chanWire struct {
	Quote *parWire `json:"quote,omitempty"`
	Var   *varWire `json:"var,omitempty"`
}

type sendWire struct {
	Chan        *chanWire  `json:"chan"`
	Data        []*parWire `json:"data,omitempty"`
	Persistent  bool       `json:"persistent,omitempty"`
	FreeCount   int        `json:"freeCount,omitempty"`
	LocallyFree []int      `json:"locallyFree,omitempty"`
}

type newWire struct {
	BindCount   int      `json:"bindCount"`
	Body        *parWire `json:"body"`
	LocallyFree []int    `json:"locallyFree,omitempty"`
}

type bindWire struct {
	FreeCount int       `json:"freeCount"`
	Source    *chanWire `json:"source"`
}

type receiveWire struct {
	Binds       []*bindWire `json:"binds"`
	Body        *parWire    `json:"body"`
	Persistent  bool        `json:"persistent,omitempty"`
	BindCount   int         `json:"bindCount"`
	FreeCount   int         `json:"freeCount,omitempty"`
	LocallyFree []int       `json:"locallyFree,omitempty"`
}

type caseWire struct {
	Pattern *parWire `json:"pattern"`
	Body    *parWire `json:"body"`
}

type matchWire struct {
	Target      *parWire    `json:"target"`
	Cases       []*caseWire `json:"cases"`
	FreeCount   int         `json:"freeCount,omitempty"`
	LocallyFree []int       `json:"locallyFree,omitempty"`
}

type evalWire struct {
	Chan *chanWire `json:"chan"`
}

type kvWire struct {
	Key   *parWire `json:"key"`
	Value *parWire `json:"value"`
}

type exprWire struct {
	Kind        string     `json:"kind"`
	Bool        *bool      `json:"bool,omitempty"`
	Int         *int64     `json:"int,omitempty"`
	Str         *string    `json:"string,omitempty"`
	Uri         *string    `json:"uri,omitempty"`
	Var         *varWire   `json:"var,omitempty"`
	Op          string     `json:"op,omitempty"`
	Arg         *parWire   `json:"arg,omitempty"`
	Left        *parWire   `json:"left,omitempty"`
	Right       *parWire   `json:"right,omitempty"`
	Elems       []*parWire `json:"elems,omitempty"`
	Pairs       []*kvWire  `json:"pairs,omitempty"`
	Wildcard    bool       `json:"wildcard,omitempty"`
	FreeCount   int        `json:"freeCount,omitempty"`
	LocallyFree []int      `json:"locallyFree,omitempty"`
}

var binOpNames = map[BinaryOp]string{
	OpMult:  "mult",
	OpDiv:   "div",
	OpPlus:  "plus",
	OpMinus: "minus",
	OpLt:    "lt",
	OpLte:   "lte",
	OpGt:    "gt",
	OpGte:   "gte",
	OpEq:    "eq",
	OpNeq:   "neq",
	OpAnd:   "and",
	OpOr:    "or",
}

var binOpByName = invert(binOpNames)

var unOpNames = map[UnaryOp]string{
	OpNot: "not",
	OpNeg: "neg",
}

var unOpByName = invert(unOpNames)

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func parToWire(p *Par) *parWire {
	if p == nil {
		return nil
	}
	w := &parWire{
		FreeCount:   p.FreeCount,
		LocallyFree: p.LocallyFree.Indices(),
	}
	for _, s := range p.Sends {
		w.Sends = append(w.Sends, &sendWire{
			Chan:        chanToWire(s.Chan),
			Data:        parsToWire(s.Data),
			Persistent:  s.Persistent,
			FreeCount:   s.FreeCount,
			LocallyFree: s.LocallyFree.Indices(),
		})
	}
	for _, r := range p.Receives {
		rw := &receiveWire{
			Body:        parToWire(r.Body),
			Persistent:  r.Persistent,
			BindCount:   r.BindCount,
			FreeCount:   r.FreeCount,
			LocallyFree: r.LocallyFree.Indices(),
		}
		for _, b := range r.Binds {
			rw.Binds = append(rw.Binds, &bindWire{FreeCount: b.FreeCount, Source: chanToWire(b.Source)})
		}
		w.Receives = append(w.Receives, rw)
	}
	for _, n := range p.News {
		w.News = append(w.News, &newWire{
			BindCount:   n.BindCount,
			Body:        parToWire(n.Body),
			LocallyFree: n.LocallyFree.Indices(),
		})
	}
	for _, m := range p.Matches {
		mw := &matchWire{
			Target:      parToWire(m.Target),
			FreeCount:   m.FreeCount,
			LocallyFree: m.LocallyFree.Indices(),
		}
		for _, c := range m.Cases {
			mw.Cases = append(mw.Cases, &caseWire{Pattern: parToWire(c.Pattern), Body: parToWire(c.Body)})
		}
		w.Matches = append(w.Matches, mw)
	}
	for _, e := range p.Evals {
		w.Evals = append(w.Evals, &evalWire{Chan: chanToWire(e.Chan)})
	}
	for _, e := range p.Exprs {
		w.Exprs = append(w.Exprs, exprToWire(e))
	}
	return w
}

func parsToWire(ps []*Par) []*parWire {
	out := make([]*parWire, len(ps))
	for i, p := range ps {
		out[i] = parToWire(p)
	}
	return out
}

func varToWire(v Var) *varWire {
	switch v := v.(type) {
	case BoundVar:
		return &varWire{Kind: "bound", Index: int(v)}
	case FreeVar:
		return &varWire{Kind: "free", Index: int(v)}
	case Wildcard:
		return &varWire{Kind: "wildcard"}
	default:
		return nil
	}
}

func chanToWire(c Channel) *chanWire {
	switch c := c.(type) {
	case Quote:
		return &chanWire{Quote: parToWire(c.P)}
	case ChanVar:
		return &chanWire{Var: varToWire(c.V)}
	default:
		return nil
	}
}

func exprToWire(e Expr) *exprWire {
	switch e := e.(type) {
	case GBool:
		b := bool(e)
		return &exprWire{Kind: "bool", Bool: &b}
	case GInt:
		i := int64(e)
		return &exprWire{Kind: "int", Int: &i}
	case GString:
		s := string(e)
		return &exprWire{Kind: "string", Str: &s}
	case GUri:
		u := string(e)
		return &exprWire{Kind: "uri", Uri: &u}
	case ExprVar:
		return &exprWire{Kind: "var", Var: varToWire(e.V)}
	case Unary:
		return &exprWire{Kind: "unary", Op: unOpNames[e.Op], Arg: parToWire(e.Arg)}
	case Binary:
		return &exprWire{Kind: "binary", Op: binOpNames[e.Op], Left: parToWire(e.Left), Right: parToWire(e.Right)}
	case *EList:
		return &exprWire{Kind: "list", Elems: parsToWire(e.Elems), Wildcard: e.Wildcard, FreeCount: e.FreeCount, LocallyFree: e.LocallyFree.Indices()}
	case *ETuple:
		return &exprWire{Kind: "tuple", Elems: parsToWire(e.Elems), FreeCount: e.FreeCount, LocallyFree: e.LocallyFree.Indices()}
	case *ESet:
		return &exprWire{Kind: "set", Elems: parsToWire(e.Elems), Wildcard: e.Wildcard, FreeCount: e.FreeCount, LocallyFree: e.LocallyFree.Indices()}
	case *EMap:
		w := &exprWire{Kind: "map", Wildcard: e.Wildcard, FreeCount: e.FreeCount, LocallyFree: e.LocallyFree.Indices()}
		for _, kv := range e.Pairs {
			w.Pairs = append(w.Pairs, &kvWire{Key: parToWire(kv.Key), Value: parToWire(kv.Value)})
		}
		return w
	default:
		return nil
	}
}

func parFromWire(w *parWire) (*Par, error) {
	if w == nil {
		return nil, nil
	}
	p := &Par{
		FreeCount:   w.FreeCount,
		LocallyFree: NewBitSet(w.LocallyFree...),
	}
	for _, sw := range w.Sends {
		if sw == nil {
			return nil, errors.New("missing send")
		}
		ch, err := chanFromWire(sw.Chan)
		if err != nil {
			return nil, err
		}
		data, err := parsFromWire(sw.Data)
		if err != nil {
			return nil, err
		}
		p.Sends = append(p.Sends, &Send{
			Chan:        ch,
			Data:        data,
			Persistent:  sw.Persistent,
			FreeCount:   sw.FreeCount,
			LocallyFree: NewBitSet(sw.LocallyFree...),
		})
	}
	for _, rw := range w.Receives {
		if rw == nil {
			return nil, errors.New("missing receive")
		}
		body, err := parFromWire(rw.Body)
		if err != nil {
			return nil, err
		}
		r := &Receive{
			Body:        body,
			Persistent:  rw.Persistent,
			BindCount:   rw.BindCount,
			FreeCount:   rw.FreeCount,
			LocallyFree: NewBitSet(rw.LocallyFree...),
		}
		for _, bw := range rw.Binds {
			if bw == nil {
				return nil, errors.New("missing receive bind")
			}
			src, err := chanFromWire(bw.Source)
			if err != nil {
				return nil, err
			}
			r.Binds = append(r.Binds, &ReceiveBind{FreeCount: bw.FreeCount, Source: src})
		}
		p.Receives = append(p.Receives, r)
	}
	for _, nw := range w.News {
		if nw == nil {
			return nil, errors.New("missing scope block")
		}
		body, err := parFromWire(nw.Body)
		if err != nil {
			return nil, err
		}
		p.News = append(p.News, &New{
			BindCount:   nw.BindCount,
			Body:        body,
			LocallyFree: NewBitSet(nw.LocallyFree...),
		})
	}
	for _, mw := range w.Matches {
		if mw == nil {
			return nil, errors.New("missing match")
		}
		target, err := parFromWire(mw.Target)
		if err != nil {
			return nil, err
		}
		m := &Match{
			Target:      target,
			FreeCount:   mw.FreeCount,
			LocallyFree: NewBitSet(mw.LocallyFree...),
		}
		for _, cw := range mw.Cases {
			if cw == nil {
				return nil, errors.New("missing match case")
			}
			pattern, err := parFromWire(cw.Pattern)
			if err != nil {
				return nil, err
			}
			body, err := parFromWire(cw.Body)
			if err != nil {
				return nil, err
			}
			m.Cases = append(m.Cases, &MatchCase{Pattern: pattern, Body: body})
		}
		p.Matches = append(p.Matches, m)
	}
	for _, ew := range w.Evals {
		if ew == nil {
			return nil, errors.New("missing dereference")
		}
		ch, err := chanFromWire(ew.Chan)
		if err != nil {
			return nil, err
		}
		p.Evals = append(p.Evals, &Eval{Chan: ch})
	}
	for _, xw := range w.Exprs {
		expr, err := exprFromWire(xw)
		if err != nil {
			return nil, err
		}
		p.Exprs = append(p.Exprs, expr)
	}
	return p, nil
}

func parsFromWire(ws []*parWire) ([]*Par, error) {
	out := make([]*Par, len(ws))
	for i, w := range ws {
		if w == nil {
			return nil, errors.New("missing term")
		}
		p, err := parFromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func varFromWire(w *varWire) (Var, error) {
	if w == nil {
		return nil, errors.New("missing var")
	}
	switch w.Kind {
	case "bound":
		return BoundVar(w.Index), nil
	case "free":
		return FreeVar(w.Index), nil
	case "wildcard":
		return Wildcard{}, nil
	default:
		return nil, errors.Errorf("unknown var kind %q", w.Kind)
	}
}

func chanFromWire(w *chanWire) (Channel, error) {
	switch {
	case w == nil:
		return nil, errors.New("missing channel")
	case w.Quote != nil:
		p, err := parFromWire(w.Quote)
		if err != nil {
			return nil, err
		}
		return Quote{P: p}, nil
	case w.Var != nil:
		v, err := varFromWire(w.Var)
		if err != nil {
			return nil, err
		}
		return ChanVar{V: v}, nil
	default:
		return nil, errors.New("channel must be a quote or a var")
	}
}

func exprFromWire(w *exprWire) (Expr, error) {
	if w == nil {
		return nil, errors.New("missing expr")
	}
	switch w.Kind {
	case "bool":
		if w.Bool == nil {
			return nil, errors.New("bool expr missing value")
		}
		return GBool(*w.Bool), nil
	case "int":
		if w.Int == nil {
			return nil, errors.New("int expr missing value")
		}
		return GInt(*w.Int), nil
	case "string":
		if w.Str == nil {
			return nil, errors.New("string expr missing value")
		}
		return GString(*w.Str), nil
	case "uri":
		if w.Uri == nil {
			return nil, errors.New("uri expr missing value")
		}
		return GUri(*w.Uri), nil
	case "var":
		v, err := varFromWire(w.Var)
		if err != nil {
			return nil, err
		}
		return ExprVar{V: v}, nil
	case "unary":
		op, ok := unOpByName[w.Op]
		if !ok {
			return nil, errors.Errorf("unknown unary op %q", w.Op)
		}
		arg, err := parFromWire(w.Arg)
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Arg: arg}, nil
	case "binary":
		op, ok := binOpByName[w.Op]
		if !ok {
			return nil, errors.Errorf("unknown binary op %q", w.Op)
		}
		left, err := parFromWire(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := parFromWire(w.Right)
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, Left: left, Right: right}, nil
	case "list", "tuple", "set":
		elems, err := parsFromWire(w.Elems)
		if err != nil {
			return nil, err
		}
		fc, lf := w.FreeCount, NewBitSet(w.LocallyFree...)
		switch w.Kind {
		case "list":
			return &EList{Elems: elems, Wildcard: w.Wildcard, FreeCount: fc, LocallyFree: lf}, nil
		case "tuple":
			return &ETuple{Elems: elems, FreeCount: fc, LocallyFree: lf}, nil
		default:
			return &ESet{Elems: elems, Wildcard: w.Wildcard, FreeCount: fc, LocallyFree: lf}, nil
		}
	case "map":
		m := &EMap{
			Wildcard:    w.Wildcard,
			FreeCount:   w.FreeCount,
			LocallyFree: NewBitSet(w.LocallyFree...),
		}
		for _, kv := range w.Pairs {
			if kv == nil {
				return nil, errors.New("missing map pair")
			}
			key, err := parFromWire(kv.Key)
			if err != nil {
				return nil, err
			}
			val, err := parFromWire(kv.Value)
			if err != nil {
				return nil, err
			}
			m.Pairs = append(m.Pairs, KeyValue{Key: key, Value: val})
		}
		return m, nil
	default:
		return nil, errors.Errorf("unknown expr kind %q", w.Kind)
	}
}
