package subst

import (
	"github.com/pkg/errors"
	"github.com/skein-lang/skein/pkg/skein"
)

// Canonicalizer re-establishes canonical form for a freshly rebuilt node.
// Each method must be a deterministic total function producing a stable
// representative for any class of structurally equivalent nodes; the
// Substitutor calls it unconditionally after rebuilding every node and
// trusts its result as final.
type Canonicalizer interface {
	Par(*skein.Par) *skein.Par
	Send(*skein.Send) *skein.Send
	Receive(*skein.Receive) *skein.Receive
	New(*skein.New) *skein.New
	Match(*skein.Match) *skein.Match
	Channel(skein.Channel) skein.Channel
	Expr(skein.Expr) skein.Expr
}

// Substitutor rewrites terms under an environment: bound-variable references
// are replaced by the values the environment resolves them to, nested scopes
// are entered under appropriately shifted environments, and every rebuilt
// node is re-canonicalized bottom-up.
//
// A Substitutor is stateless apart from its canonicalizer and is safe for
// concurrent use.
type Substitutor struct {
	canon Canonicalizer
}

// New returns a Substitutor using the given canonicalizer.
func New(c Canonicalizer) *Substitutor {
	return &Substitutor{canon: c}
}

// Substitute rewrites a term under env and returns its canonical form.
//
// Expression children that are bound-variable references resolve against the
// environment: a resolved reference is spliced into the result as parallel
// siblings (its sends, receives, and so on merge with the rest of the
// term's children) rather than kept boxed as a single expression. Dereference
// children whose channel resolves to a quoted term collapse to that term.
// All other children are substituted node by node under the same env.
func (s *Substitutor) Substitute(p *skein.Par, env Env) (*skein.Par, error) {
	result := &skein.Par{}

	for _, send := range p.Sends {
		out, err := s.SubstituteSend(send, env)
		if err != nil {
			return nil, err
		}
		result.Sends = append(result.Sends, out)
	}
	for _, recv := range p.Receives {
		out, err := s.SubstituteReceive(recv, env)
		if err != nil {
			return nil, err
		}
		result.Receives = append(result.Receives, out)
	}
	for _, n := range p.News {
		out, err := s.SubstituteNew(n, env)
		if err != nil {
			return nil, err
		}
		result.News = append(result.News, out)
	}
	for _, m := range p.Matches {
		out, err := s.SubstituteMatch(m, env)
		if err != nil {
			return nil, err
		}
		result.Matches = append(result.Matches, out)
	}

	for _, ev := range p.Evals {
		ch, err := s.SubstituteChannel(ev.Chan, env)
		if err != nil {
			return nil, errors.Wrap(err, "dereference")
		}
		if q, ok := ch.(skein.Quote); ok {
			// The dereference collapses to the term it names.
			result = result.Merge(q.P)
			continue
		}
		result.Evals = append(result.Evals, &skein.Eval{Chan: ch})
	}

	for _, expr := range p.Exprs {
		ev, ok := expr.(skein.ExprVar)
		if !ok {
			out, err := s.SubstituteExpr(expr, env)
			if err != nil {
				return nil, err
			}
			result.Exprs = append(result.Exprs, out)
			continue
		}
		val, err := s.resolveVar(ev.V, env)
		if err != nil {
			return nil, err
		}
		if val == nil {
			result.Exprs = append(result.Exprs, ev)
			continue
		}
		result = result.Merge(val)
	}

	result.FreeCount = p.FreeCount
	result.LocallyFree = p.LocallyFree.Until(env.CurrentShift())
	return s.canon.Par(result), nil
}

// SubstituteSend rewrites a send. Sends introduce no binders: both the
// channel and every datum are substituted under env unchanged.
func (s *Substitutor) SubstituteSend(send *skein.Send, env Env) (*skein.Send, error) {
	ch, err := s.SubstituteChannel(send.Chan, env)
	if err != nil {
		return nil, errors.Wrap(err, "send channel")
	}
	data := make([]*skein.Par, len(send.Data))
	for i, d := range send.Data {
		data[i], err = s.Substitute(d, env)
		if err != nil {
			return nil, errors.Wrapf(err, "send datum %d", i)
		}
	}
	return s.canon.Send(&skein.Send{
		Chan:        ch,
		Data:        data,
		Persistent:  send.Persistent,
		FreeCount:   send.FreeCount,
		LocallyFree: send.LocallyFree.Until(env.CurrentShift()),
	}), nil
}

// SubstituteNew rewrites a scope block. The body is substituted under env
// shifted by the block's introduced-variable count; the block's bookkeeping
// is trimmed to the outer depth, since its own binders are local.
func (s *Substitutor) SubstituteNew(n *skein.New, env Env) (*skein.New, error) {
	body, err := s.Substitute(n.Body, env.Shift(n.BindCount))
	if err != nil {
		return nil, errors.Wrap(err, "scope body")
	}
	return s.canon.New(&skein.New{
		BindCount:   n.BindCount,
		Body:        body,
		LocallyFree: n.LocallyFree.Until(env.CurrentShift()),
	}), nil
}

// SubstituteReceive rewrites a receive. Each bind clause's source channel is
// substituted under the outer env, since sources are resolved before the new
// bindings exist; the body is substituted under env shifted by the total
// bind count.
func (s *Substitutor) SubstituteReceive(r *skein.Receive, env Env) (*skein.Receive, error) {
	binds := make([]*skein.ReceiveBind, len(r.Binds))
	for i, b := range r.Binds {
		src, err := s.SubstituteChannel(b.Source, env)
		if err != nil {
			return nil, errors.Wrapf(err, "receive source %d", i)
		}
		binds[i] = &skein.ReceiveBind{FreeCount: b.FreeCount, Source: src}
	}
	body, err := s.Substitute(r.Body, env.Shift(r.BindCount))
	if err != nil {
		return nil, errors.Wrap(err, "receive body")
	}
	return s.canon.Receive(&skein.Receive{
		Binds:       binds,
		Body:        body,
		Persistent:  r.Persistent,
		BindCount:   r.BindCount,
		FreeCount:   r.FreeCount,
		LocallyFree: r.LocallyFree.Until(env.CurrentShift()),
	}), nil
}

// SubstituteMatch rewrites a match: the target under the outer env, each
// case body under env shifted by the case pattern's free-variable count.
// Patterns are left intact; deciding whether they match is not this engine's
// concern.
func (s *Substitutor) SubstituteMatch(m *skein.Match, env Env) (*skein.Match, error) {
	target, err := s.Substitute(m.Target, env)
	if err != nil {
		return nil, errors.Wrap(err, "match target")
	}
	cases := make([]*skein.MatchCase, len(m.Cases))
	for i, c := range m.Cases {
		body, err := s.Substitute(c.Body, env.Shift(c.Pattern.FreeCount))
		if err != nil {
			return nil, errors.Wrapf(err, "match case %d", i)
		}
		cases[i] = &skein.MatchCase{Pattern: c.Pattern, Body: body}
	}
	return s.canon.Match(&skein.Match{
		Target:      target,
		Cases:       cases,
		FreeCount:   m.FreeCount,
		LocallyFree: m.LocallyFree.Until(env.CurrentShift()),
	}), nil
}

// SubstituteEval rewrites a dereference as a standalone term. A channel that
// resolves to a quoted term collapses to that term; an unresolved variable
// channel keeps the dereference wrapper.
func (s *Substitutor) SubstituteEval(ev *skein.Eval, env Env) (*skein.Par, error) {
	ch, err := s.SubstituteChannel(ev.Chan, env)
	if err != nil {
		return nil, errors.Wrap(err, "dereference")
	}
	if q, ok := ch.(skein.Quote); ok {
		return q.P, nil
	}
	return s.canon.Par(skein.FromEval(&skein.Eval{Chan: ch})), nil
}
