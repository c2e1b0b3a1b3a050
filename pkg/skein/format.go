package skein

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// String renders the term in surface syntax, children joined by `|`. The
// rendering is for humans (CLI output, test failures); canonical comparison
// goes through the canon package, not through strings.
func (p *Par) String() string {
	if p.IsNil() {
		return "Nil"
	}
	var parts []string
	parts = append(parts, lo.Map(p.Sends, func(s *Send, _ int) string { return s.String() })...)
	parts = append(parts, lo.Map(p.Receives, func(r *Receive, _ int) string { return r.String() })...)
	parts = append(parts, lo.Map(p.News, func(n *New, _ int) string { return n.String() })...)
	parts = append(parts, lo.Map(p.Matches, func(m *Match, _ int) string { return m.String() })...)
	parts = append(parts, lo.Map(p.Evals, func(e *Eval, _ int) string { return e.String() })...)
	parts = append(parts, lo.Map(p.Exprs, func(e Expr, _ int) string { return e.String() })...)
	return strings.Join(parts, " | ")
}

func (v BoundVar) String() string { return fmt.Sprintf("$%d", int(v)) }
func (v FreeVar) String() string  { return fmt.Sprintf("free%d", int(v)) }
func (Wildcard) String() string   { return "_" }

func (q Quote) String() string {
	return "@{" + q.P.String() + "}"
}

func (c ChanVar) String() string {
	return c.V.String()
}

func (e *Eval) String() string {
	return "*" + e.Chan.String()
}

func (s *Send) String() string {
	bang := "!"
	if s.Persistent {
		bang = "!!"
	}
	data := lo.Map(s.Data, func(d *Par, _ int) string { return d.String() })
	return fmt.Sprintf("%s%s(%s)", s.Chan, bang, strings.Join(data, ", "))
}

func (n *New) String() string {
	return fmt.Sprintf("new %d in { %s }", n.BindCount, n.Body)
}

func (b *ReceiveBind) String() string {
	return fmt.Sprintf("_%d <- %s", b.FreeCount, b.Source)
}

func (r *Receive) String() string {
	arrow := "for"
	if r.Persistent {
		arrow = "for!"
	}
	binds := lo.Map(r.Binds, func(b *ReceiveBind, _ int) string { return b.String() })
	return fmt.Sprintf("%s(%s) { %s }", arrow, strings.Join(binds, "; "), r.Body)
}

func (m *Match) String() string {
	cases := lo.Map(m.Cases, func(c *MatchCase, _ int) string {
		return fmt.Sprintf("%s => %s", c.Pattern, c.Body)
	})
	return fmt.Sprintf("match %s { %s }", m.Target, strings.Join(cases, " ; "))
}

func (g GBool) String() string   { return fmt.Sprintf("%t", bool(g)) }
func (g GInt) String() string    { return fmt.Sprintf("%d", int64(g)) }
func (g GString) String() string { return fmt.Sprintf("%q", string(g)) }
func (g GUri) String() string    { return "`" + string(g) + "`" }

func (e ExprVar) String() string {
	return e.V.String()
}

func (u Unary) String() string {
	return fmt.Sprintf("%s(%s)", u.Op, u.Arg)
}

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (l *EList) String() string {
	return "[" + joinPars(l.Elems, l.Wildcard) + "]"
}

func (t *ETuple) String() string {
	return "(" + joinPars(t.Elems, false) + ")"
}

func (s *ESet) String() string {
	return "Set(" + joinPars(s.Elems, s.Wildcard) + ")"
}

func (m *EMap) String() string {
	pairs := lo.Map(m.Pairs, func(kv KeyValue, _ int) string {
		return fmt.Sprintf("%s: %s", kv.Key, kv.Value)
	})
	if m.Wildcard {
		pairs = append(pairs, "...")
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func joinPars(ps []*Par, wildcard bool) string {
	elems := lo.Map(ps, func(p *Par, _ int) string { return p.String() })
	if wildcard {
		elems = append(elems, "...")
	}
	return strings.Join(elems, ", ")
}
