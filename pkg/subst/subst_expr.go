package subst

import (
	"github.com/pkg/errors"
	"github.com/skein-lang/skein/pkg/skein"
)

// SubstituteExpr rewrites an expression under env. Operators recurse into
// their operand terms and rebuild the same tag; collections recurse
// element-wise and retrim their locally-free bookkeeping. Every other
// expression kind (ground literals, and variable references, which the Par
// dispatcher resolves itself so it can splice) passes through unchanged.
func (s *Substitutor) SubstituteExpr(expr skein.Expr, env Env) (skein.Expr, error) {
	switch e := expr.(type) {
	case skein.Unary:
		arg, err := s.Substitute(e.Arg, env)
		if err != nil {
			return nil, errors.Wrapf(err, "%s operand", e.Op)
		}
		return s.canon.Expr(skein.Unary{Op: e.Op, Arg: arg}), nil

	case skein.Binary:
		left, err := s.Substitute(e.Left, env)
		if err != nil {
			return nil, errors.Wrapf(err, "%s left operand", e.Op)
		}
		right, err := s.Substitute(e.Right, env)
		if err != nil {
			return nil, errors.Wrapf(err, "%s right operand", e.Op)
		}
		return s.canon.Expr(skein.Binary{Op: e.Op, Left: left, Right: right}), nil

	case *skein.EList:
		elems, err := s.substituteAll(e.Elems, env)
		if err != nil {
			return nil, errors.Wrap(err, "list element")
		}
		return s.canon.Expr(&skein.EList{
			Elems:       elems,
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree.Until(env.CurrentShift()),
		}), nil

	case *skein.ETuple:
		elems, err := s.substituteAll(e.Elems, env)
		if err != nil {
			return nil, errors.Wrap(err, "tuple element")
		}
		return s.canon.Expr(&skein.ETuple{
			Elems:       elems,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree.Until(env.CurrentShift()),
		}), nil

	case *skein.ESet:
		elems, err := s.substituteAll(e.Elems, env)
		if err != nil {
			return nil, errors.Wrap(err, "set element")
		}
		return s.canon.Expr(&skein.ESet{
			Elems:       elems,
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree.Until(env.CurrentShift()),
		}), nil

	case *skein.EMap:
		pairs := make([]skein.KeyValue, len(e.Pairs))
		for i, kv := range e.Pairs {
			key, err := s.Substitute(kv.Key, env)
			if err != nil {
				return nil, errors.Wrapf(err, "map key %d", i)
			}
			val, err := s.Substitute(kv.Value, env)
			if err != nil {
				return nil, errors.Wrapf(err, "map value %d", i)
			}
			pairs[i] = skein.KeyValue{Key: key, Value: val}
		}
		return s.canon.Expr(&skein.EMap{
			Pairs:       pairs,
			Wildcard:    e.Wildcard,
			FreeCount:   e.FreeCount,
			LocallyFree: e.LocallyFree.Until(env.CurrentShift()),
		}), nil

	default:
		return expr, nil
	}
}

func (s *Substitutor) substituteAll(ps []*skein.Par, env Env) ([]*skein.Par, error) {
	out := make([]*skein.Par, len(ps))
	for i, p := range ps {
		sub, err := s.Substitute(p, env)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = sub
	}
	return out, nil
}
