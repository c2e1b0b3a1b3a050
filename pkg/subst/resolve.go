package subst

import (
	"github.com/pkg/errors"
	"github.com/skein-lang/skein/pkg/skein"
)

// resolveVar looks up a variable in env. A nil result with nil error means
// the reference stays unresolved at this depth (the caller keeps the
// variable unchanged). Only plain bound references are legal here; any other
// variable kind means the tree was never fully elaborated, which is fatal.
func (s *Substitutor) resolveVar(v skein.Var, env Env) (*skein.Par, error) {
	b, ok := v.(skein.BoundVar)
	if !ok {
		return nil, illegalSubstitution(v)
	}
	if val, ok := env.Get(int(b)); ok {
		return val, nil
	}
	return nil, nil
}

// SubstituteChannel rewrites a channel reference. A quoted term is
// substituted recursively and rewrapped; a variable channel that resolves
// becomes a quote of the resolved value (the channel *is* the value, already
// in term form), and one that does not is rebuilt with its index unchanged.
func (s *Substitutor) SubstituteChannel(ch skein.Channel, env Env) (skein.Channel, error) {
	switch c := ch.(type) {
	case skein.Quote:
		p, err := s.Substitute(c.P, env)
		if err != nil {
			return nil, errors.Wrap(err, "quoted term")
		}
		return s.canon.Channel(skein.Quote{P: p}), nil
	case skein.ChanVar:
		val, err := s.resolveVar(c.V, env)
		if err != nil {
			return nil, err
		}
		if val == nil {
			return s.canon.Channel(skein.ChanVar{V: c.V}), nil
		}
		return s.canon.Channel(skein.Quote{P: val}), nil
	default:
		return nil, errors.Errorf("unhandled channel kind %T", ch)
	}
}
