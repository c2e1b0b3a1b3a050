package subst

import "github.com/skein-lang/skein/pkg/skein"

// Env is the lexical scope a substitution pass runs under: a base mapping
// from de Bruijn index to resolved value, plus a shift counter marking how
// many binder levels have been pushed since the base without a value.
//
// Env is an immutable value. Shift and Bind return fresh environments and
// never touch the receiver, so one Env can be shared across any number of
// recursive calls (and across goroutines) from the same frame.
type Env struct {
	bindings map[int]*skein.Par
	shift    int
}

// NewEnv returns an empty environment with zero shift.
func NewEnv() Env {
	return Env{}
}

// Bind returns a copy of the environment with value resolved at the given
// base index. Indices are relative to the environment's base frame, before
// any shifting.
func (e Env) Bind(index int, value *skein.Par) Env {
	m := make(map[int]*skein.Par, len(e.bindings)+1)
	for k, v := range e.bindings {
		m[k] = v
	}
	m[index] = value
	return Env{bindings: m, shift: e.shift}
}

// Get resolves a de Bruijn index at the current depth. Indices below the
// shift refer to binders introduced since the base frame and are always
// absent; higher indices are looked up in the base mapping after undoing the
// shift. Absence is the ordinary "still free at this depth" case, not an
// error.
func (e Env) Get(index int) (*skein.Par, bool) {
	if index < e.shift {
		return nil, false
	}
	v, ok := e.bindings[index-e.shift]
	return v, ok
}

// Shift returns a copy of the environment with n additional binder levels
// pushed, representing descent into a scope that introduces n slots with no
// substitution value yet assigned.
func (e Env) Shift(n int) Env {
	return Env{bindings: e.bindings, shift: e.shift + n}
}

// CurrentShift returns the accumulated shift count. Nodes trim their
// locally-free bookkeeping to this depth when rebuilt.
func (e Env) CurrentShift() int {
	return e.shift
}

// IsEmpty reports whether the environment has no bindings and no shift.
func (e Env) IsEmpty() bool {
	return len(e.bindings) == 0 && e.shift == 0
}
