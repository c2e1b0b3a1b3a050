package subst

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/skein-lang/skein/pkg/skein"
)

// IllegalSubstitutionError reports that a variable other than a plain bound
// reference reached the resolver. Substitution is only ever applied to fully
// elaborated trees, so this is a contract violation in the upstream stage
// that produced the tree; it is never retried and carries no recovery path.
type IllegalSubstitutionError struct {
	Var skein.Var
}

func (e *IllegalSubstitutionError) Error() string {
	return fmt.Sprintf("illegal substitution of %T %s: only bound variables may be substituted", e.Var, e.Var)
}

func illegalSubstitution(v skein.Var) error {
	return errors.WithStack(&IllegalSubstitutionError{Var: v})
}

// IsIllegalSubstitution reports whether err is (or wraps) an
// IllegalSubstitutionError.
func IsIllegalSubstitution(err error) bool {
	var ise *IllegalSubstitutionError
	return errors.As(err, &ise)
}
