package skein

// The syntax tree is a set of closed sum types: one interface per syntactic
// category with a fixed set of variants, so every consumer can dispatch
// exhaustively. Nodes are immutable once constructed; rewrites always build
// fresh trees.

// Par is the universal node: a parallel composition of zero or more
// processes of each kind. FreeCount counts the term's own unresolved
// free-variable slots; LocallyFree records which enclosing-binder indices
// the subtree references, and must be retrimmed whenever the term is rebuilt
// under a new environment depth.
type Par struct {
	Sends    []*Send
	Receives []*Receive
	News     []*New
	Matches  []*Match
	Evals    []*Eval
	Exprs    []Expr

	FreeCount   int
	LocallyFree BitSet
}

// Var is a reference to a variable slot. Only BoundVar participates in
// substitution; FreeVar and Wildcard exist only in patterns and in trees
// that have not finished elaboration.
type Var interface {
	isVar()
	String() string
}

// BoundVar is a de Bruijn index into the enclosing lexical environment,
// counted outward from the innermost binder (index 0).
type BoundVar int

// FreeVar is a free-variable slot assigned during elaboration. It must never
// reach substitution.
type FreeVar int

// Wildcard is the anonymous pattern variable. It must never reach
// substitution.
type Wildcard struct{}

func (BoundVar) isVar() {}
func (FreeVar) isVar()  {}
func (Wildcard) isVar() {}

// Channel is the addressable handle a send or receive operates on: either a
// quoted term or a variable.
type Channel interface {
	isChannel()
	String() string
}

// Quote lifts a term into channel position.
type Quote struct {
	P *Par
}

// ChanVar is a channel referenced through a variable.
type ChanVar struct {
	V Var
}

func (Quote) isChannel()   {}
func (ChanVar) isChannel() {}

// Eval dereferences a channel: it runs the channel's contents as a process.
type Eval struct {
	Chan Channel
}

// Send transmits Data on Chan. Persistent sends remain in the tuple space
// after being consumed.
type Send struct {
	Chan       Channel
	Data       []*Par
	Persistent bool

	FreeCount   int
	LocallyFree BitSet
}

// New introduces BindCount fresh bound-variable slots scoped to Body.
type New struct {
	BindCount int
	Body      *Par

	LocallyFree BitSet
}

// ReceiveBind pairs a pattern's variable count with the source channel it
// consumes from.
type ReceiveBind struct {
	FreeCount int
	Source    Channel
}

// Receive consumes from one or more sources. Body is scoped under BindCount,
// the total variable count introduced by all bind clauses.
type Receive struct {
	Binds      []*ReceiveBind
	Body       *Par
	Persistent bool
	BindCount  int

	FreeCount   int
	LocallyFree BitSet
}

// MatchCase pairs a pattern with a body scoped under the pattern's
// free-variable count.
type MatchCase struct {
	Pattern *Par
	Body    *Par
}

// Match scrutinizes Target against Cases in order.
type Match struct {
	Target *Par
	Cases  []*MatchCase

	FreeCount   int
	LocallyFree BitSet
}
