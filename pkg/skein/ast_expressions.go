package skein

// Expr is the expression category of the tree: ground literals, a variable
// reference, unary and binary operators, and collection literals. Ground
// literals are leaves for every rewrite pass.
type Expr interface {
	isExpr()
	String() string
}

// Ground literals.
type (
	GBool   bool
	GInt    int64
	GString string
	GUri    string
)

func (GBool) isExpr()   {}
func (GInt) isExpr()    {}
func (GString) isExpr() {}
func (GUri) isExpr()    {}

// ExprVar is a variable in expression position. During substitution a
// resolved ExprVar is spliced into its parent Par rather than kept as a
// leaf, which is how a substituted value can expand into an arbitrary
// concurrent sub-program.
type ExprVar struct {
	V Var
}

func (ExprVar) isExpr() {}

// UnaryOp tags a Unary expression.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "not"
	case OpNeg:
		return "-"
	default:
		return "?"
	}
}

// Unary applies a one-operand operator to a term.
type Unary struct {
	Op  UnaryOp
	Arg *Par
}

func (Unary) isExpr() {}

// BinaryOp tags a Binary expression.
type BinaryOp int

const (
	OpMult BinaryOp = iota
	OpDiv
	OpPlus
	OpMinus
	OpLt
	OpLte
	OpGt
	OpGte
	OpEq
	OpNeq
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "?"
	}
}

// Binary applies a two-operand operator.
type Binary struct {
	Op    BinaryOp
	Left  *Par
	Right *Par
}

func (Binary) isExpr() {}

// EList is an ordered list literal. Wildcard marks a pattern with a
// remainder slot.
type EList struct {
	Elems    []*Par
	Wildcard bool

	FreeCount   int
	LocallyFree BitSet
}

// ETuple is a fixed-arity tuple literal.
type ETuple struct {
	Elems []*Par

	FreeCount   int
	LocallyFree BitSet
}

// ESet is an unordered set literal; canonical form keeps its elements
// sorted.
type ESet struct {
	Elems    []*Par
	Wildcard bool

	FreeCount   int
	LocallyFree BitSet
}

// KeyValue is a single EMap entry.
type KeyValue struct {
	Key   *Par
	Value *Par
}

// EMap is a key-value mapping literal; canonical form keeps its pairs
// sorted by key.
type EMap struct {
	Pairs    []KeyValue
	Wildcard bool

	FreeCount   int
	LocallyFree BitSet
}

func (*EList) isExpr()  {}
func (*ETuple) isExpr() {}
func (*ESet) isExpr()   {}
func (*EMap) isExpr()   {}
