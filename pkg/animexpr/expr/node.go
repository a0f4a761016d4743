package expr

// Tag is the stable native identifier of a value cell. It is the only
// thing serialized for a value reference.
type Tag int

// Cell is an externally owned mutable animated scalar.
type Cell interface {
	Get() float64
	Set(v float64)
	Tag() Tag
}

// Dependent is anything that can be registered on a cell's owner, typically
// an expression that must be refreshed when the cell changes.
type Dependent interface {
	ID() string
}

// Owner is implemented by cells that track their dependents. Cells that do
// not implement it are still usable; attach simply skips them.
type Owner interface {
	AddDependent(d Dependent)
	RemoveDependent(d Dependent)
}

// Node is an immutable expression graph node. The set of implementations is
// closed to this package.
type Node interface {
	Kind() Kind
	node()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Value references an external cell. The accessors are captured when the
// node is built, so later changes to what the caller's variable points at
// do not affect the graph.
type Value struct {
	tag   Tag
	get   func() float64
	set   func(float64)
	owner Owner
}

// MultiOp folds A and B, then each of Others, left to right.
type MultiOp struct {
	Op     Kind
	A, B   Node
	Others []Node
}

// UnaryOp applies Op to Operand.
type UnaryOp struct {
	Op      Kind
	Operand Node
}

// Compare applies the comparison Op to Left and Right.
type Compare struct {
	Op          Kind
	Left, Right Node
}

// Cond evaluates If when Expr is truthy and Else otherwise.
type Cond struct {
	Expr Node
	If   Node
	Else Node
}

// Set writes Source through Target, which must be a *Value.
type Set struct {
	Target Node
	Source Node
}

// Block evaluates Nodes in order and yields the last result.
type Block struct {
	Nodes []Node
}

func (*Number) Kind() Kind    { return KindNumber }
func (*Value) Kind() Kind     { return KindValue }
func (n *MultiOp) Kind() Kind { return n.Op }
func (n *UnaryOp) Kind() Kind { return n.Op }
func (n *Compare) Kind() Kind { return n.Op }
func (*Cond) Kind() Kind      { return KindCond }
func (*Set) Kind() Kind       { return KindSet }
func (*Block) Kind() Kind     { return KindBlock }

func (*Number) node()  {}
func (*Value) node()   {}
func (*MultiOp) node() {}
func (*UnaryOp) node() {}
func (*Compare) node() {}
func (*Cond) node()    {}
func (*Set) node()     {}
func (*Block) node()   {}

// NewValue builds a value reference from explicit accessors. owner may be nil.
func NewValue(tag Tag, get func() float64, set func(float64), owner Owner) *Value {
	return &Value{tag: tag, get: get, set: set, owner: owner}
}

// Tag returns the captured stable tag.
func (v *Value) Tag() Tag { return v.tag }

// Get reads the cell's current value.
func (v *Value) Get() float64 { return v.get() }

// Set writes through to the cell. Cells captured without a setter ignore writes.
func (v *Value) Set(x float64) {
	if v.set != nil {
		v.set(x)
	}
}

// Owner returns the dependency owner captured at resolution time, or nil.
func (v *Value) Owner() Owner { return v.owner }

// Children returns the direct children of n in evaluation order. It is the
// single definition of graph structure shared by the collector, the
// evaluator compiler and the converter.
func Children(n Node) []Node {
	if IsNil(n) {
		return nil
	}
	switch n := n.(type) {
	case *MultiOp:
		out := make([]Node, 0, 2+len(n.Others))
		out = append(out, n.A, n.B)
		return append(out, n.Others...)
	case *UnaryOp:
		return []Node{n.Operand}
	case *Compare:
		return []Node{n.Left, n.Right}
	case *Cond:
		return []Node{n.Expr, n.If, n.Else}
	case *Set:
		return []Node{n.Target, n.Source}
	case *Block:
		return n.Nodes
	default:
		return nil
	}
}

// IsNil reports whether n is nil or a nil pointer of one of the variants.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Number:
		return n == nil
	case *Value:
		return n == nil
	case *MultiOp:
		return n == nil
	case *UnaryOp:
		return n == nil
	case *Compare:
		return n == nil
	case *Cond:
		return n == nil
	case *Set:
		return n == nil
	case *Block:
		return n == nil
	}
	return false
}
