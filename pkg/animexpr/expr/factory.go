package expr

import "fmt"

// Resolve normalizes a raw argument into a node:
//   - Go numbers become *Number
//   - an existing Node is returned unchanged
//   - a Cell becomes *Value with its accessors captured now
//
// Anything else returns ErrUnresolvable.
func Resolve(v any) (Node, error) {
	switch val := v.(type) {
	case nil:
		return nil, ErrUnresolvable
	case Node:
		return val, nil
	case Cell:
		return Ref(val), nil
	}
	if f, ok := ToFloat64(v); ok {
		return &Number{Value: f}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnresolvable, v)
}

// mustResolve resolves v or panics. Factories are construction code, so an
// unresolvable argument is a programmer error.
func mustResolve(v any) Node {
	n, err := Resolve(v)
	if err != nil {
		panic("expr: " + err.Error())
	}
	return n
}

func mustResolveAll(vs []any) []Node {
	out := make([]Node, len(vs))
	for i, v := range vs {
		out[i] = mustResolve(v)
	}
	return out
}

// Literal wraps a number.
func Literal(v float64) *Number {
	return &Number{Value: v}
}

// Ref wraps a cell. The cell's Get, Set and Tag are bound at this point.
// If the cell also implements Owner it is kept for dependency registration.
func Ref(c Cell) *Value {
	owner, _ := c.(Owner)
	return &Value{
		tag:   c.Tag(),
		get:   c.Get,
		set:   c.Set,
		owner: owner,
	}
}

// NewMultiOp builds a multi-operand node of kind k.
//
// Panics if k is not a multi-operand kind or an argument cannot be resolved.
func NewMultiOp(k Kind, a, b any, rest ...any) *MultiOp {
	if !k.IsMulti() {
		panic(fmt.Sprintf("expr: %s is not a multi-operand kind", k))
	}
	return &MultiOp{
		Op:     k,
		A:      mustResolve(a),
		B:      mustResolve(b),
		Others: mustResolveAll(rest),
	}
}

// NewUnaryOp builds a unary node of kind k.
//
// Panics if k is not a unary kind or v cannot be resolved.
func NewUnaryOp(k Kind, v any) *UnaryOp {
	if !k.IsUnary() {
		panic(fmt.Sprintf("expr: %s is not a unary kind", k))
	}
	return &UnaryOp{Op: k, Operand: mustResolve(v)}
}

// NewCompare builds a comparison node of kind k.
//
// Panics if k is not a comparison kind or an argument cannot be resolved.
func NewCompare(k Kind, left, right any) *Compare {
	if !k.IsCompare() {
		panic(fmt.Sprintf("expr: %s is not a comparison kind", k))
	}
	return &Compare{Op: k, Left: mustResolve(left), Right: mustResolve(right)}
}

// Multi-operand factories. Each takes at least two operands and folds any
// extra ones left to right. Arguments may be numbers, cells or nodes.

// Add sums its operands left to right.
func Add(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindAdd, a, b, rest...)
}

// Sub subtracts each following operand from the running result.
func Sub(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindSub, a, b, rest...)
}

// Multiply multiplies its operands left to right.
func Multiply(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindMultiply, a, b, rest...)
}

// Divide divides the running result by each following operand.
func Divide(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindDivide, a, b, rest...)
}

// Pow raises the running result to each following operand.
func Pow(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindPow, a, b, rest...)
}

// Modulo takes the floored remainder, which has the sign of the divisor.
func Modulo(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindModulo, a, b, rest...)
}

// And yields 1 when every operand is truthy, else 0. All operands are evaluated.
func And(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindAnd, a, b, rest...)
}

// Or yields 1 when any operand is truthy, else 0. All operands are evaluated.
func Or(a, b any, rest ...any) *MultiOp {
	return NewMultiOp(KindOr, a, b, rest...)
}

// Unary factories.

// Sqrt is the square root.
func Sqrt(v any) *UnaryOp {
	return NewUnaryOp(KindSqrt, v)
}

// Log is the natural logarithm.
func Log(v any) *UnaryOp {
	return NewUnaryOp(KindLog, v)
}

// Sin is the sine of a radian angle.
func Sin(v any) *UnaryOp {
	return NewUnaryOp(KindSin, v)
}

// Cos is the cosine of a radian angle.
func Cos(v any) *UnaryOp {
	return NewUnaryOp(KindCos, v)
}

// Tan is the tangent of a radian angle.
func Tan(v any) *UnaryOp {
	return NewUnaryOp(KindTan, v)
}

// Acos is the arccosine, in radians.
func Acos(v any) *UnaryOp {
	return NewUnaryOp(KindAcos, v)
}

// Asin is the arcsine, in radians.
func Asin(v any) *UnaryOp {
	return NewUnaryOp(KindAsin, v)
}

// Atan is the arctangent, in radians.
func Atan(v any) *UnaryOp {
	return NewUnaryOp(KindAtan, v)
}

// Exp is e raised to the operand.
func Exp(v any) *UnaryOp {
	return NewUnaryOp(KindExp, v)
}

// Round rounds to the nearest integer, halves toward +Inf.
func Round(v any) *UnaryOp {
	return NewUnaryOp(KindRound, v)
}

// Not yields 1 for a falsy operand, else 0.
func Not(v any) *UnaryOp {
	return NewUnaryOp(KindNot, v)
}

// Comparison factories. Each evaluates l before r.

// Eq yields 1 when l == r, else 0.
func Eq(l, r any) *Compare {
	return NewCompare(KindEq, l, r)
}

// Neq yields 1 when l != r, else 0.
func Neq(l, r any) *Compare {
	return NewCompare(KindNeq, l, r)
}

// LessThan yields 1 when l < r, else 0.
func LessThan(l, r any) *Compare {
	return NewCompare(KindLessThan, l, r)
}

// GreaterThan yields 1 when l > r, else 0.
func GreaterThan(l, r any) *Compare {
	return NewCompare(KindGreaterThan, l, r)
}

// LessOrEq yields 1 when l <= r, else 0.
func LessOrEq(l, r any) *Compare {
	return NewCompare(KindLessOrEq, l, r)
}

// GreaterOrEq yields 1 when l >= r, else 0.
func GreaterOrEq(l, r any) *Compare {
	return NewCompare(KindGreaterOrEq, l, r)
}

// Condition builds a cond node. The else branch is optional and defaults to
// literal 0; a nil else is treated as omitted.
//
// Panics if more than one else branch is given or an argument cannot be resolved.
func Condition(expr, ifNode any, elseNode ...any) *Cond {
	if len(elseNode) > 1 {
		panic("expr: condition takes at most one else branch")
	}
	var elseN Node = Literal(0)
	if len(elseNode) == 1 && elseNode[0] != nil {
		elseN = mustResolve(elseNode[0])
	}
	return &Cond{
		Expr: mustResolve(expr),
		If:   mustResolve(ifNode),
		Else: elseN,
	}
}

// Assign builds a set node. The target is expected to be a cell or a *Value;
// this is checked when the graph is compiled or converted, not here.
func Assign(target, source any) *Set {
	return &Set{Target: mustResolve(target), Source: mustResolve(source)}
}

// Sequence builds a block node evaluated left to right.
func Sequence(nodes ...any) *Block {
	return &Block{Nodes: mustResolveAll(nodes)}
}
