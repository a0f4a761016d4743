package expr

// Evaluator is a compiled, re-invocable expression. Each call re-reads the
// referenced cells and re-runs any assignments.
type Evaluator func() float64

// Compile turns a graph into an Evaluator. Children are compiled first and
// captured by the returned closure, so compilation happens once and
// evaluation does no dispatch on node kinds.
//
// Returns an error wrapping ErrUnresolvedKind for nodes outside the kind
// set, ErrInvalidTarget for a set whose target is not a value reference,
// and ErrNilNode for missing children.
func Compile(n Node) (Evaluator, error) {
	return fold[Evaluator](n, compiler{})
}

// compiler is the in-process backend.
type compiler struct{}

func (compiler) number(n *Number) Evaluator {
	v := n.Value
	return func() float64 { return v }
}

func (compiler) value(n *Value) Evaluator {
	return n.Get
}

// multi folds eagerly: every operand runs even when the accumulated value
// already decides the result of and/or.
func (compiler) multi(n *MultiOp, a, b Evaluator, others []Evaluator) Evaluator {
	reduce := reducers[n.Op]
	return func() float64 {
		acc := reduce(a(), b())
		for _, o := range others {
			acc = reduce(acc, o())
		}
		return acc
	}
}

func (compiler) unary(n *UnaryOp, operand Evaluator) Evaluator {
	f := unaryFuncs[n.Op]
	return func() float64 { return f(operand()) }
}

func (compiler) compare(n *Compare, left, right Evaluator) Evaluator {
	cmp := comparators[n.Op]
	return func() float64 {
		l := left()
		return cmp(l, right())
	}
}

// cond runs exactly one branch per call.
func (compiler) cond(_ *Cond, expr, ifBranch, elseBranch Evaluator) Evaluator {
	return func() float64 {
		if Truthy(expr()) {
			return ifBranch()
		}
		return elseBranch()
	}
}

func (compiler) set(_ *Set, target *Value, source Evaluator) Evaluator {
	return func() float64 {
		v := source()
		target.Set(v)
		return v
	}
}

func (compiler) block(_ *Block, nodes []Evaluator) Evaluator {
	return func() float64 {
		var ret float64
		for _, n := range nodes {
			ret = n()
		}
		return ret
	}
}
