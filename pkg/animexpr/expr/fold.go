package expr

// backend supplies the per-kind behavior for fold. Children have already
// been folded when a method is called, in the order given by Children.
type backend[T any] interface {
	number(n *Number) T
	value(n *Value) T
	multi(n *MultiOp, a, b T, others []T) T
	unary(n *UnaryOp, operand T) T
	compare(n *Compare, left, right T) T
	cond(n *Cond, expr, ifBranch, elseBranch T) T
	set(n *Set, target *Value, source T) T
	block(n *Block, nodes []T) T
}

// fold walks n bottom-up and combines the results with b. It is the only
// place that decides which nodes are well formed, so every backend rejects
// the same graphs.
func fold[T any](n Node, b backend[T]) (T, error) {
	var zero T
	if IsNil(n) {
		return zero, ErrNilNode
	}
	if err := checkKind(n); err != nil {
		return zero, err
	}

	switch n := n.(type) {
	case *Number:
		return b.number(n), nil
	case *Value:
		return b.value(n), nil
	case *Set:
		// The target is addressed, not evaluated.
		if IsNil(n.Target) {
			return zero, ErrNilNode
		}
		target, ok := n.Target.(*Value)
		if !ok {
			return zero, &KindError{Type: KindSet.String(), Err: ErrInvalidTarget}
		}
		source, err := fold(n.Source, b)
		if err != nil {
			return zero, err
		}
		return b.set(n, target, source), nil
	}

	children := Children(n)
	folded := make([]T, len(children))
	for i, child := range children {
		r, err := fold(child, b)
		if err != nil {
			return zero, err
		}
		folded[i] = r
	}

	switch n := n.(type) {
	case *MultiOp:
		return b.multi(n, folded[0], folded[1], folded[2:]), nil
	case *UnaryOp:
		return b.unary(n, folded[0]), nil
	case *Compare:
		return b.compare(n, folded[0], folded[1]), nil
	case *Cond:
		return b.cond(n, folded[0], folded[1], folded[2]), nil
	case *Block:
		return b.block(n, folded), nil
	}
	return zero, unresolvedKind(n.Kind())
}

// checkKind verifies that a node's kind belongs to the group its variant
// represents. Hand-built nodes can carry any Kind value.
func checkKind(n Node) error {
	var ok bool
	switch n := n.(type) {
	case *MultiOp:
		ok = n.Op.IsMulti()
	case *UnaryOp:
		ok = n.Op.IsUnary()
	case *Compare:
		ok = n.Op.IsCompare()
	default:
		ok = n.Kind().Valid()
	}
	if !ok {
		return unresolvedKind(n.Kind())
	}
	return nil
}
