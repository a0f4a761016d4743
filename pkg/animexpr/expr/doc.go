/*
Package expr builds, evaluates and serializes animated expression graphs.

# Overview

An expression graph is an immutable tree of typed nodes over numbers and
external value cells. The same graph can be compiled into an in-process
Evaluator or converted into a wire Tree for a native engine. Both backends
share one traversal, so they accept and reject exactly the same graphs.

# Building Graphs

Factories accept numbers, cells and existing nodes:

	x := cell.New(0)
	y := cell.New(0)

	g := expr.Sequence(
	    expr.Assign(x, 1),
	    expr.Assign(y, expr.Add(x, 2)),
	)

Numbers become literals, cells become value references (their accessors are
captured at that moment) and nodes pass through. Factories panic on an
argument that is none of these.

# Node Kinds

	number                                 literal
	value                                  cell reference
	add sub multiply divide pow modulo     multi-operand, folded left to right
	and or                                 multi-operand, not short-circuited
	sqrt log sin cos tan acos asin atan    unary (radians)
	exp round not                          unary
	eq neq lessThan greaterThan            comparison, yields 1 or 0
	lessOrEq greaterOrEq                   comparison, yields 1 or 0
	cond                                   lazy: exactly one branch runs
	set                                    writes source into a cell, yields it
	block                                  runs children in order, yields the last

# Evaluation

	eval, err := expr.Compile(g)
	if err != nil {
	    return err
	}
	v := eval() // 3; x is 1, y is 3

Cells are re-read on every call. modulo is floored, so modulo(-1, 3) is 2.
round takes halves toward +Inf. Zero and NaN are false, anything else is
true.

# Wire Form

	tree, err := expr.Convert(expr.Add(x, 2))
	// {"type":"add","a":{"type":"value","tag":1},"b":{"type":"number","value":2},"others":[]}

Value references serialize as their tag only. Decode reverses Convert,
binding tags through a TagResolver.

# Dependencies

CollectArguments lists every value reference in traversal order, without
removing duplicates, so attach and detach register and unregister exactly
the same set.
*/
package expr
