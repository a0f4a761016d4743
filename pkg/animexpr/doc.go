// Package animexpr builds numeric expression graphs over animated value
// cells and evaluates them in process or on a native engine.
//
// # Quick Start
//
//	x := cell.New(2)
//	y := cell.New(3)
//
//	e := animexpr.New(expr.Condition(
//		expr.GreaterThan(x, y),
//		expr.Sub(x, y),
//		expr.Add(x, y, 1),
//	))
//	if err := e.Attach(); err != nil {
//		return err
//	}
//	defer e.Detach()
//
//	v, err := e.Value() // 6
//
// # Lifecycle
//
// An Expression starts detached. Attach collects every value reference in
// the graph and registers the expression as a dependent of each reference's
// owning cell, once per occurrence. Detach removes exactly those
// registrations, so an attach/detach pair leaves every cell's dependent
// list as it found it.
//
// Value compiles the graph into an evaluator the first time it is called
// and reuses it afterwards. Cell values are read on every call.
//
// # Nested Expressions
//
// An Expression is itself a cell, so it can be passed to any factory:
//
//	inner := animexpr.New(expr.Add(x, 1))
//	outer := animexpr.New(expr.Multiply(inner, 2))
//
// Reading it evaluates its graph; an evaluation error is logged and reads
// as 0. Writes through a set node are ignored. Attaching outer registers it
// as a dependent of inner, not of inner's own arguments. On a native engine
// inner is referenced by its Tag, so it must be attached to the same engine
// and updated before outer.
//
// # Native Engines
//
// NativeConfig describes the expression to a native engine as
// {type: "expression", graph: Tree}. With WithNativeDriver the config is
// registered on Attach under the expression's Tag and dropped on Detach.
// See package engine for an in-process implementation.
//
// # Observability
//
// WithLogger, WithMetrics and WithSpanManager plug in the helpers from
// package observability. All default to no-ops.
package animexpr
