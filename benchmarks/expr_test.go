package benchmarks

import (
	"testing"

	"github.com/randalmurphal/animexpr/pkg/animexpr/cell"
	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

// BenchmarkCompile_Arithmetic measures compiling a mid-sized arithmetic graph.
func BenchmarkCompile_Arithmetic(b *testing.B) {
	graph := buildArithmeticGraph(cell.New(1), cell.New(2))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.Compile(graph)
	}
}

// BenchmarkEvaluate_Arithmetic measures one run of a compiled evaluator.
func BenchmarkEvaluate_Arithmetic(b *testing.B) {
	eval := mustCompile(buildArithmeticGraph(cell.New(1), cell.New(2)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = eval()
	}
}

// BenchmarkEvaluate_Spring measures a stateful block with set nodes.
func BenchmarkEvaluate_Spring(b *testing.B) {
	eval := mustCompile(buildSpringGraph(cell.New(100), cell.New(0), cell.New(0)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = eval()
	}
}

// BenchmarkEvaluate_Wide measures a multi-op with many operands.
func BenchmarkEvaluate_Wide(b *testing.B) {
	x := cell.New(1)
	rest := make([]any, 64)
	for i := range rest {
		rest[i] = x
	}
	eval := mustCompile(expr.Add(x, x, rest...))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = eval()
	}
}

// BenchmarkConvert_Arithmetic measures conversion to the wire form.
func BenchmarkConvert_Arithmetic(b *testing.B) {
	graph := buildArithmeticGraph(cell.New(1), cell.New(2))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = expr.Convert(graph)
	}
}

// BenchmarkCollectArguments measures argument collection for attach.
func BenchmarkCollectArguments(b *testing.B) {
	graph := buildSpringGraph(cell.New(100), cell.New(0), cell.New(0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = expr.CollectArguments(graph, nil)
	}
}

// Helper functions

func buildArithmeticGraph(x, y *cell.Cell) expr.Node {
	return expr.Condition(
		expr.And(expr.GreaterThan(x, 0), expr.LessThan(y, 10)),
		expr.Add(
			expr.Multiply(x, y, 2),
			expr.Sqrt(expr.Pow(x, 2)),
			expr.Modulo(y, 3),
		),
		expr.Sub(expr.Round(expr.Divide(x, y)), 1),
	)
}

func buildSpringGraph(target, position, velocity *cell.Cell) expr.Node {
	return expr.Sequence(
		expr.Assign(velocity, expr.Multiply(
			expr.Add(velocity, expr.Multiply(expr.Sub(target, position), 0.2)),
			0.7,
		)),
		expr.Assign(position, expr.Add(position, velocity)),
	)
}

func mustCompile(n expr.Node) expr.Evaluator {
	eval, err := expr.Compile(n)
	if err != nil {
		panic(err)
	}
	return eval
}
