package benchmarks

import (
	"encoding/json"
	"testing"

	"github.com/randalmurphal/animexpr/pkg/animexpr/cell"
	"github.com/randalmurphal/animexpr/pkg/animexpr/engine"
	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
)

// BenchmarkEngine_Update measures evaluating a native expression node.
func BenchmarkEngine_Update(b *testing.B) {
	x, y := cell.New(1), cell.New(2)
	m := newEngine(b, buildArithmeticGraph(x, y), x, y)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Update(100)
	}
}

// BenchmarkEngine_CreateNode measures decoding and compiling a JSON config.
func BenchmarkEngine_CreateNode(b *testing.B) {
	tree, err := expr.Convert(buildArithmeticGraph(cell.New(1), cell.New(2)))
	if err != nil {
		b.Fatal(err)
	}
	data, err := json.Marshal(expr.NativeConfig(tree))
	if err != nil {
		b.Fatal(err)
	}
	var config expr.Tree
	if err := json.Unmarshal(data, &config); err != nil {
		b.Fatal(err)
	}

	m := engine.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.CreateNode(expr.Tag(i), config)
	}
}

func newEngine(b *testing.B, graph expr.Node, cells ...*cell.Cell) *engine.Manager {
	b.Helper()
	m := engine.New()
	for _, c := range cells {
		if err := m.CreateValue(c.Tag(), c.Get()); err != nil {
			b.Fatal(err)
		}
	}
	tree, err := expr.Convert(graph)
	if err != nil {
		b.Fatal(err)
	}
	if err := m.CreateNode(100, expr.NativeConfig(tree)); err != nil {
		b.Fatal(err)
	}
	return m
}
