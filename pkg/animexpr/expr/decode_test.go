package expr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip converts n, pushes it through JSON and decodes it against cells.
func roundTrip(t *testing.T, n Node, cells ...*testCell) Node {
	t.Helper()
	tree, err := Convert(n)
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	out, err := Decode(decoded, tagTable(cells...))
	require.NoError(t, err)
	return out
}

func TestDecode_JSONRoundTripEvaluatesTheSame(t *testing.T) {
	x := newTestCell(1, 0.25)
	y := newTestCell(2, 0)

	graphs := map[string]Node{
		"arith":   Add(x, Multiply(2, 3, x), Pow(x, 2), Modulo(-7, 3)),
		"logic":   Or(And(x, 0), Not(Eq(x, 0.25)), Neq(1, 1)),
		"compare": Add(LessThan(x, 1), GreaterThan(x, 1), LessOrEq(x, 0.25), GreaterOrEq(x, 1)),
		"unary":   Add(Sin(x), Cos(x), Tan(x), Asin(x), Acos(x), Atan(x), Exp(x), Log(x), Sqrt(x), Round(x)),
		"cond":    Condition(GreaterThan(x, 0), Sub(x, 3), 9),
		"block":   Sequence(Assign(y, Add(x, 1)), Multiply(y, 2)),
	}

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			y.v = 0
			want := mustEval(t, g)

			y.v = 0
			got := mustEval(t, roundTrip(t, g, x, y))
			assert.Equal(t, want, got)
		})
	}
}

func TestDecode_ConvertTreeDirectly(t *testing.T) {
	x := newTestCell(5, 2)

	tree, err := Convert(Sequence(Assign(x, Add(x, 1)), x))
	require.NoError(t, err)

	n, err := Decode(tree, tagTable(x))
	require.NoError(t, err)
	assert.Equal(t, 3.0, mustEval(t, n))
	assert.Equal(t, 3.0, x.v)
}

func TestDecode_MissingElseDefaultsToZero(t *testing.T) {
	tree := map[string]any{
		"type":   "cond",
		"expr":   map[string]any{"type": "number", "value": 0.0},
		"ifNode": map[string]any{"type": "number", "value": 4.0},
	}
	n, err := Decode(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mustEval(t, n))
}

func TestDecode_MissingOthersIsEmpty(t *testing.T) {
	tree := map[string]any{
		"type": "add",
		"a":    map[string]any{"type": "number", "value": 1.0},
		"b":    map[string]any{"type": "number", "value": 2.0},
	}
	n, err := Decode(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, mustEval(t, n))
}

func TestDecode_Errors(t *testing.T) {
	num := map[string]any{"type": "number", "value": 1.0}

	tests := []struct {
		name string
		tree map[string]any
		want error
	}{
		{"unknown type", map[string]any{"type": "bogus"}, ErrUnresolvedKind},
		{"legacy mod name", map[string]any{"type": "mod", "a": num, "b": num}, ErrUnresolvedKind},
		{"missing type", map[string]any{"value": 1.0}, ErrMalformedTree},
		{"number without value", map[string]any{"type": "number"}, ErrMalformedTree},
		{"unary without operand", map[string]any{"type": "sqrt", "v": num}, ErrMalformedTree},
		{"fractional tag", map[string]any{"type": "value", "tag": 1.5}, ErrMalformedTree},
		{"value without resolver", map[string]any{"type": "value", "tag": 1.0}, ErrMalformedTree},
		{"block without nodes", map[string]any{"type": "block"}, ErrMalformedTree},
		{"block with scalar item", map[string]any{"type": "block", "nodes": []any{1.0}}, ErrMalformedTree},
		{"nested unknown", map[string]any{"type": "block", "nodes": []any{num, map[string]any{"type": "bogus"}}}, ErrUnresolvedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Decode(tt.tree, nil)
			require.Error(t, err)
			assert.Nil(t, n)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
