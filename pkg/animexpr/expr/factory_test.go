package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	x := newTestCell(3, 1)

	t.Run("numbers become literals", func(t *testing.T) {
		for _, v := range []any{2, int64(2), float32(2), 2.0, uint8(2)} {
			n, err := Resolve(v)
			require.NoError(t, err)
			assert.Equal(t, &Number{Value: 2}, n)
		}
	})

	t.Run("nodes pass through", func(t *testing.T) {
		orig := Add(1, 2)
		n, err := Resolve(orig)
		require.NoError(t, err)
		assert.Same(t, orig, n)

		ref := Ref(x)
		n, err = Resolve(ref)
		require.NoError(t, err)
		assert.Same(t, ref, n, "an existing value reference is not re-wrapped")
	})

	t.Run("cells become value references", func(t *testing.T) {
		n, err := Resolve(x)
		require.NoError(t, err)
		v, ok := n.(*Value)
		require.True(t, ok)
		assert.Equal(t, Tag(3), v.Tag())
		assert.Equal(t, 1.0, v.Get())
		assert.Same(t, x, v.Owner())
	})

	t.Run("cells without owner", func(t *testing.T) {
		n, err := Resolve(&plainCell{tag: 9})
		require.NoError(t, err)
		assert.Nil(t, n.(*Value).Owner())
	})

	t.Run("unresolvable", func(t *testing.T) {
		for _, v := range []any{nil, "1", struct{}{}, []int{1}} {
			_, err := Resolve(v)
			assert.ErrorIs(t, err, ErrUnresolvable)
		}
	})
}

func TestRef_CapturesAccessorsAtBuildTime(t *testing.T) {
	a := newTestCell(1, 10)
	b := newTestCell(2, 20)

	var current Cell = a
	g := Add(current, 0)

	// Rebinding the caller's variable does not change the graph.
	current = b
	_ = current

	assert.Equal(t, 10.0, mustEval(t, g))
}

func TestFactories_Shapes(t *testing.T) {
	x := newTestCell(1, 0)

	m := Multiply(1, x, 3, 4)
	assert.Equal(t, KindMultiply, m.Kind())
	assert.Equal(t, &Number{Value: 1}, m.A)
	assert.Len(t, m.Others, 2)

	empty := Divide(1, 2)
	assert.NotNil(t, empty.Others)
	assert.Empty(t, empty.Others)

	u := Round(x)
	assert.Equal(t, KindRound, u.Kind())

	c := Neq(x, 1)
	assert.Equal(t, KindNeq, c.Kind())

	cond := Condition(x, 1)
	assert.Equal(t, &Number{Value: 0}, cond.Else)

	s := Assign(x, 1)
	assert.Equal(t, KindSet, s.Kind())
	assert.IsType(t, &Value{}, s.Target)

	b := Sequence()
	assert.Empty(t, b.Nodes)
}

func TestFactories_PanicOnProgrammerError(t *testing.T) {
	assert.Panics(t, func() { Add("two", 2) })
	assert.Panics(t, func() { NewMultiOp(KindSqrt, 1, 2) })
	assert.Panics(t, func() { NewUnaryOp(KindAdd, 1) })
	assert.Panics(t, func() { NewCompare(KindNot, 1, 2) })
	assert.Panics(t, func() { Condition(1, 2, 3, 4) })
}

func TestFactories_AssignDoesNotCheckTarget(t *testing.T) {
	assert.NotPanics(t, func() { Assign(1, 2) })
}
