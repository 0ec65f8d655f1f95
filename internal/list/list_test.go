package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushFrontOrders(t *testing.T) {
	l := New[int]()
	require.Nil(t, l.Head())
	require.Equal(t, 0, l.Len())

	first := l.PushFront()
	first.SetValue(1)
	second := l.PushFront()
	second.SetValue(2)
	third := l.PushFront()
	third.SetValue(3)

	// Most recently created position is the head.
	assert.Equal(t, 3, l.Len())
	assert.Same(t, third, l.Head())

	var values []int
	for p := l.Head(); p != nil; p = p.Next() {
		values = append(values, p.Value())
	}
	assert.Equal(t, []int{3, 2, 1}, values)
}

func TestNextOfLastIsNil(t *testing.T) {
	l := New[string]()
	only := l.PushFront()

	assert.Nil(t, only.Next())
}

func TestSwapValuesKeepsLinks(t *testing.T) {
	l := New[string]()
	a := l.PushFront()
	a.SetValue("a")
	b := l.PushFront()
	b.SetValue("b")

	SwapValues(a, b)

	assert.Equal(t, "b", a.Value())
	assert.Equal(t, "a", b.Value())
	// Links are untouched: b is still the head, followed by a.
	assert.Same(t, b, l.Head())
	assert.Same(t, a, b.Next())
}
