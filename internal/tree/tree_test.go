package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/huffman/internal/list"
)

// testTree drives the tree the way the codec does: expand on a first
// occurrence, increment on a repeat.
type testTree struct {
	order *list.List[*Node]
	nodes map[int]*Node
	nyt   *Node
	root  *Node
}

func newTestTree() *testTree {
	tt := &testTree{
		order: list.New[*Node](),
		nodes: make(map[int]*Node),
	}
	tt.nyt = New(SymbolNYT, 0, tt.order.PushFront())
	tt.root = tt.nyt
	tt.nodes[SymbolNYT] = tt.nyt
	return tt
}

func (tt *testTree) feed(b byte) {
	if node, ok := tt.nodes[int(b)]; ok {
		node.Increment()
		return
	}
	valuePos := tt.order.PushFront()
	nytPos := tt.order.PushFront()
	value := New(int(b), 1, valuePos)
	tt.nyt = tt.nyt.Expand(value, nytPos)
	tt.nodes[SymbolNYT] = tt.nyt
	tt.nodes[int(b)] = value
}

// auditSiblingProperty checks that ranks never decrease along the order
// list.
func (tt *testTree) auditSiblingProperty(t *testing.T) {
	t.Helper()
	prev := -1
	for p := tt.order.Head(); p != nil; p = p.Next() {
		r := p.Value().rank()
		require.GreaterOrEqual(t, r, prev, "rank order violated at %v", p.Value())
		prev = r
	}
}

// auditTree checks structural invariants: parent/child consistency,
// internal weights as child sums, cached codes equal to the root path,
// and exactly one zero-weight NYT leaf.
func (tt *testTree) auditTree(t *testing.T) {
	t.Helper()
	nytSeen := 0
	var walk func(n *Node, path string)
	walk = func(n *Node, path string) {
		require.Equal(t, path, n.code.String(), "stale code cache on %v", n)
		if n.IsNYT() {
			nytSeen++
			require.Equal(t, 0, n.weight)
		}
		if n.IsInternal() {
			require.NotNil(t, n.left)
			require.NotNil(t, n.right)
			require.Same(t, n, n.left.parent)
			require.Same(t, n, n.right.parent)
			require.Equal(t, n.left.weight+n.right.weight, n.weight)
			walk(n.left, path+"0")
			walk(n.right, path+"1")
		}
	}
	walk(tt.root, "")
	require.Equal(t, 1, nytSeen)
}

func TestSingleExpandShape(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')

	root := tt.root
	require.True(t, root.IsInternal())
	assert.Equal(t, 1, root.Weight())

	require.True(t, root.Left().IsNYT())
	assert.Equal(t, 0, root.Left().Weight())
	assert.Equal(t, "0", root.Left().Code().String())
	assert.Same(t, tt.nyt, root.Left())

	leaf := root.Right()
	require.True(t, leaf.IsLeaf())
	assert.Equal(t, int('a'), leaf.Symbol())
	assert.Equal(t, 1, leaf.Weight())
	assert.Equal(t, "1", leaf.Code().String())
}

func TestRepeatStopsAtParent(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')
	tt.feed('a')

	// The leaf outranks the root but never swaps with its own parent;
	// the cascade increments the root instead.
	leaf := tt.nodes[int('a')]
	assert.Equal(t, 2, leaf.Weight())
	assert.Equal(t, 2, tt.root.Weight())
	assert.Equal(t, "1", leaf.Code().String())

	tt.auditSiblingProperty(t)
	tt.auditTree(t)
}

// Feeding a, b, c exercises both swap directions: the internal node
// created for b bubbles past the equal-weight leaf a, and the one created
// for c swaps twice before the cascade settles.
func TestThreeSymbolCascade(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')
	tt.feed('b')
	tt.feed('c')

	assert.Equal(t, "11", tt.nodes[int('a')].Code().String())
	assert.Equal(t, "10", tt.nodes[int('b')].Code().String())
	assert.Equal(t, "01", tt.nodes[int('c')].Code().String())
	assert.Equal(t, "00", tt.nyt.Code().String())
	assert.Equal(t, 3, tt.root.Weight())

	tt.auditSiblingProperty(t)
	tt.auditTree(t)
}

func TestNYTCodeDeepensLeft(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')
	assert.Equal(t, "0", tt.nyt.Code().String())
	tt.feed('b')
	// After the swap the NYT subtree hangs under code 1.
	assert.Equal(t, "10", tt.nyt.Code().String())
}

func TestWalkFollowsEdges(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')

	assert.Same(t, tt.root.Left(), tt.root.Walk(BitLeft))
	assert.Same(t, tt.root.Right(), tt.root.Walk(BitRight))
}

func TestWalkInvalidBitPanics(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')

	assert.Panics(t, func() { tt.root.Walk(2) })
}

// Invariants must hold after every single operation, not just at the end.
func TestInvariantsUnderRandomFeed(t *testing.T) {
	tt := newTestTree()

	// Small alphabet to force frequent rank collisions and swaps.
	fed := make(map[byte]bool)
	state := uint64(0x12345678)
	for i := 0; i < 2000; i++ {
		state = state*6364136223846793005 + 1442695040888963407
		b := byte('a' + state>>60&0x7)
		fed[b] = true
		tt.feed(b)
		tt.auditSiblingProperty(t)
		tt.auditTree(t)
	}

	// Every fed symbol has exactly one leaf.
	leaves := 0
	for p := tt.order.Head(); p != nil; p = p.Next() {
		if p.Value().IsLeaf() && !p.Value().IsNYT() {
			leaves++
		}
	}
	assert.Equal(t, len(fed), leaves)
}

func TestStringRendering(t *testing.T) {
	tt := newTestTree()
	tt.feed('a')

	assert.Equal(t, "{NYT code=0 cnt=0}", tt.nyt.String())
	assert.Equal(t, "{a code=1 cnt=1}", tt.nodes[int('a')].String())
	assert.Equal(t, "{# code= cnt=1}", tt.root.String())
}
