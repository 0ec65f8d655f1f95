// Package tree implements the dynamic Huffman tree shared by the encoder
// and decoder. Both sides feed it the same symbol sequence, so the tree
// shape, the cached codes and the weight ordering stay in lockstep without
// ever transmitting a code table.
//
// The ordering invariant is the FGK sibling property: walking the node
// list from the head, ranks never decrease, where rank is twice the weight
// plus one for internal nodes. The tie-break makes internal nodes bubble
// past equal-weight leaves during a cascade, which is what keeps
// parent-child edges legal after a swap.
package tree

import (
	"fmt"

	"github.com/scigolib/huffman/internal/bitbuf"
	"github.com/scigolib/huffman/internal/list"
)

// Pseudo-symbols stored on non-byte nodes. Byte symbols occupy 0..255.
const (
	// SymbolNYT marks the single not-yet-transmitted leaf.
	SymbolNYT = -1
	// SymbolInternal marks non-leaf nodes.
	SymbolInternal = -2
)

// Edge bit values: a left edge contributes 0 to a code, a right edge 1.
const (
	BitLeft  byte = 0
	BitRight byte = 1
)

// Code is the bit-buffer type used for cached root-to-node codes.
type Code = bitbuf.Buffer[uint64]

// Position is a node's slot in the weight-ordered list.
type Position = list.Position[*Node]

// Node is one node of the adaptive Huffman tree. Every node owns exactly
// one position in the weight-ordered list and caches its current code so
// emitting a symbol is O(1).
type Node struct {
	symbol int
	weight int
	pos    *Position

	left   *Node
	right  *Node
	parent *Node

	code *Code
}

// New creates a node with the given symbol and weight and binds it to pos.
func New(symbol, weight int, pos *Position) *Node {
	n := &Node{
		symbol: symbol,
		weight: weight,
		pos:    pos,
		code:   bitbuf.New[uint64](0, bitbuf.Linear),
	}
	pos.SetValue(n)
	return n
}

// Symbol returns the node's symbol, or SymbolNYT / SymbolInternal.
func (n *Node) Symbol() int { return n.symbol }

// Weight returns the occurrence count represented by the node's subtree.
func (n *Node) Weight() int { return n.weight }

// IsInternal reports whether the node has children.
func (n *Node) IsInternal() bool { return n.symbol == SymbolInternal }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return !n.IsInternal() }

// IsNYT reports whether this is the not-yet-transmitted leaf.
func (n *Node) IsNYT() bool { return n.symbol == SymbolNYT }

// Code returns the cached root-to-node code. Callers must not modify it.
func (n *Node) Code() *Code { return n.code }

// Left returns the left child, or nil on leaves.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil on leaves.
func (n *Node) Right() *Node { return n.right }

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Walk follows one edge: BitLeft to the left child, BitRight to the right.
// Any other value is a programming error and panics.
func (n *Node) Walk(bit byte) *Node {
	switch bit {
	case BitLeft:
		return n.left
	case BitRight:
		return n.right
	}
	panic(fmt.Sprintf("tree: invalid bit %d", bit))
}

// rank orders nodes for the sibling property. At equal weight an internal
// node ranks above a leaf, so cascading internal nodes skip past
// same-weight leaves instead of stopping level with them.
func (n *Node) rank() int {
	r := 2 * n.weight
	if n.IsInternal() {
		r++
	}
	return r
}

// adjustCodeToParent rebuilds the node's cached code as the parent's code
// followed by the given edge bit, then recurses into the subtree.
func (n *Node) adjustCodeToParent(bit byte) {
	code := n.parent.code.Clone()
	code.AppendBit(bit)
	n.code = code

	if n.left != nil {
		n.left.adjustCodeToParent(BitLeft)
	}
	if n.right != nil {
		n.right.adjustCodeToParent(BitRight)
	}
}

// successor returns the node after n in the weight-ordered list, or nil.
func (n *Node) successor() *Node {
	if next := n.pos.Next(); next != nil {
		return next.Value()
	}
	return nil
}

// swapWith exchanges the tree positions and list positions of two nodes.
// Each node is re-attached under the other's parent on the other's side,
// and both subtrees get their codes recomputed. Swapping a node with its
// own parent is not legal here; Increment screens that case out.
func (n *Node) swapWith(o *Node) {
	nWasLeft := n.parent.left == n
	oWasLeft := o.parent.left == o

	if nWasLeft {
		n.parent.left = o
	} else {
		n.parent.right = o
	}
	if oWasLeft {
		o.parent.left = n
	} else {
		o.parent.right = n
	}

	n.parent, o.parent = o.parent, n.parent

	if oWasLeft {
		n.adjustCodeToParent(BitLeft)
	} else {
		n.adjustCodeToParent(BitRight)
	}
	if nWasLeft {
		o.adjustCodeToParent(BitLeft)
	} else {
		o.adjustCodeToParent(BitRight)
	}

	list.SwapValues(n.pos, o.pos)
	n.pos, o.pos = o.pos, n.pos
}

// Increment bumps the node's weight and restores the sibling property,
// then cascades the increment toward the root.
//
// The node first slides past every successor it now outranks. An internal
// node thereby skips same-weight leaves, so the weight mass that shrank is
// on its old upward path and the cascade continues through the pre-swap
// parent. A leaf only overtakes strictly lighter nodes, so its new parent
// is the one that gained weight. The loop never swaps a node with its own
// parent; that configuration appears when the node is sibling to the NYT
// leaf, and the parent's own increment handles it next.
func (n *Node) Increment() {
	n.weight++

	beforeParent := n.parent

	for {
		s := n.successor()
		if s == nil || n.rank() <= s.rank() {
			break
		}
		if s == n.parent {
			break
		}
		n.swapWith(s)
	}

	if n.IsInternal() {
		if beforeParent != nil {
			beforeParent.Increment()
		}
	} else if n.parent != nil {
		n.parent.Increment()
	}
}

// Expand converts the current NYT leaf into an internal node whose left
// child is a fresh NYT leaf bound to nytPos and whose right child is
// value, the weight-1 leaf for the newly seen symbol. The now-internal
// node is then incremented, cascading upward. Returns the new NYT leaf.
func (n *Node) Expand(value *Node, nytPos *Position) *Node {
	newNYT := New(SymbolNYT, 0, nytPos)
	newNYT.parent = n
	n.left = newNYT

	value.parent = n
	n.right = value

	newNYT.adjustCodeToParent(BitLeft)
	value.adjustCodeToParent(BitRight)

	n.symbol = SymbolInternal
	n.Increment()

	return newNYT
}

// String renders the node for debugging, e.g. {a code=101 cnt=3}.
func (n *Node) String() string {
	var label string
	switch {
	case n.IsNYT():
		label = "NYT"
	case n.IsInternal():
		label = "#"
	default:
		label = string(rune(n.symbol))
	}
	return fmt.Sprintf("{%s code=%s cnt=%d}", label, n.code, n.weight)
}
