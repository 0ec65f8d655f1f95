// Package list implements the singly-linked node list that threads every
// tree node in non-decreasing weight order. New positions are always
// created at the head (weight zero sorts first), and reordering happens by
// swapping the values held at two positions, so no relinking is ever
// needed. Forward traversal is all the tree requires, which is why the
// list is not doubly linked.
package list

// Position is a slot in a List holding one value of type T.
type Position[T any] struct {
	next  *Position[T]
	value T
}

// Value returns the value currently stored at this position.
func (p *Position[T]) Value() T { return p.value }

// SetValue replaces the value stored at this position.
func (p *Position[T]) SetValue(v T) { p.value = v }

// Next returns the successor position, or nil if this is the last one.
func (p *Position[T]) Next() *Position[T] { return p.next }

// SwapValues exchanges the values held at two positions without touching
// the links between them.
func SwapValues[T any](a, b *Position[T]) {
	a.value, b.value = b.value, a.value
}

// List is a singly-linked list of positions ordered head-first.
type List[T any] struct {
	head *Position[T]
}

// New returns an empty list.
func New[T any]() *List[T] { return &List[T]{} }

// Head returns the first position, or nil if the list is empty.
func (l *List[T]) Head() *Position[T] { return l.head }

// PushFront creates a new zero-valued position at the head of the list
// and returns it.
func (l *List[T]) PushFront() *Position[T] {
	p := &Position[T]{next: l.head}
	l.head = p
	return p
}

// Len walks the list and returns the number of positions. It is O(n) and
// intended for diagnostics and tests.
func (l *List[T]) Len() int {
	n := 0
	for p := l.head; p != nil; p = p.next {
		n++
	}
	return n
}
