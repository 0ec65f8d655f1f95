// Package bitbuf implements an unbounded FIFO of bits backed by an array
// of fixed-width cells. Bits are appended on the right and trimmed from
// the left; appending an n-bit code followed by trimming n bits reproduces
// the code exactly. The cell width is a type parameter so the same code
// serves 8-, 16-, 32- and 64-bit storage.
package bitbuf

import (
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// Mode selects the growth policy applied when an append outgrows the
// current storage.
type Mode int

const (
	// Linear grows storage to exactly the requested number of cells.
	Linear Mode = iota
	// Doubling repeatedly doubles storage until it is sufficient.
	Doubling
)

// Buffer is a FIFO bit queue over cells of type C.
//
// Bit positions are absolute indices into the cell array, most significant
// bit of cell 0 first. head is the index of the oldest live bit, tail the
// index one past the newest. Every bit at index >= tail inside allocated
// storage is zero; this lets AppendZeros advance tail without touching
// memory.
type Buffer[C constraints.Unsigned] struct {
	cells []C
	head  int
	tail  int
	mode  Mode
}

// New returns a buffer with storage for nCells cells and the given growth
// mode.
func New[C constraints.Unsigned](nCells int, mode Mode) *Buffer[C] {
	return &Buffer[C]{cells: make([]C, nCells), mode: mode}
}

// FromString builds a buffer from a string of '0' and '1' runes. All other
// runes are ignored, so "1010 0001" and "1010_0001" both work.
func FromString[C constraints.Unsigned](s string) *Buffer[C] {
	b := New[C](0, Linear)
	for _, r := range s {
		switch r {
		case '0':
			b.AppendBit(0)
		case '1':
			b.AppendBit(1)
		}
	}
	return b
}

// CellBits returns the width W of one storage cell in bits.
func (b *Buffer[C]) CellBits() int {
	return bits.Len64(uint64(^C(0)))
}

// BitsUsed returns the number of live bits in the buffer.
func (b *Buffer[C]) BitsUsed() int { return b.tail - b.head }

// BitsFree returns the number of bits that can be appended before the
// buffer has to grow or compact.
func (b *Buffer[C]) BitsFree() int { return len(b.cells)*b.CellBits() - b.tail }

// IsEmpty reports whether the buffer holds no bits.
func (b *Buffer[C]) IsEmpty() bool { return b.head == b.tail }

// bit returns the bit at absolute index i as 0 or 1.
func (b *Buffer[C]) bit(i int) uint64 {
	w := b.CellBits()
	return uint64(b.cells[i/w]>>(w-1-i%w)) & 1
}

func (b *Buffer[C]) setBit(i int) {
	w := b.CellBits()
	b.cells[i/w] |= C(1) << (w - 1 - i%w)
}

// compact drops whole cells that hold only trimmed bits, sliding the live
// region to the front of storage. Freed cells at the end are zeroed to
// keep the bits-beyond-tail-are-zero invariant.
func (b *Buffer[C]) compact() {
	w := b.CellBits()
	k := b.head / w
	if k == 0 {
		return
	}
	copy(b.cells, b.cells[k:])
	for i := len(b.cells) - k; i < len(b.cells); i++ {
		b.cells[i] = 0
	}
	b.head -= k * w
	b.tail -= k * w
}

// ensure makes room for k more bits after tail, compacting first and
// growing per the configured mode if compaction is not enough.
func (b *Buffer[C]) ensure(k int) {
	if b.BitsFree() >= k {
		return
	}
	b.compact()
	if b.BitsFree() >= k {
		return
	}
	w := b.CellBits()
	need := (b.tail + k + w - 1) / w
	size := len(b.cells)
	switch b.mode {
	case Doubling:
		if size == 0 {
			size = 1
		}
		for size < need {
			size *= 2
		}
	default:
		size = need
	}
	grown := make([]C, size)
	copy(grown, b.cells)
	b.cells = grown
}

// AppendZeros appends k zero bits.
func (b *Buffer[C]) AppendZeros(k int) {
	b.ensure(k)
	b.tail += k
}

// AppendBit appends a single bit. The value must be 0 or 1.
func (b *Buffer[C]) AppendBit(bit byte) {
	if bit > 1 {
		panic(fmt.Sprintf("bitbuf: invalid bit %d", bit))
	}
	b.ensure(1)
	if bit == 1 {
		b.setBit(b.tail)
	}
	b.tail++
}

// AppendLowBits appends the n low bits of v, most significant first.
// Together with AppendZeros this lets raw bytes be injected into the
// stream.
func (b *Buffer[C]) AppendLowBits(v byte, n int) {
	b.ensure(n)
	for i := n - 1; i >= 0; i-- {
		if v>>i&1 == 1 {
			b.setBit(b.tail)
		}
		b.tail++
	}
}

// AppendBits appends every bit of other in order. other is not modified.
func (b *Buffer[C]) AppendBits(other *Buffer[C]) {
	n := other.BitsUsed()
	b.ensure(n)
	for i := other.head; i < other.tail; i++ {
		if other.bit(i) == 1 {
			b.setBit(b.tail)
		}
		b.tail++
	}
}

// PadToFullByte appends the minimum number of zero bits so that the bit
// count is a multiple of 8. It is a no-op when already aligned.
func (b *Buffer[C]) PadToFullByte() {
	b.AppendZeros((8 - b.BitsUsed()%8) % 8)
}

// PadToFullCell appends the minimum number of zero bits so that the bit
// count is a multiple of the cell width.
func (b *Buffer[C]) PadToFullCell() {
	w := b.CellBits()
	b.AppendZeros((w - b.BitsUsed()%w) % w)
}

// CanTrimCell reports whether a full cell worth of bits is available.
func (b *Buffer[C]) CanTrimCell() bool { return b.BitsUsed() >= b.CellBits() }

// CanTrimByte reports whether at least 8 bits are available.
func (b *Buffer[C]) CanTrimByte() bool { return b.BitsUsed() >= 8 }

// readBits removes nothing; it assembles k bits starting at absolute
// position pos, most significant first.
func (b *Buffer[C]) readBits(pos, k int) uint64 {
	var v uint64
	for i := 0; i < k; i++ {
		v = v<<1 | b.bit(pos+i)
	}
	return v
}

// TrimCell removes and returns the leftmost W bits packed MSB-first.
// The live region is not cell-aligned in general, so the result may merge
// bits from two storage cells. Panics if fewer than W bits are present.
func (b *Buffer[C]) TrimCell() C {
	w := b.CellBits()
	if b.BitsUsed() < w {
		panic("bitbuf: trim cell on underfull buffer")
	}
	v := C(b.readBits(b.head, w))
	b.head += w
	return v
}

// TrimByte removes and returns the leftmost 8 bits packed MSB-first.
// Panics if fewer than 8 bits are present.
func (b *Buffer[C]) TrimByte() byte {
	if b.BitsUsed() < 8 {
		panic("bitbuf: trim byte on underfull buffer")
	}
	v := byte(b.readBits(b.head, 8))
	b.head += 8
	return v
}

// TrimBit removes and returns the leftmost bit. Panics on an empty buffer.
func (b *Buffer[C]) TrimBit() byte {
	if b.IsEmpty() {
		panic("bitbuf: trim bit on empty buffer")
	}
	v := byte(b.bit(b.head))
	b.head++
	return v
}

// Clone returns an independent copy of the buffer.
func (b *Buffer[C]) Clone() *Buffer[C] {
	c := &Buffer[C]{
		cells: make([]C, len(b.cells)),
		head:  b.head,
		tail:  b.tail,
		mode:  b.mode,
	}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether two buffers hold the same bit sequence, ignoring
// storage layout and growth mode.
func (b *Buffer[C]) Equal(other *Buffer[C]) bool {
	if b.BitsUsed() != other.BitsUsed() {
		return false
	}
	for i := 0; i < b.BitsUsed(); i++ {
		if b.bit(b.head+i) != other.bit(other.head+i) {
			return false
		}
	}
	return true
}

// String renders the live bits oldest-first as '0' and '1' runes.
func (b *Buffer[C]) String() string {
	var sb strings.Builder
	sb.Grow(b.BitsUsed())
	for i := b.head; i < b.tail; i++ {
		sb.WriteByte('0' + byte(b.bit(i)))
	}
	return sb.String()
}
