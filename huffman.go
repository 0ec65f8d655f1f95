// Package huffman implements an adaptive Huffman codec in the FGK/Vitter
// style. Encoder and decoder grow identical code trees from the symbol
// sequence itself, so no code table is ever transmitted and a stream can
// be compressed in a single pass without a pre-scan.
//
// The default on-wire format is a raw bit stream: each input byte is
// either the current code of its leaf, or the current NYT (not yet
// transmitted) code followed by the raw byte; the stream ends with the
// NYT code plus a zero byte, right-padded to a byte boundary. That
// terminator cannot represent a first occurrence of byte 0x00, so inputs
// containing one do not survive a raw round-trip. The optional framed
// container (see WithFrameLength) prefixes a version tag and the original
// byte count instead of using a terminator, which makes arbitrary binary
// input safe.
package huffman

import (
	"errors"
	"io"
	"time"

	"github.com/scigolib/huffman/internal/bitbuf"
	"github.com/scigolib/huffman/internal/list"
	"github.com/scigolib/huffman/internal/tree"
)

// Sentinel errors reported by Encode and Decode. They may arrive wrapped
// with context; match with errors.Is.
var (
	// ErrMalformedInput reports a compressed stream that ended before
	// its terminator or declared length was satisfied.
	ErrMalformedInput = errors.New("compressed input ended unexpectedly")
	// ErrUnsupportedVersion reports a framed container with an unknown
	// version tag.
	ErrUnsupportedVersion = errors.New("unsupported container version")
	// ErrLengthMismatch reports a framed encode whose source did not
	// deliver exactly the declared number of bytes.
	ErrLengthMismatch = errors.New("source length does not match declared frame length")
)

// Progress receives periodic updates during an encode or decode run.
// Update is called every update-stride input bytes and Finish exactly once
// at the end. Implementations must tolerate Update never being called on
// short inputs.
type Progress interface {
	Update(bytesProcessed uint64)
	Finish()
}

// DefaultUpdateStride is the number of input bytes between progress
// updates when WithUpdateStride is not given.
const DefaultUpdateStride = 10000

// cell is the bit buffer storage type; its byte width drives the flush
// granularity.
type cell = uint64

const cellBytes = 8

// Codec drives a single encode or decode of one byte stream. It owns its
// tree and bit buffer exclusively and is not reentrant; the source and
// sink are borrowed and never opened, closed or flushed here.
type Codec struct {
	src io.ByteReader
	dst io.ByteWriter

	buf   *bitbuf.Buffer[cell]
	nodes map[int]*tree.Node
	order *list.List[*tree.Node]
	nyt   *tree.Node
	root  *tree.Node

	progress     Progress
	updateStride uint64

	framed   bool
	frameLen uint64

	inputBytes  uint64
	outputBytes uint64
	elapsed     time.Duration
}

// New creates a codec reading from src and writing to dst. The tree
// starts as a single NYT leaf. Callers typically wrap files in a
// bufio.Reader and bufio.Writer; the caller is responsible for flushing
// the sink after Encode.
func New(src io.ByteReader, dst io.ByteWriter, opts ...Option) (*Codec, error) {
	c := &Codec{
		src:          src,
		dst:          dst,
		buf:          bitbuf.New[cell](0, bitbuf.Linear),
		nodes:        make(map[int]*tree.Node),
		order:        list.New[*tree.Node](),
		updateStride: DefaultUpdateStride,
	}
	c.nyt = tree.New(tree.SymbolNYT, 0, c.order.PushFront())
	c.root = c.nyt
	c.nodes[tree.SymbolNYT] = c.nyt

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// expandNYT grows the tree for a first-time symbol. The list positions
// are created value-leaf first so the new NYT (weight 0) ends up at the
// head, ahead of the weight-1 leaf.
func (c *Codec) expandNYT(b byte) {
	valuePos := c.order.PushFront()
	nytPos := c.order.PushFront()

	value := tree.New(int(b), 1, valuePos)
	c.nyt = c.nyt.Expand(value, nytPos)

	c.nodes[tree.SymbolNYT] = c.nyt
	c.nodes[int(b)] = value
}

// flush moves accumulated bits from the buffer to the sink. During the
// stream only whole cells are flushed, which keeps the per-byte cost at
// one cell extraction per eight input bytes or so. On the last call,
// after padding, the remainder is flushed a byte at a time.
func (c *Codec) flush(last bool) error {
	if last {
		for c.buf.CanTrimByte() {
			if err := c.dst.WriteByte(c.buf.TrimByte()); err != nil {
				return err
			}
			c.outputBytes++
		}
		return nil
	}
	for c.buf.CanTrimCell() {
		cl := c.buf.TrimCell()
		for i := cellBytes - 1; i >= 0; i-- {
			if err := c.dst.WriteByte(byte(cl >> (8 * i))); err != nil {
				return err
			}
			c.outputBytes++
		}
	}
	return nil
}

func (c *Codec) updateProgress(bytesProcessed uint64) {
	if c.progress != nil {
		c.progress.Update(bytesProcessed)
	}
}

func (c *Codec) finishProgress() {
	if c.progress != nil {
		c.progress.Finish()
	}
}
