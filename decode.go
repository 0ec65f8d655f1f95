package huffman

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/scigolib/huffman/internal/tree"
	"github.com/scigolib/huffman/internal/utils"
)

// Decode expands the compressed source stream into the sink, rebuilding
// the same tree the encoder grew. In the default raw format decoding ends
// at the NYT-escaped zero byte; in framed mode (WithFramedContainer) the
// header's byte count bounds the output instead, so zero bytes decode
// like any other. Decode may be called once per codec.
func (c *Codec) Decode() error {
	start := time.Now()
	defer func() { c.elapsed = time.Since(start) }()

	if c.framed {
		if err := c.readFrameHeader(); err != nil {
			return err
		}
	}

	for {
		if c.framed && c.outputBytes == c.frameLen {
			break
		}

		node := c.root
		for !node.IsLeaf() {
			if c.buf.IsEmpty() {
				if err := c.loadByte(); err != nil {
					return err
				}
			}
			node = c.traverse(node)
		}

		if node.IsNYT() {
			for !c.buf.CanTrimByte() {
				if err := c.loadByte(); err != nil {
					return err
				}
			}
			b := c.buf.TrimByte()
			if !c.framed && b == 0 {
				// Terminator. A first-occurrence zero byte in the input
				// produces the same pattern, which is why raw mode cannot
				// round-trip such inputs.
				break
			}
			if err := c.dst.WriteByte(b); err != nil {
				return utils.WrapError("sink write failed", err)
			}
			c.expandNYT(b)
		} else {
			b := byte(node.Symbol())
			if err := c.dst.WriteByte(b); err != nil {
				return utils.WrapError("sink write failed", err)
			}
			node.Increment()
		}
		c.outputBytes++
	}

	c.finishProgress()
	return nil
}

// traverse walks the tree by trimmed bits until it reaches a leaf or the
// buffer runs dry, in which case it returns the internal node reached so
// far and the caller refills the buffer.
func (c *Codec) traverse(node *tree.Node) *tree.Node {
	for !c.buf.IsEmpty() && !node.IsLeaf() {
		node = node.Walk(c.buf.TrimBit())
	}
	return node
}

// loadByte appends the next compressed byte to the bit buffer. Running
// out of source here means the stream was truncated.
func (c *Codec) loadByte() error {
	b, err := c.src.ReadByte()
	if err == io.EOF {
		return ErrMalformedInput
	}
	if err != nil {
		return utils.WrapError("source read failed", err)
	}

	c.buf.AppendLowBits(b, 8)

	c.inputBytes++
	if c.inputBytes%c.updateStride == 0 {
		c.updateProgress(c.inputBytes)
	}
	return nil
}

func (c *Codec) readFrameHeader() error {
	version, err := c.src.ReadByte()
	if err != nil {
		if err == io.EOF {
			return ErrMalformedInput
		}
		return utils.WrapError("frame header read failed", err)
	}
	c.inputBytes++

	if version != frameVersion {
		return fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, version)
	}

	length, err := binary.ReadUvarint(byteCounter{c})
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrMalformedInput
		}
		return utils.WrapError("frame header read failed", err)
	}
	c.frameLen = length
	return nil
}

// byteCounter lets binary.ReadUvarint consume header bytes while the
// codec keeps its input accounting straight.
type byteCounter struct{ c *Codec }

func (r byteCounter) ReadByte() (byte, error) {
	b, err := r.c.src.ReadByte()
	if err == nil {
		r.c.inputBytes++
	}
	return b, err
}
