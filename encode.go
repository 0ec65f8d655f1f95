package huffman

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/scigolib/huffman/internal/utils"
)

// Encode compresses the source stream into the sink. In the default raw
// format the stream is closed with the NYT code and a zero byte; in
// framed mode (WithFrameLength) a version-tagged length header replaces
// the terminator. Encode may be called once per codec.
func (c *Codec) Encode() error {
	start := time.Now()
	defer func() { c.elapsed = time.Since(start) }()

	if c.framed {
		if err := c.writeFrameHeader(); err != nil {
			return err
		}
	}

	for {
		b, err := c.src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return utils.WrapError("source read failed", err)
		}

		c.encodeByte(b)

		if err := c.flush(false); err != nil {
			return utils.WrapError("sink write failed", err)
		}
		c.inputBytes++
		if c.inputBytes%c.updateStride == 0 {
			c.updateProgress(c.inputBytes)
		}
	}

	if c.framed {
		if c.inputBytes != c.frameLen {
			return fmt.Errorf("%w: declared %d, source delivered %d",
				ErrLengthMismatch, c.frameLen, c.inputBytes)
		}
	} else {
		// Terminator: the current NYT code followed by a zero byte. The
		// decoder mirrors this by stopping at the first zero that arrives
		// through the NYT path.
		c.buf.AppendBits(c.nyt.Code())
		c.buf.AppendLowBits(0, 8)
		c.expandNYT(0)
	}

	if err := c.flush(false); err != nil {
		return utils.WrapError("sink write failed", err)
	}
	c.buf.PadToFullByte()
	if err := c.flush(true); err != nil {
		return utils.WrapError("sink write failed", err)
	}

	c.finishProgress()
	return nil
}

// encodeByte emits one input byte: the cached leaf code for a known
// symbol, or the NYT escape followed by the raw byte for a new one.
// Either way the tree is updated so the decoder can follow.
func (c *Codec) encodeByte(b byte) {
	if node, ok := c.nodes[int(b)]; ok {
		c.buf.AppendBits(node.Code())
		node.Increment()
		return
	}

	c.buf.AppendBits(c.nyt.Code())
	c.buf.AppendLowBits(b, 8)
	c.expandNYT(b)
}

// frameVersion tags the framed container layout: one version byte, then
// the original byte count as a uvarint, then the bit stream.
const frameVersion = 0x01

func (c *Codec) writeFrameHeader() error {
	var hdr [1 + binary.MaxVarintLen64]byte
	hdr[0] = frameVersion
	n := binary.PutUvarint(hdr[1:], c.frameLen)

	for _, b := range hdr[:1+n] {
		if err := c.dst.WriteByte(b); err != nil {
			return utils.WrapError("frame header write failed", err)
		}
		c.outputBytes++
	}
	return nil
}
