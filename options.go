// Copyright (c) 2025 SciGo Huffman Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package huffman

import (
	"errors"

	"github.com/scigolib/huffman/internal/bitbuf"
)

// Option configures a Codec during construction.
//
// Example:
//
//	codec, err := huffman.New(src, dst,
//	    huffman.WithProgress(printer),
//	    huffman.WithUpdateStride(size/1000+1),
//	)
type Option func(*Codec) error

// GrowthMode selects how the codec's bit buffer grows when it fills up.
type GrowthMode int

const (
	// GrowLinear grows the buffer to exactly the required size.
	GrowLinear GrowthMode = iota
	// GrowDoubling doubles the buffer until it is large enough.
	GrowDoubling
)

// WithProgress installs a progress sink. A nil sink is allowed and
// equivalent to not installing one.
func WithProgress(p Progress) Option {
	return func(c *Codec) error {
		c.progress = p
		return nil
	}
}

// WithUpdateStride sets the number of input bytes between progress
// updates. Production callers typically use max(1, sourceSize/1000).
func WithUpdateStride(stride uint64) Option {
	return func(c *Codec) error {
		if stride == 0 {
			return errors.New("update stride must be positive")
		}
		c.updateStride = stride
		return nil
	}
}

// WithGrowthMode selects the bit buffer growth policy. The default is
// linear growth.
func WithGrowthMode(m GrowthMode) Option {
	return func(c *Codec) error {
		switch m {
		case GrowLinear:
			c.buf = bitbuf.New[cell](0, bitbuf.Linear)
		case GrowDoubling:
			c.buf = bitbuf.New[cell](0, bitbuf.Doubling)
		default:
			return errors.New("unknown growth mode")
		}
		return nil
	}
}

// WithFrameLength makes Encode write the framed container declaring
// contentLength original bytes instead of the raw terminated format.
// Encode fails with ErrLengthMismatch if the source delivers a different
// number of bytes. Use this when the input may contain byte 0x00.
func WithFrameLength(contentLength uint64) Option {
	return func(c *Codec) error {
		c.framed = true
		c.frameLen = contentLength
		return nil
	}
}

// WithFramedContainer makes Decode expect the framed container and read
// the original byte count from its header.
func WithFramedContainer() Option {
	return func(c *Codec) error {
		c.framed = true
		return nil
	}
}
