// Copyright (c) 2025 SciGo Huffman Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package huffman

import "time"

// Stats summarizes a finished encode or decode run.
type Stats struct {
	// InputBytes is the number of bytes consumed from the source.
	InputBytes uint64
	// OutputBytes is the number of bytes written to the sink.
	OutputBytes uint64
	// Elapsed is the wall time spent inside Encode or Decode.
	Elapsed time.Duration
}

// Reduction returns the size reduction in percent. Negative values mean
// the output grew, which happens on incompressible input.
func (s Stats) Reduction() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return (float64(s.InputBytes) - float64(s.OutputBytes)) / float64(s.InputBytes) * 100
}

// Stats returns the byte counters and timing of the completed run.
func (c *Codec) Stats() Stats {
	return Stats{
		InputBytes:  c.inputBytes,
		OutputBytes: c.outputBytes,
		Elapsed:     c.elapsed,
	}
}
