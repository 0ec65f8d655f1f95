// Copyright (c) 2025 SciGo Huffman Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

// Package progress renders a terminal progress bar for long codec runs.
// It implements the codec's progress-sink interface and stays silent when
// the output is not a terminal, so redirected runs produce clean logs.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const barWidth = 100

// ANSI sequences: green bar fill, cursor hide/show during redraws.
const (
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"
)

// Printer draws a carriage-return progress bar sized against the total
// number of bytes the codec will read.
type Printer struct {
	out     io.Writer
	total   uint64
	percent uint64
	enabled bool
}

// NewPrinter creates a printer targeting out. The bar is only drawn when
// out is a terminal and totalBytes is nonzero; otherwise every call is a
// no-op.
func NewPrinter(out *os.File, totalBytes uint64) *Printer {
	p := &Printer{
		out:     out,
		total:   totalBytes,
		enabled: totalBytes > 0 && term.IsTerminal(int(out.Fd())),
	}
	if p.enabled {
		fmt.Fprint(p.out, cursorHide)
	}
	return p
}

// Update redraws the bar for the given progress position.
func (p *Printer) Update(bytesProcessed uint64) {
	if !p.enabled {
		return
	}
	percent := bytesProcessed * 100 / p.total
	if percent > 100 {
		percent = 100
	}
	p.percent = percent
	p.draw()
}

// Finish forces the bar to 100%, moves to a fresh line and restores the
// cursor. It must be called exactly once.
func (p *Printer) Finish() {
	if !p.enabled {
		return
	}
	if p.percent != 100 {
		p.percent = 100
		p.draw()
	}
	fmt.Fprint(p.out, "\n", cursorShow)
}

func (p *Printer) draw() {
	fmt.Fprintf(p.out, "\r[%s", colorGreen)
	for i := uint64(0); i < barWidth; i++ {
		if i < p.percent {
			fmt.Fprint(p.out, "#")
		} else {
			fmt.Fprint(p.out, " ")
		}
	}
	fmt.Fprintf(p.out, "%s] %d%% done", colorReset, p.percent)
}
