// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package progress reports traversal progress to the terminal.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress of a long running stage.
// Implementations must tolerate Step and Finish without a prior Start.
type Reporter interface {
	Start(title string, total int)
	Step(label string)
	Finish()
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(string, int) {}
func (Nop) Step(string)       {}
func (Nop) Finish()           {}

// Bar renders a single-line progress bar.
type Bar struct {
	w     io.Writer
	title string
	bar   *progressbar.ProgressBar
}

// NewBar returns a Bar writing to w.
func NewBar(w io.Writer) *Bar { return &Bar{w: w} }

// ForWriter returns a Bar when w is a terminal and Nop otherwise.
func ForWriter(w io.Writer) Reporter {
	if IsTerminal(w) {
		return NewBar(w)
	}
	return Nop{}
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (b *Bar) Start(title string, total int) {
	b.Finish()
	b.title = title
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(title),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(b.w, "\n") }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Step advances the bar by one and shows label next to the stage title.
func (b *Bar) Step(label string) {
	if b.bar == nil {
		return
	}
	if label != "" {
		b.bar.Describe(b.title + ": " + label)
	}
	_ = b.bar.Add(1)
}

func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}
