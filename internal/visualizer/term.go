package visualizer

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

var blockRamp = []rune(" ▁▂▃▄▅▆▇█")

// TermSurface paints bar frames as a single rewritten line of block
// characters. Good enough for the cmd/radio console player.
type TermSurface struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTermSurface(out io.Writer) *TermSurface {
	return &TermSurface{out: out}
}

func (t *TermSurface) Render(frame Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	b.WriteString("\r")
	for _, h := range frame.Bars {
		idx := int(h * float64(len(blockRamp)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(blockRamp) {
			idx = len(blockRamp) - 1
		}
		b.WriteRune(blockRamp[idx])
	}
	if frame.Playing {
		b.WriteString(" ▶")
	} else {
		b.WriteString(" ⏸")
	}
	fmt.Fprint(t.out, b.String())
}
