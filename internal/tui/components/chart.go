// Package components holds small reusable TUI widgets.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline rescaled to the series min/max so
// small net-worth movements stay visible.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// Downsample reduces a series to at most width points by keeping the last
// value of each even-sized window.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, 0, width)
	for i := 0; i < width; i++ {
		end := (i + 1) * len(values) / width
		out = append(out, values[end-1])
	}
	return out
}
