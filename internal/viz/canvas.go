package viz

import (
	"math"
	"strings"
)

// Braille cells are 2 dots wide. A lane lights a full column of four dots
// so a marker is visible at half-cell resolution.
const (
	brailleBlank = 0x2800
	leftColumn   = 0x1 | 0x2 | 0x4 | 0x40
	rightColumn  = 0x8 | 0x10 | 0x20 | 0x80
)

// Lane is a one-row braille strip mapping [Lo, Hi] onto Width cells.
type Lane struct {
	Width  int
	Lo, Hi float64
	cells  []rune
}

func NewLane(width int, lo, hi float64) *Lane {
	l := &Lane{Width: width, Lo: lo, Hi: hi, cells: make([]rune, width)}
	l.Clear()
	return l
}

func (l *Lane) Clear() {
	for i := range l.cells {
		l.cells[i] = brailleBlank
	}
}

// Mark lights the dot column closest to v. Values outside the range are
// pinned to the ends.
func (l *Lane) Mark(v float64) {
	if l.Width == 0 {
		return
	}
	x := l.column(v)
	if x%2 == 0 {
		l.cells[x/2] |= leftColumn
	} else {
		l.cells[x/2] |= rightColumn
	}
}

func (l *Lane) column(v float64) int {
	dots := 2*l.Width - 1
	span := l.Hi - l.Lo
	if span == 0 || math.IsNaN(v) {
		return 0
	}
	x := int(math.Round((v - l.Lo) / span * float64(dots)))
	return min(max(x, 0), dots)
}

func (l *Lane) String() string {
	var b strings.Builder
	for _, c := range l.cells {
		b.WriteRune(c)
	}
	return b.String()
}
