package main

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/gdamore/tcell/v2"

	"github.com/AnnTaiwan/computer-arch/fixed"
)

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal).Bold(true)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleValue   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	styleBad     = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
)

// Explorer holds the input under inspection
type Explorer struct {
	X uint32
}

// Step moves X by delta, saturating at 0 and MaxUint32
func (e *Explorer) Step(delta int64) {
	v := int64(e.X) + delta
	switch {
	case v < 0:
		v = 0
	case v > math.MaxUint32:
		v = math.MaxUint32
	}
	e.X = uint32(v)
}

// Shift doubles (up) or halves (down) X
func (e *Explorer) Shift(up bool) {
	if up {
		if e.X == 0 {
			e.X = 1
		} else if e.X <= math.MaxUint32/2 {
			e.X <<= 1
		}
		return
	}
	e.X >>= 1
}

// HandleKey applies a key event and reports whether the explorer should quit
func (e *Explorer) HandleKey(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.Shift(true)
		} else {
			e.Step(1)
		}
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModShift != 0 {
			e.Shift(false)
		} else {
			e.Step(-1)
		}
	case tcell.KeyUp:
		e.Shift(true)
	case tcell.KeyDown:
		e.Shift(false)
	case tcell.KeyPgUp:
		e.Step(1000)
	case tcell.KeyPgDn:
		e.Step(-1000)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+':
			e.Step(1)
		case '-':
			e.Step(-1)
		case '0':
			e.X = 0
		case '1':
			e.X = 1
		}
	}
	return false
}

// Lines returns the label/value rows describing the current input
func (e *Explorer) Lines() [][2]string {
	x := e.X
	got := fixed.Rsqrt(x)
	if x == 0 {
		return [][2]string{
			{"x", "0"},
			{"Rsqrt(x)", fmt.Sprintf("%#08x (sentinel)", got)},
		}
	}

	exp := 31 - fixed.CountLeadingZeros(x)
	table := fixed.Table()
	base := uint32(1) << exp
	frac := ((x - base) << 16) >> uint(exp)
	exact := fixed.Scale / math.Sqrt(float64(x))

	next := "0"
	if exp+1 < fixed.RsqrtTableSize {
		next = fmt.Sprintf("%d", table[exp+1])
	}

	return [][2]string{
		{"x", fmt.Sprintf("%d (%#x)", x, x)},
		{"Rsqrt(x)", fmt.Sprintf("%d (%.6f)", got, fixed.ToFloat(got))},
		{"exact", fmt.Sprintf("%.3f", exact)},
		{"relative error", fmt.Sprintf("%.4f%%", fixed.RelativeError(x, got)*100)},
		{"exponent", fmt.Sprintf("%d (clz %d)", exp, bits.LeadingZeros32(x))},
		{"table[exp]", fmt.Sprintf("%d", table[exp])},
		{"table[exp+1]", next},
		{"fraction", fmt.Sprintf("%d/65536", frac)},
	}
}

// Draw renders the explorer onto s
func (e *Explorer) Draw(s tcell.Screen) {
	s.SetStyle(styleDefault)
	s.Clear()
	w, h := s.Size()

	title := " Q16.16 reciprocal square root "
	for i := 0; i < w; i++ {
		s.SetContent(i, 0, ' ', nil, styleTitle)
	}
	drawText(s, 1, 0, styleTitle, title)

	for i, row := range e.Lines() {
		y := 2 + i
		if y >= h-1 {
			break
		}
		drawText(s, 2, y, styleLabel, row[0])
		style := styleValue
		if row[0] == "relative error" && fixed.RelativeError(e.X, fixed.Rsqrt(e.X)) > 0.005 {
			style = styleBad
		}
		drawText(s, 20, y, style, row[1])
	}

	drawText(s, 1, h-1, styleLabel, "←/→ ±1  PgUp/PgDn ±1000  ↑/↓ ×2 ÷2  0/1 reset  q quit")
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
