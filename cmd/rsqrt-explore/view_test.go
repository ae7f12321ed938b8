package main

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

func screenText(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(c.Runes[0])
		}
		rows[y] = sb.String()
	}
	return rows
}

// TestExplorerKeys verifies key handling and saturation
func TestExplorerKeys(t *testing.T) {
	tests := []struct {
		name  string
		start uint32
		key   tcell.Key
		r     rune
		mod   tcell.ModMask
		want  uint32
		quit  bool
	}{
		{"right", 10, tcell.KeyRight, 0, tcell.ModNone, 11, false},
		{"left", 10, tcell.KeyLeft, 0, tcell.ModNone, 9, false},
		{"left at zero", 0, tcell.KeyLeft, 0, tcell.ModNone, 0, false},
		{"right at max", math.MaxUint32, tcell.KeyRight, 0, tcell.ModNone, math.MaxUint32, false},
		{"shift right doubles", 10, tcell.KeyRight, 0, tcell.ModShift, 20, false},
		{"shift left halves", 10, tcell.KeyLeft, 0, tcell.ModShift, 5, false},
		{"up from zero", 0, tcell.KeyUp, 0, tcell.ModNone, 1, false},
		{"up saturates", 1 << 31, tcell.KeyUp, 0, tcell.ModNone, 1 << 31, false},
		{"down", 7, tcell.KeyDown, 0, tcell.ModNone, 3, false},
		{"page up", 10, tcell.KeyPgUp, 0, tcell.ModNone, 1010, false},
		{"page down clamps", 10, tcell.KeyPgDn, 0, tcell.ModNone, 0, false},
		{"plus", 10, tcell.KeyRune, '+', tcell.ModNone, 11, false},
		{"reset one", 99, tcell.KeyRune, '1', tcell.ModNone, 1, false},
		{"quit q", 10, tcell.KeyRune, 'q', tcell.ModNone, 10, true},
		{"quit esc", 10, tcell.KeyEscape, 0, tcell.ModNone, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Explorer{X: tt.start}
			quit := e.HandleKey(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
			if e.X != tt.want {
				t.Errorf("X = %d, want %d", e.X, tt.want)
			}
		})
	}
}

// TestExplorerLines verifies the decomposition shown for an input
func TestExplorerLines(t *testing.T) {
	e := &Explorer{X: 20}
	got := map[string]string{}
	for _, row := range e.Lines() {
		got[row[0]] = row[1]
	}

	want := map[string]string{
		"x":            "20 (0x14)",
		"exponent":     "4 (clz 27)",
		"table[exp]":   "16384",
		"table[exp+1]": "11585",
		"fraction":     "16384/65536",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if !strings.HasPrefix(got["Rsqrt(x)"], "14654 ") {
		t.Errorf("Rsqrt(x) = %q, want prefix 14654", got["Rsqrt(x)"])
	}

	e.X = 1 << 31
	for _, row := range e.Lines() {
		if row[0] == "table[exp+1]" && row[1] != "0" {
			t.Errorf("table[exp+1] at exp 31 = %q, want 0", row[1])
		}
	}

	e.X = 0
	lines := e.Lines()
	if len(lines) != 2 || !strings.Contains(lines[1][1], "sentinel") {
		t.Errorf("Lines for 0 = %v, want sentinel row", lines)
	}
}

// TestExplorerDraw verifies the rendered screen shows the current values
func TestExplorerDraw(t *testing.T) {
	s := newScreen(t)
	e := &Explorer{X: 4}
	e.Draw(s)

	rows := screenText(s)
	if !strings.Contains(rows[0], "reciprocal square root") {
		t.Errorf("title row = %q", rows[0])
	}
	screen := strings.Join(rows, "\n")
	for _, want := range []string{"Rsqrt(x)", "32768", "exponent", "q quit"} {
		if !strings.Contains(screen, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

// TestRunQuits verifies the event loop exits on q
func TestRunQuits(t *testing.T) {
	s := newScreen(t)
	e := &Explorer{X: 16}

	done := make(chan struct{})
	go func() {
		run(s, e)
		close(done)
	}()

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after q")
	}
	if e.X != 17 {
		t.Errorf("X = %d, want 17", e.X)
	}
}
