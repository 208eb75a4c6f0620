package progress

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		length   int
		want     string
	}{
		{"half", 0.5, 10, "Ep01:[#####-----] 50%"},
		{"negative clamps to halt", -0.5, 10, "Ep01:[----------] 0% Halt..."},
		{"over one clamps to done", 1.5, 10, "Ep01:[##########] 100% Done..."},
		{"exactly one is done", 1, 10, "Ep01:[##########] 100% Done..."},
		{"zero", 0, 10, "Ep01:[----------] 0%"},
		{"thirds round to two places", 1.0 / 3.0, 10, "Ep01:[###-------] 33.33%"},
		{"nan is invalid", math.NaN(), 10, "Ep01:[----------] 0% error: progress var must be float"},
		{"custom length", 0.25, 4, "Ep01:[#---] 25%"},
		{"non-positive length uses default", 0.5, 0, "Ep01:[#####-----] 50%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render("Ep01", tt.fraction, tt.length); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_CellCounts(t *testing.T) {
	line := Render("x", 0.5, 10)
	bar := line[strings.Index(line, "[")+1 : strings.Index(line, "]")]
	if strings.Count(bar, filledCell) != 5 || strings.Count(bar, emptyCell) != 5 {
		t.Errorf("bar %q, want 5 filled and 5 empty cells", bar)
	}
}

func TestReporter_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, 10)

	r.Update("Ep01", 0.5)
	r.Update("Ep02", 1)
	r.Finish()

	want := "Ep01:[#####-----] 50%\nEp02:[##########] 100% Done...\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestReporter_InPlace(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{out: &buf, barLength: 10, inPlace: true}

	r.Update("Ep01", 0.5)
	r.Finish()

	want := "\r\033[KEp01:[#####-----] 50%\r\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
