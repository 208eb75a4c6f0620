// Package progress renders a fixed-width textual progress bar for a labelled
// item, refreshed in place on a terminal.
package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// DefaultBarLength is the number of cells in a bar.
const DefaultBarLength = 10

const (
	filledCell = "#"
	emptyCell  = "-"

	StatusHalt    = "Halt..."
	StatusDone    = "Done..."
	StatusInvalid = "error: progress var must be float"
)

// Render returns one progress line for label at fraction, without the
// leading carriage return:
//
//	Ep01:[#####-----] 50%
//	Ep02:[##########] 100% Done...
//
// Fractions below 0 clamp to 0 with StatusHalt, fractions of 1 or more
// clamp to 1 with StatusDone, and NaN renders as 0 with StatusInvalid.
func Render(label string, fraction float64, barLength int) string {
	if barLength <= 0 {
		barLength = DefaultBarLength
	}

	status := ""
	switch {
	case math.IsNaN(fraction):
		fraction = 0
		status = StatusInvalid
	case fraction < 0:
		fraction = 0
		status = StatusHalt
	case fraction >= 1:
		fraction = 1
		status = StatusDone
	}

	filled := int(math.Round(float64(barLength) * fraction))
	bar := strings.Repeat(filledCell, filled) + strings.Repeat(emptyCell, barLength-filled)
	percent := strconv.FormatFloat(math.Round(fraction*10000)/100, 'f', -1, 64)

	line := fmt.Sprintf("%s:[%s] %s%%", label, bar, percent)
	if status != "" {
		line += " " + status
	}
	return line
}

// Reporter writes progress lines to an output stream.
//
// On a terminal each update overwrites the previous line; elsewhere every
// update is written on its own line so logs stay readable.
type Reporter struct {
	mu        sync.Mutex
	out       io.Writer
	barLength int
	inPlace   bool
	dirty     bool
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, barLength int) *Reporter {
	if barLength <= 0 {
		barLength = DefaultBarLength
	}
	return &Reporter{out: out, barLength: barLength, inPlace: isTerminal(out)}
}

// Update renders label at fraction.
func (r *Reporter) Update(label string, fraction float64) {
	line := Render(label, fraction, r.barLength)
	finished := fraction >= 1 || fraction < 0 || math.IsNaN(fraction)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inPlace {
		_, _ = io.WriteString(r.out, line+"\n")
		return
	}

	text := "\r\033[K" + line
	if finished {
		text += "\r\n"
	}
	_, _ = io.WriteString(r.out, text)
	r.dirty = !finished
}

// Finish ends an in-place line that was left open.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inPlace && r.dirty {
		_, _ = io.WriteString(r.out, "\r\n")
		r.dirty = false
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
