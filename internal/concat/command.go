// Package concat runs the external tool that joins an episode's staged files
// into one audio file.
package concat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrConcatenation is returned when the tool cannot start or exits non-zero.
	ErrConcatenation = errors.New("concatenation failed")

	// ErrTimeout is returned when the tool runs past its deadline.
	ErrTimeout = errors.New("concatenation timed out")
)

const (
	// OutputPlaceholder expands to the output file name.
	OutputPlaceholder = "{output}"

	// InputsPlaceholder expands to the ordered input files, one argument each.
	InputsPlaceholder = "{inputs}"

	stderrTail = 2048
)

// Command invokes a concatenation executable inside a staging directory.
//
// Example:
//
//	cmd := concat.NewCommand("mp3cat", []string{"-o", "{output}", "{inputs}"}, 5*time.Minute)
//	err := cmd.Concat(ctx, "/tmp/stage", []string{"Ep01a.mp3", "Ep01b.mp3"}, "Ep01.mp3")
type Command struct {
	path    string
	args    []string
	timeout time.Duration

	// Env, when set, replaces the child's environment.
	Env []string

	// Output receives the tool's stdout and stderr as they are written.
	Output io.Writer
}

// NewCommand creates a Command. A zero timeout disables the deadline.
func NewCommand(path string, args []string, timeout time.Duration) *Command {
	if len(args) == 0 {
		args = []string{OutputPlaceholder}
	}
	return &Command{path: path, args: args, timeout: timeout}
}

// Concat runs the tool in dir and waits for it to exit.
//
// Returns ErrTimeout when the deadline passes, ErrConcatenation for a start
// failure or non-zero exit, and ctx.Err() wrapped when ctx is cancelled.
func (c *Command) Concat(ctx context.Context, dir string, inputs []string, output string) error {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := ExpandArgs(c.args, inputs, output)
	cmd := exec.CommandContext(runCtx, c.path, args...)
	cmd.Dir = dir
	cmd.WaitDelay = 5 * time.Second
	if c.Env != nil {
		cmd.Env = c.Env
	}

	var captured bytes.Buffer
	var sink io.Writer = &captured
	if c.Output != nil {
		sink = io.MultiWriter(&captured, c.Output)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	err := cmd.Run()
	if err == nil {
		return nil
	}

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", c.path, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %s exceeded %s", ErrTimeout, c.path, c.timeout)
	}

	msg := strings.TrimSpace(tail(captured.String(), stderrTail))
	if msg != "" {
		return fmt.Errorf("%w: %s: %v: %s", ErrConcatenation, c.path, err, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrConcatenation, c.path, err)
}

// ExpandArgs substitutes the output and inputs placeholders in args.
// An argument equal to InputsPlaceholder becomes one argument per input.
func ExpandArgs(args, inputs []string, output string) []string {
	out := make([]string, 0, len(args)+len(inputs))
	for _, arg := range args {
		if arg == InputsPlaceholder {
			out = append(out, inputs...)
			continue
		}
		out = append(out, strings.ReplaceAll(arg, OutputPlaceholder, output))
	}
	return out
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
