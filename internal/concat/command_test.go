package concat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test. It is the fake concatenation tool
// run by the tests below through the test binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch os.Getenv("HELPER_MODE") {
	case "fail":
		fmt.Fprintln(os.Stderr, "mp3cat: bad frame header")
		os.Exit(3)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "noop":
		os.Exit(0)
	}

	// args: <output> <inputs...>
	out, err := os.Create(args[0])
	if err != nil {
		os.Exit(4)
	}
	for _, in := range args[1:] {
		data, err := os.ReadFile(in)
		if err != nil {
			os.Exit(5)
		}
		_, _ = out.Write(data)
	}
	_ = out.Close()
	os.Exit(0)
}

func helperCommand(mode string, timeout time.Duration) *Command {
	cmd := NewCommand(os.Args[0], []string{"-test.run=TestHelperProcess", "--", OutputPlaceholder, InputsPlaceholder}, timeout)
	cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
	return cmd
}

func stage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestExpandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"output only", []string{"{output}"}, []string{"Ep01.mp3"}},
		{"flags and inputs", []string{"-f", "-o", "{output}", "{inputs}"}, []string{"-f", "-o", "Ep01.mp3", "a.mp3", "b.mp3"}},
		{"embedded output", []string{"--out={output}"}, []string{"--out=Ep01.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandArgs(tt.args, []string{"a.mp3", "b.mp3"}, "Ep01.mp3")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommand_Concat(t *testing.T) {
	dir := stage(t, map[string]string{"Ep01a.mp3": "AAA", "Ep01b.mp3": "BBB"})

	err := helperCommand("concat", time.Minute).Concat(context.Background(), dir, []string{"Ep01a.mp3", "Ep01b.mp3"}, "Ep01.mp3")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Ep01.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "AAABBB", string(data))
}

func TestCommand_NonZeroExit(t *testing.T) {
	dir := stage(t, map[string]string{"Ep01a.mp3": "AAA"})

	err := helperCommand("fail", time.Minute).Concat(context.Background(), dir, []string{"Ep01a.mp3"}, "Ep01.mp3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConcatenation))
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "bad frame header")
}

func TestCommand_Timeout(t *testing.T) {
	dir := stage(t, nil)

	err := helperCommand("sleep", 200*time.Millisecond).Concat(context.Background(), dir, nil, "Ep01.mp3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.False(t, errors.Is(err, ErrConcatenation))
}

func TestCommand_Cancelled(t *testing.T) {
	dir := stage(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	err := helperCommand("sleep", 0).Concat(ctx, dir, nil, "Ep01.mp3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCommand_MissingExecutable(t *testing.T) {
	cmd := NewCommand(filepath.Join(t.TempDir(), "no-such-tool"), nil, time.Minute)
	err := cmd.Concat(context.Background(), t.TempDir(), nil, "Ep01.mp3")
	assert.True(t, errors.Is(err, ErrConcatenation))
}
