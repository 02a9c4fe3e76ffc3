package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputChoice(t *testing.T) {
	t.Setenv("LOG_FILE", "")

	out, err := output(false)
	if err != nil || out != io.Writer(os.Stderr) {
		t.Fatalf("plain output = %v, %v; want stderr", out, err)
	}
	out, err = output(true)
	if err != nil || out != io.Discard {
		t.Fatalf("screen output = %v, %v; want discard", out, err)
	}
}

func TestOutputPrefersLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_FILE", path)

	for _, screen := range []bool{false, true} {
		out, err := output(screen)
		if err != nil {
			t.Fatalf("output(%v): %v", screen, err)
		}
		f, ok := out.(*os.File)
		if !ok || f.Name() != path {
			t.Fatalf("output(%v) = %v, want %s", screen, out, path)
		}
		f.Close()
	}
}

func TestInitKeepsScreenClean(t *testing.T) {
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_LEVEL", "info")
	defer Log.SetOutput(os.Stderr)

	Init(true)
	if Log.Out != io.Discard {
		t.Fatalf("log output = %v while the terminal is in use", Log.Out)
	}

	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_FILE", path)
	Init(true)
	Component("tty").Info("phase changed")
	if f, ok := Log.Out.(*os.File); ok {
		f.Close()
	}
	b, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(b), "phase changed") {
		t.Fatalf("log file = %q, %v", b, err)
	}
}
