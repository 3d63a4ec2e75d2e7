package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDebugModeWritesToStdout(t *testing.T) {
	log := New("debug", Options{})
	if log == nil {
		t.Fatal("expected logger instance")
	}
	log.Sugar().Debugw("debug_probe", "key", "value")
}

func TestNewReleaseModeCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "test.log"})
	if log == nil {
		t.Fatal("expected logger instance")
	}
	log.Sugar().Infow("release_probe")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "test.log")); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestZFallbackWithoutInit(t *testing.T) {
	saved := L
	L = nil
	defer func() { L = saved }()

	if Z() == nil {
		t.Fatal("expected fallback logger")
	}
	if S() == nil {
		t.Fatal("expected sugared fallback logger")
	}
}

func TestNormalizePositiveInt(t *testing.T) {
	if got := normalizePositiveInt(0, 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := normalizePositiveInt(3, 7); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
