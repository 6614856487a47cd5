package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func resetContext(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	globalContext = &crashContext{fs: fs}
	t.Cleanup(func() { globalContext = &crashContext{fs: afero.NewOsFs()} })
	return fs
}

func TestCrashHandler_SetContext(t *testing.T) {
	resetContext(t)

	SetBasePath("/tmp/test-taskify")
	SetVersion("1.0.0-test")
	SetCommand("add")
	SetLastInput("  buy milk  ")

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	if globalContext.basePath != "/tmp/test-taskify" {
		t.Errorf("Expected basePath '/tmp/test-taskify', got '%s'", globalContext.basePath)
	}
	if globalContext.version != "1.0.0-test" {
		t.Errorf("Expected version '1.0.0-test', got '%s'", globalContext.version)
	}
	if globalContext.command != "add" {
		t.Errorf("Expected command 'add', got '%s'", globalContext.command)
	}
	if globalContext.lastInput != "buy milk" {
		t.Errorf("Expected lastInput 'buy milk', got '%s'", globalContext.lastInput)
	}
}

func TestCrashHandler_SetLastInput_Truncation(t *testing.T) {
	resetContext(t)

	SetLastInput(strings.Repeat("a", 900))

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	if len(globalContext.lastInput) > 520 {
		t.Errorf("Expected input to be truncated, got length %d", len(globalContext.lastInput))
	}
	if !strings.HasSuffix(globalContext.lastInput, "[truncated]") {
		t.Error("Expected truncated input to end with '[truncated]'")
	}
}

func TestCrashHandler_CreateCrashLog(t *testing.T) {
	resetContext(t)
	SetVersion("1.0.0")
	SetCommand("toggle")

	log := createCrashLog("test panic")

	if log.PanicValue != "test panic" {
		t.Errorf("Expected PanicValue 'test panic', got '%s'", log.PanicValue)
	}
	if log.Command != "toggle" {
		t.Errorf("Expected Command 'toggle', got '%s'", log.Command)
	}
	if log.StackTrace == "" || log.GoVersion == "" {
		t.Error("Expected stack trace and Go version")
	}
}

func TestWriteCrashLog_RoundTripAndRetention(t *testing.T) {
	resetContext(t)
	SetBasePath("/data")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < MaxCrashLogs+3; i++ {
		log := CrashLog{Timestamp: base.Add(time.Duration(i) * time.Second), PanicValue: "boom", Command: "list"}
		if _, err := WriteCrashLog(log); err != nil {
			t.Fatalf("WriteCrashLog() error = %v", err)
		}
	}

	paths, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs() error = %v", err)
	}
	if len(paths) != MaxCrashLogs {
		t.Fatalf("expected %d crash logs, got %d", MaxCrashLogs, len(paths))
	}
	if !strings.Contains(paths[0], "crash_20260101_120003.000.json") {
		t.Errorf("oldest kept log = %s, want the fourth one", paths[0])
	}

	got, err := ReadCrashLog(paths[len(paths)-1])
	if err != nil {
		t.Fatalf("ReadCrashLog() error = %v", err)
	}
	if got.PanicValue != "boom" || got.Command != "list" {
		t.Errorf("unexpected crash log: %+v", got)
	}
}

func TestListCrashLogs_NoDirectory(t *testing.T) {
	resetContext(t)
	SetBasePath("/nowhere")

	paths, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs() error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no logs, got %v", paths)
	}
}

func TestNew_Levels(t *testing.T) {
	var quiet, loud bytes.Buffer
	New(&quiet, false).Debug("hidden")
	New(&quiet, false).Warn("shown")
	New(&loud, true).Debug("visible")

	if strings.Contains(quiet.String(), "hidden") || !strings.Contains(quiet.String(), "shown") {
		t.Errorf("non-verbose logger output = %q", quiet.String())
	}
	if !strings.Contains(loud.String(), "visible") {
		t.Errorf("verbose logger output = %q", loud.String())
	}
}
