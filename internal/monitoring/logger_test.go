package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	// Setting nil installs a no-op logger.
	called = false
	SetLogger(nil)
	Logf("test")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
}

func capture(t *testing.T) *[]string {
	t.Helper()
	original := Logf
	t.Cleanup(func() { Logf = original })

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	return &lines
}

func TestProgressLogger(t *testing.T) {
	lines := capture(t)

	report := ProgressLogger("pulses", 25)
	for i := 1; i <= 100; i++ {
		report(i, 100)
	}

	want := []string{
		"pulses: 1/100 (1%)",
		"pulses: 26/100 (26%)",
		"pulses: 51/100 (51%)",
		"pulses: 76/100 (76%)",
		"pulses: 100/100 (100%)",
	}
	if len(*lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(*lines), *lines, len(want))
	}
	for i := range want {
		if (*lines)[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, (*lines)[i], want[i])
		}
	}
}

func TestProgressLoggerSmallTotals(t *testing.T) {
	lines := capture(t)

	report := ProgressLogger("pulses", 0)
	report(1, 3)
	report(2, 3)
	report(3, 3)
	report(1, 0)

	if len(*lines) != 3 {
		t.Errorf("got %q, want one line per call with a positive total", *lines)
	}
}
