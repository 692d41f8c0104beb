package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var errSample = errors.New("sample")

func TestLoggerVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		logger    Logger
		wantInfo  bool
		wantDebug bool
		wantWarn  bool
	}{
		{"quiet", Logger{}, false, false, false},
		{"verbose", Logger{Verbose: true}, true, false, true},
		{"debug", Logger{Debug: true}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out, l.Err = &out, &errOut

			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)

			if got := strings.Contains(out.String(), "info 1"); got != tt.wantInfo {
				t.Errorf("info printed = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out.String(), "debug 2"); got != tt.wantDebug {
				t.Errorf("debug printed = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(errOut.String(), "warn 3"); got != tt.wantWarn {
				t.Errorf("warn printed = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestWarnfUserAlwaysPrints(t *testing.T) {
	var errOut bytes.Buffer
	l := Logger{Err: &errOut}

	l.WarnfUser("overwriting %s", "alice")
	if !strings.Contains(errOut.String(), "overwriting alice") {
		t.Errorf("expected warning on stderr, got %q", errOut.String())
	}
}

func TestErrorfAndReturnWraps(t *testing.T) {
	var errOut bytes.Buffer
	l := Logger{Debug: true, Err: &errOut}

	err := l.ErrorfAndReturn("loading keyring: %w", errSample)
	if !errors.Is(err, errSample) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "loading keyring: sample") {
		t.Errorf("expected error to be logged in debug mode, got %q", errOut.String())
	}
}
