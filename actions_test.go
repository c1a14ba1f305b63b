package wit

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"send", true},
		{"getForecast", true},
		{"get_forecast", true},
		{"_private", true},
		{"step2", true},
		{"", false},
		{"2fast", false},
		{"get-forecast", false},
		{"get forecast", false},
		{"wit$location", false},
	}

	for _, tt := range tests {
		if got := isIdentifier(tt.name); got != tt.want {
			t.Errorf("isIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// captureLogger returns a logger writing to buf so tests can assert on
// the warnings soft validation emits.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestActionsValidate_WarnsButNeverFails(t *testing.T) {
	tests := []struct {
		name     string
		actions  *Actions
		wantWarn string // substring of an expected warning, "" for clean
	}{
		{
			"complete registry",
			&Actions{
				Send:  func(Request, Response) {},
				Named: map[string]ActionHandler{"getForecast": func(Request) map[string]any { return nil }},
			},
			"",
		},
		{
			"missing send",
			&Actions{Named: map[string]ActionHandler{"x": func(Request) map[string]any { return nil }}},
			"no Send handler",
		},
		{
			"bad action name",
			&Actions{
				Send:  func(Request, Response) {},
				Named: map[string]ActionHandler{"not a name": func(Request) map[string]any { return nil }},
			},
			"not an identifier",
		},
		{
			"nil handler",
			&Actions{
				Send:  func(Request, Response) {},
				Named: map[string]ActionHandler{"broken": nil},
			},
			"nil handler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			// Construction must succeed no matter what the registry
			// looks like; defects only warn.
			c := New("t", WithActions(tt.actions), WithLogger(captureLogger(&buf)))
			if c == nil {
				t.Fatal("New returned nil")
			}

			logged := buf.String()
			if tt.wantWarn == "" {
				if strings.Contains(logged, "WARN") {
					t.Errorf("unexpected warning: %s", logged)
				}
				return
			}
			if !strings.Contains(logged, tt.wantWarn) {
				t.Errorf("expected warning containing %q, got: %s", tt.wantWarn, logged)
			}
		})
	}
}
