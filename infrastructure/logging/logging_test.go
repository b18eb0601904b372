package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// testLogger creates a logger that writes to a buffer for testing
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := bolt.NewJSONHandler(buf)
	logger := bolt.New(handler).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Format = %s, want console", config.Format)
	}
	if config.Output != os.Stdout {
		t.Errorf("Output = %v, want os.Stdout", config.Output)
	}
}

func TestProductionConfig(t *testing.T) {
	t.Parallel()

	config := ProductionConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO}, // Default
		{"", bolt.INFO},        // Empty defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"call_id", CallID("call-123"), `"call_id":"call-123"`},
		{"direction", DirectionField(propagation.Backward), `"direction":"backward"`},
		{"status", StatusField(propagation.StatusSuccess), `"status":"success"`},
		{"termination", TerminationField(propagation.TerminationPathLimit), `"termination":"path_limit"`},
		{"steps", Steps(42), `"steps":42`},
		{"max_steps", MaxSteps(1000), `"max_steps":1000`},
		{"path_length", PathLength(2.5), `"path_length":"2.5"`},
		{"step_size", StepSize(-100), `"step_size":"-100"`},
		{"distance", Distance(0.125), `"distance":"0.125"`},
		{"position", Position(geometry.Vec3{X: 1, Y: 2, Z: 3}), `"position":"(1, 2, 3)"`},
		{"targeted", Targeted(true), `"targeted":true`},
		{"component", Component("propagator"), `"component":"propagator"`},
		{"str", Str("surface", "plane"), `"surface":"plane"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := testLogger()
			NewEvent(logger.Info()).Add(tt.field).Msg("test")

			if got := buf.String(); !strings.Contains(got, tt.want) {
				t.Errorf("log output = %s, want substring %s", got, tt.want)
			}
		})
	}
}

func TestDurationFields(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	NewEvent(logger.Info()).
		Add(Duration(1500 * time.Millisecond)).
		Add(DurationNs(2 * time.Microsecond)).
		Msg("timing")

	got := buf.String()
	if !strings.Contains(got, `"duration_ms":1500`) {
		t.Errorf("log output = %s, want duration_ms 1500", got)
	}
	if !strings.Contains(got, `"duration_ns":2000`) {
		t.Errorf("log output = %s, want duration_ns 2000", got)
	}
}

func TestErrorField(t *testing.T) {
	t.Parallel()

	t.Run("with error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		NewEvent(logger.Error()).Add(ErrorField(errors.New("step diverged"))).Msg("failed")

		if got := buf.String(); !strings.Contains(got, "step diverged") {
			t.Errorf("log output = %s, want error message", got)
		}
	})

	t.Run("nil error is a no-op", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		NewEvent(logger.Error()).Add(ErrorField(nil)).Msg("no error")

		if got := buf.String(); strings.Contains(got, `"error"`) {
			t.Errorf("log output = %s, want no error key", got)
		}
	})
}

func TestEventChaining(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	NewEvent(logger.Info()).
		Add(CallID("call-1")).
		Add(Steps(3)).
		Add(PathLength(300)).
		Add(StatusField(propagation.StatusSuccess)).
		Msg("propagation completed")

	got := buf.String()
	for _, want := range []string{`"call_id":"call-1"`, `"steps":3`, `"path_length":"300"`, `"status":"success"`} {
		if !strings.Contains(got, want) {
			t.Errorf("log output = %s, want substring %s", got, want)
		}
	}
}
