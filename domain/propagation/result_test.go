package propagation

import (
	"errors"
	"testing"
)

type point struct {
	X, Y float64
}

func TestNewResult(t *testing.T) {
	r := NewResult[point](StatusUnset)

	if r.Status != StatusUnset {
		t.Errorf("Status = %v, want %v", r.Status, StatusUnset)
	}
	if r.Termination != TerminationNone {
		t.Errorf("Termination = %v, want %v", r.Termination, TerminationNone)
	}
	if r.EndParameters != nil {
		t.Error("EndParameters should be nil initially")
	}
	if r.Steps != 0 {
		t.Errorf("Steps = %d, want 0", r.Steps)
	}
	if r.PathLength != 0 {
		t.Errorf("PathLength = %g, want 0", r.PathLength)
	}
}

func TestResultValid(t *testing.T) {
	end := point{X: 1}

	tests := []struct {
		name   string
		result Result[point]
		want   bool
	}{
		{
			name:   "success with end parameters",
			result: Result[point]{EndParameters: &end, Status: StatusSuccess},
			want:   true,
		},
		{
			name:   "success without end parameters",
			result: Result[point]{Status: StatusSuccess},
			want:   false,
		},
		{
			name:   "failure with end parameters",
			result: Result[point]{EndParameters: &end, Status: StatusFailure},
			want:   false,
		},
		{
			name:   "unset",
			result: Result[point]{Status: StatusUnset},
			want:   false,
		},
		{
			name:   "in progress with end parameters",
			result: Result[point]{EndParameters: &end, Status: StatusInProgress},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultPayloads(t *testing.T) {
	r := NewResult[point](StatusInProgress)

	if r.HasPayload("counter") {
		t.Error("fresh result should have no payloads")
	}
	if _, ok := r.Payload("counter"); ok {
		t.Error("Payload() on fresh result should report absence")
	}

	r.SetPayload("counter", uint(3))

	if !r.HasPayload("counter") {
		t.Error("HasPayload() = false after SetPayload")
	}
	v, ok := r.Payload("counter")
	if !ok {
		t.Fatal("Payload() should find stored value")
	}
	if v.(uint) != 3 {
		t.Errorf("Payload() = %v, want 3", v)
	}

	r.SetPayload("counter", uint(4))
	v, _ = r.Payload("counter")
	if v.(uint) != 4 {
		t.Errorf("Payload() after overwrite = %v, want 4", v)
	}
}

func TestPayloadAs(t *testing.T) {
	r := NewResult[point](StatusInProgress)
	r.SetPayload("samples", []float64{1, 2, 3})

	t.Run("matching type", func(t *testing.T) {
		got, err := PayloadAs[[]float64](&r, "samples")
		if err != nil {
			t.Fatalf("PayloadAs() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := PayloadAs[[]float64](&r, "absent")
		if !errors.Is(err, ErrPayloadMissing) {
			t.Errorf("error = %v, want ErrPayloadMissing", err)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := PayloadAs[string](&r, "samples")
		if !errors.Is(err, ErrPayloadType) {
			t.Errorf("error = %v, want ErrPayloadType", err)
		}
	})
}
