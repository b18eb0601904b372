package helix

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/felixgeelhaar/propagator-go/application"
	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
)

// unitHelix is a stepper whose bending radius is exactly one for a unit
// charge and momentum: B = 1 T along z.
func unitHelix() *Stepper {
	return New(geometry.Vec3{Z: 1})
}

func unitStart() Parameters {
	return Parameters{
		Direction: geometry.Vec3{X: 1},
		Momentum:  1,
		Charge:    1,
	}
}

func TestStepZeroFieldIsStraight(t *testing.T) {
	s := New(geometry.Vec3{})
	cache := s.NewCache(unitStart(), 2)

	length, err := s.Step(cache)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if length != 2 {
		t.Errorf("Step() = %g, want 2", length)
	}
	if got := cache.Position(); got != (geometry.Vec3{X: 2}) {
		t.Errorf("position = %v, want (2, 0, 0)", got)
	}
	if got := cache.Direction(); got != (geometry.Vec3{X: 1}) {
		t.Errorf("direction = %v, want unchanged", got)
	}
}

func TestStepNeutralParticleIsStraight(t *testing.T) {
	s := unitHelix()
	start := unitStart()
	start.Charge = 0
	cache := s.NewCache(start, 3)

	if _, err := s.Step(cache); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := cache.Position(); got != (geometry.Vec3{X: 3}) {
		t.Errorf("position = %v, want (3, 0, 0)", got)
	}
}

func TestStepParallelToFieldIsStraight(t *testing.T) {
	s := unitHelix()
	start := unitStart()
	start.Direction = geometry.Vec3{Z: 1}
	cache := s.NewCache(start, 4)

	if _, err := s.Step(cache); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	got := cache.Position()
	if math.Abs(got.Z-4) > 1e-12 || math.Abs(got.X) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("position = %v, want (0, 0, 4)", got)
	}
}

func TestStepHalfTurn(t *testing.T) {
	s := unitHelix()
	cache := s.NewCache(unitStart(), math.Pi)

	length, err := s.Step(cache)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if length != math.Pi {
		t.Errorf("Step() = %g, want pi", length)
	}

	// Half a turn on the unit circle: across the diameter, direction
	// reversed.
	pos := cache.Position()
	if math.Abs(pos.X) > 1e-12 || math.Abs(pos.Y+2) > 1e-12 || math.Abs(pos.Z) > 1e-12 {
		t.Errorf("position = %v, want (0, -2, 0)", pos)
	}
	dir := cache.Direction()
	if math.Abs(dir.X+1) > 1e-12 || math.Abs(dir.Y) > 1e-12 {
		t.Errorf("direction = %v, want (-1, 0, 0)", dir)
	}
}

func TestStepPreservesDirectionNorm(t *testing.T) {
	s := unitHelix()
	start := unitStart()
	start.Direction = geometry.Vec3{X: 1, Y: 0.5, Z: 0.25}.Unit()
	cache := s.NewCache(start, 0.7)

	for i := 0; i < 50; i++ {
		if _, err := s.Step(cache); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
		if got := cache.Direction().Norm(); math.Abs(got-1) > 1e-12 {
			t.Fatalf("direction norm after step %d = %g, want 1", i+1, got)
		}
	}
}

func TestFullTurnReturnsToStart(t *testing.T) {
	s := unitHelix()

	const steps = 100
	cache := s.NewCache(unitStart(), 2*math.Pi/steps)

	for i := 0; i < steps; i++ {
		if _, err := s.Step(cache); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}

	if got := cache.Position().Norm(); got > 1e-9 {
		t.Errorf("position after full turn = %v, want origin", cache.Position())
	}
	dir := cache.Direction()
	if math.Abs(dir.X-1) > 1e-9 || math.Abs(dir.Y) > 1e-9 {
		t.Errorf("direction after full turn = %v, want (1, 0, 0)", dir)
	}
}

func TestConvertCarriesChargeAndMomentum(t *testing.T) {
	s := unitHelix()
	start := unitStart()
	start.Charge = -1
	start.Momentum = 2.5
	cache := s.NewCache(start, 1)

	got := s.Convert(cache)
	if got.Charge != -1 {
		t.Errorf("Charge = %g, want -1", got.Charge)
	}
	if got.Momentum != 2.5 {
		t.Errorf("Momentum = %g, want 2.5", got.Momentum)
	}
}

func TestConvertAtNoIntersection(t *testing.T) {
	s := unitHelix()
	start := unitStart()
	start.Direction = geometry.Vec3{Y: 1}
	cache := s.NewCache(start, 1)

	target := geometry.NewPlane(geometry.Vec3{X: 10}, geometry.Vec3{X: 1})
	_, err := s.ConvertAt(cache, target)
	if !errors.Is(err, propagation.ErrNoIntersection) {
		t.Errorf("ConvertAt() error = %v, want ErrNoIntersection", err)
	}
}

func TestHelixWithPropagator(t *testing.T) {
	p, err := application.New[Parameters, *Cache](unitHelix())
	if err != nil {
		t.Fatalf("application.New() error = %v", err)
	}

	// The unit helix curls through x = 0.5 well before completing a turn.
	target := geometry.NewPlane(geometry.Vec3{X: 0.5}, geometry.Vec3{X: 1})

	options := propagation.DefaultOptions[Parameters, *Cache]()
	options.MaxStepSize = 0.1

	result, err := p.PropagateTo(context.Background(), unitStart(), target, options)
	if err != nil {
		t.Fatalf("PropagateTo() error = %v", err)
	}

	if result.Termination != propagation.TerminationTarget {
		t.Errorf("Termination = %v, want target", result.Termination)
	}
	if !result.Valid() {
		t.Fatal("result should be valid")
	}
	if got := result.EndParameters.Position.X; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("end position X = %g, want 0.5", got)
	}
}
