package integrators

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

type oscillator struct{}

func (s *oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *oscillator) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

// Concurrent ensemble runs must match serial propagation exactly: RK4 keeps
// per-step scratch buffers, so every run needs its own instance.
func TestEnsembleMatchesSerialRuns(t *testing.T) {
	dyn := &oscillator{}
	cfg := dynamo.Config{Dt: 0.01, Duration: 5, ValidateState: true}
	numRuns := 8

	perturb := func(run int, x0 dynamo.State) dynamo.State {
		x0[0] += 0.01 * float64(run)
		return x0
	}

	e := dynamo.NewEnsemble(dyn, func() dynamo.Integrator { return NewRK4() }, numRuns, perturb)
	results, err := e.Run(context.Background(), dynamo.State{1, 0}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for run, r := range results {
		start := perturb(run, dynamo.State{1, 0})
		serial, err := dynamo.New(dyn, NewRK4()).Run(context.Background(), start, cfg)
		if err != nil {
			t.Fatal(err)
		}

		got := r.States[len(r.States)-1]
		want := serial.States[len(serial.States)-1]
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("run %d component %d: ensemble %.12e, serial %.12e", run, i, got[i], want[i])
			}
		}
	}
}

func TestEulerConvergesToRK4(t *testing.T) {
	dyn := &oscillator{}
	rk := NewRK4()
	eu := NewEuler()

	xr := dynamo.State{1.0, 0.0}
	xe := dynamo.State{1.0, 0.0}
	dt := 1e-4
	for i := 0; i < 1000; i++ {
		xr = rk.Step(dyn, xr, float64(i)*dt, dt)
		xe = eu.Step(dyn, xe, float64(i)*dt, dt)
	}

	if math.Abs(xr[0]-xe[0]) > 1e-4 {
		t.Errorf("euler diverged from rk4: %.8f vs %.8f", xe[0], xr[0])
	}
}
