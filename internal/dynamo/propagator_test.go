package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type decay struct{}

func (d *decay) Derive(x State, t float64) State {
	dx := make(State, len(x))
	for i := range x {
		dx[i] = -x[i]
	}
	return dx
}

func (d *decay) StateDim() int { return 2 }

type exploding struct{}

func (e *exploding) Derive(x State, t float64) State {
	return State{math.NaN(), math.NaN()}
}

func (e *exploding) StateDim() int { return 2 }

// runaway grows without bound but stays finite, so only the norm guard
// catches it.
type runaway struct{}

func (r *runaway) Derive(x State, t float64) State {
	dx := make(State, len(x))
	for i := range x {
		dx[i] = 1e8 * x[i]
	}
	return dx
}

func (r *runaway) StateDim() int { return 2 }

type euler struct{}

func (e *euler) Step(dyn System, x State, t, dt float64) State {
	dx := dyn.Derive(x, t)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

func TestPropagatorStepCount(t *testing.T) {
	p := New(&decay{}, &euler{})

	result, err := p.Run(context.Background(), State{1, 1}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatal(err)
	}

	if result.StepsTaken != 10 {
		t.Errorf("steps = %d, want 10", result.StepsTaken)
	}
	if len(result.States) != 11 {
		t.Errorf("stored states = %d, want 11", len(result.States))
	}
	if len(result.Times) != len(result.States) {
		t.Error("times and states out of sync")
	}
}

func TestPropagatorRejectsBadConfig(t *testing.T) {
	p := New(&decay{}, &euler{})

	if _, err := p.Run(context.Background(), State{1, 1}, Config{Dt: 0, Duration: 1}); err == nil {
		t.Error("zero dt must be rejected")
	}
	if _, err := p.Run(context.Background(), State{1, 1}, Config{Dt: 0.1, Duration: -1}); err == nil {
		t.Error("negative duration must be rejected")
	}
}

func TestPropagatorDimensionMismatch(t *testing.T) {
	p := New(&decay{}, &euler{})

	_, err := p.Run(context.Background(), State{1, 1, 1}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("got %v, want ErrDimensionMismatch", err)
	}
}

func TestPropagatorStopsOnInvalidState(t *testing.T) {
	p := New(&exploding{}, &euler{})

	result, err := p.Run(context.Background(), State{1, 1}, Config{Dt: 0.1, Duration: 1, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Errors) == 0 {
		t.Error("NaN state should be recorded as an error")
	}
	if result.StepsTaken != 0 {
		t.Errorf("propagation should stop at first invalid step, took %d", result.StepsTaken)
	}
}

func TestPropagatorContextCancel(t *testing.T) {
	p := New(&decay{}, &euler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, State{1, 1}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrContextCanceled) {
		t.Errorf("got %v, want ErrContextCanceled", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled in the chain", err)
	}
	var pe *PropagationError
	if !errors.As(err, &pe) {
		t.Fatalf("got %T, want *PropagationError", err)
	}
	if pe.Step != 0 {
		t.Errorf("cancellation step = %d, want 0", pe.Step)
	}
}

func TestPropagatorStopsWhenUnstable(t *testing.T) {
	p := New(&runaway{}, &euler{})

	result, err := p.Run(context.Background(), State{1, 1}, Config{Dt: 1, Duration: 10, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Errors) == 0 {
		t.Fatal("diverging state should be recorded as an error")
	}
	if !errors.Is(result.Errors[0], ErrUnstable) {
		t.Errorf("got %v, want ErrUnstable", result.Errors[0])
	}
	if result.StepsTaken == 10 {
		t.Error("propagation should stop before completing all steps")
	}
}

func TestEnsembleRuns(t *testing.T) {
	e := NewEnsemble(&decay{}, func() Integrator { return &euler{} }, 4, func(run int, x0 State) State {
		x0[0] += float64(run) * 0.1
		return x0
	})

	results, err := e.Run(context.Background(), State{1, 1}, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	// Perturbed starts must diverge.
	if results[0].States[0][0] == results[3].States[0][0] {
		t.Error("perturbation had no effect")
	}
}

func TestStateValidity(t *testing.T) {
	if !(State{1, 2, 3}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.Inf(1)}).IsValid() {
		t.Error("infinite state reported valid")
	}
	if (State{math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
}
