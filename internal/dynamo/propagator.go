package dynamo

import (
	"context"
	"fmt"
	"math"
)

// States whose norm exceeds this are treated as diverged rather than merely
// invalid; NaN guards alone miss runaway magnitudes that stay finite.
const maxStateNorm = 1e12

type Propagator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Propagator {
	return &Propagator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (p *Propagator) AddMetric(m Metric)     { p.metrics = append(p.metrics, m) }
func (p *Propagator) AddObserver(o Observer) { p.observers = append(p.observers, o) }

func (p *Propagator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := p.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != p.dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d",
			ErrDimensionMismatch, len(x0), p.dyn.StateDim())
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range p.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := p.computeEnergy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, &PropagationError{
				Step:    i,
				Time:    t,
				State:   x.Clone(),
				Wrapped: fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		for _, m := range p.metrics {
			m.Observe(x, t)
		}
		for _, obs := range p.observers {
			obs.OnStep(x, t)
		}

		newX := p.integrator.Step(p.dyn, x, t, cfg.Dt)
		if proj, ok := p.dyn.(Projector); ok {
			proj.Project(newX)
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}
		if cfg.ValidateState && newX.Norm() > maxStateNorm {
			result.Errors = append(result.Errors, &PropagationError{
				Step:    i,
				Time:    t,
				State:   newX,
				Wrapped: ErrUnstable,
			})
			break
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := p.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range p.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the system, invoking callback before each step;
// returning false from the callback stops the propagation.
func (p *Propagator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := p.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = p.integrator.Step(p.dyn, x, t, cfg.Dt)
		if proj, ok := p.dyn.(Projector); ok {
			proj.Project(x)
		}
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t)
		}
	}

	return nil
}

func (p *Propagator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func (p *Propagator) computeEnergy(x State) float64 {
	if ec, ok := p.dyn.(Hamiltonian); ok {
		return ec.Energy(x)
	}
	return 0
}
