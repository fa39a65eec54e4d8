package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rotodyn/internal/assembly"
	"github.com/san-kum/rotodyn/internal/config"
	"github.com/san-kum/rotodyn/internal/dynamo"
	"github.com/san-kum/rotodyn/internal/estparams"
	"github.com/san-kum/rotodyn/internal/integrators"
	"github.com/san-kum/rotodyn/internal/metrics"
	"github.com/san-kum/rotodyn/internal/partials"
	"github.com/san-kum/rotodyn/internal/physics"
	"github.com/san-kum/rotodyn/internal/statistics"
	"github.com/san-kum/rotodyn/internal/viz"
)

var (
	configFile string
	dt         float64
	duration   float64
	seed       int64
	integrator string
	epoch      float64
	runs       int
	sigma      float64
	setParams  []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rotodyn",
		Short: "rotational dynamics propagation and torque partials",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "propagate the rotational state",
		RunE:  runPropagation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().StringArrayVar(&setParams, "set", nil, "override a body parameter, name=value (repeatable)")

	jacobianCmd := &cobra.Command{
		Use:   "jacobian",
		Short: "assemble state and parameter Jacobians",
		RunE:  printJacobians,
	}
	jacobianCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	jacobianCmd.Flags().Float64Var(&epoch, "at", 0, "propagate to this time before assembling")
	jacobianCmd.Flags().StringArrayVar(&setParams, "set", nil, "override a body parameter, name=value (repeatable)")

	monteCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "ensemble runs with perturbed spin state",
		RunE:  runMonteCarlo,
	}
	monteCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	monteCmd.Flags().IntVar(&runs, "runs", 16, "number of ensemble runs")
	monteCmd.Flags().Float64Var(&sigma, "sigma", 1e-6, "angular velocity perturbation sigma (rad/s)")
	monteCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of the spin state",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(runCmd, jacobianCmd, monteCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

type scenario struct {
	cfg      *config.Config
	body     *physics.RigidBody
	gravity  *physics.SecondDegreeGravitationalTorque
	dyn      *physics.RotationalDynamics
	integ    dynamo.Integrator
	newInteg func() dynamo.Integrator
}

func buildScenario() (*scenario, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}

	body := &physics.RigidBody{
		Name: cfg.Body.Name,
		Field: physics.GravityField{
			Mu:              cfg.Body.Mu,
			ReferenceRadius: cfg.Body.ReferenceRadius,
			C20:             cfg.Body.C20,
			C21:             cfg.Body.C21,
			C22:             cfg.Body.C22,
			S21:             cfg.Body.S21,
			S22:             cfg.Body.S22,
		},
		MeanMoment: cfg.Body.MeanMoment,
	}

	gravity := &physics.SecondDegreeGravitationalTorque{
		Body:     body,
		Exerting: cfg.CentralBody.Name,
		Mu:       cfg.CentralBody.Mu,
		PositionInertial: func(t float64) *mat.VecDense {
			return mat.NewVecDense(3, []float64{cfg.CentralBody.Distance, 0, 0})
		},
	}

	var newInteg func() dynamo.Integrator
	switch cfg.Integrator {
	case "euler":
		newInteg = func() dynamo.Integrator { return integrators.NewEuler() }
	default:
		newInteg = func() dynamo.Integrator { return integrators.NewRK4() }
	}

	dyn := physics.NewRotationalDynamics(body, gravity)
	if err := applyParamOverrides(dyn, setParams); err != nil {
		return nil, err
	}

	return &scenario{
		cfg:      cfg,
		body:     body,
		gravity:  gravity,
		dyn:      dyn,
		integ:    newInteg(),
		newInteg: newInteg,
	}, nil
}

// applyParamOverrides drives --set flags through the generic Configurable
// surface, so the CLI needs no knowledge of the concrete parameter set.
func applyParamOverrides(target dynamo.Configurable, overrides []string) error {
	known := target.GetParams()
	for _, ov := range overrides {
		name, valStr, ok := strings.Cut(ov, "=")
		if !ok {
			return fmt.Errorf("malformed --set %q, want name=value", ov)
		}
		if _, exists := known[name]; !exists {
			return fmt.Errorf("unknown parameter %q in --set", name)
		}
		v, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return fmt.Errorf("bad value in --set %q: %v", ov, err)
		}
		if err := target.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

func runPropagation(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario()
	if err != nil {
		return err
	}

	prop := dynamo.New(sc.dyn, sc.integ)
	prop.AddMetric(metrics.NewKineticEnergy(sc.dyn))
	prop.AddMetric(metrics.NewEnergyDrift(sc.dyn))
	prop.AddMetric(metrics.NewMomentumDrift(sc.body.InertiaTensor))

	result, err := prop.Run(context.Background(),
		dynamo.State(sc.cfg.GetInitState()),
		dynamo.Config{Dt: sc.cfg.Dt, Duration: sc.cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "body\t%s\n", sc.cfg.Body.Name)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "energy drift\t%.3e\n", result.EnergyDrift)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6e\n", name, value)
	}
	w.Flush()

	if len(result.States) > 1 {
		series := make([]float64, 0, len(result.States))
		stride := len(result.States)/120 + 1
		for i := 0; i < len(result.States); i += stride {
			series = append(series, result.States[i][6])
		}
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(12),
			asciigraph.Caption("spin rate w3 (rad/s)")))
	}

	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", e)
	}
	return nil
}

func printJacobians(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario()
	if err != nil {
		return err
	}

	state := dynamo.State(sc.cfg.GetInitState())
	t := 0.0
	if epoch > 0 {
		prop := dynamo.New(sc.dyn, sc.integ)
		err := prop.RunWithCallback(context.Background(), state,
			dynamo.Config{Dt: sc.cfg.Dt, Duration: epoch, ValidateState: true},
			func(x dynamo.State, tc float64) bool {
				state = x.Clone()
				t = tc
				return true
			})
		if err != nil {
			return err
		}
	}

	// Hand the epoch's state to the evaluators the partials consume.
	q := append([]float64(nil), state[0:4]...)
	sc.body.SetAngularVelocity(mat.NewVecDense(3, []float64{state[4], state[5], state[6]}))

	inertial := partials.NewInertialTorquePartial(sc.body.Name,
		sc.body.AngularVelocity,
		sc.body.InertiaTensor,
		sc.body.NormalizationFactor,
		sc.body.GravitationalParameter)

	gravGradient := partials.NewSecondDegreeGravitationalTorquePartial(
		sc.body.Name, sc.gravity.Exerting,
		func() *mat.VecDense { return sc.gravity.BodyFixedPosition(q, t) },
		sc.body.InertiaTensor,
		sc.body.NormalizationFactor,
		func() float64 { return sc.gravity.Mu })

	registry := &estparams.Registry{}
	if sc.cfg.Estimate.GravitationalParameter {
		registry.AddScalar(estparams.Scalar{Kind: estparams.KindGravitationalParameter, Body: sc.body.Name})
	}
	if sc.cfg.Estimate.MeanMoment {
		registry.AddScalar(estparams.Scalar{Kind: estparams.KindMeanMomentOfInertia, Body: sc.body.Name})
	}
	if sc.cfg.Estimate.CosineCoefficients {
		registry.AddVector(estparams.Degree2Cosine(sc.body.Name))
	}
	if sc.cfg.Estimate.SineCoefficients {
		registry.AddVector(estparams.Degree2Sine(sc.body.Name))
	}

	asm := assembly.New(sc.body.AngularVelocity, sc.body.InertiaTensor,
		registry, inertial, gravGradient)

	fmt.Printf("state Jacobian at t=%.1f s:\n%v\n\n", t,
		mat.Formatted(asm.StateJacobian(t), mat.Prefix(" "), mat.Squeeze()))

	if pj := asm.ParameterJacobian(t); pj != nil {
		fmt.Printf("parameter Jacobian (%d columns):\n%v\n", registry.TotalColumns(),
			mat.Formatted(pj, mat.Prefix(" "), mat.Squeeze()))
	} else {
		fmt.Println("no parameters registered")
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario()
	if err != nil {
		return err
	}

	simCfg := dynamo.Config{Dt: sc.cfg.Dt, Duration: sc.cfg.Duration, Seed: seed, ValidateState: true}
	init := dynamo.State(sc.cfg.GetInitState())

	// Draw all perturbations up front; the perturb callback runs on the
	// ensemble's goroutines and the generator is not thread-safe.
	noise := statistics.NewGaussian(0, sigma, simCfg.Seed)
	perturbs := make([][3]float64, runs)
	for i := range perturbs {
		for j := 0; j < 3; j++ {
			perturbs[i][j] = noise.Value()
		}
	}

	nominal, err := dynamo.New(sc.dyn, sc.newInteg()).Run(context.Background(), init, simCfg)
	if err != nil {
		return err
	}
	nominalFinal := nominal.States[len(nominal.States)-1]

	ensemble := dynamo.NewEnsemble(sc.dyn, sc.newInteg, runs, func(run int, x0 dynamo.State) dynamo.State {
		for j := 0; j < 3; j++ {
			x0[4+j] += perturbs[run][j]
		}
		return x0
	})

	results, err := ensemble.Run(context.Background(), init, simCfg)
	if err != nil {
		return err
	}

	finals := make([]float64, 0, len(results))
	maxDeviation := 0.0
	for _, r := range results {
		last := r.States[len(r.States)-1]
		finals = append(finals, last[6])
		if dev := last.Sub(nominalFinal).Norm(); dev > maxDeviation {
			maxDeviation = dev
		}
	}
	mean, std := stat.MeanStdDev(finals, nil)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "runs\t%d\n", len(results))
	fmt.Fprintf(w, "seed\t%d\n", simCfg.Seed)
	fmt.Fprintf(w, "final w3 mean\t%.6e rad/s\n", mean)
	fmt.Fprintf(w, "final w3 stddev\t%.6e rad/s\n", std)
	fmt.Fprintf(w, "max final deviation\t%.6e\n", maxDeviation)
	w.Flush()
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario()
	if err != nil {
		return err
	}

	model := viz.NewModel(sc.dyn, sc.integ, sc.cfg.GetInitState(), sc.cfg.Dt, sc.cfg.Body.Name)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
