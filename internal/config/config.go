package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 10.0
	DefaultDuration = 86400.0
	DefaultSpinRate = 2.28e-4
)

type Config struct {
	Body        BodyConfig    `yaml:"body"`
	CentralBody CentralConfig `yaml:"central_body"`
	Integrator  string        `yaml:"integrator"`
	Dt          float64       `yaml:"dt"`
	Duration    float64       `yaml:"duration"`
	Seed        int64         `yaml:"seed"`
	InitState   InitState     `yaml:"init_state"`
	Estimate    Estimate      `yaml:"estimate"`
}

// BodyConfig describes the body whose attitude is propagated and estimated.
type BodyConfig struct {
	Name            string  `yaml:"name"`
	Mu              float64 `yaml:"mu"`
	ReferenceRadius float64 `yaml:"reference_radius"`
	MeanMoment      float64 `yaml:"mean_moment"`
	C20             float64 `yaml:"c20"`
	C21             float64 `yaml:"c21"`
	C22             float64 `yaml:"c22"`
	S21             float64 `yaml:"s21"`
	S22             float64 `yaml:"s22"`
}

// CentralConfig describes the body exerting the gravity gradient torque.
// Distance is the (assumed fixed) separation along the inertial x axis.
type CentralConfig struct {
	Name     string  `yaml:"name"`
	Mu       float64 `yaml:"mu"`
	Distance float64 `yaml:"distance"`
}

type InitState struct {
	Quaternion []float64 `yaml:"quaternion"`
	Omega      []float64 `yaml:"omega"`
}

// Estimate selects which parameters the run solves for.
type Estimate struct {
	GravitationalParameter bool `yaml:"gravitational_parameter"`
	MeanMoment             bool `yaml:"mean_moment"`
	CosineCoefficients     bool `yaml:"cosine_coefficients"`
	SineCoefficients       bool `yaml:"sine_coefficients"`
}

func DefaultConfig() *Config {
	return &Config{
		Body: BodyConfig{
			Name:            "phobos",
			Mu:              7.11e5,
			ReferenceRadius: 11.1e3,
			MeanMoment:      0.35,
			C20:             -0.0473,
			C22:             0.0229,
		},
		CentralBody: CentralConfig{
			Name:     "mars",
			Mu:       4.2828e13,
			Distance: 9.378e6,
		},
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitState{
			Quaternion: []float64{1, 0, 0, 0},
			Omega:      []float64{0, 0, DefaultSpinRate},
		},
		Estimate: Estimate{
			GravitationalParameter: true,
			CosineCoefficients:     true,
			SineCoefficients:       true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState assembles the 7-dim propagation state (q0..q3, w1..w3).
func (c *Config) GetInitState() []float64 {
	s := make([]float64, 7)
	copy(s[0:4], c.InitState.Quaternion)
	copy(s[4:7], c.InitState.Omega)
	return s
}
