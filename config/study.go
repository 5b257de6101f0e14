package config

import (
	"fmt"

	"github.com/gridopt/powersched/core/model"
	"github.com/gridopt/powersched/core/uc"
)

// UnitConfig describes one thermal unit of the study.
type UnitConfig struct {
	Name        string  `json:"name"`
	C0          float64 `json:"c0"`
	C1          float64 `json:"c1"`
	C2          float64 `json:"c2"`
	FuelCost    float64 `json:"fuel_cost"`
	MinPower    float64 `json:"min_power"`
	MaxPower    float64 `json:"max_power"`
	StartUpCost float64 `json:"start_up_cost"`

	RampUp    *float64 `json:"ramp_up"`
	RampDown  *float64 `json:"ramp_down"`
	MinUptime *int     `json:"min_uptime"`
	MinRest   *int     `json:"min_rest"`
}

// SystemConfig describes the fleet.
type SystemConfig struct {
	Name       string       `json:"name"`
	ReserveReq float64      `json:"reserve_req"`
	Units      []UnitConfig `json:"units"`
}

// Validate checks fleet bounds before model construction does.
func (c SystemConfig) Validate() error {
	if len(c.Units) == 0 {
		return fmt.Errorf("system needs at least one unit")
	}
	if c.ReserveReq < 0 || c.ReserveReq >= 1 {
		return fmt.Errorf("reserve_req %.3f outside [0,1)", c.ReserveReq)
	}
	return nil
}

// ToSystem builds the domain system.
func (c SystemConfig) ToSystem() (*model.System, error) {
	units := make([]model.ThermalUnit, 0, len(c.Units))
	for _, u := range c.Units {
		units = append(units, model.ThermalUnit{
			Name:        u.Name,
			Curve:       model.CostCurve{C0: u.C0, C1: u.C1, C2: u.C2},
			FuelCost:    u.FuelCost,
			MinPower:    u.MinPower,
			MaxPower:    u.MaxPower,
			StartUpCost: u.StartUpCost,
			RampUp:      u.RampUp,
			RampDown:    u.RampDown,
			MinUptime:   u.MinUptime,
			MinRest:     u.MinRest,
		})
	}
	return model.NewSystem(c.Name, units, c.ReserveReq)
}

// LineConfig describes one transmission line.
type LineConfig struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	PowerLim *float64 `json:"power_lim"`
	Z        float64  `json:"z"`
}

// LinkConfig ties a unit to its feeding bus.
type LinkConfig struct {
	Bus  string `json:"bus"`
	Unit string `json:"unit"`
}

// NetworkConfig describes the transmission topology.
type NetworkConfig struct {
	Lines []LineConfig `json:"lines"`
	Links []LinkConfig `json:"links"`
}

// Validate checks the topology shape.
func (c NetworkConfig) Validate() error {
	if len(c.Lines) == 0 {
		return fmt.Errorf("network needs at least one line")
	}
	for _, l := range c.Lines {
		if l.From == "" || l.To == "" || l.From == l.To {
			return fmt.Errorf("line %q-%q is malformed", l.From, l.To)
		}
	}
	return nil
}

// ToNetwork builds the domain network over the given system.
func (c NetworkConfig) ToNetwork(system *model.System) (*model.Network, error) {
	lines := make(map[model.Arc]model.Line, len(c.Lines))
	for _, l := range c.Lines {
		z := l.Z
		if z == 0 {
			z = 1
		}
		lines[model.Arc{A: l.From, B: l.To}] = model.Line{PowerLim: l.PowerLim, Z: z}
	}
	links := make([]model.Link, 0, len(c.Links))
	for _, l := range c.Links {
		links = append(links, model.Link{Bus: l.Bus, Unit: l.Unit})
	}
	return model.NewNetwork(system, lines, links)
}

// LoadConfig is either a flat series or per-bus series.
type LoadConfig struct {
	Series []float64            `json:"series"`
	Buses  map[string][]float64 `json:"buses"`
}

// Validate requires exactly one load form.
func (c LoadConfig) Validate() error {
	if len(c.Series) == 0 && len(c.Buses) == 0 {
		return fmt.Errorf("load needs a series or per-bus series")
	}
	if len(c.Series) > 0 && len(c.Buses) > 0 {
		return fmt.Errorf("load must be flat or bus-indexed, not both")
	}
	return nil
}

// ToLoad builds the domain load.
func (c LoadConfig) ToLoad() (model.Load, error) {
	if len(c.Buses) > 0 {
		return model.BusLoad(c.Buses)
	}
	return model.FlatLoad(c.Series), nil
}

// FormulationConfig selects and tunes the model variant.
type FormulationConfig struct {
	Variant       string       `json:"variant"`
	NumLines      int          `json:"num_lines"`
	InitialOn     []string     `json:"initial_on"`
	Contingencies []LineConfig `json:"contingencies"`
}

// SetDefaults applies sane defaults.
func (c *FormulationConfig) SetDefaults() {
	if c.Variant == "" {
		c.Variant = "milp"
	}
	if c.NumLines == 0 {
		c.NumLines = uc.DefaultNumLines
	}
}

// Validate checks the variant name.
func (c FormulationConfig) Validate() error {
	if _, err := c.variant(); err != nil {
		return err
	}
	return nil
}

func (c FormulationConfig) variant() (uc.Variant, error) {
	switch c.Variant {
	case "milp":
		return uc.VariantMILP, nil
	case "minlp":
		return uc.VariantMINLP, nil
	case "dc":
		return uc.VariantDC, nil
	case "scdc":
		return uc.VariantSCDC, nil
	default:
		return 0, fmt.Errorf("unknown formulation variant %q", c.Variant)
	}
}

// ToOptions builds the formulator options.
func (c FormulationConfig) ToOptions() (uc.Options, error) {
	v, err := c.variant()
	if err != nil {
		return uc.Options{}, err
	}
	opts := uc.Options{Variant: v, NumLines: c.NumLines}
	if len(c.InitialOn) > 0 {
		opts.InitialOn = make(map[string]bool, len(c.InitialOn))
		for _, u := range c.InitialOn {
			opts.InitialOn[u] = true
		}
	}
	for _, l := range c.Contingencies {
		opts.Contingencies = append(opts.Contingencies, model.Arc{A: l.From, B: l.To})
	}
	return opts, nil
}
