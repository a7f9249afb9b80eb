// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/optimization"
	"github.com/gapaero/loadsheet/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loadsheet.
type Configuration struct {
	Aircraft BalanceConfig `yaml:"aircraft" mapstructure:"aircraft"`
	Limits   ZoneLimits    `yaml:"limits" mapstructure:"limits"`
	Flight   FlightConfig  `yaml:"flight" mapstructure:"flight"`
	Logging  LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output   OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, yaml
}

// BalanceConfig describes the airframe: empty mass, station arms (meters) of
// every load position and the structural mass ceilings (kg).
type BalanceConfig struct {
	BaseMass        float64 `yaml:"baseMass" mapstructure:"baseMass"`
	BaseArm         float64 `yaml:"baseArm" mapstructure:"baseArm"`
	SeatWeight      float64 `yaml:"seatWeight" mapstructure:"seatWeight"`
	PaxWeight       float64 `yaml:"paxWeight" mapstructure:"paxWeight"`
	PilotArm        float64 `yaml:"pilotArm" mapstructure:"pilotArm"`
	CabinCrewArm    float64 `yaml:"cabinCrewArm" mapstructure:"cabinCrewArm"`
	RearJumpSeatArm float64 `yaml:"rearJumpSeatArm" mapstructure:"rearJumpSeatArm"`
	Mechanic1Arm    float64 `yaml:"mechanic1Arm" mapstructure:"mechanic1Arm"`
	Mechanic2Arm    float64 `yaml:"mechanic2Arm" mapstructure:"mechanic2Arm"`
	PaxAArm         float64 `yaml:"paxAArm" mapstructure:"paxAArm"`
	PaxBArm         float64 `yaml:"paxBArm" mapstructure:"paxBArm"`
	PaxCArm         float64 `yaml:"paxCArm" mapstructure:"paxCArm"`
	Fret1Arm        float64 `yaml:"fret1Arm" mapstructure:"fret1Arm"`
	Fret2Arm        float64 `yaml:"fret2Arm" mapstructure:"fret2Arm"`
	Fret3Arm        float64 `yaml:"fret3Arm" mapstructure:"fret3Arm"`
	MaxZFM          float64 `yaml:"maxZFM" mapstructure:"maxZFM"`
	MaxTOW          float64 `yaml:"maxTOW" mapstructure:"maxTOW"`
	MaxLDW          float64 `yaml:"maxLDW" mapstructure:"maxLDW"`
}

// ZoneLimits bounds the distribution search.
type ZoneLimits struct {
	MaxPaxA   int     `yaml:"maxPaxA" mapstructure:"maxPaxA"`
	MaxPaxB   int     `yaml:"maxPaxB" mapstructure:"maxPaxB"`
	MaxPaxC   int     `yaml:"maxPaxC" mapstructure:"maxPaxC"`
	MaxFret1  float64 `yaml:"maxFret1" mapstructure:"maxFret1"`
	MaxFret2  float64 `yaml:"maxFret2" mapstructure:"maxFret2"`
	MaxFret3  float64 `yaml:"maxFret3" mapstructure:"maxFret3"`
	Tolerance float64 `yaml:"tolerance" mapstructure:"tolerance"` // %MAC
}

// FlightConfig holds the load of one flight.
type FlightConfig struct {
	FuelKg              float64                    `yaml:"fuelKg" mapstructure:"fuelKg"`
	TripFuelKg          float64                    `yaml:"tripFuelKg" mapstructure:"tripFuelKg"`
	Pax                 int                        `yaml:"pax" mapstructure:"pax"`
	FreightKg           float64                    `yaml:"freightKg" mapstructure:"freightKg"`
	IncludePilotSeat    bool                       `yaml:"includePilotSeat" mapstructure:"includePilotSeat"`
	IncludeMechanic1    bool                       `yaml:"includeMechanic1" mapstructure:"includeMechanic1"`
	IncludeMechanic2    bool                       `yaml:"includeMechanic2" mapstructure:"includeMechanic2"`
	IncludeRearJumpSeat bool                       `yaml:"includeRearJumpSeat" mapstructure:"includeRearJumpSeat"`
	Fret1Fixed          bool                       `yaml:"fret1Fixed" mapstructure:"fret1Fixed"`
	Fret1CapKg          float64                    `yaml:"fret1CapKg" mapstructure:"fret1CapKg"`
	Manual              *optimization.Distribution `yaml:"manual,omitempty" mapstructure:"manual"`
}

// DefaultBalanceConfig returns the published figures for the airframe.
func DefaultBalanceConfig() BalanceConfig {
	return BalanceConfig{
		BaseMass:        13461.0,
		BaseArm:         14.07,
		SeatWeight:      85.0,
		PaxWeight:       85.0,
		PilotArm:        5.50,
		CabinCrewArm:    21.448,
		RearJumpSeatArm: 22.172,
		Mechanic1Arm:    21.448,
		Mechanic2Arm:    21.448,
		PaxAArm:         11.923,
		PaxBArm:         15.352,
		PaxCArm:         19.543,
		Fret1Arm:        6.697,
		Fret2Arm:        9.637,
		Fret3Arm:        23.778,
		MaxZFM:          21000,
		MaxTOW:          23000,
		MaxLDW:          22350,
	}
}

// DefaultZoneLimits returns the cabin and hold capacities of the airframe.
func DefaultZoneLimits() ZoneLimits {
	return ZoneLimits{
		MaxPaxA:   constants.DefaultMaxPaxA,
		MaxPaxB:   constants.DefaultMaxPaxB,
		MaxPaxC:   constants.DefaultMaxPaxC,
		MaxFret1:  constants.DefaultMaxFret1Kg,
		MaxFret2:  constants.DefaultMaxFret2Kg,
		MaxFret3:  constants.DefaultMaxFret3Kg,
		Tolerance: constants.DefaultCGTolerance,
	}
}

// Default returns a configuration with airframe defaults and an empty flight.
func Default() *Configuration {
	return &Configuration{
		Aircraft: DefaultBalanceConfig(),
		Limits:   DefaultZoneLimits(),
		Flight:   FlightConfig{Fret1CapKg: constants.DefaultFret1FixedKg},
	}
}

// setDefaults registers every key so partial files and environment
// variables fall back to the airframe defaults.
func setDefaults(v *viper.Viper) {
	def := Default()
	a := def.Aircraft
	for key, value := range map[string]float64{
		"aircraft.baseMass":        a.BaseMass,
		"aircraft.baseArm":         a.BaseArm,
		"aircraft.seatWeight":      a.SeatWeight,
		"aircraft.paxWeight":       a.PaxWeight,
		"aircraft.pilotArm":        a.PilotArm,
		"aircraft.cabinCrewArm":    a.CabinCrewArm,
		"aircraft.rearJumpSeatArm": a.RearJumpSeatArm,
		"aircraft.mechanic1Arm":    a.Mechanic1Arm,
		"aircraft.mechanic2Arm":    a.Mechanic2Arm,
		"aircraft.paxAArm":         a.PaxAArm,
		"aircraft.paxBArm":         a.PaxBArm,
		"aircraft.paxCArm":         a.PaxCArm,
		"aircraft.fret1Arm":        a.Fret1Arm,
		"aircraft.fret2Arm":        a.Fret2Arm,
		"aircraft.fret3Arm":        a.Fret3Arm,
		"aircraft.maxZFM":          a.MaxZFM,
		"aircraft.maxTOW":          a.MaxTOW,
		"aircraft.maxLDW":          a.MaxLDW,
		"limits.maxFret1":          def.Limits.MaxFret1,
		"limits.maxFret2":          def.Limits.MaxFret2,
		"limits.maxFret3":          def.Limits.MaxFret3,
		"limits.tolerance":         def.Limits.Tolerance,
		"flight.fuelKg":            0,
		"flight.tripFuelKg":        0,
		"flight.freightKg":         0,
		"flight.fret1CapKg":        def.Flight.Fret1CapKg,
	} {
		v.SetDefault(key, value)
	}
	v.SetDefault("limits.maxPaxA", def.Limits.MaxPaxA)
	v.SetDefault("limits.maxPaxB", def.Limits.MaxPaxB)
	v.SetDefault("limits.maxPaxC", def.Limits.MaxPaxC)
	v.SetDefault("flight.pax", 0)
	for _, key := range []string{
		"flight.includePilotSeat",
		"flight.includeMechanic1",
		"flight.includeMechanic2",
		"flight.includeRearJumpSeat",
		"flight.fret1Fixed",
	} {
		v.SetDefault(key, false)
	}
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys missing from the file keep their defaults and
// every key can be overridden from the environment, e.g. LOADSHEET_FLIGHT_PAX.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// WatchConfiguration loads the configuration like LoadConfiguration and then
// calls onChange after every write to the file with the reloaded
// configuration, or with the error that prevented reloading it.
func WatchConfiguration(configPath string, onChange func(*Configuration, error)) (*Configuration, error) {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	conf, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		onChange(decode(v))
	})
	v.WatchConfig()
	return conf, nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

// Validate returns an error for values no computation can be run with.
func (c *Configuration) Validate() error {
	if err := c.Aircraft.Validate(); err != nil {
		return fmt.Errorf("aircraft: %w", err)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	if err := c.Flight.Validate(); err != nil {
		return fmt.Errorf("flight: %w", err)
	}
	return nil
}

// Validate checks the airframe figures.
func (b BalanceConfig) Validate() error {
	if b.BaseMass <= 0 {
		return fmt.Errorf("base mass must be positive, got %.1f", b.BaseMass)
	}
	if b.SeatWeight < 0 {
		return fmt.Errorf("seat weight cannot be negative, got %.1f", b.SeatWeight)
	}
	if b.PaxWeight < 0 {
		return fmt.Errorf("pax weight cannot be negative, got %.1f", b.PaxWeight)
	}
	ceilings := []struct {
		name  string
		value float64
	}{{"ZFM", b.MaxZFM}, {"TOW", b.MaxTOW}, {"LDW", b.MaxLDW}}
	for _, ceiling := range ceilings {
		if ceiling.value <= 0 {
			return fmt.Errorf("max %s must be positive, got %.0f", ceiling.name, ceiling.value)
		}
	}
	return nil
}

// Validate checks the zone capacities.
func (z ZoneLimits) Validate() error {
	if z.MaxPaxA < 0 || z.MaxPaxB < 0 || z.MaxPaxC < 0 {
		return fmt.Errorf("pax zone capacities cannot be negative (A=%d, B=%d, C=%d)", z.MaxPaxA, z.MaxPaxB, z.MaxPaxC)
	}
	if z.MaxFret1 < 0 || z.MaxFret2 < 0 || z.MaxFret3 < 0 {
		return fmt.Errorf("freight bay capacities cannot be negative (1=%.0f, 2=%.0f, 3=%.0f)", z.MaxFret1, z.MaxFret2, z.MaxFret3)
	}
	if z.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %.2f", z.Tolerance)
	}
	return nil
}

// Validate checks the flight load.
func (f FlightConfig) Validate() error {
	if f.FuelKg < 0 {
		return fmt.Errorf("fuel cannot be negative, got %.0f", f.FuelKg)
	}
	if f.TripFuelKg < 0 {
		return fmt.Errorf("trip fuel cannot be negative, got %.0f", f.TripFuelKg)
	}
	if f.Pax < 0 {
		return fmt.Errorf("pax cannot be negative, got %d", f.Pax)
	}
	if f.FreightKg < 0 {
		return fmt.Errorf("freight cannot be negative, got %.0f", f.FreightKg)
	}
	if f.Fret1Fixed && f.Fret1CapKg < 0 {
		return fmt.Errorf("fixed freight bay 1 cap cannot be negative, got %.0f", f.Fret1CapKg)
	}
	if m := f.Manual; m != nil {
		if m.PaxA < 0 || m.PaxB < 0 || m.PaxC < 0 {
			return fmt.Errorf("manual distribution pax cannot be negative")
		}
		if m.Fret1 < 0 || m.Fret2 < 0 || m.Fret3 < 0 {
			return fmt.Errorf("manual distribution freight cannot be negative")
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	flight := validation.FlightInfo{
		FuelKg:     c.Flight.FuelKg,
		TripFuelKg: c.Flight.TripFuelKg,
		Pax:        c.Flight.Pax,
		FreightKg:  c.Flight.FreightKg,
		Fret1Fixed: c.Flight.Fret1Fixed,
		Fret1CapKg: c.Flight.Fret1CapKg,
	}
	if m := c.Flight.Manual; m != nil {
		flight.Manual = &validation.ManualInfo{
			Pax:     []int{m.PaxA, m.PaxB, m.PaxC},
			Freight: []float64{m.Fret1, m.Fret2, m.Fret3},
		}
	}
	capacity := validation.CapacityInfo{
		Pax:     []int{c.Limits.MaxPaxA, c.Limits.MaxPaxB, c.Limits.MaxPaxC},
		Freight: []float64{c.Limits.MaxFret1, c.Limits.MaxFret2, c.Limits.MaxFret3},
	}

	validator := validation.FlightValidator{Flight: flight, Capacity: capacity}
	return validator.ValidateAll()
}
