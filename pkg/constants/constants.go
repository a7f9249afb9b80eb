// Package constants provides shared constants for the loadsheet application.
package constants

// Index and MAC constants for the airframe. These values come from the
// manufacturer's weight and balance manual and must not be altered.
const (
	// ReferenceArm is the station (meters) the balance index is measured from.
	ReferenceArm = 14.18

	// IndexDivisor scales a moment about the reference arm into index units.
	IndexDivisor = 150.0

	// MACIndexFactor is the numerator constant of the index to %MAC conversion.
	MACIndexFactor = 1500.0

	// MACLength is the mean aerodynamic chord constant used by the %MAC conversion.
	MACLength = 0.2303

	// MACReferencePercent is the %MAC of the reference arm.
	MACReferencePercent = 25.0
)

// Loading constants
const (
	// FreightStepKg is the granularity of freight bay allocations.
	FreightStepKg = 50.0

	// UnusableFuelKg is the fuel quantity that never counts as usable.
	UnusableFuelKg = 50.0

	// KgPerTon converts kilograms to metric tons.
	KgPerTon = 1000.0
)

// Target CG constants. The target %MAC is flat below LowTargetMassTons and
// above HighTargetMassTons and linear between.
const (
	LowTargetMassTons  = 18.0
	HighTargetMassTons = 23.0
	LowTargetPercent   = 25.5
	HighTargetPercent  = 29.0
)

// Trim constants map takeoff %MAC linearly onto a stabilizer trim setting.
const (
	TrimSlope     = -0.108695652173913
	TrimIntercept = 4.02173913043478
)

// Default zone capacities.
const (
	DefaultMaxPaxA      = 8
	DefaultMaxPaxB      = 28
	DefaultMaxPaxC      = 16
	DefaultMaxFret1Kg   = 920.0
	DefaultMaxFret2Kg   = 2050.0
	DefaultMaxFret3Kg   = 750.0
	DefaultCGTolerance  = 1.0
	DefaultFret1FixedKg = 750.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "loadsheet.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "loadsheet.yaml.example"

	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "LOADSHEET"
)

// Comparison tolerances
const (
	// MassTolerance is the tolerance for mass comparisons in kilograms.
	MassTolerance = 0.5

	// PercentTolerance is the tolerance for %MAC comparisons.
	PercentTolerance = 1e-9
)
