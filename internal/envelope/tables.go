package envelope

// Operational limits are the airline's tighter band, checked first.
var (
	operationalMin = Table{{13.0, 21.0}, {18.0, 18.5}, {23.0, 24.0}}
	operationalMax = Table{{13.0, 30.0}, {23.0, 33.5}}
)

// Constructor limits per flight phase.
var (
	takeOffMin = Table{{13.0, 14.0}, {18.0, 14.0}, {23.0, 21.0}}
	takeOffMax = Table{{13.0, 37.0}, {23.0, 37.0}}

	landingMin = Table{{13.0, 14.0}, {18.0, 14.0}, {22.3, 20.0}}
	landingMax = Table{{13.0, 37.0}, {23.0, 37.0}}

	zeroFuelMin = Table{{13.0, 14.0}, {18.0, 14.0}, {21.0, 18.5}}
	zeroFuelMax = Table{{13.0, 37.0}, {23.0, 37.0}}
)

func (t Table) clone() Table {
	return append(Table(nil), t...)
}
