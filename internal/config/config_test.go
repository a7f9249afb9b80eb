package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loadsheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test fixture",
			configPath: "testdata/loadsheet.yaml",
			wantError:  false,
		},
		{
			name:       "Example configuration",
			configPath: filepath.Join("..", "..", constants.ExampleConfigFile),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, config)
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("testdata/loadsheet.yaml")
	require.NoError(t, err)

	assert.Equal(t, 3000.0, config.Flight.FuelKg)
	assert.Equal(t, 1500.0, config.Flight.TripFuelKg)
	assert.Equal(t, 26, config.Flight.Pax)
	assert.True(t, config.Flight.Fret1Fixed)
	assert.Equal(t, 750.0, config.Flight.Fret1CapKg)
	assert.Nil(t, config.Flight.Manual)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, constants.OutputFormatPretty, config.Output.Format)
}

func TestLoadConfigurationDefaults(t *testing.T) {
	path := writeConfig(t, "flight:\n  pax: 12\n")

	config, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBalanceConfig(), config.Aircraft)
	assert.Equal(t, DefaultZoneLimits(), config.Limits)
	assert.Equal(t, 12, config.Flight.Pax)
	assert.Equal(t, constants.DefaultFret1FixedKg, config.Flight.Fret1CapKg)
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "flight:\n  pax: 12\n  fuelKg: 2000\n")
	t.Setenv("LOADSHEET_FLIGHT_PAX", "40")
	t.Setenv("LOADSHEET_AIRCRAFT_MAXTOW", "22500")

	config, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, 40, config.Flight.Pax, "environment wins over the file")
	assert.Equal(t, 22500.0, config.Aircraft.MaxTOW)
	assert.Equal(t, 2000.0, config.Flight.FuelKg, "file value kept without an override")
}

func TestLoadConfigurationManualDistribution(t *testing.T) {
	path := writeConfig(t, `flight:
  pax: 26
  freightKg: 1200
  manual:
    paxA: 2
    paxB: 20
    paxC: 4
    fret1: 0
    fret2: 900
    fret3: 300
`)

	config, err := LoadConfiguration(path)
	require.NoError(t, err)

	m := config.Flight.Manual
	require.NotNil(t, m)
	assert.Equal(t, []int{2, 20, 4}, []int{m.PaxA, m.PaxB, m.PaxC})
	assert.Equal(t, []float64{0, 900, 300}, []float64{m.Fret1, m.Fret2, m.Fret3})
}

func TestLoadConfigurationInvalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "Negative fuel",
			content:  "flight:\n  fuelKg: -10\n",
			errorMsg: "flight: fuel cannot be negative",
		},
		{
			name:     "Zero base mass",
			content:  "aircraft:\n  baseMass: 0\n",
			errorMsg: "aircraft: base mass must be positive",
		},
		{
			name:     "Negative tolerance",
			content:  "limits:\n  tolerance: -1\n",
			errorMsg: "limits: tolerance cannot be negative",
		},
		{
			name:     "Malformed YAML",
			content:  "flight: [pax\n",
			errorMsg: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestBalanceConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*BalanceConfig)
		expectErr bool
	}{
		{"Defaults", func(*BalanceConfig) {}, false},
		{"Negative seat weight", func(b *BalanceConfig) { b.SeatWeight = -1 }, true},
		{"Negative pax weight", func(b *BalanceConfig) { b.PaxWeight = -1 }, true},
		{"Zero ZFM ceiling", func(b *BalanceConfig) { b.MaxZFM = 0 }, true},
		{"Zero LDW ceiling", func(b *BalanceConfig) { b.MaxLDW = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBalanceConfig()
			tt.modify(&b)
			if tt.expectErr {
				assert.Error(t, b.Validate())
			} else {
				assert.NoError(t, b.Validate())
			}
		})
	}
}

func TestFlightConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		flight    FlightConfig
		expectErr bool
	}{
		{"Empty flight", FlightConfig{}, false},
		{"Negative trip fuel", FlightConfig{TripFuelKg: -1}, true},
		{"Negative pax", FlightConfig{Pax: -1}, true},
		{"Negative freight", FlightConfig{FreightKg: -50}, true},
		{"Negative fixed cap", FlightConfig{Fret1Fixed: true, Fret1CapKg: -1}, true},
		{"Negative cap ignored when not fixed", FlightConfig{Fret1CapKg: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectErr {
				assert.Error(t, tt.flight.Validate())
			} else {
				assert.NoError(t, tt.flight.Validate())
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	config := Default()
	config.Flight = FlightConfig{FuelKg: 3000, TripFuelKg: 1500, Pax: 26, FreightKg: 1200}
	assert.Empty(t, config.ValidateConfiguration())

	config.Flight.TripFuelKg = 3500
	config.Flight.Pax = 60
	warnings := config.ValidateConfiguration()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Trip fuel exceeds fuel on board")
	assert.Contains(t, warnings[1], "Passengers exceed cabin capacity")
}

func TestWatchConfiguration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watch test in short mode")
	}

	path := writeConfig(t, "flight:\n  pax: 12\n")
	changes := make(chan *Configuration, 4)

	config, err := WatchConfiguration(path, func(c *Configuration, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- c:
		default:
		}
	})
	require.NoError(t, err)
	require.Equal(t, 12, config.Flight.Pax)

	require.NoError(t, os.WriteFile(path, []byte("flight:\n  pax: 30\n"), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Flight.Pax == 30 {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for configuration reload")
		}
	}
}
