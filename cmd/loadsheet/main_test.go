package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gapaero/loadsheet/internal/balance"
	"github.com/gapaero/loadsheet/internal/config"
	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logging   config.LoggingConfig
		override  string
		expectErr bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"Invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loadsheet.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello", zap.String("op", "test"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadsheet.env")
	require.NoError(t, os.WriteFile(path, []byte("LOADSHEET_FLIGHT_PAX=33\n"), 0o600))
	t.Setenv("LOADSHEET_FLIGHT_PAX", "")
	_ = os.Unsetenv("LOADSHEET_FLIGHT_PAX")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "33", os.Getenv("LOADSHEET_FLIGHT_PAX"))

	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")),
		"an explicit env file that does not exist is an error")
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name      string
		phase     string
		mass      float64
		cg        float64
		within    bool
		expectErr bool
	}{
		{"Inside operational", "TOW", 20000, 26, true, false},
		{"Constructor only", "takeoff", 20000, 35, true, false},
		{"Outside", "ldw", 20000, 40, false, false},
		{"Unknown phase", "CRUISE", 20000, 26, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			within, err := runCheck(tt.phase, tt.mass, tt.cg)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.within, within)
		})
	}
}

// TestExampleConfiguration runs the example configuration through the same
// steps as main.
func TestExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	require.NoError(t, err)
	assert.Empty(t, conf.ValidateConfiguration())

	result, err := balance.NewCalculator(zap.NewNop()).Calculate(balance.InputFromConfig(conf))
	require.NoError(t, err)

	for _, format := range []string{constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML} {
		var buf bytes.Buffer
		assert.NoError(t, output.Write(&buf, format, result), format)
		assert.NotZero(t, buf.Len(), "%s produced no output", format)
	}
}
