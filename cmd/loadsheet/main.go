package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gapaero/loadsheet/internal/balance"
	"github.com/gapaero/loadsheet/internal/config"
	"github.com/gapaero/loadsheet/internal/dispatch"
	"github.com/gapaero/loadsheet/internal/envelope"
	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/output"
	"github.com/gapaero/loadsheet/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Logs go to stderr unless a file is configured; stdout carries the loadsheet.
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

// loadEnvFile loads environment overrides from path, or from .env in the
// working directory when path is empty and the file exists.
func loadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// runCheck evaluates a single CG against the envelopes and reports whether it
// is inside them.
func runCheck(phaseName string, massKg, cgPercent float64) (bool, error) {
	phase, err := envelope.ParsePhase(phaseName)
	if err != nil {
		return false, err
	}
	check, err := envelope.DefaultModel().Evaluate(phase, massKg, 0, cgPercent)
	if err != nil && !errors.Is(err, envelope.ErrEnvelopeViolation) {
		return false, err
	}
	if err := output.CheckFormat(os.Stdout, check); err != nil {
		return false, err
	}
	return check.Within, nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	envFile := flag.String("env-file", "", "optional dotenv file with LOADSHEET_ overrides (default .env if present)")
	watch := flag.Bool("watch", false, "recompute whenever the configuration file changes")
	checkPhase := flag.String("check-phase", "", "check a single CG instead of computing a loadsheet: ZFM, TOW or LDM")
	checkMass := flag.Float64("check-mass", 0, "mass in kg for -check-phase")
	checkCG := flag.Float64("check-cg", 0, "CG in %MAC for -check-phase")
	flag.Parse()

	if *checkPhase != "" {
		within, err := runCheck(*checkPhase, *checkMass, *checkCG)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"envelope check failed\", \"error\": \"%v\"}\n", err)
			os.Exit(2)
		}
		if !within {
			os.Exit(1)
		}
		return
	}

	if err := loadEnvFile(*envFile); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file\", \"error\": \"%v\"}\n", err)
		os.Exit(2)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(2)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(2)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	calc := balance.NewCalculator(logger)

	if *watch {
		runWatch(logger, calc, *configLocation, outputFormat)
		return
	}

	logWarnings(logger, conf)
	result, err := calc.Calculate(balance.InputFromConfig(conf))
	if err != nil {
		logger.Error("failed to compute loadsheet",
			zap.String("op", "main"),
			zap.String("kind", balance.KindOf(err).String()),
			zap.Error(err),
		)
		_ = logger.Sync()
		os.Exit(1)
	}

	for _, warning := range result.Warnings {
		logger.Warn("Loadsheet warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := output.Write(os.Stdout, outputFormat, result); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func logWarnings(logger *zap.Logger, conf *config.Configuration) {
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
}

// runWatch recomputes the loadsheet on every configuration change until
// interrupted. Only the newest computation is printed.
func runWatch(logger *zap.Logger, calc *balance.Calculator, configLocation, outputFormat string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := dispatch.New(logger, calc, func(o dispatch.Outcome) {
		if o.Err != nil {
			logger.Error("failed to compute loadsheet",
				zap.String("op", "main.watch"),
				zap.String("ticket", o.Ticket.String()),
				zap.String("kind", balance.KindOf(o.Err).String()),
				zap.Error(o.Err),
			)
			return
		}
		for _, warning := range o.Result.Warnings {
			logger.Warn("Loadsheet warning: "+warning,
				zap.String("op", "main.watch"),
			)
		}
		if err := output.Write(os.Stdout, outputFormat, o.Result); err != nil {
			logger.Error("failed to write output",
				zap.String("op", "main.watch"),
				zap.Error(err),
			)
		}
	})
	defer d.Close()

	submit := func(conf *config.Configuration) {
		logWarnings(logger, conf)
		if _, err := d.Submit(balance.InputFromConfig(conf)); err != nil {
			logger.Error("failed to submit computation",
				zap.String("op", "main.watch"),
				zap.Error(err),
			)
		}
	}

	conf, err := config.WatchConfiguration(configLocation, func(conf *config.Configuration, err error) {
		if err != nil {
			logger.Error("failed to reload configuration",
				zap.String("op", "main.watch"),
				zap.Error(err),
			)
			return
		}
		logger.Info("configuration reloaded",
			zap.String("op", "main.watch"),
			zap.String("config", configLocation),
		)
		submit(conf)
	})
	if err != nil {
		logger.Fatal("failed to watch configuration",
			zap.String("op", "main.watch"),
			zap.Error(err),
		)
	}
	submit(conf)

	<-ctx.Done()
	logger.Info("stopping",
		zap.String("op", "main.watch"),
	)
}
