package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/trackingsuccess/profit-planner/internal/config"
	"github.com/trackingsuccess/profit-planner/internal/dashboard"
	"github.com/trackingsuccess/profit-planner/internal/plan"
	"github.com/trackingsuccess/profit-planner/internal/server"
	"github.com/trackingsuccess/profit-planner/internal/store"
	"github.com/trackingsuccess/profit-planner/pkg/constants"
	"github.com/trackingsuccess/profit-planner/pkg/output"
	"github.com/trackingsuccess/profit-planner/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

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

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

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

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", "", "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	dataDir := flag.String("data", "", "directory holding profile JSON files (overrides config)")
	profileName := flag.String("profile", "", "business profile to open")
	yearFlag := flag.String("year", fmt.Sprintf("%d", time.Now().Year()), "plan year")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API instead of printing a dashboard")
	address := flag.String("address", "", "HTTP listen address override when serving")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		srvConf, err := server.LoadConfig(*serverConfigLocation)
		if err != nil {
			logger.Fatal("failed to load server configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if *address != "" {
			srvConf.Address = *address
		}
		if *dataDir != "" {
			srvConf.DataDir = *dataDir
		}

		st, err := store.New(srvConf.DataDir, logger)
		if err != nil {
			logger.Fatal("failed to open profile store",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		handler := server.NewHandler(logger, st, conf.Defaults, version)
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", srvConf.Address),
		)
		if err := http.ListenAndServe(srvConf.Address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	dir := conf.Defaults.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	st, err := store.New(dir, logger)
	if err != nil {
		logger.Fatal("failed to open profile store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *profileName == "" {
		logger.Fatal("no profile specified; use -profile or -serve",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	profile, err := st.Load(*profileName)
	if errors.Is(err, store.ErrNotFound) {
		logger.Info("profile not found; creating with defaults",
			zap.String("op", "main"),
			zap.String("profile", *profileName),
		)
		profile = plan.NewProfile(*profileName, "")
	} else if err != nil {
		logger.Fatal("failed to load profile",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	yp := profile.EnsureYear(*yearFlag)
	yp.Normalize()
	yp.SyncGoal()

	for _, warning := range validation.PlanWarnings(yp) {
		logger.Warn("Plan warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result := dashboard.Build(yp, conf.Defaults.CostRatio)
	rotated := dashboard.RotateRows(result.Rows, yp.StartMonthIndex())

	if err := st.Save(*profileName, profile); err != nil {
		logger.Fatal("failed to save profile",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(rotated, result)
	case constants.OutputFormatCSV:
		output.CsvFormat(rotated)
	}
}
