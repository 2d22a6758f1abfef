package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rs/zerolog"

	"dtbridge/internal/config"
	"dtbridge/internal/jxa"
	"dtbridge/internal/ops"
	"dtbridge/internal/tools"
)

var (
	debugMode  = flag.Bool("d", false, "Enable debug mode")
	logFile    = flag.String("log-file", "", "Log file path (logs disabled by default)")
	configFile = flag.String("config", "config.json", "Configuration file path")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debugMode, *logFile)
	logger.Info().Msg("dtbridge starting")

	args := flag.Args()
	mode := "serve"
	if len(args) > 0 {
		mode = args[0]
	}

	switch mode {
	case "serve":
		runServeMode(logger)
	case "repl":
		runREPLMode(logger)
	case "call":
		runCallMode(logger, args[1:])
	case "tools":
		runToolsMode(logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s (expected serve, repl, call or tools)\n", mode)
		os.Exit(2)
	}
}

func initLogger(debug bool, logFilePath string) zerolog.Logger {
	// Set log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Configure output. Never stdout: serve mode speaks MCP there.
	var output io.Writer
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		output = file
	} else {
		output = io.Discard
	}

	// Create logger with timestamp
	return zerolog.New(output).With().Timestamp().Logger()
}

// buildRegistry loads configuration and assembles the full tool set.
func buildRegistry(logger zerolog.Logger) (*tools.Registry, *config.Config, error) {
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	exec := &jxa.Executor{Logger: logger}
	if cfg.Interpreter != "" && cfg.Interpreter != jxa.DefaultInterpreter {
		exec.Command = cfg.Interpreter
	}

	registry := tools.NewRegistry(logger)
	if err := ops.RegisterAll(registry, ops.New(exec, cfg, logger)); err != nil {
		return nil, nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return registry, cfg, nil
}
