package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel  string
	logFormat string
)

// logger is the process-wide logger, configured from the global flags
// before any subcommand runs.
var logger zerolog.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schema-compiler",
	Short: "Generate C++ declaration headers from API schema files",
	Long: `schema-compiler turns JSON or YAML API schemas into C++ struct,
enum, and event declarations.

Each namespace in the loaded schemas becomes one header declaring its
types, functions, events, and manifest keys in a fixed order, ready for
a matching implementation generator.

Quick start:
  schema-compiler gen -s alarms.json -o out    # one schema
  schema-compiler gen -d api/schemas -o out    # a whole directory
  schema-compiler dump -s alarms.json          # inspect the loaded model`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = setupLogger(logLevel, logFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
}

// setupLogger builds the process logger. Logs go to stderr so that
// --stdout header output stays clean.
func setupLogger(levelStr, format string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}
