package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"osintkit/internal/config"
	"osintkit/internal/logging"
)

const service = "osintkit"

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "OSINT scan orchestration service",
		Long:          "Runs OSINT modules against submitted targets and merges their output into a deduplicated entity graph.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file (YAML); environment variables take precedence")
	pf.StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")
	pf.String("log-file", "", "log file path, rotated")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run scan workers",
		RunE:  runServe,
	})
	root.AddCommand(newMigrateCmd())
	return root
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"log-file":   "log_file",
}

// loadConfig builds the Config from environment, config file and flags, then
// the process logger from it.
func loadConfig(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, nil, err
			}
		}
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return cfg, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}, service, version)
	if err != nil {
		return cfg, nil, fmt.Errorf("init logging: %w", err)
	}
	return cfg, log, nil
}
