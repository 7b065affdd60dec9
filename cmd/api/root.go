package main

import (
	"github.com/cmlabs-hris/sge-backend-go/internal/config"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "sge-api",
	Version:       Version,
	Short:         "Attendance and leave backend for the SGE employee administration",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command. It is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, employeeCmd)
}

// loadConfig reads the configuration and sets up the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.App.LogLevel, cfg.IsDevelopment())
	return cfg, nil
}
