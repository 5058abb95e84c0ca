package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/silkmarket/core/cmd/api/commands"
)

// @title Silk Market API
// @version 1.0
// @description Cocoon rates, silk prices and the reeling profit calculator

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin password.

func main() {
	rootCmd := &cobra.Command{
		Use:          "silkmarket",
		Short:        "Silk Market API Server",
		Long:         `Silk Market tracks cocoon rates and silk prices across markets and serves them to the dashboard.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewAdminCommand())
	rootCmd.AddCommand(commands.NewCalcCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
