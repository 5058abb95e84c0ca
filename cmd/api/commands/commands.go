package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/silkmarket/core/internal/adapters/repository"
	"github.com/silkmarket/core/internal/application/services"
	"github.com/silkmarket/core/internal/infrastructure/config"
	"github.com/silkmarket/core/internal/infrastructure/database"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/infrastructure/persistence"
	"github.com/silkmarket/core/internal/infrastructure/server"
)

// Build information, overridden with -ldflags at release time
var (
	Version   = "1.0.0"
	GitCommit = "development"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Silk Market API server",
		Long:  "Load the market dataset from the configured storage backend and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the Postgres snapshot schema (up, down, version)",
	}

	var steps int

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, "up", steps)
		},
	}
	upCmd.Flags().IntVar(&steps, "steps", 0, "Number of migrations to apply (0 = all)")

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, "down", steps)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 0, "Number of migrations to revert (0 = all)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion(cmd)
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

// NewAdminCommand creates the admin credential command
func NewAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin credential commands",
	}

	hashCmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				return errors.New("--password is required")
			}

			hash, err := services.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	hashCmd.Flags().String("password", "", "Admin password to hash (required)")

	adminCmd.AddCommand(hashCmd)
	return adminCmd
}

// NewCalcCommand creates the offline profit/loss calculator
func NewCalcCommand() *cobra.Command {
	var unitPrice, totalWeight, batchCapacity, yieldPerBatch, sellRate float64

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the profit or loss of reeling a cocoon purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := services.Calculate(services.CalculatorInput{
				UnitPrice:     decimal.NewFromFloat(unitPrice),
				TotalWeight:   decimal.NewFromFloat(totalWeight),
				BatchCapacity: decimal.NewFromFloat(batchCapacity),
				YieldPerBatch: decimal.NewFromFloat(yieldPerBatch),
				SellRate:      decimal.NewFromFloat(sellRate),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Material cost:  %s\n", rupees(b.MaterialCost))
			fmt.Fprintf(out, "Commission:     %s\n", rupees(b.Commission))
			fmt.Fprintf(out, "Transport:      %s\n", rupees(b.Transport))
			fmt.Fprintf(out, "Total cost:     %s\n", rupees(b.TotalCost))
			fmt.Fprintf(out, "Batches:        %s\n", b.BatchCount.StringFixed(2))
			fmt.Fprintf(out, "Silk output:    %s kg\n", b.OutputKg.StringFixed(3))
			fmt.Fprintf(out, "Revenue:        %s\n", rupees(b.Revenue))
			fmt.Fprintf(out, "Profit/Loss:    %s (%s%%)\n", rupees(b.ProfitLoss), b.Percentage.StringFixed(2))
			fmt.Fprintf(out, "Status:         %s\n", b.Status)
			return nil
		},
	}

	calcCmd.Flags().Float64Var(&unitPrice, "unit-price", 0, "Cocoon price per kg")
	calcCmd.Flags().Float64Var(&totalWeight, "total-weight", 0, "Cocoons bought, in kg")
	calcCmd.Flags().Float64Var(&batchCapacity, "batch-capacity", 0, "Cocoons reeled per batch, in kg")
	calcCmd.Flags().Float64Var(&yieldPerBatch, "yield-per-batch", 0, "Silk yield per batch, in grams")
	calcCmd.Flags().Float64Var(&sellRate, "sell-rate", 0, "Silk selling price per kg")
	for _, name := range []string{"unit-price", "total-weight", "batch-capacity", "yield-per-batch", "sell-rate"} {
		_ = calcCmd.MarkFlagRequired(name)
	}

	return calcCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Silk Market version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Silk Market v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func rupees(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), money.INR).Display()
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	if cfg.Admin.UsesDefaultPassword() {
		appLogger.Warnw("Admin password is the built-in default; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, err := persistence.Open(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	var db *database.DB
	if sqlSink, ok := sink.(*persistence.SQLSink); ok {
		db = sqlSink.DB()
	}

	registry := prometheus.NewRegistry()
	snapshots := persistence.Instrument(sink, persistence.NewMetrics(registry))

	store, err := repository.Open(ctx, snapshots, appLogger, cfg.Storage.Seed)
	if err != nil {
		sink.Close()
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	defer store.Close()

	verifier, err := services.NewCredentialVerifier(cfg.Admin)
	if err != nil {
		return err
	}
	appLogger.Infow("Admin authentication configured", "mode", verifier.Mode())

	srv := server.New(cfg, server.Dependencies{
		Store:    store,
		Verifier: verifier,
		Registry: registry,
		DB:       db,
	}, appLogger)

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infow("Starting Silk Market API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
			"storage", cfg.Storage.Backend,
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigration(cmd *cobra.Command, direction string, steps int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m, err := database.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}
	defer m.Close()

	var changed bool
	switch direction {
	case "up":
		changed, err = m.Up(steps)
	case "down":
		changed, err = m.Down(steps)
	}
	if err != nil {
		return err
	}

	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", direction)
	return nil
}

func showMigrationVersion(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m, err := database.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
	return nil
}
