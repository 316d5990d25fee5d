package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/config"
	"github.com/ama-impact/ama-impact/pkg/impact/database"
	"github.com/ama-impact/ama-impact/pkg/impact/email"
	"github.com/ama-impact/ama-impact/pkg/impact/errtrack"
	"github.com/ama-impact/ama-impact/pkg/impact/importexport"
	"github.com/ama-impact/ama-impact/pkg/impact/logging"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/notifications"
	"github.com/ama-impact/ama-impact/pkg/impact/server"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var version = "dev"

// env is what every command needs: settings, a logger and an open database.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.Debug)
	slog.SetDefault(logger)
	auth.Configure(cfg.SecretKey, cfg.TokenExpiry)

	if cfg.RollbarToken != "" {
		errtrack.SetReporter(errtrack.NewRollbar(cfg.RollbarToken, cfg.AppEnv, version))
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	errtrack.Get().Close()
	if err := database.Close(e.db); err != nil {
		e.logger.Warn("closing database", "error", err)
	}
}

// withEnv wraps a command body with setup and teardown.
func withEnv(run func(cmd *cobra.Command, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()
		return run(cmd, e)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ama-impact",
		Short:         "AMA-IMPACT immigration case tracking API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newCreateAdminCmd(),
		newCleanupCmd(),
	)
	return root
}

func migrate(e *env) error {
	if err := models.AutoMigrate(e.db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	e.logger.Info("database migrations completed", "driver", e.cfg.DatabaseDriver)
	return nil
}

func ensureAdmin(e *env, refresh bool) error {
	user, created, err := auth.EnsureAdmin(e.db, e.cfg.AdminEmail, e.cfg.AdminPassword, e.cfg.AdminFullName, refresh)
	if err != nil {
		return fmt.Errorf("bootstrapping admin: %w", err)
	}
	switch {
	case created:
		e.logger.Info("created admin user", "email", user.Email)
	case refresh:
		e.logger.Info("refreshed admin user", "email", user.Email)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, bootstrap the admin and run the HTTP API",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			if err := migrate(e); err != nil {
				return err
			}
			if err := ensureAdmin(e, false); err != nil {
				return err
			}
			notifications.SetNotifier(notifications.NewNotifier(email.New(e.cfg, e.logger), e.logger, e.cfg.FrontendURL))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, e.cfg, e.db, e.logger)
		}),
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: withEnv(func(_ *cobra.Command, e *env) error {
			return migrate(e)
		}),
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a fixture bundle (same format as POST /admin/import)",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var b importexport.Bundle
			if err := json.Unmarshal(data, &b); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}
			if err := migrate(e); err != nil {
				return err
			}

			res := importexport.Import(e.db, &b, 0)
			for _, section := range []string{
				importexport.SectionContracts, importexport.SectionDepartments, importexport.SectionUsers,
				importexport.SectionLawFirms, importexport.SectionVisaTypes, importexport.SectionBeneficiaries,
				importexport.SectionCaseGroups, importexport.SectionPetitions, importexport.SectionMilestones,
				importexport.SectionTodos,
			} {
				if res.Created[section]+res.Updated[section] > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s created %d, updated %d\n", section, res.Created[section], res.Updated[section])
				}
			}
			for _, rowErr := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s[%d] %s: %s\n", rowErr.Section, rowErr.Index, rowErr.Key, rowErr.Error)
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d row(s) failed", len(res.Errors))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Fixture bundle (JSON)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin",
		Short: "Create the admin from ADMIN_EMAIL/ADMIN_PASSWORD, or reset an existing one",
		RunE: withEnv(func(_ *cobra.Command, e *env) error {
			if err := migrate(e); err != nil {
				return err
			}
			return ensureAdmin(e, true)
		}),
	}
}

func newCleanupCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "cleanup-notifications",
		Short: "Delete read notifications older than --days",
		RunE: withEnv(func(cmd *cobra.Command, e *env) error {
			if !cmd.Flags().Changed("days") {
				days = e.cfg.NotificationRetentionDays
			}
			deleted, err := notifications.Cleanup(e.db, days, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d notification(s)\n", deleted)
			return nil
		}),
	}
	cmd.Flags().IntVar(&days, "days", 90, "Age in days (defaults to NOTIFICATION_RETENTION_DAYS)")
	return cmd
}
