package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"shelter-registry/internal/adapters/storage"
	"shelter-registry/internal/domain/shelters"
	"shelter-registry/internal/menu"
	"shelter-registry/internal/middleware"
	"shelter-registry/internal/platform/config"
	"shelter-registry/internal/platform/logger"
	"shelter-registry/internal/platform/observability"

	"github.com/spf13/cobra"
)

// app es el estado que comparten los subcomandos durante una ejecución.
type app struct {
	configPath string
	staffID    string

	svc     *shelters.Service
	cleanup []func() error
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "shelterctl",
		Short:        "Manage regional animal shelters from the terminal",
		Long:         "shelterctl opens the shelters dataset, runs one operation (or the interactive menu) and saves after every change.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $"+config.ConfigFileEnv+")")
	rootCmd.PersistentFlags().StringVar(&a.staffID, "staff", "", "staff ID recorded in operation logs")

	rootCmd.AddCommand(
		newMenuCmd(a),
		newInventoryCmd(a),
		newRevenueCmd(a),
		newMoveCmd(a),
		newAdoptCmd(a),
		newUpdateCmd(a, "update-health", "Overwrite an animal's health", shelters.FieldHealth),
		newUpdateCmd(a, "update-status", "Overwrite an animal's status (no adoption accounting)", shelters.FieldStatus),
	)
	return rootCmd
}

// withService abre el dataset antes de fn y siempre cierra después, falle o no.
// help y completion no pasan por acá, así que no tocan el storage.
func (a *app) withService(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.open(cmd); err != nil {
			_ = a.close(cmd.Context())
			return err
		}
		defer func() {
			err = errors.Join(err, a.close(cmd.Context()))
		}()
		return fn(cmd, args)
	}
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	// logs a stderr; stdout es del usuario
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
		Out:    cmd.ErrOrStderr(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.staffID != "" {
		ctx = middleware.WithStaff(ctx, middleware.Staff{ID: a.staffID})
	}
	cmd.SetContext(ctx)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingOptions{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.App.Name,
		Pretty:      cfg.Tracing.Pretty,
		Out:         cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, func() error { return shutdownTracing(context.Background()) })

	repo, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, closeStore)

	a.svc = shelters.NewService(repo, shelters.WithLogger(log))
	if err := a.svc.Load(ctx); err != nil {
		return err
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, a.cleanup[i]())
	}
	a.cleanup = nil
	return errors.Join(errs...)
}

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive six-option menu",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			return menu.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a.svc)
		}),
	}
}

func newInventoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "Show every shelter and its animals",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			return menu.PrintInventory(cmd.OutOrStdout(), a.svc.Inventory(cmd.Context()))
		}),
	}
}

func newRevenueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "revenue",
		Short: "Show the shelter revenue report",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			return menu.PrintRevenue(cmd.OutOrStdout(), a.svc.Revenue(cmd.Context()))
		}),
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "move <animal-id> <shelter-number>",
		Short:   "Move an animal to another shelter",
		Long:    "Move an animal to another shelter. Shelter numbers start at 1, in inventory order.",
		Example: "  shelterctl move D001 2",
		Args:    cobra.ExactArgs(2),
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: shelter number %q", shelters.ErrInvalidInput, args[1])
			}

			m, err := a.svc.Move(cmd.Context(), args[0], n-1)
			if err != nil {
				return err
			}
			menu.PrintMovement(cmd.OutOrStdout(), m)
			return nil
		}),
	}
}

func newAdoptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adopt <animal-id>",
		Short: "Adopt an animal and collect the fee",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			ad, err := a.svc.Adopt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			menu.PrintAdoption(cmd.OutOrStdout(), ad)
			return nil
		}),
	}
}

func newUpdateCmd(a *app, use, short string, field shelters.Field) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <animal-id> <value>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: a.withService(func(cmd *cobra.Command, args []string) error {
			apply := a.svc.UpdateHealth
			if field == shelters.FieldStatus {
				apply = a.svc.UpdateStatus
			}

			u, err := apply(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.Message())
			return nil
		}),
	}
}
