package cmd

import (
	"bufio"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daiimus/paracord/internal/adapters/checkpoint/tomlfile"
	"github.com/daiimus/paracord/internal/adapters/config"
	"github.com/daiimus/paracord/internal/adapters/render/report"
	"github.com/daiimus/paracord/internal/application"
	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

func newRunCmd(app *app) *cobra.Command {
	var (
		configPath     string
		checkpointPath string
		flagToken      string
		dryRun         bool
		skipConfirm    bool
		meowMode       string
		skipMeowed     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Delete (or overwrite) your messages across the configured targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, targets, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flag overrides beat the config file.
			if dryRun {
				settings.DryRun = true
			}
			if cmd.Flags().Changed("meow") {
				settings.MeowMode = domain.MeowMode(meowMode)
			}
			if cmd.Flags().Changed("skip-meowed") {
				settings.SkipMeowed = skipMeowed
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			enabled := 0
			for _, target := range targets {
				if target.Enabled {
					enabled++
				}
			}
			if enabled == 0 {
				return fmt.Errorf("%w: no enabled targets", domain.ErrInvalidConfig)
			}

			client, identity, err := runValidateSpinner(cmd.Context(), cmd.ErrOrStderr(), app, flagToken)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as @%s (ID: %s)\n", identity.Username, identity.ID)

			fmt.Fprintln(cmd.OutOrStdout(), report.RunHeader(settings, enabled))

			if !settings.DryRun && !skipConfirm {
				ok, err := confirm(cmd, settings, enabled)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			store, err := tomlfile.NewStore(checkpointPath)
			if err != nil {
				return err
			}

			// Finish the in-flight message on interrupt, persist, exit.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			service := application.NewService(client, store, settings, ports.SystemClock{}, ports.SystemSleeper{})

			start := app.now()
			summary, runErr := service.Run(ctx, identity, targets)
			fmt.Fprintln(cmd.OutOrStdout(), report.Summary(summary, app.now().Sub(start)))

			if runErr != nil {
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the run configuration file")
	cmd.Flags().StringVar(&checkpointPath, "checkpoint", defaultProgress, "Path to the progress checkpoint file")
	cmd.Flags().StringVarP(&flagToken, "token", "t", "", "Auth token (falls back to "+tokenEnvKey+" or "+tokenEnvFile+")")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview outcomes and counts without mutating anything")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&meowMode, "meow", "", "Overwrite messages before deleting: edit_and_delete or edit_only")
	cmd.Flags().Lookup("meow").NoOptDefVal = string(domain.MeowModeEditAndDelete)
	cmd.Flags().BoolVar(&skipMeowed, "skip-meowed", false, "Preserve messages already overwritten with the marker")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func confirm(cmd *cobra.Command, settings domain.Settings, targetCount int) (bool, error) {
	var action string
	switch settings.MeowMode {
	case domain.MeowModeEditOnly:
		action = "overwrite messages in"
	case domain.MeowModeEditAndDelete:
		action = "overwrite then delete messages from"
	default:
		action = "delete messages from"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nThis will %s %d channels/DMs and cannot be undone.\n", action, targetCount)
	fmt.Fprint(cmd.OutOrStdout(), "Continue? (yes/no): ")

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}
