package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/daiimus/paracord/internal/application"
	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/logger"
)

// Exit codes, one per fatal condition class so operators can script
// around them.
const (
	exitOK            = 0
	exitUnexpected    = 1
	exitInvalidConfig = 2
	exitAuthFailed    = 3
	exitInterrupted   = 4
)

func Execute() error {
	return newRootCmd().Execute()
}

// ExitCode maps a command error to the documented process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrInvalidConfig), errors.Is(err, domain.ErrTokenNotFound):
		return exitInvalidConfig
	case errors.Is(err, domain.ErrAuthFailed):
		return exitAuthFailed
	case errors.Is(err, application.ErrInterrupted):
		return exitInterrupted
	default:
		return exitUnexpected
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "paracord",
		Short:         "Bulk delete your own Discord messages safely",
		Long: `paracord walks your message history in guild channels, DMs, and group DMs with cursor-based search pagination and deletes (or overwrites) every message it finds, checkpointing after each one so a multi-day run can resume exactly where it stopped.

Exit codes:
  0  run completed
  1  unexpected error
  2  invalid configuration or no auth token found
  3  authentication rejected by the service
  4  interrupted; progress checkpoint saved`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Init(verbose, logFile)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Duplicate log output to a file")

	app := wireApp()

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newDiscoverCmd(app),
		newVerifyCmd(app),
	)

	return rootCmd
}
