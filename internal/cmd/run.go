package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rauves/backstop/internal/backup"
	"github.com/rauves/backstop/internal/remote"
)

func newRunCmd() *cobra.Command {
	var (
		live              bool
		disablePruning    bool
		ignoreMissingDirs bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one backup now",
		Long: `Run dumps databases, stages directories, builds the archive and computes
the prune plan. Without --live nothing is uploaded or deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := backup.NewRunner(
				cfg.Backup,
				remote.NewRclone(cfg.Backup.Remote),
				logger,
				backup.Options{
					Live:              live,
					DisablePruning:    disablePruning,
					IgnoreMissingDirs: ignoreMissingDirs,
				},
			)
			return runner.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Upload the archive and execute the prune plan (otherwise dry run)")
	cmd.Flags().BoolVar(&disablePruning, "disable-pruning", false, "Do not prune old backups")
	cmd.Flags().BoolVarP(&ignoreMissingDirs, "ignore-missing-dirs", "i", false, "Skip configured directories that do not exist")

	return cmd
}
