package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rauves/backstop/internal/backup"
	"github.com/rauves/backstop/internal/config"
	"github.com/rauves/backstop/internal/mailbox"
	"github.com/rauves/backstop/internal/remote"
	"github.com/rauves/backstop/internal/scheduler"
	"github.com/rauves/backstop/internal/worker"
)

func newServeCmd() *cobra.Command {
	var (
		live           bool
		disablePruning bool
		runOnStart     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run backups on the configured schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			spec, err := scheduler.CronSpec(cfg.Backup.Service)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mb := mailbox.New[worker.Trigger]()
			w := worker.New(
				cfg.Backup,
				remote.NewRclone(cfg.Backup.Remote),
				logger,
				mb,
				backup.Options{
					Live:           live,
					DisablePruning: disablePruning,
					// A daemon cannot stop to ask about a missing directory.
					IgnoreMissingDirs: true,
				},
			)

			sched := scheduler.New(spec, mb, logger)
			if err := sched.Start(ctx); err != nil {
				return err
			}

			go func() {
				if err := config.Watch(ctx, configPath, 500*time.Millisecond, logger, func(c *config.Config) {
					w.UpdateConfig(c.Backup)
				}); err != nil {
					logger.Error("config watch unavailable", "error", err)
				}
			}()

			if runOnStart {
				mb.Put(worker.Trigger{At: time.Now(), Reason: "startup"})
			}

			w.Start(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", true, "Upload archives and execute prune plans")
	cmd.Flags().BoolVar(&disablePruning, "disable-pruning", false, "Do not prune old backups")
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", true, "Run one backup immediately, then follow the schedule")

	return cmd
}
