package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logLevel   string
)

func Execute(version, commit, date string) error {
	rootCmd := &cobra.Command{
		Use:   "backstop",
		Short: "Directory and database backups with tiered retention",
		Long: `backstop dumps your databases, zips your directories, ships the archive
to an rclone remote, and prunes old remote archives with a
daily/weekly/monthly/yearly retention policy.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "backstop.yaml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level: debug, info, warn, error")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPruneCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd.Execute()
}
