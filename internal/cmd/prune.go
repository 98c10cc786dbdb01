package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rauves/backstop/internal/config"
	"github.com/rauves/backstop/internal/logging"
	"github.com/rauves/backstop/internal/prune"
)

func newPruneCmd() *cobra.Command {
	var (
		inputFile  string
		outputFile string
		fileFormat string
		keepDaily  int
		keepWeekly int
		keepMonth  int
		keepYearly int
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Compute a prune plan from a list of archive names",
		Long: `Prune is the standalone retention decision engine. It reads a
newline-delimited list of archive names, decides which fall outside every
retention tier, and writes the names to delete, one per line, preserving
input order. It never contacts any remote itself.

The file format is a Go time layout with the literal prefix and extension
inlined, e.g. 'backup_2006-01-02.zip'. Names that do not match the format
are reported and left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.Setup(config.LogsConfig{Level: logLevel})
			if err != nil {
				return err
			}

			data, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}
			var names []string
			for _, line := range strings.Split(string(data), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					names = append(names, line)
				}
			}

			plan, err := prune.Compute(names, prune.Format{TimeLayout: fileFormat}, prune.Policy{
				Daily:   keepDaily,
				Weekly:  keepWeekly,
				Monthly: keepMonth,
				Yearly:  keepYearly,
			})
			if err != nil {
				return err
			}

			if n := len(plan.Skipped); n > 0 {
				logger.Warn("skipped names that do not match the format", "count", n)
			}
			logger.Info("prune plan computed",
				"archives", len(plan.Retained)+len(plan.Prune),
				"retained", len(plan.Retained),
				"to_prune", len(plan.Prune))

			var b strings.Builder
			for _, name := range plan.PruneNames() {
				b.WriteString(name)
				b.WriteByte('\n')
			}
			if err := os.WriteFile(outputFile, []byte(b.String()), 0o644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFile, "input-file", "", "File holding existing archive names, one per line")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "File to write the names to delete to")
	cmd.Flags().StringVar(&fileFormat, "file-format", "", "Archive name template, e.g. 'backup_2006-01-02.zip'")
	cmd.Flags().IntVar(&keepDaily, "keep-daily", 0, "Number of daily archives to keep")
	cmd.Flags().IntVar(&keepWeekly, "keep-weekly", 0, "Number of weekly archives to keep")
	cmd.Flags().IntVar(&keepMonth, "keep-monthly", 0, "Number of monthly archives to keep")
	cmd.Flags().IntVar(&keepYearly, "keep-yearly", 0, "Number of yearly archives to keep")

	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("output-file")
	_ = cmd.MarkFlagRequired("file-format")

	return cmd
}
