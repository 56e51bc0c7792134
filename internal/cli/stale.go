package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/ralt/pluginstats/internal/analysis"
	"github.com/spf13/cobra"
)

// NewStaleCmd creates the stale command
func NewStaleCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stale",
		Short: "List plugins without a release in the given number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			feeds, err := env.newCache(cfg).Fetch(cmd.Context(), cfg.ForceRefresh)
			if err != nil {
				return err
			}

			now := env.now()
			stale := analysis.FindStale(feeds.Extended, analysis.StaleThreshold(cfg.StaleDays), now)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLAST RELEASE\tDAYS")
			for _, p := range stale {
				fmt.Fprintf(w, "%s\t%s\t%d\n", p.Record.Key(), p.LastRelease.Format("2006-01-02"), int(p.Age(now).Hours()/24))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d plugins without a release in %d days\n", len(stale), cfg.StaleDays)
			return nil
		},
	}

	cmd.Flags().Int("days", analysis.DefaultStaleDays, "Staleness threshold in days")

	return cmd
}
