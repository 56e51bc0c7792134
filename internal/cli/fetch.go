package cli

import (
	"fmt"

	"github.com/ralt/pluginstats/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewFetchCmd creates the fetch command
func NewFetchCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Populate or refresh the feed cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cache := env.newCache(cfg)
			feeds, err := cache.Fetch(cmd.Context(), cfg.ForceRefresh)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d plugins\n", cache.ClassifiersPath(), feeds.Classifiers.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records\n", cache.ExtendedPath(), len(feeds.Extended))
			logrus.WithFields(logrus.Fields{
				"active":    len(feeds.Classifiers[models.StatusActive]),
				"withdrawn": len(feeds.Classifiers[models.StatusWithdrawn]),
				"deleted":   len(feeds.Classifiers[models.StatusDeleted]),
			}).Debug("Feed cache ready")
			return nil
		},
	}

	cmd.Flags().Bool("force-refresh", false, "Download the feeds even when cached")
	cmd.Flags().String("archive", "", "Also keep a compressed snapshot (gzip, zstd, xz)")

	return cmd
}
