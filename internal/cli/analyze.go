package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ralt/pluginstats/internal/analysis"
	"github.com/ralt/pluginstats/internal/charts"
	"github.com/ralt/pluginstats/internal/models"
	"github.com/ralt/pluginstats/internal/publish"
	"github.com/ralt/pluginstats/internal/report"
	"github.com/ralt/pluginstats/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Generate the ecosystem report",
		Long: `Loads both feeds (downloading them when no cache exists), merges
them, writes a Markdown report and charts to the output directory and
optionally signs and publishes the results.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logrus.Info("Starting ecosystem analysis...")
			_, err = runAnalysis(cmd.Context(), env, cfg, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().Bool("force-refresh", false, "Download the feeds even when cached")
	cmd.Flags().Bool("no-charts", false, "Skip chart rendering")

	return cmd
}

// analysisResult lists what one run produced
type analysisResult struct {
	RunID      string
	Summary    *analysis.Summary
	ReportPath string
	Charts     []string
	Signature  string
	Published  []string
}

func (r *analysisResult) files() []string {
	files := []string{r.ReportPath}
	if r.Signature != "" {
		files = append(files, r.Signature)
	}
	return append(files, r.Charts...)
}

func runAnalysis(ctx context.Context, env Env, cfg *models.AnalysisConfig, out io.Writer) (*analysisResult, error) {
	res := &analysisResult{RunID: uuid.NewString()}
	log := logrus.WithField("run_id", res.RunID)
	now := env.now()

	feeds, err := env.newCache(cfg).Fetch(ctx, cfg.ForceRefresh)
	if err != nil {
		return nil, err
	}

	res.Summary, err = analysis.Analyze(feeds, analysis.Options{
		StaleThreshold: analysis.StaleThreshold(cfg.StaleDays),
		Now:            now,
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Analyzed %d plugins (%d active)", res.Summary.Distribution.Total, res.Summary.Distribution.Active)

	text := report.Render(res.Summary, now)
	if _, err := fmt.Fprint(out, text); err != nil {
		return nil, models.NewError(models.ErrRender, "stdout", err)
	}

	res.ReportPath, err = report.Write(cfg.OutputDir, text, now)
	if err != nil {
		return nil, err
	}
	log.WithField("path", res.ReportPath).Info("Report saved")

	if cfg.Charts {
		res.Charts, err = charts.NewRenderer(cfg.OutputDir).Render(res.Summary)
		if err != nil {
			log.Warnf("Chart rendering failed: %v", err)
		}
	}

	if cfg.GPGKeyPath != "" {
		s, err := signer.NewGPGSigner(cfg.GPGKeyPath, cfg.GPGPassphrase)
		if err != nil {
			return nil, models.NewError(models.ErrSigning, cfg.GPGKeyPath, err)
		}
		res.Signature, err = signer.SignFile(s, res.ReportPath)
		if err != nil {
			return nil, err
		}
		log.WithField("path", res.Signature).Info("Report signed")
	}

	if cfg.Publish.Enabled() {
		p, err := publish.New(cfg.Publish)
		if err != nil {
			return nil, err
		}
		res.Published, err = p.Upload(ctx, res.RunID, res.files())
		if err != nil {
			return nil, err
		}
	}

	log.Info("Analysis completed successfully")
	return res, nil
}
