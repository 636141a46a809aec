package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repograde/internal/config"
	"github.com/blackwell-systems/repograde/internal/detect"
	"github.com/blackwell-systems/repograde/internal/engine"
	"github.com/blackwell-systems/repograde/internal/output"
	"github.com/blackwell-systems/repograde/internal/rank"
	"github.com/blackwell-systems/repograde/internal/score"
	"github.com/blackwell-systems/repograde/internal/store"
)

var (
	scoreFlagCategories  []string
	scoreFlagTop         int
	scoreFlagSave        bool
	scoreFlagDetails     bool
	scoreFlagSampleLimit int
	scoreFlagNoAudit     bool
	scoreFlagTimeout     int
)

var scoreCmd = &cobra.Command{
	Use:   "score [path]",
	Short: "Run the quality analyzers against a project",
	Long: `Score detects the project type, runs the category analyzers
concurrently, and reports a weighted 0-100 score with a letter grade.

Categories: structure, quality, performance, security, testing, devexp,
completeness. Use --category to run a subset; the maximum score scales
to the selected categories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringSliceVar(&scoreFlagCategories, "category", nil, "Restrict to the named categories (can be repeated)")
	scoreCmd.Flags().IntVar(&scoreFlagTop, "top", 0, "Show at most N recommendations (0 = config default)")
	scoreCmd.Flags().BoolVar(&scoreFlagSave, "save", false, "Persist the run to the history database")
	scoreCmd.Flags().BoolVar(&scoreFlagDetails, "details", false, "Include per-category detail values")
	scoreCmd.Flags().IntVar(&scoreFlagSampleLimit, "sample-limit", 0, "Max files per content check (0 = config default)")
	scoreCmd.Flags().BoolVar(&scoreFlagNoAudit, "no-audit", false, "Skip the external vulnerability audit tool")
	scoreCmd.Flags().IntVar(&scoreFlagTimeout, "audit-timeout", 0, "Audit tool timeout in seconds (0 = config default)")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	opts := score.Options{
		Categories:             scoreFlagCategories,
		Verbose:                flagVerbose,
		IncludeDetails:         scoreFlagDetails,
		IncludeRecommendations: true,
		SampleLimit:            cfg.Scoring.SampleLimit,
		AuditDisabled:          cfg.Scoring.DisableAudit || scoreFlagNoAudit,
	}
	if scoreFlagSampleLimit > 0 {
		opts.SampleLimit = scoreFlagSampleLimit
	}

	scorer := engine.NewScorer().WithAuditTimeout(auditTimeout(cfg))

	// Acceptance history only matters when a database already exists.
	var db *store.DB
	if scoreFlagSave {
		db, err = store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer db.Close()

		rates, err := db.AcceptanceRates()
		if err != nil {
			return fmt.Errorf("loading acceptance history: %w", err)
		}
		scorer.WithHistory(rank.History{AcceptanceRates: rates})
	}

	res, err := scorer.Score(cmd.Context(), root, opts)
	if err != nil {
		return err
	}

	if scoreFlagSave {
		pc, err := detect.BuildContext(root, opts)
		if err != nil {
			return fmt.Errorf("resolving project root: %w", err)
		}
		if _, err := db.SaveRun(pc, res); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	topN := cfg.Recommend.Top
	if scoreFlagTop > 0 {
		topN = scoreFlagTop
	}
	fmt.Println(output.RenderReport(root, res, topN))
	if flagVerbose {
		fmt.Println(output.RenderChecks(res))
	}
	return nil
}

// auditTimeout resolves the audit timeout from flag and config.
func auditTimeout(cfg *config.Config) time.Duration {
	seconds := cfg.Scoring.AuditTimeoutSeconds
	if scoreFlagTimeout > 0 {
		seconds = scoreFlagTimeout
	}
	return time.Duration(seconds) * time.Second
}
