package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/repograde/internal/config"
	"github.com/blackwell-systems/repograde/internal/output"
	"github.com/blackwell-systems/repograde/internal/store"
)

var (
	recommendFlagAccept  int64
	recommendFlagDismiss int64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show open recommendations from saved runs",
	Long: `Recommend lists recommendations persisted by 'score --save' that
have not been accepted or dismissed yet. Accepting or dismissing a
recommendation feeds the ranking of future runs: categories whose advice
you act on rank higher next time.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().Int64Var(&recommendFlagAccept, "accept", 0, "Mark the recommendation with this ID accepted")
	recommendCmd.Flags().Int64Var(&recommendFlagDismiss, "dismiss", 0, "Mark the recommendation with this ID dismissed")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	if recommendFlagAccept != 0 {
		if err := db.SetRecommendationStatus(recommendFlagAccept, store.StatusAccepted); err != nil {
			return err
		}
		fmt.Printf("Recommendation %d accepted.\n", recommendFlagAccept)
	}
	if recommendFlagDismiss != 0 {
		if err := db.SetRecommendationStatus(recommendFlagDismiss, store.StatusDismissed); err != nil {
			return err
		}
		fmt.Printf("Recommendation %d dismissed.\n", recommendFlagDismiss)
	}

	recs, err := db.GetOpenRecommendations()
	if err != nil {
		return fmt.Errorf("listing recommendations: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println(output.StyleMuted.Render("No open recommendations."))
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	fmt.Println(output.Section("Open Recommendations"))
	fmt.Println()
	fmt.Print(output.RenderOpenRecommendations(recs))
	return nil
}
