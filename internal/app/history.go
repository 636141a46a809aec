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
	historyFlagLimit int
	historyFlagDiff  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved scoring runs",
	Long: `History lists runs saved with 'score --save', newest first.
Use --diff to compare the latest two runs per category.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 20, "Show at most N runs")
	historyCmd.Flags().BoolVar(&historyFlagDiff, "diff", false, "Compare the latest two runs")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer db.Close()

	if historyFlagDiff {
		diff, err := db.DiffLatest()
		if err != nil {
			return err
		}
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(diff)
		}
		fmt.Println(output.RenderDiff(diff))
		return nil
	}

	runs, err := db.ListRuns(historyFlagLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render("No saved runs. Use 'repograde score --save' first."))
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	fmt.Println(output.Section("Run History"))
	fmt.Println()
	fmt.Print(output.RenderHistory(runs))
	return nil
}
