package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slicedrop/internal/registry"
	"github.com/vovakirdan/slicedrop/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a mode, or for every mode when none is given.

Examples:
  slicedrop scores
  slicedrop scores slices_endless --limit 20
  slicedrop scores slices --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	var games []registry.GameInfo
	for _, g := range registry.List() {
		if len(args) == 0 || g.ID == args[0] {
			games = append(games, g)
		}
	}
	if len(games) == 0 {
		return fmt.Errorf("unknown mode %q, run 'slicedrop list' to see available modes", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) == 0 {
			return fmt.Errorf("--clear needs a mode")
		}
		if err := store.ClearScores(args[0]); err != nil {
			return err
		}
		fmt.Printf("Scores for %s cleared.\n", args[0])
		return nil
	}

	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, g); err != nil {
			return err
		}
	}
	return nil
}

func printScores(store *storage.Store, g registry.GameInfo) error {
	scores, err := store.TopScores(g.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", g.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'slicedrop play %s' to set the first high score!\n", g.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %s\n", "Rank", "Score", "Level", "Turns", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %s\n", i+1, e.Score, e.Level, e.Turns, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(g.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Best level: %d  Turns played: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLevel, stats.TotalTurns)
	return nil
}
