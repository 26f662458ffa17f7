package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-arcade/internal/registry"
	"github.com/vovakirdan/gem-arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores for the specified mode. Without a mode,
shows a summary of every mode that has been played.

Examples:
  gems scores
  gems scores gems
  gems scores gems_timed --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gems list' to see available modes.")
		os.Exit(1)
	}
	if err := printTopScores(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printTopScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gems play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "Rank", "Score", "Combo", "Matched", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "----", "-----", "-----", "-------", "----")

	for i, e := range scores {
		fmt.Printf("  %-4d  %-10s  x%-4d  %-7s  %s\n", i+1, humanize.Comma(int64(e.Score)),
			e.MaxCombo, humanize.Comma(int64(e.TotalMatched)), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %s over %s games (avg %s)\n", humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.GamesCount)), humanize.Comma(int64(stats.AvgScore)))
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %-5s  %s\n", "Mode", "Games", "Best", "Average", "Combo", "Last played")
	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %-5s  %s\n", "----", "-----", "----", "-------", "-----", "-----------")
	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			continue
		}
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = humanize.Time(s.LastPlayed)
		}
		fmt.Printf("  %-14s  %-6s  %-10s  %-10s  x%-4d  %s\n", g.ID, humanize.Comma(int64(s.GamesCount)),
			humanize.Comma(int64(s.HighScore)), humanize.Comma(int64(s.AvgScore)), s.BestCombo, last)
	}
	return nil
}
