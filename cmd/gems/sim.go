package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-arcade/internal/autoplay"
	"github.com/vovakirdan/gem-arcade/internal/config"
	"github.com/vovakirdan/gem-arcade/internal/games/gems"
	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/session"
	"github.com/vovakirdan/gem-arcade/internal/storage"
)

var (
	flagSimGames    int
	flagSimMode     string
	flagSimStrategy string
	flagSimMaxMoves int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Autoplay sessions without a terminal",
	Long: `Play whole sessions with a built-in strategy and report the scores.

Strategies:
  first  - Always play the first legal move found
  greedy - Play the move that matches the most gems at once

Timed sessions spend one second per move. Endless and zen sessions stop
after --max-moves moves.

Examples:
  gems sim --games 100
  gems sim --mode timed --strategy first
  gems sim --seed 42 --games 10 --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of sessions to play")
	simCmd.Flags().StringVar(&flagSimMode, "mode", string(session.ModeClassic), "Mode: classic, timed, endless, zen")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", string(autoplay.StrategyGreedy), "Strategy: first, greedy")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", autoplay.DefaultMaxMoves, "Move cap for modes without a budget")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record results in the scores database")
	simCmd.Flags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom gems config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger("gems-sim")

	strategy, err := autoplay.ParseStrategy(flagSimStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gemsCfg, err := config.LoadGems(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyGemsPreset(&gemsCfg, preset)
	sessCfg := gemsCfg.ToSessionConfig()

	mode := session.Mode(flagSimMode)
	if _, ok := sessCfg.Modes[mode]; !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimSave {
		if store, err = storage.Open(flagDBPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var total, best, bestCombo int
	started := time.Now()
	for i := range flagSimGames {
		opts := []session.Option{session.WithLogger(logger)}
		if store != nil {
			opts = append(opts, session.WithHighScores(store))
		}

		s, err := session.New(sessCfg, match3.NewRand(seed+int64(i)), opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := s.Start(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		res := autoplay.Play(s, autoplay.Options{Strategy: strategy, MaxMoves: flagSimMaxMoves})
		total += res.FinalScore
		best = max(best, res.FinalScore)
		bestCombo = max(bestCombo, res.Stats.MaxCombo)

		logger.Debug("game finished", "game", i+1, "seed", seed+int64(i), "score", res.FinalScore,
			"moves", res.Stats.MovesMade, "combo", res.Stats.MaxCombo, "reshuffles", res.Stats.Reshuffles)
		fmt.Printf("  #%-4d  score %-8s  moves %-4d  combo x%-3d  matched %-5d  specials %d\n",
			i+1, humanize.Comma(int64(res.FinalScore)), res.Stats.MovesMade, res.Stats.MaxCombo,
			res.Stats.TotalMatched, res.Stats.SpecialsCreated)

		if store != nil {
			rec := storage.SessionRecord{GameID: gems.GameID(mode), SessionID: s.ID(), Result: res}
			if _, err := store.SaveSession(rec); err != nil {
				logger.Warn("could not save score", "error", err)
			}
		}
	}

	if flagSimGames <= 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%d %s games with %s: best %s, average %s, best combo x%d\n",
		flagSimGames, mode, strategy, humanize.Comma(int64(best)),
		humanize.Comma(int64(total/flagSimGames)), bestCombo)
	logger.Info("simulation done", "games", flagSimGames, "mode", mode, "strategy", strategy,
		"elapsed", time.Since(started).Round(time.Millisecond))
}
