package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/slicedrop/internal/games/slices"
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
)

var (
	flagSimRuns     int
	flagSimTurns    int
	flagSimLevel    int
	flagSimFormat   string
	flagSimSnapshot bool
	flagSimJobs     int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the greedy autoplayer without a terminal UI",
	Long: `Play one or more levels headless with a greedy strategy: every turn
tries each deck piece on each empty tile and keeps the drop that completes
the most pieces, then moves the most slices.

Runs are deterministic. Run i uses seed --seed + i, so a report can be
reproduced exactly. Runs play in parallel (--jobs) and print in order. Use --verbose to log every turn to stderr.

Examples:
  slicedrop simulate --seed 42
  slicedrop simulate --seed 1 --runs 20 --format yaml
  slicedrop simulate --seed 7 --level 5 --difficulty hard --snapshot --format yaml`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().IntVar(&flagSimTurns, "turns", 500, "Maximum turns per run")
	simulateCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level whose rules to use (1-based)")
	simulateCmd.Flags().StringVar(&flagSimFormat, "format", "text", "Output format: text or yaml")
	simulateCmd.Flags().BoolVar(&flagSimSnapshot, "snapshot", false, "Include the final state in yaml output")
	simulateCmd.Flags().IntVarP(&flagSimJobs, "jobs", "j", runtime.NumCPU(), "Runs to play in parallel")
}

// simReport is the yaml form of one run.
type simReport struct {
	Seed           uint64         `yaml:"seed"`
	Turns          int            `yaml:"turns"`
	Completed      int            `yaml:"completed"`
	Score          int            `yaml:"score"`
	XP             int            `yaml:"xp"`
	MaxXP          int            `yaml:"max_xp"`
	GameOver       bool           `yaml:"game_over"`
	LevelCompleted bool           `yaml:"level_completed"`
	Hash           string         `yaml:"hash"`
	State          *core.Snapshot `yaml:"state,omitempty"`
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagSimFormat != "text" && flagSimFormat != "yaml" {
		return fmt.Errorf("unknown format %q", flagSimFormat)
	}
	if flagSimRuns < 1 || flagSimTurns < 1 || flagSimLevel < 1 || flagSimJobs < 1 {
		return fmt.Errorf("--runs, --turns, --level and --jobs must be positive")
	}

	logger := newLogger(os.Stderr, "simulate")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules := slices.NewWithConfig(slices.ModeEndless, cfg, logger).Rules(flagSimLevel - 1)
	if err := rules.Validate(); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}

	reports := make([]simReport, flagSimRuns)
	states := make([]*core.State, flagSimRuns)

	// Runs are independent; each writes only its own slot.
	var g errgroup.Group
	g.SetLimit(flagSimJobs)
	for i := range flagSimRuns {
		g.Go(func() error {
			report, state, err := simulateRun(rules, cfg.Progression.ScorePerPiece, seed+uint64(i), logger)
			reports[i], states[i] = report, state
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flagSimFormat == "text" {
		for i, r := range reports {
			printRun(r, states[i])
		}
	}

	if flagSimFormat == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(reports)
	}
	printSummary(reports)
	return nil
}

// simulateRun plays one seeded run with the greedy strategy.
func simulateRun(rules core.Rules, scorePerPiece int, seed uint64, logger *log.Logger) (simReport, *core.State, error) {
	state := core.NewState(rules, core.NewRand(seed))
	state.Restart()

	runLog := logger.With("seed", seed)
	turn := 0
	res := slices.Autoplay(state, scorePerPiece, flagSimTurns, func(mv slices.Move, out core.TurnOutcome) {
		turn++
		runLog.Debug("turn",
			"turn", turn,
			"piece", mv.Piece,
			"row", mv.Row,
			"column", mv.Column,
			"transfers", len(out.Transfers),
			"completed", out.Completed,
			"xp", state.XP(),
		)
	})
	runLog.Info("run finished",
		"turns", res.Turns,
		"score", res.Score,
		"xp", res.XP,
		"game_over", res.GameOver,
		"level_completed", res.Level,
	)

	report := simReport{
		Seed:           seed,
		Turns:          res.Turns,
		Completed:      res.Completed,
		Score:          res.Score,
		XP:             res.XP,
		MaxXP:          rules.MaxXP,
		GameOver:       res.GameOver,
		LevelCompleted: res.Level,
		Hash:           fmt.Sprintf("%016x", state.Hash()),
	}
	if flagSimSnapshot {
		snap, err := state.Snapshot()
		if err != nil {
			return report, state, fmt.Errorf("seed %d: %w", seed, err)
		}
		report.State = &snap
	}
	return report, state, nil
}

func printRun(r simReport, s *core.State) {
	outcome := "turn limit"
	switch {
	case r.LevelCompleted:
		outcome = "level completed"
	case r.GameOver:
		outcome = "game over"
	}
	fmt.Printf("Seed %d: %s after %d turns, %d completed, score %d\n", r.Seed, outcome, r.Turns, r.Completed, r.Score)
	fmt.Print(core.RenderASCII(s))
	fmt.Println()
}

func printSummary(reports []simReport) {
	if len(reports) < 2 {
		return
	}
	wins, totalScore, totalTurns := 0, 0, 0
	for _, r := range reports {
		if r.LevelCompleted {
			wins++
		}
		totalScore += r.Score
		totalTurns += r.Turns
	}
	n := float64(len(reports))
	fmt.Printf("Runs: %d  Levels completed: %d  Average score: %.1f  Average turns: %.1f\n",
		len(reports), wins, float64(totalScore)/n, float64(totalTurns)/n)
}
