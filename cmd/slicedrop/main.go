// slicedrop is a terminal puzzle about dropping sliced pieces onto a board.
// Pieces trade same-colored slices with their neighbors; complete pieces
// score and fill the level's XP bar.
//
// Usage:
//
//	slicedrop                  - Start the game picker menu
//	slicedrop list             - List available game modes
//	slicedrop play [mode]      - Play a mode directly
//	slicedrop simulate         - Run the greedy autoplayer headless
//	slicedrop serve            - Start SSH server for remote play
//	slicedrop scores [mode]    - Show high scores
//	slicedrop saves            - List, show or delete saved sessions
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible sessions
//	--db <path>           - Set database path (default: ~/.slicedrop/slicedrop.db)
//	--config <path>       - Use a custom slices.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slicedrop",
	Short: "Slice Drop - a color-matching puzzle for your terminal",
	Long: `Slice Drop is a terminal puzzle. Drop pieces from your deck onto the
board; neighbors exchange slices of the same color, and a piece that fills
up with a single color completes, scores and grants XP.

Available commands:
  list       - Show game modes
  play       - Play a mode directly
  menu       - Interactive game picker (default)
  simulate   - Headless autoplay runs
  serve      - Start SSH server for remote play
  scores     - View high scores
  saves      - Manage saved sessions

Examples:
  slicedrop
  slicedrop play --level 3
  slicedrop play slices_endless --difficulty hard
  slicedrop simulate --seed 42 --turns 500
  slicedrop serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.slicedrop/slicedrop.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom slices config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write game logs to this file (interactive commands)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every turn")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
}
