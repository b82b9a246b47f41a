package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slicedrop/internal/games/slices"
	"github.com/vovakirdan/slicedrop/internal/platform/tui"
	"github.com/vovakirdan/slicedrop/internal/registry"
)

var (
	flagLevel    int
	flagResume   string
	flagAutosave int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: slices, the campaign).

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Tab/Shift+Tab     - Next/previous deck piece
  1-3               - Select a deck piece
  Enter/Space       - Drop the selected piece
  P                 - Pause
  Esc/B             - Back (when paused or over)
  R                 - Restart (after game over)
  Ctrl+S            - Save now
  Q/Ctrl+C          - Save and quit

Difficulty options:
  easy   - Larger deck, lower XP targets
  normal - Endless levels start at 30% difficulty
  hard   - Smaller deck, higher XP targets
  fixed  - No progression between levels

Examples:
  slicedrop play
  slicedrop play --level 3
  slicedrop play slices_endless --difficulty hard
  slicedrop play --resume 1f2e3d4c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, fmt.Sprintf("Campaign start level (1-%d)", slices.CampaignLevels))
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Resume a saved session by id or id prefix")
	playCmd.Flags().IntVar(&flagAutosave, "autosave", tui.DefaultAutosaveEvery, "Turns between autosaves (0 disables)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "slices"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'slicedrop list' to see available modes", gameID)
	}
	if flagLevel < 0 || flagLevel > slices.CampaignLevels {
		return fmt.Errorf("--level must be between 1 and %d", slices.CampaignLevels)
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := configureGames(logger); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	res := tui.MenuResult{
		GameID: gameID,
		SaveID: flagResume,
		Level:  flagLevel,
		Config: runtimeConfig(),
	}
	game, saveID, err := res.Start(store)
	if err != nil {
		return err
	}

	return tui.Run(game, res.Config, tui.Options{
		Store:         store,
		Logger:        logger,
		SaveID:        saveID,
		AutosaveEvery: flagAutosave,
	})
}
