package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slicedrop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game picker menu",
	Long: `Start in interactive menu mode. This is also what running slicedrop
without a command does.

Pick a mode with Up/Down, choose the campaign start level with Left/Right,
and press Enter. Saved sessions are listed below the modes and can be
resumed with Enter or deleted with X. Tab opens the score table.
After a game ends you return to the menu.`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		// Only the first game uses --seed; later ones are seeded from the clock.
		cfg.Seed = 0

		game, saveID, err := res.Start(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
			continue
		}

		if err := tui.Run(game, res.Config, tui.Options{
			Store:         store,
			Logger:        logger,
			SaveID:        saveID,
			AutosaveEvery: tui.DefaultAutosaveEvery,
		}); err != nil {
			return err
		}
	}
}
