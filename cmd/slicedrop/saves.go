package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slicedrop/internal/games/slices"
	"github.com/vovakirdan/slicedrop/internal/games/slices/core"
	"github.com/vovakirdan/slicedrop/internal/platform/tui"
	"github.com/vovakirdan/slicedrop/internal/storage"
)

var flagShowRaw bool

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage saved sessions",
	Long: `Sessions are saved automatically every few turns and when you quit.
Resume one with 'slicedrop play --resume <id>' or from the menu.

Examples:
  slicedrop saves list
  slicedrop saves show 1f2e3d4c
  slicedrop saves delete 1f2e3d4c`,
}

var savesListCmd = &cobra.Command{
	Use:   "list [mode]",
	Short: "List saved sessions, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSavesList,
}

var savesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved board",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesShow,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesShowCmd.Flags().BoolVar(&flagShowRaw, "raw", false, "Print the stored YAML instead of the board")

	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesShowCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSavesList(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	saves, err := store.ListSaves(gameID)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved sessions.")
		return nil
	}

	fmt.Printf("  %-8s  %-14s  %-22s  %-6s  %s\n", "ID", "Mode", "Name", "Score", "Updated")
	fmt.Printf("  %-8s  %-14s  %-22s  %-6s  %s\n", "--", "----", "----", "-----", "-------")
	for _, s := range saves {
		fmt.Printf("  %-8s  %-14s  %-22s  %-6d  %s\n",
			s.ID[:8], s.GameID, s.Name, s.Score, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesShow(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	if flagShowRaw {
		slot, err := store.LoadSave(args[0])
		if err != nil {
			return err
		}
		fmt.Print(string(slot.Data))
		return nil
	}

	if _, err := configureGames(nil); err != nil {
		return err
	}
	game, slot, err := tui.ResumeGame(store, args[0], runtimeConfig())
	if err != nil {
		return err
	}
	g, ok := game.(*slices.Game)
	if !ok {
		return fmt.Errorf("cannot show a %s save", slot.GameID)
	}

	st := g.State()
	fmt.Printf("%s  %s  (%s)\n", slot.ID, slot.Name, g.Title())
	fmt.Printf("Level %d  Score %d  Turns %d\n\n", st.Level, st.Score, st.Turns)
	g.Session().View(func(s *core.State) {
		fmt.Print(core.RenderASCII(s))
	})
	return nil
}

func runSavesDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	slot, err := store.LoadSave(args[0])
	if errors.Is(err, storage.ErrSaveNotFound) {
		return fmt.Errorf("no save matches %q", args[0])
	}
	if err != nil {
		return err
	}
	if err := store.DeleteSave(slot.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s (%s).\n", slot.ID[:8], slot.Name)
	return nil
}
