package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slicedrop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every registered game mode and whether it can be saved and resumed.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, "ID", "Title", "Saves")
	fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, g := range games {
		saves := "no"
		if g.Saveable {
			saves = "yes"
		}
		fmt.Printf("  %-*s  %-22s  %s\n", maxIDLen, g.ID, g.Title, saves)
	}

	fmt.Println()
	fmt.Println("Run 'slicedrop play <id>' to play a mode.")
}
