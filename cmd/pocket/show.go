package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current view",
	Long:  `Show the selected group and its notes, the way a front end would render them.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, path := openWorkspace(true)
		defer ws.Close()

		restoreSelection(ws, path)
		view := ws.View()

		if view.GroupID == "" {
			fmt.Println("No group selected. Run 'pocket select <group>' first.")
			return
		}

		if view.Group != nil {
			fmt.Printf("%s  %s (%s)\n", view.Group.Initials, view.Group.Name, view.Group.Color)
		} else {
			// Notes can outlive their group; the view still lists them.
			fmt.Printf("?  %s (group no longer exists)\n", view.GroupID)
		}

		if len(view.Notes) == 0 {
			fmt.Println("\nNo notes yet. Add one with 'pocket add <content>'.")
			return
		}

		fmt.Println()
		for _, n := range view.Notes {
			fmt.Printf("  %s %s  %s\n", n.Date, n.Time, n.Content)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
