package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var selectNone bool

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select [group]",
	Short: "Select the group new notes are filed under",
	Long: `Select a group by id or name. The selection is remembered between runs;
'pocket add' files notes under it. Without arguments the current selection
is printed; --none clears it.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, path := openWorkspace(true)
		defer ws.Close()

		if selectNone {
			if err := clearCursor(path); err != nil {
				fatal("Failed to clear selection", err)
			}
			fmt.Println("Selection cleared.")
			return
		}

		if len(args) == 0 {
			id, ok := loadCursor(path)
			if !ok {
				fmt.Println("No group selected.")
				return
			}
			if g, found := ws.GetGroup(id); found {
				fmt.Printf("Selected group: %s (%s)\n", g.Name, g.ID)
			} else {
				fmt.Printf("Selected group: %s (no longer exists)\n", id)
			}
			return
		}

		ref := strings.Join(args, " ")
		group, ok := resolveGroup(ws, ref)
		if !ok {
			fatal("Unknown group", fmt.Errorf("no group with id or name %q", ref))
		}

		if err := saveCursor(path, group.ID); err != nil {
			fatal("Failed to persist selection", err)
		}
		fmt.Printf("Selected '%s' for new notes.\n", group.Name)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().BoolVar(&selectNone, "none", false, "Clear the selection")
}
