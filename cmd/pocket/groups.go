package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var groupsJSON bool

// groupsCmd represents the groups command
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List all groups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, path := openWorkspace(true)
		defer ws.Close()

		groups := ws.ListGroups()

		if groupsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(groups); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if len(groups) == 0 {
			fmt.Println("No groups yet. Create one with 'pocket create <name>'.")
			return
		}

		selected, _ := loadCursor(path)
		for _, g := range groups {
			marker := " "
			if g.ID == selected {
				marker = "*"
			}
			fmt.Printf("%s %-4s %-24s %s  %d note(s)\n", marker, g.Initials, g.Name, g.Color, len(ws.ListNotes(g.ID)))
		}
		if orphans := ws.OrphanedNotes(); orphans > 0 {
			fmt.Printf("\n%d note(s) reference groups that no longer exist ('pocket notes --all' shows them).\n", orphans)
		}
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.Flags().BoolVar(&groupsJSON, "json", false, "Output in JSON format")
}
