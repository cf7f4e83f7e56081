package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
)

var addGroup string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a note to the selected group",
	Long: `Add a note under the currently selected group (see 'pocket select'),
or under an explicit group with --group. The note is stamped with the
current date and time and persisted before the command returns.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content := strings.Join(args, " ")

		ws, path := openWorkspace(true)
		defer ws.Close()

		var group pocket.Group
		if addGroup != "" {
			g, ok := resolveGroup(ws, addGroup)
			if !ok {
				fatal("Unknown group", fmt.Errorf("no group with id or name %q", addGroup))
			}
			group = g
		} else {
			id, ok := loadCursor(path)
			if !ok {
				fatal("No group selected", fmt.Errorf("run 'pocket select <group>' first, or pass --group"))
			}
			if g, found := ws.GetGroup(id); found {
				group = g
			} else {
				// Selection may point at a group that no longer exists;
				// notes are still filed under it.
				group = pocket.Group{ID: id, Name: id}
			}
		}

		ctx := withReason(context.Background(), pocket.CommitTypeFeat, "notes", "add note")

		note, err := ws.AddNoteTo(ctx, group.ID, content)
		if err != nil {
			// Whitespace-only content is ignored, not punished.
			if errors.Is(err, pocket.ErrEmptyContent) {
				return
			}
			fatal("Failed to add note", err)
		}

		fmt.Printf("Added note to '%s' (%s %s).\n", group.Name, note.Date, note.Time)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addGroup, "group", "g", "", "Target group (id or name) instead of the selection")
	registerReasonFlags(addCmd)
}
