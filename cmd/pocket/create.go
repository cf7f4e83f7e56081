package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
)

var (
	createColor  string
	createSelect bool
)

// colorNames maps friendly flag values onto the palette.
var colorNames = map[string]pocket.Color{
	"purple": pocket.ColorPurple,
	"pink":   pocket.ColorPink,
	"cyan":   pocket.ColorCyan,
	"salmon": pocket.ColorSalmon,
	"blue":   pocket.ColorBlue,
	"sky":    pocket.ColorSky,
}

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new group",
	Long: `Create a new group of notes. The name must be unique (case-insensitive).
Colors can be given by name (purple, pink, cyan, salmon, blue, sky) or as a
palette hex value; without --color the default palette color is used.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")

		color := pocket.Color("")
		if createColor != "" {
			if c, ok := colorNames[strings.ToLower(createColor)]; ok {
				color = c
			} else {
				color = pocket.Color(createColor)
			}
		}

		ws, path := openWorkspace(false)
		defer ws.Close()

		ctx := withReason(context.Background(), pocket.CommitTypeFeat, "groups", fmt.Sprintf("create group %s", name))

		group, err := ws.CreateGroup(ctx, name, color)
		if err != nil {
			// A blank name is ignored, not punished.
			if errors.Is(err, pocket.ErrEmptyName) {
				return
			}
			if errors.Is(err, pocket.ErrDuplicateName) {
				fatal("Group already exists", fmt.Errorf("a group named %q already exists (names are case-insensitive)", name))
			}
			if errors.Is(err, pocket.ErrUnknownColor) {
				fatal("Unknown color", fmt.Errorf("%q is not in the palette; use one of: purple, pink, cyan, salmon, blue, sky", createColor))
			}
			fatal("Failed to create group", err)
		}

		if createSelect {
			if err := saveCursor(path, group.ID); err != nil {
				fatal("Failed to persist selection", err)
			}
		}

		fmt.Printf("Created group '%s' (%s) with color %s.\n", group.Name, group.Initials, group.Color)
		if createSelect {
			fmt.Printf("Selected '%s' for new notes.\n", group.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createColor, "color", "c", "", "Group color (name or palette hex)")
	createCmd.Flags().BoolVar(&createSelect, "select", false, "Select the new group for subsequent notes")
	registerReasonFlags(createCmd)
}
