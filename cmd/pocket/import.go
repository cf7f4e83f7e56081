package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/pocket"
)

var importFormat string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import groups and notes from an export file",
	Long: `Replay an export file into the workspace. Groups are matched by name:
an existing group absorbs the imported notes that pointed at its old id,
a new name creates a new group. Notes are re-stamped as they are replayed;
their original timestamps are not preserved.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file := args[0]

		data, err := os.ReadFile(file)
		if err != nil {
			fatal("Failed to read import file", err)
		}

		var a archive
		if err := decodeArchive(data, importFormat, file, &a); err != nil {
			fatal("Failed to parse import file", err)
		}

		ws, _ := openWorkspace(true)
		defer ws.Close()

		ctx := withReason(context.Background(), pocket.CommitTypeChore, "workspace", fmt.Sprintf("import %s", filepath.Base(file)))

		// Replay groups, building an old-id -> new-id map. A name that
		// already exists maps onto the existing group instead of failing,
		// and an empty name is dropped the same way the store would drop
		// it on a direct create.
		idMap := make(map[string]string, len(a.Groups))
		groups, created, skipped := 0, 0, 0
		for _, g := range a.Groups {
			newGroup, err := ws.CreateGroup(ctx, g.Name, g.Color)
			if err != nil {
				if errors.Is(err, pocket.ErrDuplicateName) {
					if existing, ok := resolveGroup(ws, g.Name); ok {
						idMap[g.ID] = existing.ID
						groups++
						continue
					}
				}
				if errors.Is(err, pocket.ErrEmptyName) {
					skipped++
					continue
				}
				fatal(fmt.Sprintf("Failed to import group %q", g.Name), err)
			}
			idMap[g.ID] = newGroup.ID
			groups++
			created++
		}

		// Replay notes. A note whose group was not in the file keeps its
		// original group id; orphans stay orphans. Empty content is
		// dropped, not fatal, so one bad record cannot strand a half
		// applied import.
		imported := 0
		for _, n := range a.Notes {
			groupID := n.GroupID
			if mapped, ok := idMap[n.GroupID]; ok {
				groupID = mapped
			}
			if _, err := ws.AddNoteTo(ctx, groupID, n.Content); err != nil {
				if errors.Is(err, pocket.ErrEmptyContent) {
					skipped++
					continue
				}
				fatal("Failed to import note", err)
			}
			imported++
		}

		summary := fmt.Sprintf("Imported %d group(s) (%d new) and %d note(s).", groups, created, imported)
		if skipped > 0 {
			summary += fmt.Sprintf(" Skipped %d empty record(s).", skipped)
		}
		fmt.Println(summary)
	},
}

func decodeArchive(data []byte, format, filename string, a *archive) error {
	if format == "" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}

	switch strings.ToLower(format) {
	case "json":
		return json.Unmarshal(data, a)
	case "yaml", "yml":
		return yaml.Unmarshal(data, a)
	default:
		return fmt.Errorf("unknown format %q (json or yaml)", format)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Import format (json or yaml; default: by file extension)")
}
