package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
)

var (
	notesGroup string
	notesAll   bool
	notesJSON  bool
	notesWhere string
)

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List notes of the selected group",
	Long: `List the notes of the selected group, of an explicit group (--group),
or of the whole workspace (--all). With --where, notes are filtered by an
expression over the fields content, date, time, group and groupId:

  pocket notes --all --where 'content contains "milk"'
  pocket notes --where 'date == "23 Aug 2026"'`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, path := openWorkspace(true)
		defer ws.Close()

		var notes []pocket.Note
		switch {
		case notesAll:
			notes = ws.ListAllNotes()
		case notesGroup != "":
			g, ok := resolveGroup(ws, notesGroup)
			if !ok {
				fatal("Unknown group", fmt.Errorf("no group with id or name %q", notesGroup))
			}
			notes = ws.ListNotes(g.ID)
		default:
			id, ok := loadCursor(path)
			if !ok {
				fatal("No group selected", fmt.Errorf("run 'pocket select <group>' first, or pass --group/--all"))
			}
			notes = ws.ListNotes(id)
		}

		if notesWhere != "" {
			filtered, err := filterNotes(ws, notes, notesWhere)
			if err != nil {
				fatal("Invalid --where expression", err)
			}
			notes = filtered
		}

		if notesJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(notes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if len(notes) == 0 {
			fmt.Println("No notes.")
			return
		}

		for _, n := range notes {
			if notesAll {
				name := n.GroupID
				if g, ok := ws.GetGroup(n.GroupID); ok {
					name = g.Name
				}
				fmt.Printf("[%s] %s %s  %s\n", name, n.Date, n.Time, n.Content)
			} else {
				fmt.Printf("%s %s  %s\n", n.Date, n.Time, n.Content)
			}
		}
	},
}

// filterNotes keeps the notes for which the expression evaluates to true.
func filterNotes(ws *pocket.Workspace, notes []pocket.Note, expression string) ([]pocket.Note, error) {
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, err
	}

	var out []pocket.Note
	for _, n := range notes {
		groupName := n.GroupID
		if g, ok := ws.GetGroup(n.GroupID); ok {
			groupName = g.Name
		}
		env := map[string]any{
			"content": n.Content,
			"date":    n.Date,
			"time":    n.Time,
			"group":   groupName,
			"groupId": n.GroupID,
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return nil, err
		}
		if keep, ok := result.(bool); ok && keep {
			out = append(out, n)
		}
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.Flags().StringVarP(&notesGroup, "group", "g", "", "Group to list (id or name) instead of the selection")
	notesCmd.Flags().BoolVarP(&notesAll, "all", "a", false, "List notes of every group")
	notesCmd.Flags().BoolVar(&notesJSON, "json", false, "Output in JSON format")
	notesCmd.Flags().StringVar(&notesWhere, "where", "", "Filter expression (e.g. 'content contains \"milk\"')")
}
