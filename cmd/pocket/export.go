package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/pocket"
)

var (
	exportFormat string
	exportOut    string
)

// archive is the export file layout. It is adapter-independent: the same
// file round-trips between fs and sqlite workspaces.
type archive struct {
	Groups []pocket.Group `json:"groups" yaml:"groups"`
	Notes  []pocket.Note  `json:"notes" yaml:"notes"`
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole workspace",
	Long: `Export every group and note as a single JSON or YAML document,
to stdout or to --out.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, _ := openWorkspace(true)
		defer ws.Close()

		data, err := encodeArchive(archive{
			Groups: ws.ListGroups(),
			Notes:  ws.ListAllNotes(),
		}, exportFormat)
		if err != nil {
			fatal("Failed to encode export", err)
		}

		if exportOut == "" {
			fmt.Print(string(data))
			return
		}
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			fatal("Failed to write export file", err)
		}
		fmt.Printf("Exported %d group(s) and %d note(s) to %s.\n",
			len(ws.ListGroups()), len(ws.ListAllNotes()), exportOut)
	},
}

func encodeArchive(a archive, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(a)
	default:
		return nil, fmt.Errorf("unknown format %q (json or yaml)", format)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json or yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
}
