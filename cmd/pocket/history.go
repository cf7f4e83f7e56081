package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded slot changes",
	Long: `Show the recorded change history, newest first. Requires a workspace
initialized with --versioned (or an existing git repository).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, _ := openWorkspace(true)
		defer ws.Close()

		entries, err := ws.History(context.Background(), historyLimit)
		if err != nil {
			fatal("Failed to read history", err)
		}

		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return
		}
		for _, entry := range entries {
			fmt.Println(entry)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of entries")
}
