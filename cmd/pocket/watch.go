package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream workspace events",
	Long: `Stream workspace events as they happen: slot changes made by other
processes, and the reloads they trigger. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ws, _ := openWorkspace(true)
		defer ws.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := ws.Watch(ctx)
		if err != nil {
			fatal("Failed to watch workspace", err)
		}

		fmt.Println("Watching for changes (Ctrl-C to stop)...")
		for e := range events {
			ts := time.Unix(e.Timestamp, 0).Format("15:04:05")
			fmt.Printf("%s  %-16s %s\n", ts, e.Type, e.ID)
		}
		fmt.Println("Watch stopped.")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
