package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pocket",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pocket version %s\n", pocket.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
