package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
	"github.com/aretw0/pocket/internal/platform"
	"github.com/aretw0/pocket/pkg/adapters/fs"
)

var initVersioned bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a pocket workspace",
	Long: `Initialize a new Pocket workspace in the current directory (or --dir).
With --versioned, slot writes are additionally committed to a local git repository.
Explicit --adapter and --versioned choices are persisted to the workspace config
so later invocations agree without flags.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := workDir
		if path == "" {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			path = cwd
		}

		opts := append(baseOptions(), pocket.WithAutoInit(true))
		if initVersioned {
			opts = append(opts, pocket.WithVersioning(true))
		}

		ws, err := pocket.Open(path, opts...)
		if err != nil {
			fatal("Failed to initialize workspace", err)
		}
		defer ws.Close()

		// Remember non-default choices for future runs
		if adapter != "" || initVersioned {
			cfg := &platform.Config{Adapter: adapter}
			if initVersioned {
				versioned := true
				cfg.Versioned = &versioned
			}
			cfgPath := filepath.Join(path, fs.DefaultSystemDir, platform.ConfigFileName)
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
				fatal("Failed to create system directory", err)
			}
			if err := platform.SaveConfig(cfgPath, cfg); err != nil {
				fatal("Failed to write workspace config", err)
			}
		}

		fmt.Println("Initialized empty Pocket workspace in", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initVersioned, "versioned", false, "Keep git-backed history of slot writes")
}
