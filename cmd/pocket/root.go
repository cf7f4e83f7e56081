package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/pocket"
)

var (
	verbose   bool
	workDir   string
	adapter   string
	noHistory bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pocket",
	Short: "A local-first organizer for color-coded groups of notes",
	Long: `Pocket keeps groups of timestamped notes as plain JSON slots on disk.
Every change is persisted before it is acknowledged, optionally with git-backed history.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", "", "Workspace directory (default: nearest root above cwd)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (fs, sqlite, memory)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Disable git-backed history")
}

// workspaceDir resolves the target workspace: --dir when given, otherwise
// the nearest workspace root above the current directory, otherwise the
// current directory itself.
func workspaceDir() string {
	if workDir != "" {
		return workDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	if root, err := pocket.FindWorkspaceRoot(cwd); err == nil {
		return root
	}
	return cwd
}

// baseOptions translates the persistent flags into workspace options.
func baseOptions() []pocket.Option {
	opts := []pocket.Option{
		pocket.WithLogger(slog.Default()),
	}
	if adapter != "" {
		opts = append(opts, pocket.WithAdapter(adapter))
	}
	if noHistory {
		opts = append(opts, pocket.WithVersioning(false))
	}
	return opts
}

// openWorkspace opens the target workspace for a subcommand. Commands that
// operate on existing data pass mustExist to fail early on a missing
// workspace instead of creating one as a side effect.
func openWorkspace(mustExist bool, extra ...pocket.Option) (*pocket.Workspace, string) {
	path := workspaceDir()

	opts := baseOptions()
	if mustExist {
		opts = append(opts, pocket.WithMustExist(true))
	}
	opts = append(opts, extra...)

	ws, err := pocket.Open(path, opts...)
	if err != nil {
		fatal("Failed to open workspace", err)
	}
	return ws, path
}
