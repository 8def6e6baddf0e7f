package main

import (
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagSubTargets    bool
	flagHideTransient bool
	flagStableIDs     bool
	flagInternalOnly  bool
	flagVerbose       bool
	flagFormat        string
	flagTop           int
	flagExclude       []string
	flagAugment       []string

	rootCmd = &cobra.Command{
		Use:   "modgraph",
		Short: "Build and analyze dependency graphs of Bazel-style workspaces",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	graphCmd = &cobra.Command{
		Use:   "graph <root>",
		Short: "Build the dependency graph of a workspace and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  runGraph, // defined in cmd_graph.go
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze <root>",
		Short: "Find pinch points: modules whose failure ripples furthest",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze, // defined in cmd_analyze.go
	}

	diffCmd = &cobra.Command{
		Use:   "diff <root-a> <root-b>",
		Short: "Compare the dependency graphs of two workspace checkouts",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiff, // defined in cmd_diff.go
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&flagSubTargets, "subtargets", false, "expand build-file targets into graph nodes")
	pf.BoolVar(&flagHideTransient, "hide-transient", false, "drop transitively discovered modules from output")
	pf.BoolVar(&flagStableIDs, "stable-ids", true, "derive node ids from workspace-relative paths")
	pf.StringSliceVar(&flagExclude, "exclude", nil, "directory name patterns to skip while scanning")
	pf.StringSliceVar(&flagAugment, "augment", nil, "command run per local module to resolve its real dependency tree")

	graphCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "output format: text, json, or dot")

	analyzeCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "output format: text or json")
	analyzeCmd.Flags().IntVar(&flagTop, "top", 10, "number of pinch points to show (0 for all)")
	analyzeCmd.Flags().BoolVar(&flagInternalOnly, "internal-only", false, "only score modules owned by the workspace")

	rootCmd.AddCommand(graphCmd, analyzeCmd, diffCmd)
}

// libraryLogger bridges --verbose to the library's slog-based diagnostics.
func libraryLogger() *slog.Logger {
	if !flagVerbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
