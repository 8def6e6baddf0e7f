package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	modgraph "github.com/albertocavalcante/go-modgraph"
	"github.com/albertocavalcante/go-modgraph/analysis"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := args[0]
	logrus.WithField("root", root).Debug("analyzing workspace")

	opts := commonOptions()
	if flagInternalOnly {
		opts = append(opts, modgraph.WithInternalOnly())
	}

	g, err := modgraph.BuildDir(cmd.Context(), root, opts...)
	if err != nil {
		return err
	}
	result, err := modgraph.Analyze(g, opts...)
	if err != nil {
		return err
	}

	points := result.Points
	if flagTop > 0 {
		points = analysis.TopN(points, flagTop)
	}

	switch flagFormat {
	case "json":
		out, err := json.MarshalIndent(struct {
			Points   []analysis.PinchPointInfo `json:"points"`
			MaxDepth int                       `json:"maxDepth"`
		}{points, result.MaxDepth}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "text":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tRISK\tIMPACT\tDEPENDENTS\tDEPTH\tCYCLE")
		for _, p := range points {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\t%d\t%d\n",
				p.Name, p.Risk, p.ImpactScore, p.TransitiveDependents, p.DependencyDepth, p.CycleSize)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nmax dependency depth: %d\n", result.MaxDepth)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", flagFormat)
	}
	return nil
}
