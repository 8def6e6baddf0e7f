package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	modgraph "github.com/albertocavalcante/go-modgraph"
)

// commonOptions assembles the library options shared by every subcommand.
func commonOptions() []modgraph.Option {
	opts := []modgraph.Option{
		modgraph.WithStableIDs(flagStableIDs),
		modgraph.WithExcludeDirs(flagExclude...),
	}
	if flagSubTargets {
		opts = append(opts, modgraph.WithSubTargets())
	}
	if flagHideTransient {
		opts = append(opts, modgraph.WithHideTransient())
	}
	if len(flagAugment) > 0 {
		opts = append(opts, modgraph.WithAugmentation(flagAugment...))
	}
	if l := libraryLogger(); l != nil {
		opts = append(opts, modgraph.WithLogger(l))
	}
	return opts
}

func runGraph(cmd *cobra.Command, args []string) error {
	root := args[0]
	logrus.WithField("root", root).Debug("building dependency graph")

	g, err := modgraph.BuildDir(cmd.Context(), root, commonOptions()...)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"nodes": len(g.Nodes),
		"edges": len(g.Edges),
	}).Debug("graph built")

	switch flagFormat {
	case "json":
		out, err := g.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "dot":
		fmt.Fprint(cmd.OutOrStdout(), g.ToDOT())
	case "text":
		fmt.Fprint(cmd.OutOrStdout(), g.ToText())
	default:
		return fmt.Errorf("unknown format %q (want text, json, or dot)", flagFormat)
	}
	return nil
}
