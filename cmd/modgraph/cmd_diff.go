package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	modgraph "github.com/albertocavalcante/go-modgraph"
)

func runDiff(cmd *cobra.Command, args []string) error {
	fromRoot, toRoot := args[0], args[1]
	logrus.WithFields(logrus.Fields{"from": fromRoot, "to": toRoot}).Debug("diffing workspaces")

	d, err := modgraph.DiffDirs(cmd.Context(), fromRoot, toRoot, commonOptions()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if d.IsEmpty() {
		fmt.Fprintln(out, "no changes")
		return nil
	}

	for _, id := range d.AddedNodes {
		fmt.Fprintf(out, "+ node %s\n", id)
	}
	for _, id := range d.RemovedNodes {
		fmt.Fprintf(out, "- node %s\n", id)
	}
	for _, key := range d.AddedEdges {
		fmt.Fprintf(out, "+ edge %s\n", key)
	}
	for _, key := range d.RemovedEdges {
		fmt.Fprintf(out, "- edge %s\n", key)
	}
	fmt.Fprintf(out, "%d changes\n", d.TotalChanges())
	return nil
}
