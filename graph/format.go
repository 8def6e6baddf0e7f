package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const separatorWidth = 60 // Width of separator lines in text output

// jsonGraph is the versioned wire format consumed by renderers. The
// schema version discriminates the id discipline: consumers that cache
// or diff output must not mix versions.
type jsonGraph struct {
	SchemaVersion int     `json:"schemaVersion"`
	Nodes         []*Node `json:"nodes"`
	Edges         []Edge  `json:"edges"`
}

// ToJSON serializes the graph with sorted nodes and edges and the schema
// version matching its id discipline.
func (g *Graph) ToJSON() ([]byte, error) {
	out := jsonGraph{
		SchemaVersion: g.SchemaVersion(),
		Nodes:         g.SortedNodes(),
		Edges:         g.SortedEdges(),
	}
	return json.MarshalIndent(out, "", "  ")
}

// ToDOT outputs the graph in Graphviz DOT format. Node shape encodes
// kind, dashed style marks transient nodes, and edges touching a node
// that was filtered out are dropped.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph modules {\n")
	buf.WriteString("  rankdir=LR;\n\n")

	for _, n := range g.SortedNodes() {
		attrs := fmt.Sprintf("label=%q, shape=%s", n.Name, dotShape(n.Kind))
		if n.Transient {
			attrs += ", style=dashed"
		}
		buf.WriteString(fmt.Sprintf("  %q [%s];\n", n.ID, attrs))
	}

	buf.WriteString("\n")

	for _, e := range g.SortedEdges() {
		if !g.Contains(e.From) || !g.Contains(e.To) {
			continue
		}
		buf.WriteString(fmt.Sprintf("  %q -> %q;\n", e.From, e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotShape(k NodeKind) string {
	switch k {
	case KindContainer:
		return "folder"
	case KindSubTarget:
		return "component"
	case KindInternalModule:
		return "box"
	default:
		return "ellipse"
	}
}

// ToText outputs a human-readable summary of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString("Dependency Graph\n")
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	counts := g.CountByKind()
	buf.WriteString(fmt.Sprintf("Total nodes: %d\n", len(g.Nodes)))
	buf.WriteString(fmt.Sprintf("Containers: %d\n", counts[KindContainer]))
	if counts[KindSubTarget] > 0 {
		buf.WriteString(fmt.Sprintf("Sub-targets: %d\n", counts[KindSubTarget]))
	}
	buf.WriteString(fmt.Sprintf("Internal modules: %d\n", counts[KindInternalModule]))
	buf.WriteString(fmt.Sprintf("External modules: %d\n", counts[KindExternalModule]))
	buf.WriteString(fmt.Sprintf("Edges: %d\n\n", len(g.Edges)))

	for _, n := range g.SortedNodes() {
		marker := ""
		if n.Transient {
			marker = " (transient)"
		}
		buf.WriteString(fmt.Sprintf("%s [%s]%s\n", n.Name, n.Kind, marker))
		for _, dep := range g.DirectDependencies(n.ID) {
			buf.WriteString(fmt.Sprintf("  -> %s\n", g.Nodes[dep].Name))
		}
	}

	return buf.String()
}
