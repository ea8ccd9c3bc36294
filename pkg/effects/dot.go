package effects

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/sketchify/sketchify/pkg/params"
)

// ToDOT describes the full render path for p in Graphviz DOT format: edge
// detection, the selected style and every chain stage. Stages that do
// nothing for p are drawn dashed and grey; the view stages rerun by the
// zoom/pan fast path are grouped in their own cluster.
func ToDOT(p params.Parameters) string {
	p = p.Normalize()

	var buf bytes.Buffer
	buf.WriteString("digraph chain {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	style := string(p.Style)
	if style == "" {
		style = string(params.StyleDefault)
	}
	buf.WriteString("  source [label=\"source\", shape=oval];\n")
	buf.WriteString("  edges [label=\"grayscale + sobel\"];\n")
	fmt.Fprintf(&buf, "  style [label=%q, fillcolor=\"#e0f2f1\"];\n", "style: "+style)

	prev := "style"
	edges := []string{"source -> edges", "edges -> style"}
	writeStage := func(i int, s Stage) {
		id := fmt.Sprintf("s%d", i)
		label := s.Name + "\\n" + s.Description
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if !s.Enabled(p) {
			attrs += ", style=\"rounded,dashed\", fontcolor=grey50, color=grey50"
		}
		fmt.Fprintf(&buf, "    %s [%s];\n", id, attrs)
		edges = append(edges, prev+" -> "+id)
		prev = id
	}

	buf.WriteString("\n  subgraph cluster_pre {\n    label=\"composite\";\n    style=dashed;\n")
	for i, s := range stages[:zoomStage] {
		writeStage(i, s)
	}
	buf.WriteString("  }\n")

	buf.WriteString("\n  subgraph cluster_view {\n    label=\"view\";\n    style=dashed;\n")
	for i, s := range stages[zoomStage:] {
		writeStage(zoomStage+i, s)
	}
	buf.WriteString("  }\n\n")

	buf.WriteString("  output [label=\"composite\", shape=oval];\n")
	edges = append(edges, prev+" -> output")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %s;\n", e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT lays out a DOT graph with Graphviz. format is graphviz.SVG or
// graphviz.PNG.
func RenderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
