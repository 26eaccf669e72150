package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Options configures DOT output.
type Options struct {
	// Costs adds g, h and f below the id in each node label.
	Costs bool
	// Weights labels every edge with its weight.
	Weights bool
	// Scale multiplies lattice coordinates into Graphviz inches.
	Scale float64
}

// DefaultOptions labels edges and uses one inch per lattice unit.
func DefaultOptions() Options {
	return Options{Weights: true, Scale: 1}
}

// fill colours per class, matching the terminal palette in text.go.
var fills = map[Class]string{
	Plain:    "white",
	Open:     "\"#9ecae1\"",
	Closed:   "\"#bdbdbd\"",
	Disabled: "black",
	Current:  "\"#fdae6b\"",
	Path:     "\"#fd8d3c\"",
	Start:    "\"#31a354\"",
	Target:   "\"#de2d26\"",
}

// ToDOT converts the engine state to an undirected Graphviz graph. Nodes are
// pinned (pos="x,y!") so row 0 is drawn at the top; render it with neato.
func ToDOT(src Source, opts Options) string {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	g := src.Graph()
	classes := Classify(src)
	views := src.Nodes()

	maxY := 0.0
	for _, v := range views {
		maxY = math.Max(maxY, v.Pos.Y)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.6, fontsize=10];\n")
	buf.WriteString("  edge [fontsize=8, color=\"#969696\"];\n")
	buf.WriteString("\n")

	for i, v := range views {
		c := classes[i]
		label := fmt.Sprint(v.ID)
		if opts.Costs && v.G < math.Inf(1) {
			label = fmt.Sprintf("%d\\ng=%g\\nh=%.3g", v.ID, v.G, v.H)
		}
		attrs := []string{
			fmt.Sprintf("label=\"%s\"", label),
			fmt.Sprintf("pos=\"%g,%g!\"", v.Pos.X*opts.Scale, (maxY-v.Pos.Y)*opts.Scale),
			"fillcolor=" + fills[c],
			fmt.Sprintf("class=%q", c),
		}
		if c == Disabled {
			attrs = append(attrs, "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	onPath := pathEdges(src.PathIDs())
	for _, e := range g.Edges() {
		var attrs []string
		if opts.Weights {
			attrs = append(attrs, fmt.Sprintf("label=\"%g\"", e.Weight))
		}
		if onPath[edgeKey(e.From, e.To)] {
			attrs = append(attrs, "color=\"#fd8d3c\"", "penwidth=3")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

func pathEdges(path []int) map[[2]int]bool {
	out := make(map[[2]int]bool, len(path))
	for i := 1; i < len(path); i++ {
		out[edgeKey(path[i-1], path[i])] = true
	}
	return out
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
