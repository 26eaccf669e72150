package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorOpen    = lipgloss.Color("75")  // light blue
	colorClosed  = lipgloss.Color("245") // gray
	colorCurrent = lipgloss.Color("215") // light orange
	colorPath    = lipgloss.Color("208") // orange
	colorStart   = lipgloss.Color("35")  // green
	colorTarget  = lipgloss.Color("167") // soft red
	colorDim     = lipgloss.Color("240")
)

var cellStyles = map[Class]lipgloss.Style{
	Plain:    lipgloss.NewStyle().Foreground(colorDim),
	Open:     lipgloss.NewStyle().Foreground(colorOpen),
	Closed:   lipgloss.NewStyle().Foreground(colorClosed),
	Disabled: lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true),
	Current:  lipgloss.NewStyle().Bold(true).Foreground(colorCurrent),
	Path:     lipgloss.NewStyle().Bold(true).Foreground(colorPath),
	Start:    lipgloss.NewStyle().Bold(true).Foreground(colorStart),
	Target:   lipgloss.NewStyle().Bold(true).Foreground(colorTarget),
}

// Glyphs are the one-character cell markers used when ids are not shown.
var Glyphs = map[Class]string{
	Plain:    "·",
	Open:     "o",
	Closed:   "x",
	Disabled: "#",
	Current:  "@",
	Path:     "*",
	Start:    "S",
	Target:   "T",
}

var legendOrder = []Class{Start, Target, Path, Current, Open, Closed, Disabled, Plain}

// TextOptions configures Text.
type TextOptions struct {
	// IDs prints node ids instead of glyphs.
	IDs bool
	// Legend appends a key line below the grid.
	Legend bool
}

// Text draws the lattice row by row. Styling is applied through lipgloss and
// collapses to plain text when the output is not a terminal.
func Text(src Source, opts TextOptions) string {
	g := src.Graph()
	rows, cols := g.Dims()
	classes := Classify(src)

	width := 1
	if opts.IDs {
		width = len(fmt.Sprint(g.Len()))
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id, _ := g.ID(r, c)
			cls := classes[id-1]
			cell := Glyphs[cls]
			if opts.IDs {
				cell = fmt.Sprintf("%*d", width, id)
			}
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cellStyles[cls].Render(cell))
		}
		b.WriteByte('\n')
	}

	if opts.Legend {
		parts := make([]string, 0, len(legendOrder))
		for _, cls := range legendOrder {
			parts = append(parts, cellStyles[cls].Render(Glyphs[cls]+" "+cls.String()))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteByte('\n')
	}
	return b.String()
}
