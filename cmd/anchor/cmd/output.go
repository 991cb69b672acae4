package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/scene"
)

// styles renders CLI output for one writer.
type styles struct {
	title  lipgloss.Style
	note   lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
	hit    lipgloss.Style
}

func newStyles(w io.Writer, color bool) *styles {
	r := lipgloss.NewRenderer(w)
	if !color || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return &styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		note:   r.NewStyle().Foreground(lipgloss.Color("243")),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		dim:    r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("243")),
		border: r.NewStyle().Foreground(lipgloss.Color("240")),
		hit:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

// layoutTable renders one row per element in draw order. Hidden elements are
// dimmed.
func (s *styles) layoutTable(entries []scene.Entry) string {
	hidden := make(map[int]bool)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("ELEMENT", "KIND", "#", "BOUNDS", "CLIP", "FLAGS").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case hidden[row]:
				return s.dim
			default:
				return s.cell
			}
		})
	for i, e := range entries {
		hidden[i] = !e.Visible
		t.Row(
			strings.Repeat("  ", e.Depth)+e.Name,
			e.Kind,
			fmt.Sprint(e.RenderIndex),
			formatRect(e.Bounds),
			formatClip(e.Clip),
			formatFlags(e),
		)
	}
	return t.Render()
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.W, r.H)
}

func formatClip(r geometry.Rect) string {
	if r == geometry.Unbounded() {
		return "unbounded"
	}
	return formatRect(r)
}

func formatFlags(e scene.Entry) string {
	var flags []string
	if e.Solid {
		flags = append(flags, "solid")
	}
	if !e.Visible {
		flags = append(flags, "hidden")
	}
	if e.Focused {
		flags = append(flags, "focused")
	}
	return strings.Join(flags, " ")
}
