package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/markup"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a terminal the notty style is used so output stays plain.
func NewRenderer(interactive bool) (func(string) (string, error), error) {
	style := glamour.WithStandardStyle("notty")
	if interactive {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Outline describes a layout tree as a markdown nested list.
func Outline(root *domain.Node, title string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# " + title + "\n\n")
	}

	root.Walk(func(node *domain.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- ")
		if m, ok := node.Module(); ok {
			sb.WriteString(fmt.Sprintf("**%s** `%s` (%d cells)\n", m.Label, m.ID, m.Cells()))
			return true
		}
		text, _ := node.Content()
		if text == "" {
			sb.WriteString("_" + markup.Placeholder + "_\n")
		} else {
			sb.WriteString(strings.ReplaceAll(text, "\n", " ") + "\n")
		}
		return true
	})

	sb.WriteString(fmt.Sprintf("\n%d nodes, %d cells, depth %d\n", root.Size(), len(root.Leaves()), root.Depth()))
	return sb.String()
}
