package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/markup"
)

// GraphOverlay contains editor state to highlight on the outline.
type GraphOverlay struct {
	// Focus is the node under the cursor, if any.
	Focus domain.NodeID
}

// GenerateMermaid produces a Mermaid flowchart of a layout tree.
// It applies semantic styling:
// - Container: [[Subroutine]] labelled with its module
// - Filled leaf: [Rectangle] labelled with its text
// - Empty leaf: [/Parallelogram/], the only shape that accepts a drop
//
// Mermaid IDs are derived from the child path ("n", "n_0", "n_0_2") so the
// output is stable for a given tree shape.
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var empty []string
	focus := ""
	var visit func(node *domain.Node, safeID string)
	visit = func(node *domain.Node, safeID string) {
		if overlay != nil && overlay.Focus != "" && node.ID() == overlay.Focus {
			focus = safeID
		}

		if !node.IsLeaf() {
			m, _ := node.Module()
			sb.WriteString(fmt.Sprintf("    %s[[\"%s %s\"]]\n", safeID, m.ID, escapeLabel(m.Label)))
			for i, child := range node.Children() {
				childID := safeID + "_" + strconv.Itoa(i)
				row, col := i/m.Cols, i%m.Cols
				sb.WriteString(fmt.Sprintf("    %s -- \"%d,%d\" --> %s\n", safeID, row, col, childID))
				visit(child, childID)
			}
			return
		}

		text, _ := node.Content()
		if text == "" {
			empty = append(empty, safeID)
			sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", safeID, markup.Placeholder))
			return
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeID, escapeLabel(text)))
	}
	visit(root, "n")

	if len(empty) > 0 || focus != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef empty fill:#f5f5f5,stroke:#9e9e9e,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range empty {
			sb.WriteString(fmt.Sprintf("    class %s empty;\n", id))
		}
		if focus != "" {
			sb.WriteString(fmt.Sprintf("    class %s focus;\n", focus))
		}
	}

	return sb.String()
}

// escapeLabel keeps user text from breaking out of a quoted Mermaid label.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
