// Package markup renders a layout tree as nested flex-box HTML.
package markup

import (
	"fmt"
	"html"
	"strings"

	"github.com/aretw0/tessera/pkg/domain"
)

// Placeholder is emitted for leaves without content.
const Placeholder = "Empty cell"

const (
	leafStyle      = "display: flex; flex: 1; border: 1px solid #ccc; padding: 4px;"
	containerStyle = "display: flex; flex-direction: %s; flex: 1;"
	indentUnit     = "  "
)

// Direction returns the flex direction used for a container with the given
// number of children: "column" when there are more than two, "row" otherwise.
//
// The live child count decides, not the module shape, so a 1x3 and a 3x1
// container export identically.
func Direction(childCount int) string {
	if childCount > 2 {
		return "column"
	}
	return "row"
}

// Render serializes the subtree rooted at node. It has no side effects and
// the output does not depend on node IDs: identical trees render
// byte-identically.
func Render(node *domain.Node) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	render(&sb, node, 0)
	return sb.String()
}

func render(sb *strings.Builder, node *domain.Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	if node.IsLeaf() {
		text, _ := node.Content()
		if text == "" {
			text = Placeholder
		}
		fmt.Fprintf(sb, "%s<div style=\"%s\">%s</div>\n", indent, leafStyle, html.EscapeString(text))
		return
	}

	children := node.Children()
	fmt.Fprintf(sb, "%s<div style=\""+containerStyle+"\">\n", indent, Direction(len(children)))
	for _, child := range children {
		render(sb, child, depth+1)
	}
	fmt.Fprintf(sb, "%s</div>\n", indent)
}

// Document wraps Render in a standalone HTML page.
func Document(node *domain.Node, title string) string {
	return Page(Render(node), title)
}

// Page wraps an already rendered fragment in a standalone HTML page.
func Page(fragment, title string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	sb.WriteString("<style>html, body { height: 100%; margin: 0; } body { display: flex; }</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(fragment)
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
