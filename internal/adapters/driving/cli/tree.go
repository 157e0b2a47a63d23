package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// terminalWidth returns the stdout width, or 0 when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// printTree writes the containment tree below each root, one node per line.
// Lines longer than width are truncated; width 0 disables truncation. A node
// contained twice is printed once.
func printTree(w io.Writer, roots []domain.Node, width int) {
	for _, root := range roots {
		dn, ok := root.(*dynamic.Node)
		if !ok {
			fmt.Fprintln(w, truncate(root.ID(), width))
			continue
		}
		printNode(w, dn, width)
	}
}

func printNode(w io.Writer, root *dynamic.Node, width int) {
	root.WalkFeatures(func(n *dynamic.Node, featureKey string, depth int) bool {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		if featureKey != "" {
			b.WriteString(featureKey)
			b.WriteString(": ")
		}
		b.WriteString(describeNode(n))
		fmt.Fprintln(w, truncate(b.String(), width))
		return true
	})
}

// describeNode renders "id (Classifier) prop=value ref->target".
func describeNode(n *dynamic.Node) string {
	var b strings.Builder
	b.WriteString(n.ID())
	if c := n.Classifier(); c != nil {
		fmt.Fprintf(&b, " (%s)", c.DisplayName())
	}
	for _, key := range n.PropertyKeys() {
		v, _ := n.Property(key)
		fmt.Fprintf(&b, " %s=%v", key, v)
	}
	for _, key := range n.ReferenceKeys() {
		ids := make([]string, 0, len(n.References(key)))
		for _, target := range n.References(key) {
			ids = append(ids, target.ID())
		}
		fmt.Fprintf(&b, " %s->%s", key, strings.Join(ids, ","))
	}
	return b.String()
}

func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
