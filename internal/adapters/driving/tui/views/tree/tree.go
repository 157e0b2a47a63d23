// Package tree provides the node tree view of the browser.
package tree

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lionweb-cli/internal/adapters/driven/factory/dynamic"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/lionweb-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
)

// detailsHeight is the number of lines reserved below the tree.
const detailsHeight = 8

// row is one visible line of the tree.
type row struct {
	node    *dynamic.Node
	feature string
	depth   int
}

// View renders deserialized nodes as a collapsible containment tree with
// a details panel for the node under the cursor.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	roots    []*dynamic.Node
	expanded map[*dynamic.Node]bool
	rows     []row
	cursor   int
	offset   int
	width    int
	height   int
}

// NewView creates a tree view. Roots that were not built by the dynamic
// factory are skipped. Roots start expanded.
func NewView(s *styles.Styles, km *keymap.KeyMap, roots []domain.Node) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:   s,
		keymap:   km,
		expanded: make(map[*dynamic.Node]bool),
	}
	for _, r := range roots {
		if dn, ok := r.(*dynamic.Node); ok {
			v.roots = append(v.roots, dn)
			v.expanded[dn] = true
		}
	}
	v.rebuild()
	return v
}

// SetDimensions sets the area the view may draw in.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.scroll()
}

// Update handles navigation keys.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(v.rows) == 0 {
		return v, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case keymap.Matches(k, v.keymap.Top):
		v.cursor = 0
	case keymap.Matches(k, v.keymap.Bottom):
		v.cursor = len(v.rows) - 1
	case keymap.Matches(k, v.keymap.Expand):
		v.setExpanded(v.rows[v.cursor].node, true)
	case keymap.Matches(k, v.keymap.Collapse):
		v.collapse()
	case keymap.Matches(k, v.keymap.Toggle):
		n := v.rows[v.cursor].node
		v.setExpanded(n, !v.expanded[n])
	}
	v.scroll()
	return v, nil
}

// collapse closes the selected node, or moves the cursor to its parent
// when it is already closed.
func (v *View) collapse() {
	n := v.rows[v.cursor].node
	if v.expanded[n] && hasChildren(n) {
		v.setExpanded(n, false)
		return
	}
	parent := n.Parent()
	if parent == nil {
		return
	}
	for i := v.cursor - 1; i >= 0; i-- {
		if v.rows[i].node == parent {
			v.cursor = i
			return
		}
	}
}

func (v *View) setExpanded(n *dynamic.Node, open bool) {
	if !hasChildren(n) {
		return
	}
	v.expanded[n] = open
	v.rebuild()
}

// rebuild recomputes the visible rows, keeping the cursor on the same node
// when it is still visible.
func (v *View) rebuild() {
	var selected *dynamic.Node
	if v.cursor < len(v.rows) {
		selected = v.rows[v.cursor].node
	}

	v.rows = v.rows[:0]
	for _, root := range v.roots {
		v.appendRows(root)
	}

	v.cursor = 0
	for i, r := range v.rows {
		if r.node == selected {
			v.cursor = i
			break
		}
	}
}

// appendRows adds root and its expanded descendants. A node contained
// twice gets one row.
func (v *View) appendRows(root *dynamic.Node) {
	root.WalkFeatures(func(n *dynamic.Node, feature string, depth int) bool {
		v.rows = append(v.rows, row{node: n, feature: feature, depth: depth})
		return v.expanded[n]
	})
}

// treeHeight is the number of rows that fit above the details panel, or
// all rows before the first resize.
func (v *View) treeHeight() int {
	if v.height == 0 {
		return len(v.rows)
	}
	h := v.height - detailsHeight
	if h < 1 {
		h = 1
	}
	return h
}

// scroll keeps the cursor inside the visible window.
func (v *View) scroll() {
	h := v.treeHeight()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+h {
		v.offset = v.cursor - h + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// View renders the tree and the details panel.
func (v *View) View() string {
	if len(v.rows) == 0 {
		return v.styles.Muted.Render("No nodes to show.")
	}

	var b strings.Builder
	end := v.offset + v.treeHeight()
	if end > len(v.rows) {
		end = len(v.rows)
	}
	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderRow(i))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Details.Render(v.details()))
	return b.String()
}

func (v *View) renderRow(i int) string {
	r := v.rows[i]

	marker := "·"
	if hasChildren(r.node) {
		marker = "▸"
		if v.expanded[r.node] {
			marker = "▾"
		}
	}

	label := r.node.ID()
	if r.feature != "" {
		label = r.feature + ": " + label
	}
	line := strings.Repeat("  ", r.depth) + marker + " " + label

	if i == v.cursor {
		return v.styles.Selected.Render(line)
	}
	return v.styles.Normal.Render(line) + " " + v.styles.Muted.Render(classifierName(r.node))
}

// details describes the selected node's classifier, properties and
// references.
func (v *View) details() string {
	n := v.Selected()
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(n.ID()))
	if c := n.Classifier(); c != nil {
		fmt.Fprintf(&b, " %s", v.styles.Muted.Render(fmt.Sprintf("%s (%s@%s)", c.DisplayName(), c.Language.Key, c.Language.Version)))
	}

	for _, key := range n.PropertyKeys() {
		val, _ := n.Property(key)
		fmt.Fprintf(&b, "\n%s = %v", v.styles.Feature.Render(key), val)
	}
	for _, key := range n.ReferenceKeys() {
		ids := make([]string, 0, len(n.References(key)))
		for _, target := range n.References(key) {
			ids = append(ids, target.ID())
		}
		fmt.Fprintf(&b, "\n%s -> %s", v.styles.Feature.Render(key), v.styles.Link.Render(strings.Join(ids, ", ")))
	}
	return b.String()
}

// Selected returns the node under the cursor, nil if there are no rows.
func (v *View) Selected() *dynamic.Node {
	if len(v.rows) == 0 {
		return nil
	}
	return v.rows[v.cursor].node
}

// Cursor returns the zero-based row of the cursor.
func (v *View) Cursor() int {
	return v.cursor
}

// Rows returns the number of visible rows.
func (v *View) Rows() int {
	return len(v.rows)
}

// Path describes the selected node's location, e.g. "lib1 / books: b1".
func (v *View) Path() string {
	if len(v.rows) == 0 {
		return ""
	}

	var parts []string
	for i, depth := v.cursor, v.rows[v.cursor].depth; i >= 0 && depth >= 0; i-- {
		r := v.rows[i]
		if r.depth != depth {
			continue
		}
		part := r.node.ID()
		if r.feature != "" {
			part = r.feature + ": " + part
		}
		parts = append([]string{part}, parts...)
		depth--
	}
	return strings.Join(parts, " / ")
}

func hasChildren(n *dynamic.Node) bool {
	return len(n.ContainmentKeys()) > 0
}

func classifierName(n *dynamic.Node) string {
	if c := n.Classifier(); c != nil {
		return c.DisplayName()
	}
	return ""
}
