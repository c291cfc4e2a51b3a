package thread

import "github.com/CrestNiraj12/blogcomments/domain"

const (
	// maxIndentDepth is the deepest level that still gets extra indentation.
	maxIndentDepth = 4
	// deepThreadDepth shows the "start a new thread" hint from this depth on.
	deepThreadDepth = maxIndentDepth * 2
)

type visibleNode struct {
	Comment domain.Comment
	Depth   int
}

// flatten lists the rendered nodes in display order. Replies of collapsed
// nodes are skipped.
func flatten(tree []domain.Comment, collapsed map[string]bool) []visibleNode {
	var out []visibleNode
	domain.Walk(tree, func(c domain.Comment, depth int) bool {
		out = append(out, visibleNode{Comment: c, Depth: depth})
		return !collapsed[c.ID]
	})
	return out
}

func indentLevel(depth int) int {
	return min(depth, maxIndentDepth)
}

func (m Model) visibleNodes() []visibleNode {
	return flatten(m.tree, m.collapsed)
}

func (m Model) selectedIndex(nodes []visibleNode) int {
	if len(nodes) == 0 {
		return -1
	}
	for i, n := range nodes {
		if n.Comment.ID == m.selectedID {
			return i
		}
	}
	return 0
}

func (m Model) selectedNode() (visibleNode, bool) {
	nodes := m.visibleNodes()
	idx := m.selectedIndex(nodes)
	if idx < 0 {
		return visibleNode{}, false
	}
	return nodes[idx], true
}

func (m Model) isVisible(id string) bool {
	if id == "" {
		return false
	}
	for _, n := range m.visibleNodes() {
		if n.Comment.ID == id {
			return true
		}
	}
	return false
}

// moveSelection shifts the selection by delta and reports whether it hit the
// end of the list.
func (m *Model) moveSelection(delta int) (atEnd bool) {
	nodes := m.visibleNodes()
	if len(nodes) == 0 {
		return true
	}
	idx := m.selectedIndex(nodes) + delta
	if idx >= len(nodes)-1 {
		idx = len(nodes) - 1
		atEnd = true
	}
	if idx < 0 {
		idx = 0
	}
	m.selectedID = nodes[idx].Comment.ID
	return atEnd
}

func (m *Model) selectEdge(last bool) {
	nodes := m.visibleNodes()
	if len(nodes) == 0 {
		return
	}
	if last {
		m.selectedID = nodes[len(nodes)-1].Comment.ID
		return
	}
	m.selectedID = nodes[0].Comment.ID
}

// neighbourAfterRemoval picks what to select once id and its subtree are gone:
// the next sibling-or-later node, else the previous one.
func (m Model) neighbourAfterRemoval(id string) string {
	nodes := m.visibleNodes()
	idx := -1
	for i, n := range nodes {
		if n.Comment.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return m.selectedID
	}
	depth := nodes[idx].Depth
	for j := idx + 1; j < len(nodes); j++ {
		if nodes[j].Depth <= depth {
			return nodes[j].Comment.ID
		}
	}
	if idx > 0 {
		return nodes[idx-1].Comment.ID
	}
	return ""
}

// toggleCollapsed flips the reply visibility of id. Leaf comments stay
// expanded.
func (m *Model) toggleCollapsed(id string) {
	c, ok := domain.FindByID(m.tree, id)
	if !ok || len(c.Replies) == 0 {
		return
	}
	if m.collapsed[id] {
		delete(m.collapsed, id)
		return
	}
	m.collapsed[id] = true
}
