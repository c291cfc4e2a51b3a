package domain

// UpdateNodeByID returns a tree in which the node matching id is replaced by
// fn(node). The input is never mutated: only the slices on the path from the
// root to the target are copied, every other subtree is shared. When no node
// matches, tree is returned as is.
func UpdateNodeByID(tree []Comment, id string, fn func(Comment) Comment) []Comment {
	out, _ := updateNode(tree, id, fn)
	return out
}

func updateNode(tree []Comment, id string, fn func(Comment) Comment) ([]Comment, bool) {
	for i, c := range tree {
		if c.ID == id {
			out := append([]Comment(nil), tree...)
			out[i] = fn(c)
			return out, true
		}
		if replies, ok := updateNode(c.Replies, id, fn); ok {
			out := append([]Comment(nil), tree...)
			c.Replies = replies
			out[i] = c
			return out, true
		}
	}
	return tree, false
}

// RemoveNodeByID returns a tree without the node matching id. The node's
// replies go with it; nothing is promoted to the parent.
func RemoveNodeByID(tree []Comment, id string) []Comment {
	out, _ := removeNode(tree, id)
	return out
}

func removeNode(tree []Comment, id string) ([]Comment, bool) {
	for i, c := range tree {
		if c.ID == id {
			out := make([]Comment, 0, len(tree)-1)
			out = append(out, tree[:i]...)
			return append(out, tree[i+1:]...), true
		}
		if replies, ok := removeNode(c.Replies, id); ok {
			out := append([]Comment(nil), tree...)
			c.Replies = replies
			out[i] = c
			return out, true
		}
	}
	return tree, false
}

// MergeByID appends the entries of incoming whose ID is not already present.
// Existing entries keep their position and content.
func MergeByID(existing, incoming []Comment) []Comment {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	out := make([]Comment, 0, len(existing)+len(incoming))
	for _, c := range existing {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	for _, c := range incoming {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// AppendReply attaches reply under parentID, skipping it if already present.
func AppendReply(tree []Comment, parentID string, reply Comment) []Comment {
	return UpdateNodeByID(tree, parentID, func(parent Comment) Comment {
		parent.Replies = MergeByID(parent.Replies, []Comment{reply})
		return parent
	})
}

// FindByID searches the whole tree.
func FindByID(tree []Comment, id string) (Comment, bool) {
	for _, c := range tree {
		if c.ID == id {
			return c, true
		}
		if found, ok := FindByID(c.Replies, id); ok {
			return found, true
		}
	}
	return Comment{}, false
}

// CountDescendants counts every reply below c.
func CountDescendants(c Comment) int {
	n := len(c.Replies)
	for _, r := range c.Replies {
		n += CountDescendants(r)
	}
	return n
}

// Walk visits nodes depth-first in display order. Returning false from fn
// skips the node's replies.
func Walk(tree []Comment, fn func(c Comment, depth int) bool) {
	walk(tree, 0, fn)
}

func walk(tree []Comment, depth int, fn func(c Comment, depth int) bool) {
	for _, c := range tree {
		if fn(c, depth) {
			walk(c.Replies, depth+1, fn)
		}
	}
}
