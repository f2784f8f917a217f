// Package keymap implements prefix-trie keymaps: paths of chords
// mapping to command names.
package keymap

import (
	"sort"

	"github.com/dshills/keychord/key"
)

// MatchResult classifies a sequence lookup.
type MatchResult uint8

const (
	// MatchInvalid means no binding starts with the sequence.
	MatchInvalid MatchResult = iota

	// MatchIncomplete means the sequence is a strict prefix of at
	// least one binding.
	MatchIncomplete

	// MatchBound means the sequence exactly names a bound command.
	MatchBound
)

// node is either a branch (children non-nil) or a leaf holding a
// command name, never both.
type node struct {
	children map[key.Chord]*node
	command  string
}

func newBranch() *node {
	return &node{children: make(map[key.Chord]*node)}
}

func (n *node) isLeaf() bool {
	return n.children == nil
}

func (n *node) clone() *node {
	if n.isLeaf() {
		return &node{command: n.command}
	}
	c := newBranch()
	for chord, child := range n.children {
		c.children[chord] = child.clone()
	}
	return c
}

// Map is a prefix trie from key sequences to command names.
type Map struct {
	root *node
}

// New creates an empty keymap.
func New() *Map {
	return &Map{root: newBranch()}
}

// Insert binds seq to a command name. Leaf nodes along the path are
// overwritten with branches, and inserting at a node that already
// holds children replaces that subtree, so a binding and its strict
// prefix never coexist. Inserting an empty sequence is a no-op.
func (m *Map) Insert(seq *key.Sequence, command string) {
	if seq.Len() == 0 {
		return
	}

	cur := m.root
	for i := 0; i < seq.Len()-1; i++ {
		chord := seq.At(i)
		child, ok := cur.children[chord]
		if !ok || child.isLeaf() {
			child = newBranch()
			cur.children[chord] = child
		}
		cur = child
	}
	cur.children[seq.At(seq.Len()-1)] = &node{command: command}
}

// Remove deletes the binding for seq and prunes branches that become
// empty, bottom-up. It returns false if seq is not a complete binding.
func (m *Map) Remove(seq *key.Sequence) bool {
	if seq.Len() == 0 {
		return false
	}

	// Walk down, remembering the branch path for pruning.
	path := make([]*node, 0, seq.Len())
	cur := m.root
	for i := 0; i < seq.Len()-1; i++ {
		path = append(path, cur)
		child, ok := cur.children[seq.At(i)]
		if !ok || child.isLeaf() {
			return false
		}
		cur = child
	}

	last := seq.At(seq.Len() - 1)
	leaf, ok := cur.children[last]
	if !ok || !leaf.isLeaf() {
		return false
	}
	delete(cur.children, last)

	// Prune empty branches from the leaf's parent back to the root.
	for i := len(path) - 1; i >= 0; i-- {
		if len(cur.children) != 0 {
			break
		}
		delete(path[i].children, seq.At(i))
		cur = path[i]
	}
	return true
}

// Match walks the trie along seq. It returns the bound command name
// and MatchBound on an exact hit, MatchIncomplete if seq is a strict
// prefix of at least one binding, and MatchInvalid otherwise. The walk
// visits at most seq.Len() nodes.
func (m *Map) Match(seq *key.Sequence) (string, MatchResult) {
	cur := m.root
	for i := 0; i < seq.Len(); i++ {
		if cur.isLeaf() {
			return "", MatchInvalid
		}
		child, ok := cur.children[seq.At(i)]
		if !ok {
			return "", MatchInvalid
		}
		cur = child
	}
	if cur.isLeaf() {
		return cur.command, MatchBound
	}
	return "", MatchIncomplete
}

// Clone returns a deep copy sharing no nodes with m. Local keymaps are
// seeded as clones of the global map, so later global changes do not
// leak into them.
func (m *Map) Clone() *Map {
	return &Map{root: m.root.clone()}
}

// Binding is one complete sequence-to-command entry.
type Binding struct {
	Seq     *key.Sequence
	Command string
}

// Bindings enumerates all complete bindings, sorted by sequence text.
func (m *Map) Bindings() []Binding {
	var out []Binding
	var walk func(n *node, prefix []key.Chord)
	walk = func(n *node, prefix []key.Chord) {
		if n.isLeaf() {
			out = append(out, Binding{Seq: key.FromChords(prefix...), Command: n.command})
			return
		}
		for chord, child := range n.children {
			walk(child, append(prefix, chord))
		}
	}
	walk(m.root, nil)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Seq.String() < out[j].Seq.String()
	})
	return out
}

// Len returns the number of complete bindings.
func (m *Map) Len() int {
	return len(m.Bindings())
}
