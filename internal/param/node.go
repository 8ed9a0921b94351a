// Package param defines the value model for parameter documents: a closed
// tagged union of scalar and aggregate node kinds, with pure classification,
// formatting, and parsing helpers over it.
package param

import (
	"fmt"

	"github.com/oakwood-commons/prcx/internal/hash40"
)

// Kind discriminates the Node union. The set is fixed; every site that needs
// kind-specific behavior switches over it exhaustively.
type Kind int

const (
	// KindInvalid is the zero value. It never appears in a well-formed
	// document; it is the placeholder left in a parent slot while a child
	// level owns the payload taken from it.
	KindInvalid Kind = iota
	KindBool
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindFloat
	KindHash40
	KindStr
	KindList
	KindStruct
)

var kindTags = map[Kind]string{
	KindBool:   "bool",
	KindI8:     "i8",
	KindU8:     "u8",
	KindI16:    "i16",
	KindU16:    "u16",
	KindI32:    "i32",
	KindU32:    "u32",
	KindFloat:  "f32",
	KindHash40: "hash40",
	KindStr:    "string",
	KindList:   "list",
	KindStruct: "struct",
}

// Tag returns the canonical type tag for the kind.
func (k Kind) Tag() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "invalid"
}

// KindForTag is the inverse of Tag. ok is false for unknown tags.
func KindForTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return KindInvalid, false
}

// Node is a parameter value. Exactly the fields relevant to Kind are
// meaningful; the rest stay zero. A composite node exclusively owns its
// children: the document is a single tree, no back-edges, no sharing.
type Node struct {
	Kind Kind

	Bool  bool
	Int   int64 // all integer kinds; unsigned kinds use the non-negative range
	Float float32
	Hash  hash40.Hash40
	Str   string

	// Keys holds struct child keys, parallel to Children. Keys need not be
	// unique; pairs are 1:1 by position. Nil for lists.
	Keys     []hash40.Hash40
	Children []Node
}

// Constructors for each variant keep call sites terse, tests in particular.

func NewBool(v bool) Node { return Node{Kind: KindBool, Bool: v} }
func NewI8(v int8) Node { return Node{Kind: KindI8, Int: int64(v)} }
func NewU8(v uint8) Node { return Node{Kind: KindU8, Int: int64(v)} }
func NewI16(v int16) Node { return Node{Kind: KindI16, Int: int64(v)} }
func NewU16(v uint16) Node { return Node{Kind: KindU16, Int: int64(v)} }
func NewI32(v int32) Node { return Node{Kind: KindI32, Int: int64(v)} }
func NewU32(v uint32) Node { return Node{Kind: KindU32, Int: int64(v)} }
func NewFloat(v float32) Node { return Node{Kind: KindFloat, Float: v} }
func NewHash(h hash40.Hash40) Node { return Node{Kind: KindHash40, Hash: h} }
func NewStr(s string) Node { return Node{Kind: KindStr, Str: s} }
func NewList(children ...Node) Node { return Node{Kind: KindList, Children: children} }

// Entry is a struct child: a keyed node.
type Entry struct {
	Key  hash40.Hash40
	Node Node
}

// NewStruct builds a struct node from ordered entries.
func NewStruct(entries ...Entry) Node {
	n := Node{Kind: KindStruct}
	for _, e := range entries {
		n.Keys = append(n.Keys, e.Key)
		n.Children = append(n.Children, e.Node)
	}
	return n
}

// IsComposite reports whether the node is navigable (has children).
func (n *Node) IsComposite() bool {
	return n.Kind == KindList || n.Kind == KindStruct
}

// Len returns the child count of a composite. Panics on terminals: indexing
// a terminal indicates a caller bug, never well-formed input routing.
func (n *Node) Len() int {
	n.mustComposite("Len")
	return len(n.Children)
}

// ChildAt returns a pointer to the i-th child of a composite.
func (n *Node) ChildAt(i int) *Node {
	n.mustComposite("ChildAt")
	n.mustIndex(i)
	return &n.Children[i]
}

// KeyAt returns the struct key of the i-th child. Panics on lists.
func (n *Node) KeyAt(i int) hash40.Hash40 {
	if n.Kind != KindStruct {
		panic(fmt.Sprintf("param: KeyAt on %s node", n.Kind.Tag()))
	}
	n.mustIndex(i)
	return n.Keys[i]
}

// Take moves the i-th child out of the node, leaving the KindInvalid
// placeholder in its slot. The caller owns the returned payload until it is
// put back with Put; the placeholder must never be observed by readers.
func (n *Node) Take(i int) Node {
	n.mustComposite("Take")
	n.mustIndex(i)
	child := n.Children[i]
	n.Children[i] = Node{}
	return child
}

// Put returns a payload taken with Take to the same slot.
func (n *Node) Put(i int, child Node) {
	n.mustComposite("Put")
	n.mustIndex(i)
	n.Children[i] = child
}

// Clone deep-copies the subtree rooted at n.
func (n Node) Clone() Node {
	out := n
	if n.Keys != nil {
		out.Keys = append([]hash40.Hash40(nil), n.Keys...)
	}
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

func (n *Node) mustComposite(op string) {
	if !n.IsComposite() {
		panic(fmt.Sprintf("param: %s on non-composite %s node", op, n.Kind.Tag()))
	}
}

func (n *Node) mustIndex(i int) {
	if i < 0 || i >= len(n.Children) {
		panic(fmt.Sprintf("param: child index %d out of range [0,%d)", i, len(n.Children)))
	}
}
