package engine

import (
	"strconv"

	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/param"
)

// FilterFunc is the opaque name predicate installed per level. Nil means no
// filter.
type FilterFunc func(name string) bool

// RowView is the display-ready projection of one child of the active level.
// SourceIndex always refers to the unfiltered child sequence: filtering
// changes which rows are visible, never how children are numbered.
type RowView struct {
	Name        string
	TypeTag     string
	Value       string
	SourceIndex int
	IsComposite bool
}

// projectRows flattens one composite level into rows, applying the filter.
// Struct children keep document order and display their key's label (or raw
// hex); list children keep positional order and display their index.
func projectRows(parent *param.Node, res *hash40.Resolver, filter FilterFunc) []RowView {
	rows := make([]RowView, 0, len(parent.Children))
	for i := range parent.Children {
		child := &parent.Children[i]
		var name string
		if parent.Kind == param.KindStruct {
			name = res.DisplayName(parent.Keys[i])
		} else {
			name = strconv.Itoa(i)
		}
		if filter != nil && !filter(name) {
			continue
		}
		rows = append(rows, RowView{
			Name:        name,
			TypeTag:     child.Kind.Tag(),
			Value:       displayValue(child, res),
			SourceIndex: i,
			IsComposite: child.IsComposite(),
		})
	}
	return rows
}

// displayValue is ValueString with label substitution for hash values.
func displayValue(n *param.Node, res *hash40.Resolver) string {
	if n.Kind == param.KindHash40 {
		return res.DisplayName(n.Hash)
	}
	return param.ValueString(n)
}
