package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/param"
)

// docNode is the YAML wire form of a parameter node. Terminal nodes carry a
// value string in the node's display format; structs carry an ordered field
// sequence (duplicate keys allowed), lists carry an item sequence.
type docNode struct {
	Type   string     `yaml:"type"`
	Value  string     `yaml:"value,omitempty"`
	Items  []docNode  `yaml:"items,omitempty"`
	Fields []docField `yaml:"fields,omitempty"`
}

type docField struct {
	Key  string  `yaml:"key"`
	Node docNode `yaml:"node"`
}

// EncodeDocument renders a parameter tree as YAML. Struct keys and hash
// values are written as labels where the resolver knows one, hex literals
// otherwise, so the output stays readable alongside a label table.
func EncodeDocument(root *param.Node, res *hash40.Resolver) ([]byte, error) {
	if !root.IsComposite() {
		return nil, fmt.Errorf("document root must be a struct or list, got %s", root.Kind.Tag())
	}
	return yaml.Marshal(encodeNode(root, res))
}

// SaveDocumentFile writes a parameter tree to disk as YAML.
func SaveDocumentFile(path string, root *param.Node, res *hash40.Resolver) error {
	data, err := EncodeDocument(root, res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DecodeDocument parses a YAML document into a parameter tree. Hash-typed
// values and struct keys accept either a label (hashed on the fly) or a hex
// literal; value strings are parsed with the exact width of the declared type.
func DecodeDocument(data []byte, res *hash40.Resolver) (param.Node, error) {
	var wire docNode
	if err := yaml.Unmarshal(data, &wire); err != nil {
		return param.Node{}, fmt.Errorf("invalid YAML: %w", err)
	}
	root, err := decodeNode(&wire, res, "$")
	if err != nil {
		return param.Node{}, err
	}
	if !root.IsComposite() {
		return param.Node{}, fmt.Errorf("document root must be a struct or list, got %s", root.Kind.Tag())
	}
	return root, nil
}

// LoadDocumentFile reads and parses a YAML parameter document from disk.
func LoadDocumentFile(path string, res *hash40.Resolver) (param.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return param.Node{}, err
	}
	return DecodeDocument(data, res)
}

func encodeNode(n *param.Node, res *hash40.Resolver) docNode {
	out := docNode{Type: n.Kind.Tag()}
	switch n.Kind {
	case param.KindStruct:
		out.Fields = make([]docField, n.Len())
		for i := 0; i < n.Len(); i++ {
			out.Fields[i] = docField{
				Key:  res.DisplayName(n.KeyAt(i)),
				Node: encodeNode(n.ChildAt(i), res),
			}
		}
	case param.KindList:
		out.Items = make([]docNode, n.Len())
		for i := 0; i < n.Len(); i++ {
			out.Items[i] = encodeNode(n.ChildAt(i), res)
		}
	case param.KindHash40:
		out.Value = res.DisplayName(n.Hash)
	default:
		out.Value = param.ValueString(n)
	}
	return out
}

func decodeNode(wire *docNode, res *hash40.Resolver, path string) (param.Node, error) {
	kind, ok := param.KindForTag(wire.Type)
	if !ok {
		return param.Node{}, fmt.Errorf("%s: unknown type %q", path, wire.Type)
	}

	switch kind {
	case param.KindStruct:
		if wire.Items != nil {
			return param.Node{}, fmt.Errorf("%s: struct carries items, want fields", path)
		}
		entries := make([]param.Entry, len(wire.Fields))
		for i := range wire.Fields {
			f := &wire.Fields[i]
			r := res.Resolve(f.Key)
			if !r.Valid() {
				return param.Node{}, fmt.Errorf("%s.fields[%d]: invalid key %q", path, i, f.Key)
			}
			child, err := decodeNode(&f.Node, res, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return param.Node{}, err
			}
			entries[i] = param.Entry{Key: r.Hash, Node: child}
		}
		return param.NewStruct(entries...), nil

	case param.KindList:
		if wire.Fields != nil {
			return param.Node{}, fmt.Errorf("%s: list carries fields, want items", path)
		}
		children := make([]param.Node, len(wire.Items))
		for i := range wire.Items {
			child, err := decodeNode(&wire.Items[i], res, fmt.Sprintf("%s.items[%d]", path, i))
			if err != nil {
				return param.Node{}, err
			}
			children[i] = child
		}
		return param.NewList(children...), nil

	case param.KindHash40:
		r := res.Resolve(wire.Value)
		if !r.Valid() {
			return param.Node{}, fmt.Errorf("%s: invalid hash value %q", path, wire.Value)
		}
		return param.NewHash(r.Hash), nil

	default:
		n := param.Node{Kind: kind}
		if err := param.ParseInto(&n, wire.Value); err != nil {
			return param.Node{}, fmt.Errorf("%s: %w", path, err)
		}
		return n, nil
	}
}
