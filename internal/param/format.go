package param

import (
	"fmt"
	"strconv"
)

// ValueString renders the canonical textual representation of a node. For
// composites this is "(<n> children)"; hash values render as raw hex (label
// substitution is the resolver's concern, not the value model's).
func ValueString(n *Node) string {
	switch n.Kind {
	case KindBool:
		return strconv.FormatBool(n.Bool)
	case KindI8, KindU8, KindI16, KindU16, KindI32:
		return strconv.FormatInt(n.Int, 10)
	case KindU32:
		return strconv.FormatUint(uint64(n.Int), 10)
	case KindFloat:
		return strconv.FormatFloat(float64(n.Float), 'g', -1, 32)
	case KindHash40:
		return n.Hash.Hex()
	case KindStr:
		return n.Str
	case KindList, KindStruct:
		return fmt.Sprintf("(%d children)", len(n.Children))
	default:
		return ""
	}
}
