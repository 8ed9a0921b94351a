package param

import (
	"fmt"
	"math"
	"strconv"
)

// intBits gives the exact width used when parsing each integer kind. Parsing
// is type-width-exact: out-of-range input is a parse failure, never a clamp.
var intBits = map[Kind]int{
	KindI8:  8,
	KindU8:  8,
	KindI16: 16,
	KindU16: 16,
	KindI32: 32,
	KindU32: 32,
}

func isSigned(k Kind) bool {
	return k == KindI8 || k == KindI16 || k == KindI32
}

// ParseInto parses text according to the node's declared kind and stores the
// result. On failure the node is left unchanged and the returned error holds
// a human-readable message suitable for inline display.
func ParseInto(n *Node, text string) error {
	switch n.Kind {
	case KindBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%q is not a bool", text)
		}
		n.Bool = v
	case KindI8, KindI16, KindI32:
		v, err := strconv.ParseInt(text, 10, intBits[n.Kind])
		if err != nil {
			return intParseError(n.Kind, text, err)
		}
		n.Int = v
	case KindU8, KindU16, KindU32:
		v, err := strconv.ParseUint(text, 10, intBits[n.Kind])
		if err != nil {
			return intParseError(n.Kind, text, err)
		}
		n.Int = int64(v)
	case KindFloat:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return fmt.Errorf("%q is not an f32", text)
		}
		n.Float = float32(v)
	case KindStr:
		n.Str = text
	default:
		panic(fmt.Sprintf("param: ParseInto on %s node", n.Kind.Tag()))
	}
	return nil
}

func intParseError(k Kind, text string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return fmt.Errorf("%s is out of range for %s", text, k.Tag())
	}
	return fmt.Errorf("%q is not a %s", text, k.Tag())
}

// Cyclable reports whether the node supports increment/decrement shortcuts:
// bools and bounded integers cycle in place without entering edit mode.
func Cyclable(n *Node) bool {
	switch n.Kind {
	case KindBool, KindI8, KindU8, KindI16, KindU16, KindI32, KindU32:
		return true
	default:
		return false
	}
}

func intBounds(k Kind) (lo, hi int64) {
	switch k {
	case KindI8:
		return math.MinInt8, math.MaxInt8
	case KindU8:
		return 0, math.MaxUint8
	case KindI16:
		return math.MinInt16, math.MaxInt16
	case KindU16:
		return 0, math.MaxUint16
	case KindI32:
		return math.MinInt32, math.MaxInt32
	case KindU32:
		return 0, math.MaxUint32
	default:
		panic(fmt.Sprintf("param: no integer bounds for %s", k.Tag()))
	}
}

// Increment steps a cyclable node up by one, wrapping at the type's upper
// bound. Returns false for kinds that do not cycle.
func Increment(n *Node) bool {
	switch n.Kind {
	case KindBool:
		n.Bool = !n.Bool
	case KindI8, KindU8, KindI16, KindU16, KindI32, KindU32:
		lo, hi := intBounds(n.Kind)
		if n.Int >= hi {
			n.Int = lo
		} else {
			n.Int++
		}
	default:
		return false
	}
	return true
}

// Decrement steps a cyclable node down by one, wrapping at the lower bound.
func Decrement(n *Node) bool {
	switch n.Kind {
	case KindBool:
		n.Bool = !n.Bool
	case KindI8, KindU8, KindI16, KindU16, KindI32, KindU32:
		lo, hi := intBounds(n.Kind)
		if n.Int <= lo {
			n.Int = hi
		} else {
			n.Int--
		}
	default:
		return false
	}
	return true
}
