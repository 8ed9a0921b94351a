package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/prcx/internal/hash40"
)

func TestKindTags(t *testing.T) {
	tags := map[Kind]string{
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
	for kind, tag := range tags {
		assert.Equal(t, tag, kind.Tag())
		back, ok := KindForTag(tag)
		require.True(t, ok, tag)
		assert.Equal(t, kind, back)
	}
	_, ok := KindForTag("quaternion")
	assert.False(t, ok)
}

func TestClassification(t *testing.T) {
	list := NewList(NewBool(true))
	str := NewStruct(Entry{Key: hash40.FromLabel("x"), Node: NewU8(1)})
	scalar := NewI32(-5)

	assert.True(t, list.IsComposite())
	assert.True(t, str.IsComposite())
	assert.False(t, scalar.IsComposite())
}

func TestValueString(t *testing.T) {
	cases := []struct {
		node Node
		want string
	}{
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewI8(-128), "-128"},
		{NewU8(255), "255"},
		{NewI16(-300), "-300"},
		{NewU16(65535), "65535"},
		{NewI32(-70000), "-70000"},
		{NewU32(4294967295), "4294967295"},
		{NewFloat(1.5), "1.5"},
		{NewStr("mario"), "mario"},
		{NewList(NewBool(true), NewBool(false)), "(2 children)"},
		{NewStruct(), "(0 children)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValueString(&tc.node))
	}
}

func TestHashValueStringIsHex(t *testing.T) {
	n := NewHash(hash40.Hash40(0x05ba7e3b96))
	assert.Equal(t, "0x05ba7e3b96", ValueString(&n))
}

func TestParseRoundTripInRange(t *testing.T) {
	nodes := []Node{
		NewBool(true),
		NewI8(-128), NewI8(127),
		NewU8(0), NewU8(255),
		NewI16(-32768), NewI16(32767),
		NewU16(65535),
		NewI32(-2147483648), NewI32(2147483647),
		NewU32(4294967295),
		NewFloat(0.25), NewFloat(-123.75),
		NewStr("fighter_kind_mario"),
	}
	for _, orig := range nodes {
		n := Node{Kind: orig.Kind}
		require.NoError(t, ParseInto(&n, ValueString(&orig)), orig.Kind.Tag())
		assert.Equal(t, orig, n, orig.Kind.Tag())
	}
}

func TestParseFailuresLeaveNodeUnchanged(t *testing.T) {
	cases := []struct {
		node Node
		text string
	}{
		{NewU8(7), "256"},
		{NewU8(7), "-1"},
		{NewI8(7), "128"},
		{NewI16(7), "40000"},
		{NewU16(7), "65536"},
		{NewI32(7), "2147483648"},
		{NewU32(7), "4294967296"},
		{NewU32(7), "banana"},
		{NewFloat(1), "fast"},
		{NewBool(true), "maybe"},
	}
	for _, tc := range cases {
		before := tc.node
		err := ParseInto(&tc.node, tc.text)
		require.Error(t, err, "%s <- %q", tc.node.Kind.Tag(), tc.text)
		assert.Equal(t, before, tc.node)
	}
}

func TestParseIntoCompositePanics(t *testing.T) {
	n := NewList()
	assert.Panics(t, func() { _ = ParseInto(&n, "1") })
}

func TestIncrementDecrementWrap(t *testing.T) {
	b := NewBool(true)
	require.True(t, Increment(&b))
	assert.False(t, b.Bool)
	require.True(t, Decrement(&b))
	assert.True(t, b.Bool)

	u := NewU8(255)
	require.True(t, Increment(&u))
	assert.Equal(t, int64(0), u.Int)
	require.True(t, Decrement(&u))
	assert.Equal(t, int64(255), u.Int)

	i := NewI8(127)
	require.True(t, Increment(&i))
	assert.Equal(t, int64(-128), i.Int)
	require.True(t, Decrement(&i))
	assert.Equal(t, int64(127), i.Int)

	f := NewFloat(1)
	assert.False(t, Increment(&f))
	s := NewStr("x")
	assert.False(t, Decrement(&s))
}

func TestTakePutRoundTrip(t *testing.T) {
	list := NewList(NewU32(1), NewList(NewBool(true)), NewU32(3))
	taken := list.Take(1)
	assert.Equal(t, KindList, taken.Kind)
	assert.Equal(t, KindInvalid, list.Children[1].Kind)

	list.Put(1, taken)
	assert.Equal(t, KindList, list.Children[1].Kind)
	assert.Equal(t, 3, list.Len())
}

func TestStructuralViolationsPanic(t *testing.T) {
	scalar := NewU8(1)
	assert.Panics(t, func() { _ = scalar.Len() })
	assert.Panics(t, func() { _ = scalar.ChildAt(0) })

	list := NewList(NewU8(1))
	assert.Panics(t, func() { _ = list.ChildAt(5) })
	assert.Panics(t, func() { _ = list.KeyAt(0) })
}

func TestCloneIsDeep(t *testing.T) {
	key := hash40.FromLabel("items")
	root := NewStruct(Entry{Key: key, Node: NewList(NewBool(true))})
	cp := root.Clone()
	cp.Children[0].Children[0].Bool = false

	assert.True(t, root.Children[0].Children[0].Bool)
	assert.Equal(t, key, cp.KeyAt(0))
}
