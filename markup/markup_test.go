package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const para = `<w:p xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
  <w:r><w:t>one</w:t></w:r>
  <w:r><w:t>two</w:t></w:r>
</w:p>`

func TestParseAndAccessors(t *testing.T) {
	root, err := Parse([]byte(para))
	require.NoError(t, err)
	assert.Equal(t, "p", root.Tag)

	runs := Children(root, "r")
	require.Len(t, runs, 2)
	assert.Equal(t, "one", Text(Child(runs[0], "t")))
	assert.Equal(t, "two", Text(Child(runs[1], "t")))

	style := Child(Child(root, "pPr"), "pStyle")
	require.NotNil(t, style)
	v, ok := Attr(style, "val")
	assert.True(t, ok)
	assert.Equal(t, "Heading1", v)
}

func TestChildrenSingleIsStillSlice(t *testing.T) {
	root, err := Parse([]byte(`<a><b/></a>`))
	require.NoError(t, err)
	assert.Len(t, Children(root, "b"), 1)
	assert.Empty(t, Children(root, "c"))
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`<a><b></a>`))
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestAttrDefaultAndBool(t *testing.T) {
	root, err := Parse([]byte(`<a x="1" y="true" z="no"/>`))
	require.NoError(t, err)
	assert.Equal(t, "1", AttrDefault(root, "x", ""))
	assert.Equal(t, "fallback", AttrDefault(root, "missing", "fallback"))
	assert.True(t, BoolAttr(root, "x"))
	assert.True(t, BoolAttr(root, "y"))
	assert.False(t, BoolAttr(root, "z"))
	assert.False(t, BoolAttr(root, "missing"))
}

func TestNilSafety(t *testing.T) {
	assert.Nil(t, Child(nil, "a"))
	assert.Nil(t, Children(nil, "a"))
	assert.Equal(t, "", Text(nil))
	_, ok := Attr(nil, "a")
	assert.False(t, ok)
}
