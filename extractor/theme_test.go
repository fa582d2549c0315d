package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeXML = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office">
	<a:themeElements>
		<a:clrScheme name="Office">
			<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
			<a:lt1><a:sysClr val="window"/></a:lt1>
			<a:dk2><a:srgbClr val="44546A"/></a:dk2>
			<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
			<a:accent1><a:srgbClr val="4472C4"/></a:accent1>
			<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
			<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>
			<a:accent4><a:srgbClr val="FFC000"/></a:accent4>
			<a:accent5><a:schemeClr val="accent1"/></a:accent5>
			<a:hlink><a:srgbClr val="0563C1"/></a:hlink>
			<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
		</a:clrScheme>
		<a:fontScheme name="Office">
			<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface="Arial"/></a:majorFont>
			<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface="MS Mincho"/><a:cs typeface=""/></a:minorFont>
		</a:fontScheme>
	</a:themeElements>
</a:theme>`

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme([]byte(themeXML))
	require.NoError(t, err)
	require.NotNil(t, theme)

	c := theme.Colors
	// System colors prefer their last-resolved literal over the name.
	assert.Equal(t, "000000", c.Dark1)
	// Without lastClr, the symbolic name is all there is.
	assert.Equal(t, "window", c.Light1)
	assert.Equal(t, "44546A", c.Dark2)
	assert.Equal(t, "4472C4", c.Accent1)
	// Scheme-relative references surface their target name.
	assert.Equal(t, "accent1", c.Accent5)
	// A missing slot stays empty.
	assert.Equal(t, "", c.Accent6)
	assert.Equal(t, "0563C1", c.Hyperlink)
	assert.Equal(t, "954F72", c.FollowedHyperlink)

	assert.Equal(t, "Calibri Light", theme.Fonts.Major.Latin)
	assert.Equal(t, "Arial", theme.Fonts.Major.ComplexScript)
	assert.Equal(t, "Calibri", theme.Fonts.Minor.Latin)
	assert.Equal(t, "MS Mincho", theme.Fonts.Minor.EastAsian)
}

func TestParseThemeForeignRoot(t *testing.T) {
	theme, err := ParseTheme([]byte(`<w:document ` + wNS + `/>`))
	require.NoError(t, err)
	assert.Nil(t, theme)
}

const relsXML = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
	<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
	<Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
</Relationships>`

func TestParseRelationships(t *testing.T) {
	rels, err := ParseRelationships([]byte(relsXML))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"rId1": "styles.xml",
		"rId7": "media/image1.png",
	}, rels)
}

const numberingXML = `<w:numbering ` + wNS + `>
	<w:abstractNum w:abstractNumId="0">
		<w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>
		<w:lvl w:ilvl="1"><w:numFmt w:val="decimal"/></w:lvl>
	</w:abstractNum>
	<w:num w:numId="5"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`

func TestParseNumberingFormats(t *testing.T) {
	formats, err := ParseNumberingFormats([]byte(numberingXML))
	require.NoError(t, err)
	require.Contains(t, formats, "5")
	assert.Equal(t, "bullet", formats["5"][0])
	assert.Equal(t, "decimal", formats["5"][1])
}
