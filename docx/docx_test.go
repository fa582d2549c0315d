package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/docxkit/opc"
)

const documentXML = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
	<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Annual Report</w:t></w:r></w:p>
	<w:p><w:r><w:t>The year in review.</w:t></w:r></w:p>
</w:body>
</w:document>`

const numberedDocumentXML = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
	<w:p>
		<w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="5"/></w:numPr></w:pPr>
		<w:r><w:t>first item</w:t></w:r>
	</w:p>
</w:body>
</w:document>`

const headerXML = `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
	<w:p><w:r><w:t>Confidential</w:t></w:r></w:p>
</w:hdr>`

const coreXML = `<cp:coreProperties
	xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	xmlns:dc="http://purl.org/dc/elements/1.1/">
	<dc:title>Annual Report</dc:title>
	<dc:creator>R. Daneel</dc:creator>
</cp:coreProperties>`

const numberingXML = `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
	<w:abstractNum w:abstractNumId="0">
		<w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>
	</w:abstractNum>
	<w:num w:numId="5"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`

func buildArchive(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		require.NoError(t, err)
		_, err = w.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestParseScenarioTenEntries(t *testing.T) {
	entries := map[string][]byte{
		"[Content_Types].xml":          []byte(`<Types/>`),
		"_rels/.rels":                  []byte(`<Relationships/>`),
		"word/document.xml":            []byte(documentXML),
		"word/header1.xml":             []byte(headerXML),
		"docProps/core.xml":            []byte(coreXML),
		"docProps/app.xml":             []byte(`<Properties><Application>Word</Application></Properties>`),
		"word/styles.xml":              []byte(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`),
		"word/fontTable.xml":           []byte(`<w:fonts xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`),
		"word/settings.xml":            []byte(`<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`),
		"word/_rels/document.xml.rels": []byte(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="t" Target="styles.xml"/></Relationships>`),
	}
	order := []string{
		"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/header1.xml",
		"docProps/core.xml", "docProps/app.xml", "word/styles.xml", "word/fontTable.xml",
		"word/settings.xml", "word/_rels/document.xml.rels",
	}
	buf := buildArchive(t, entries, order)

	doc, err := Parse(context.Background(), buf)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, "Annual Report", doc.Paragraphs[0].Text)
	assert.Equal(t, 1, doc.Paragraphs[0].HeadingLevel)

	// One header part, no footers, no comments.
	require.Len(t, doc.Headers, 1)
	assert.Equal(t, "Confidential", doc.Headers["word/header1.xml"].Text)
	assert.Nil(t, doc.Footers)
	assert.Nil(t, doc.Comments)
	assert.Nil(t, doc.Footnotes)
	assert.Nil(t, doc.Endnotes)
	assert.Nil(t, doc.Images)
	assert.Nil(t, doc.Theme)

	require.NotNil(t, doc.Metadata)
	require.NotNil(t, doc.Metadata.Core)
	assert.Equal(t, "Annual Report", doc.Metadata.Core.Title)
	require.NotNil(t, doc.Metadata.App)
	assert.Equal(t, "Word", doc.Metadata.App.Application)
	assert.Nil(t, doc.Metadata.Custom)

	require.NotNil(t, doc.Resources)
	assert.Contains(t, doc.Resources.Styles, "w:styles")
	assert.Equal(t, "", doc.Resources.Numbering)

	assert.Equal(t, map[string]string{"rId1": "styles.xml"}, doc.Relationships)
}

func TestParseStatsNoTablesNoMedia(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{"word/document.xml": []byte(documentXML)},
		[]string{"word/document.xml"})
	doc, err := Parse(context.Background(), buf)
	require.NoError(t, err)

	stats := Stats(doc)
	assert.Equal(t, 0, stats.TableCount)
	assert.Equal(t, 0, stats.ImageCount)
	assert.False(t, stats.HasNumbering)
	assert.Equal(t, 2, stats.ParagraphCount)
	assert.Equal(t, []string{"Heading1"}, stats.StyleIDs)
}

func TestParseNumberingFormatResolved(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{
		"word/document.xml":  []byte(numberedDocumentXML),
		"word/numbering.xml": []byte(numberingXML),
	}, []string{"word/document.xml", "word/numbering.xml"})

	doc, err := Parse(context.Background(), buf)
	require.NoError(t, err)

	require.Len(t, doc.Paragraphs, 1)
	num := doc.Paragraphs[0].Numbering
	require.NotNil(t, num)
	assert.Equal(t, "5", num.NumID)
	assert.Equal(t, "bullet", num.Format)
	assert.True(t, Stats(doc).HasNumbering)
}

func TestParseMedia(t *testing.T) {
	img := pngBytes(t, 2, 3)
	buf := buildArchive(t, map[string][]byte{
		"word/document.xml":     []byte(documentXML),
		"word/media/image1.png": img,
		"word/media/notes.txt":  []byte("not an image"),
	}, []string{"word/document.xml", "word/media/image1.png", "word/media/notes.txt"})

	doc, err := Parse(context.Background(), buf)
	require.NoError(t, err)

	require.Len(t, doc.Images, 1)
	got := doc.Images["word/media/image1.png"]
	assert.Equal(t, "image/png", got.ContentType)
	assert.True(t, strings.HasPrefix(got.DataURI, "data:image/png;base64,"))
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 3, got.Height)
	assert.Equal(t, 1, Stats(doc).ImageCount)
}

func TestParseWithoutMedia(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{
		"word/document.xml":     []byte(documentXML),
		"word/media/image1.png": pngBytes(t, 1, 1),
	}, []string{"word/document.xml", "word/media/image1.png"})

	doc, err := Parse(context.Background(), buf, WithoutMedia())
	require.NoError(t, err)
	assert.Nil(t, doc.Images)
}

func TestParseMissingMainPart(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{"docProps/core.xml": []byte(coreXML)},
		[]string{"docProps/core.xml"})

	_, err := Parse(context.Background(), buf)
	var partErr *PartError
	require.ErrorAs(t, err, &partErr)
	assert.Equal(t, PartDocument, partErr.Part)
	assert.ErrorIs(t, err, ErrPartMissing)
}

func TestParseMalformedMainPartFatal(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{"word/document.xml": []byte(`<w:document`)},
		[]string{"word/document.xml"})

	_, err := Parse(context.Background(), buf)
	var partErr *PartError
	require.ErrorAs(t, err, &partErr)
	assert.Equal(t, PartDocument, partErr.Part)
}

func TestParseMalformedOptionalPartDegrades(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{
		"word/document.xml": []byte(documentXML),
		"docProps/core.xml": []byte(`<cp:coreProperties><dc:title>`),
	}, []string{"word/document.xml", "docProps/core.xml"})

	doc, err := Parse(context.Background(), buf)
	require.NoError(t, err)
	assert.Nil(t, doc.Metadata)
}

func TestParseNotAnArchive(t *testing.T) {
	_, err := Parse(context.Background(), []byte("plain text"))
	var openErr *opc.ArchiveOpenError
	assert.ErrorAs(t, err, &openErr)
}

func TestParseBombInMediaAborts(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{
		"word/document.xml":   []byte(documentXML),
		"word/media/bomb.bmp": make([]byte, 1<<20),
	}, []string{"word/document.xml", "word/media/bomb.bmp"})

	_, err := Parse(context.Background(), buf)
	var bomb *opc.CompressionBombError
	require.ErrorAs(t, err, &bomb)
	assert.Equal(t, "word/media/bomb.bmp", bomb.Name)
}

func TestReplacePartThenParse(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{
		"word/document.xml": []byte(documentXML),
		"word/styles.xml":   []byte(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`),
	}, []string{"word/document.xml", "word/styles.xml"})

	out, err := ReplacePart(buf, "word/document.xml", []byte(numberedDocumentXML))
	require.NoError(t, err)

	doc, err := Parse(context.Background(), out)
	require.NoError(t, err)
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, "first item", doc.Paragraphs[0].Text)
	// The untouched part survives byte-identical.
	assert.Contains(t, doc.Resources.Styles, "w:styles")
}

func TestParseCancelled(t *testing.T) {
	buf := buildArchive(t, map[string][]byte{"word/document.xml": []byte(documentXML)},
		[]string{"word/document.xml"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, buf)
	assert.ErrorIs(t, err, context.Canceled)
}
