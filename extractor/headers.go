package extractor

import (
	"strings"

	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// ParseHeaderFooter extracts one word/headerN.xml or word/footerN.xml part.
// The root is w:hdr or w:ftr; anything else yields an empty value.
func ParseHeaderFooter(data []byte) (model.HeaderFooter, error) {
	var hf model.HeaderFooter
	root, err := markup.Parse(data)
	if err != nil {
		return hf, err
	}
	if root.Tag != "hdr" && root.Tag != "ftr" {
		return hf, nil
	}
	for _, ch := range root.ChildElements() {
		switch ch.Tag {
		case "p":
			hf.Paragraphs = append(hf.Paragraphs, flattenParagraph(ch))
		case "tbl":
			hf.Paragraphs = append(hf.Paragraphs, blockText(ch))
		}
	}
	hf.Text = strings.Join(hf.Paragraphs, "\n")
	return hf, nil
}
