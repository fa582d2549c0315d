package extractor

import (
	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// ParseComments extracts word/comments.xml into ordered Comment values.
func ParseComments(data []byte) ([]model.Comment, error) {
	root, err := markup.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != "comments" {
		return nil, nil
	}
	// Non-nil even when empty: "zero comments" and "no comments part"
	// stay distinguishable in the model.
	out := []model.Comment{}
	for _, c := range markup.Children(root, "comment") {
		out = append(out, model.Comment{
			ID:       markup.AttrDefault(c, "id", ""),
			Author:   markup.AttrDefault(c, "author", ""),
			Initials: markup.AttrDefault(c, "initials", ""),
			Date:     markup.AttrDefault(c, "date", ""),
			Text:     blockText(c),
		})
	}
	return out, nil
}

// ParseFootnotes extracts word/footnotes.xml. Separator and continuation
// stock entries are skipped; only authored notes survive.
func ParseFootnotes(data []byte) ([]model.Note, error) {
	return parseNotes(data, "footnotes", "footnote")
}

// ParseEndnotes extracts word/endnotes.xml.
func ParseEndnotes(data []byte) ([]model.Note, error) {
	return parseNotes(data, "endnotes", "endnote")
}

func parseNotes(data []byte, rootTag, itemTag string) ([]model.Note, error) {
	root, err := markup.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != rootTag {
		return nil, nil
	}
	out := []model.Note{}
	for _, n := range markup.Children(root, itemTag) {
		switch markup.AttrDefault(n, "type", "") {
		case "separator", "continuationSeparator", "continuationNotice":
			continue
		}
		out = append(out, model.Note{
			ID:   markup.AttrDefault(n, "id", ""),
			Text: blockText(n),
		})
	}
	return out, nil
}
