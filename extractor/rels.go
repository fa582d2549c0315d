package extractor

import (
	"strconv"

	"github.com/wudi/docxkit/markup"
)

// ParseRelationships extracts a .rels part into an id -> target map.
func ParseRelationships(data []byte) (map[string]string, error) {
	root, err := markup.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != "Relationships" {
		return nil, nil
	}
	rels := make(map[string]string)
	for _, rel := range markup.Children(root, "Relationship") {
		id := markup.AttrDefault(rel, "Id", "")
		target := markup.AttrDefault(rel, "Target", "")
		if id != "" && target != "" {
			rels[id] = target
		}
	}
	if len(rels) == 0 {
		return nil, nil
	}
	return rels, nil
}

// ParseNumberingFormats extracts word/numbering.xml into a map from numId
// to per-level number format (e.g. "decimal", "bullet"). Concrete numbering
// instances are resolved through their abstract definitions.
func ParseNumberingFormats(data []byte) (map[string]map[int]string, error) {
	root, err := markup.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != "numbering" {
		return nil, nil
	}

	abstract := make(map[string]map[int]string)
	for _, abs := range markup.Children(root, "abstractNum") {
		id := markup.AttrDefault(abs, "abstractNumId", "")
		if id == "" {
			continue
		}
		levels := make(map[int]string)
		for _, lvl := range markup.Children(abs, "lvl") {
			n, err := strconv.Atoi(markup.AttrDefault(lvl, "ilvl", ""))
			if err != nil {
				continue
			}
			if fmtEl := markup.Child(lvl, "numFmt"); fmtEl != nil {
				levels[n] = markup.AttrDefault(fmtEl, "val", "")
			}
		}
		abstract[id] = levels
	}

	out := make(map[string]map[int]string)
	for _, num := range markup.Children(root, "num") {
		numID := markup.AttrDefault(num, "numId", "")
		absRef := markup.Child(num, "abstractNumId")
		if numID == "" || absRef == nil {
			continue
		}
		if levels, ok := abstract[markup.AttrDefault(absRef, "val", "")]; ok {
			out[numID] = levels
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
