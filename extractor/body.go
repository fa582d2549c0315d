// Package extractor turns the XML parts of a word-processing archive into
// the typed document model. Each extractor is a pure function of one part's
// markup tree; none of them touches the archive layer.
package extractor

import (
	"errors"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// Body assembles the ordered paragraph sequence of the main document part
// in a single depth-first pass: run text, formatting hints, numbering,
// bookmarks, inline image references, comment/note markers and fields are
// all collected per paragraph without re-walking the tree.
func Body(root *etree.Element) ([]model.Paragraph, error) {
	body := markup.Child(root, "body")
	if body == nil {
		return nil, errors.New("document part has no body element")
	}
	fp := &fieldParser{}
	paragraphs := make([]model.Paragraph, 0, len(body.ChildElements()))
	for _, ch := range body.ChildElements() {
		switch ch.Tag {
		case "p":
			paragraphs = append(paragraphs, assembleParagraph(ch, fp))
		case "tbl":
			paragraphs = append(paragraphs, assembleTable(ch))
		}
	}
	return paragraphs, nil
}

type paragraphAssembler struct {
	para    model.Paragraph
	text    strings.Builder
	machine *complexFieldMachine
	fp      *fieldParser
	boldSet bool
	sizeSet bool
}

func assembleParagraph(p *etree.Element, fp *fieldParser) model.Paragraph {
	a := &paragraphAssembler{fp: fp, machine: newComplexFieldMachine(fp)}

	if pPr := markup.Child(p, "pPr"); pPr != nil {
		if style := markup.Child(pPr, "pStyle"); style != nil {
			a.para.Style = markup.AttrDefault(style, "val", "")
			a.para.HeadingLevel = headingLevel(a.para.Style)
		}
		if numPr := markup.Child(pPr, "numPr"); numPr != nil {
			a.para.Numbering = numberingRef(numPr)
		}
	}

	a.walk(p)

	a.para.Text = a.text.String()
	a.para.Fields = a.machine.fields
	return a.para
}

// walk visits paragraph content in document order. Containers that merely
// wrap runs (hyperlinks, smart tags, structured document tags) are
// descended into so their runs feed the same pass.
func (a *paragraphAssembler) walk(el *etree.Element) {
	for _, ch := range el.ChildElements() {
		switch ch.Tag {
		case "r":
			a.run(ch)
		case "fldSimple":
			if f := a.fp.simpleField(ch); f != nil {
				a.machine.fields = append(a.machine.fields, *f)
			}
			a.text.WriteString(runsText(ch))
		case "hyperlink", "smartTag", "sdt", "sdtContent", "ins":
			a.walk(ch)
		case "bookmarkStart":
			if name, ok := markup.Attr(ch, "name"); ok && name != "" {
				a.para.Bookmarks = append(a.para.Bookmarks, name)
			}
		case "commentRangeStart":
			if id, ok := markup.Attr(ch, "id"); ok {
				a.para.CommentMarks = append(a.para.CommentMarks, model.CommentMark{ID: id, Start: true})
			}
		case "commentRangeEnd":
			if id, ok := markup.Attr(ch, "id"); ok {
				a.para.CommentMarks = append(a.para.CommentMarks, model.CommentMark{ID: id})
			}
		}
	}
}

func (a *paragraphAssembler) run(run *etree.Element) {
	a.machine.feedRun(run)
	for _, ch := range run.ChildElements() {
		switch ch.Tag {
		case "t":
			a.text.WriteString(markup.Text(ch))
		case "tab":
			a.text.WriteByte('\t')
		case "br", "cr":
			a.text.WriteByte('\n')
		case "rPr":
			a.runProps(ch)
		case "drawing", "pict", "object":
			a.para.Images = append(a.para.Images, imageRefs(ch)...)
		case "footnoteReference":
			if id, ok := markup.Attr(ch, "id"); ok {
				a.para.FootnoteRefs = append(a.para.FootnoteRefs, id)
			}
		case "endnoteReference":
			if id, ok := markup.Attr(ch, "id"); ok {
				a.para.EndnoteRefs = append(a.para.EndnoteRefs, id)
			}
		}
	}
}

// runProps reads the nearest run-properties node; the first run that
// declares a property wins for the paragraph-level hint. Absence means
// inherit/default, never an error.
func (a *paragraphAssembler) runProps(rPr *etree.Element) {
	if !a.boldSet {
		if b := markup.Child(rPr, "b"); b != nil {
			a.para.Bold = onOff(b)
			a.boldSet = true
		}
	}
	if !a.sizeSet {
		if sz := markup.Child(rPr, "sz"); sz != nil {
			if half, err := strconv.ParseFloat(markup.AttrDefault(sz, "val", ""), 64); err == nil {
				a.para.FontSize = half / 2 // sz is in half-points
				a.sizeSet = true
			}
		}
	}
}

// imageRefs collects relationship ids from drawing blips and legacy VML
// imagedata nodes anywhere under el.
func imageRefs(el *etree.Element) []string {
	var ids []string
	var descend func(*etree.Element)
	descend = func(e *etree.Element) {
		switch e.Tag {
		case "blip":
			if id, ok := markup.Attr(e, "embed"); ok && id != "" {
				ids = append(ids, id)
			}
		case "imagedata":
			if id, ok := markup.Attr(e, "id"); ok && id != "" {
				ids = append(ids, id)
			}
		}
		for _, ch := range e.ChildElements() {
			descend(ch)
		}
	}
	descend(el)
	return ids
}

func numberingRef(numPr *etree.Element) *model.Numbering {
	numID := markup.Child(numPr, "numId")
	if numID == nil {
		return nil
	}
	ref := &model.Numbering{NumID: markup.AttrDefault(numID, "val", "")}
	if ref.NumID == "" {
		return nil
	}
	if ilvl := markup.Child(numPr, "ilvl"); ilvl != nil {
		if lvl, err := strconv.Atoi(markup.AttrDefault(ilvl, "val", "0")); err == nil {
			ref.Level = lvl
		}
	}
	return ref
}

// headingLevel maps a paragraph style id to an outline level, 0 when the
// style is not a heading.
func headingLevel(style string) int {
	lower := strings.ToLower(style)
	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}
	if rest, ok := strings.CutPrefix(lower, "heading"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 9 {
			return n
		}
	}
	return 0
}

// onOff interprets the OOXML toggle convention: the element's presence
// means true unless its val attribute switches it off.
func onOff(el *etree.Element) bool {
	switch markup.AttrDefault(el, "val", "") {
	case "0", "false", "off":
		return false
	}
	return true
}
