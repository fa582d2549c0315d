package extractor

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// assembleTable surfaces one w:tbl as a single table-flagged Paragraph with
// a 2-D text grid plus parallel cell-style and border grids.
func assembleTable(tbl *etree.Element) model.Paragraph {
	t := &model.Table{}
	for _, tr := range markup.Children(tbl, "tr") {
		cells := markup.Children(tr, "tc")
		texts := make([]string, 0, len(cells))
		styles := make([]model.CellStyle, 0, len(cells))
		borders := make([]model.CellBorders, 0, len(cells))
		for _, tc := range cells {
			texts = append(texts, cellText(tc))
			style, border := cellProps(markup.Child(tc, "tcPr"))
			styles = append(styles, style)
			borders = append(borders, border)
		}
		t.Grid = append(t.Grid, texts)
		t.Styles = append(t.Styles, styles)
		t.Borders = append(t.Borders, borders)
	}
	return model.Paragraph{IsTable: true, Table: t}
}

func cellProps(tcPr *etree.Element) (model.CellStyle, model.CellBorders) {
	var style model.CellStyle
	var border model.CellBorders
	if tcPr == nil {
		return style, border
	}
	if shd := markup.Child(tcPr, "shd"); shd != nil {
		if fill := markup.AttrDefault(shd, "fill", ""); fill != "" && fill != "auto" {
			style.Fill = fill
		}
	}
	if span := markup.Child(tcPr, "gridSpan"); span != nil {
		if n, err := strconv.Atoi(markup.AttrDefault(span, "val", "")); err == nil && n > 1 {
			style.Span = n
		}
	}
	if tb := markup.Child(tcPr, "tcBorders"); tb != nil {
		border.Top = borderVal(tb, "top")
		border.Bottom = borderVal(tb, "bottom")
		border.Left = borderVal(tb, "left")
		border.Right = borderVal(tb, "right")
	}
	return style, border
}

func borderVal(tcBorders *etree.Element, edge string) string {
	if el := markup.Child(tcBorders, edge); el != nil {
		return markup.AttrDefault(el, "val", "")
	}
	return ""
}

// cellText flattens the block content of one table cell; nested tables
// contribute their text too.
func cellText(tc *etree.Element) string {
	var parts []string
	for _, ch := range tc.ChildElements() {
		switch ch.Tag {
		case "p":
			parts = append(parts, flattenParagraph(ch))
		case "tbl":
			parts = append(parts, blockText(ch))
		}
	}
	return strings.Join(parts, "\n")
}

// flattenParagraph concatenates the visible run text of one paragraph,
// descending into run wrappers.
func flattenParagraph(p *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, ch := range el.ChildElements() {
			switch ch.Tag {
			case "r":
				for _, rc := range ch.ChildElements() {
					switch rc.Tag {
					case "t":
						b.WriteString(markup.Text(rc))
					case "tab":
						b.WriteByte('\t')
					case "br", "cr":
						b.WriteByte('\n')
					}
				}
			case "hyperlink", "smartTag", "sdt", "sdtContent", "ins", "fldSimple":
				walk(ch)
			}
		}
	}
	walk(p)
	return b.String()
}

// blockText flattens every paragraph under el, one line per paragraph.
func blockText(el *etree.Element) string {
	var lines []string
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, ch := range e.ChildElements() {
			if ch.Tag == "p" {
				lines = append(lines, flattenParagraph(ch))
				continue
			}
			walk(ch)
		}
	}
	walk(el)
	return strings.Join(lines, "\n")
}
