package docx

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/wudi/docxkit/model"
)

// Stats folds one finished Document into summary statistics. It never
// re-reads the archive; everything is derived from the model.
func Stats(doc *model.Document) model.Stats {
	var s model.Stats
	styleSet := make(map[string]struct{})
	inlineImages := 0
	for _, p := range doc.Paragraphs {
		if p.IsTable {
			s.TableCount++
			if p.Table != nil {
				for _, row := range p.Table.Grid {
					for _, cell := range row {
						s.WordCount += len(strings.Fields(cell))
						s.CharacterCount += utf8.RuneCountInString(cell)
					}
				}
			}
			continue
		}
		s.ParagraphCount++
		s.WordCount += len(strings.Fields(p.Text))
		s.CharacterCount += utf8.RuneCountInString(p.Text)
		if p.Style != "" {
			styleSet[p.Style] = struct{}{}
		}
		if p.Numbering != nil {
			s.HasNumbering = true
		}
		inlineImages += len(p.Images)
	}

	if doc.Images != nil {
		s.ImageCount = len(doc.Images)
	} else {
		s.ImageCount = inlineImages
	}
	s.HasComments = doc.Comments != nil
	s.HasFootnotes = doc.Footnotes != nil
	s.HasEndnotes = doc.Endnotes != nil
	s.HasHeaders = len(doc.Headers) > 0
	s.HasFooters = len(doc.Footers) > 0

	if len(styleSet) > 0 {
		s.StyleIDs = make([]string, 0, len(styleSet))
		for id := range styleSet {
			s.StyleIDs = append(s.StyleIDs, id)
		}
		sort.Strings(s.StyleIDs)
	}
	return s
}
