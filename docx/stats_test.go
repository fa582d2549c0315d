package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wudi/docxkit/model"
)

func TestStatsFold(t *testing.T) {
	num := &model.Numbering{NumID: "1", Level: 0}
	doc := &model.Document{
		Paragraphs: []model.Paragraph{
			{Text: "one two three", Style: "Heading1"},
			{Text: "four", Style: "Normal", Numbering: num},
			{Text: "five six", Style: "Normal"},
			{IsTable: true, Table: &model.Table{Grid: [][]string{{"a b", "c"}}}},
		},
		Comments: []model.Comment{{ID: "1", Text: "hm"}},
		Headers:  map[string]model.HeaderFooter{"word/header1.xml": {}},
		Images:   map[string]model.Image{"word/media/image1.png": {}},
	}

	s := Stats(doc)
	assert.Equal(t, 3, s.ParagraphCount)
	assert.Equal(t, 1, s.TableCount)
	assert.Equal(t, 1, s.ImageCount)
	assert.Equal(t, 9, s.WordCount) // six paragraph words plus three cell words
	assert.True(t, s.HasNumbering)
	assert.True(t, s.HasComments)
	assert.True(t, s.HasHeaders)
	assert.False(t, s.HasFooters)
	assert.False(t, s.HasFootnotes)
	assert.False(t, s.HasEndnotes)
	assert.Equal(t, []string{"Heading1", "Normal"}, s.StyleIDs)
}

func TestStatsEmptyDocument(t *testing.T) {
	s := Stats(&model.Document{Paragraphs: []model.Paragraph{}})
	assert.Equal(t, 0, s.ParagraphCount)
	assert.Equal(t, 0, s.TableCount)
	assert.Equal(t, 0, s.ImageCount)
	assert.False(t, s.HasNumbering)
	assert.Nil(t, s.StyleIDs)
}

func TestStatsDistinguishesEmptyFromAbsent(t *testing.T) {
	// Zero comments in an existing part still counts as "has comments".
	withPart := &model.Document{Comments: []model.Comment{}}
	assert.True(t, Stats(withPart).HasComments)

	noPart := &model.Document{}
	assert.False(t, Stats(noPart).HasComments)
}
