// Package model holds the semantic representation of a word-processing
// document: the ordered paragraph sequence plus the optional property bags
// extracted from the ancillary parts. Every value is built fresh per parse
// call and is immutable once returned.
package model

import "time"

// Document is the aggregate root produced by one parse call.
//
// Optional sections are nil when the underlying part is absent from the
// archive, so "zero comments" (empty slice) and "no comments part" (nil)
// stay distinguishable. Paragraphs is always non-nil, possibly empty.
type Document struct {
	// ID is a process-local instance id assigned at parse time. It has no
	// persisted meaning and is never derived from document content.
	ID string

	Paragraphs []Paragraph

	Metadata *Metadata

	// Headers and Footers are keyed by part name, e.g. "word/header1.xml".
	Headers map[string]HeaderFooter
	Footers map[string]HeaderFooter

	Comments  []Comment
	Footnotes []Note
	Endnotes  []Note

	// Images is keyed by archive path, e.g. "word/media/image1.png".
	Images map[string]Image

	// Relationships maps a relationship id from the main part's .rels to
	// its target path, e.g. "rId4" -> "media/image1.png".
	Relationships map[string]string

	Theme *Theme

	// Resources carries the raw XML of the styling parts verbatim.
	Resources *Resources
}

// Paragraph is one ordered unit of body content. A table surfaces as a
// single Paragraph with IsTable set and the grid in Table.
type Paragraph struct {
	Text         string
	Style        string
	HeadingLevel int
	Bold         bool
	FontSize     float64 // points; 0 means inherited/default

	IsTable bool
	Table   *Table

	Numbering *Numbering
	Images    []string // inline image relationship ids, in order
	Fields    []Field
	Bookmarks []string

	CommentMarks []CommentMark
	FootnoteRefs []string
	EndnoteRefs  []string
}

// Table is a 2-D text grid with parallel per-cell style and border grids.
// All three grids share the same shape.
type Table struct {
	Grid    [][]string
	Styles  [][]CellStyle
	Borders [][]CellBorders
}

type CellStyle struct {
	Fill string // shading fill color, e.g. "D9D9D9"
	Span int    // horizontal grid span; 0 means a plain single cell
}

// CellBorders holds the border style per edge, e.g. "single"; empty means
// no explicit border.
type CellBorders struct {
	Top    string
	Bottom string
	Left   string
	Right  string
}

// Numbering is a paragraph's list reference. Format is resolved from the
// numbering part when present, e.g. "decimal" or "bullet".
type Numbering struct {
	NumID  string
	Level  int
	Format string
}

// Field is one reconstructed field code, simple or complex. ID is a
// parse-order counter local to one call; never treat it as stable.
type Field struct {
	ID        string
	Code      string
	Type      string
	Arguments []string
	Result    *string // cached display text; nil when never separated
	Dirty     bool
	Locked    bool
}

// CommentMark is a comment-range boundary inside a paragraph.
type CommentMark struct {
	ID    string
	Start bool
}

type Comment struct {
	ID       string
	Author   string
	Initials string
	Date     string
	Text     string
}

// Note is a footnote or endnote body, separator entries excluded.
type Note struct {
	ID   string
	Text string
}

type HeaderFooter struct {
	Paragraphs []string
	Text       string
}

// Image is one media entry, base64-encoded as a data URI. Width/Height are
// sniffed from the raster header and stay zero when unknown (e.g. SVG).
type Image struct {
	Path        string
	ContentType string
	DataURI     string
	Width       int
	Height      int
}

// Metadata groups the three property bags. Each is nil when its part is
// absent or malformed.
type Metadata struct {
	Core   *CoreProperties
	App    *AppProperties
	Custom map[string]interface{}
}

// CoreProperties mirrors docProps/core.xml. Timestamps that fail to parse
// are omitted (nil), not zeroed.
type CoreProperties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
	Revision       string
	Category       string
	ContentStatus  string
	Created        *time.Time
	Modified       *time.Time
}

// AppProperties mirrors docProps/app.xml. Counters that fail numeric parse
// are omitted (nil), never zero.
type AppProperties struct {
	Application string
	AppVersion  string
	Company     string
	Manager     string
	TotalTime   *int
	Pages       *int
	Words       *int
	Characters  *int
	Lines       *int
	Paragraphs  *int
}

// Theme carries the color and font schemes from the theme part.
type Theme struct {
	Colors ColorScheme
	Fonts  FontScheme
}

// ColorScheme holds the 12 named slots. Values are whatever encoding the
// slot carried: a literal RRGGBB, a system color's last-resolved literal,
// or a scheme-relative name; empty when the slot is missing.
type ColorScheme struct {
	Dark1             string
	Light1            string
	Dark2             string
	Light2            string
	Accent1           string
	Accent2           string
	Accent3           string
	Accent4           string
	Accent5           string
	Accent6           string
	Hyperlink         string
	FollowedHyperlink string
}

type FontScheme struct {
	Major FontCollection
	Minor FontCollection
}

type FontCollection struct {
	Latin         string
	EastAsian     string
	ComplexScript string
}

// Resources is the raw-XML resource bag. Individual fields are empty when
// the part is absent; the whole struct is nil when none were found.
type Resources struct {
	Styles    string
	Numbering string
	Settings  string
	FontTable string
	Theme     string
}

// Stats summarizes one finished Document. It is a pure fold over the model
// and never re-reads the archive.
type Stats struct {
	ParagraphCount int      `json:"paragraphCount"`
	TableCount     int      `json:"tableCount"`
	ImageCount     int      `json:"imageCount"`
	WordCount      int      `json:"wordCount"`
	CharacterCount int      `json:"characterCount"`
	HasNumbering   bool     `json:"hasNumbering"`
	HasComments    bool     `json:"hasComments"`
	HasFootnotes   bool     `json:"hasFootnotes"`
	HasEndnotes    bool     `json:"hasEndnotes"`
	HasHeaders     bool     `json:"hasHeaders"`
	HasFooters     bool     `json:"hasFooters"`
	StyleIDs       []string `json:"styleIds"`
}
