// Package docx is the entry point of the extraction pipeline: it
// orchestrates the archive layer and the per-part extractors into one
// semantic document model. Parsing is request-scoped and stateless; every
// call works on its own buffer and returns an independent model.
package docx

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wudi/docxkit/extractor"
	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
	"github.com/wudi/docxkit/observability"
	"github.com/wudi/docxkit/opc"
)

// Well-known part names of the word-processing package.
const (
	PartDocument  = "word/document.xml"
	PartCore      = "docProps/core.xml"
	PartApp       = "docProps/app.xml"
	PartCustom    = "docProps/custom.xml"
	PartComments  = "word/comments.xml"
	PartFootnotes = "word/footnotes.xml"
	PartEndnotes  = "word/endnotes.xml"
	PartStyles    = "word/styles.xml"
	PartNumbering = "word/numbering.xml"
	PartSettings  = "word/settings.xml"
	PartFontTable = "word/fontTable.xml"
	PartTheme     = "word/theme/theme1.xml"
	PartRels      = "word/_rels/document.xml.rels"

	headerPrefix = "word/header"
	footerPrefix = "word/footer"
	mediaPrefix  = "word/media/"
)

type config struct {
	limits    opc.Limits
	log       observability.Logger
	skipMedia bool
}

// Option configures one Parse call.
type Option func(*config)

// WithLimits overrides the archive security limits.
func WithLimits(l opc.Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithLogger attaches a logger for guard trips and degraded sections.
func WithLogger(log observability.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithoutMedia skips collection and encoding of media entries.
func WithoutMedia() Option {
	return func(c *config) { c.skipMedia = true }
}

// Parse turns archive bytes into a Document. The main document part is
// required; every other section is optional and omitted when its part is
// absent or malformed. Guard violations abort the whole call with a typed
// error and no partial model.
func Parse(ctx context.Context, buf []byte, opts ...Option) (*model.Document, error) {
	cfg := config{limits: opc.DefaultLimits(), log: observability.NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := opc.NewReader(buf, opc.WithLimits(cfg.limits), opc.WithLogger(cfg.log))
	if err != nil {
		return nil, err
	}
	names := r.Entries()

	data, ok, err := r.Read(ctx, PartDocument)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &PartError{Part: PartDocument, Err: ErrPartMissing}
	}
	root, err := markup.Parse(data)
	if err != nil {
		return nil, &PartError{Part: PartDocument, Err: err}
	}
	paragraphs, err := extractor.Body(root)
	if err != nil {
		return nil, &PartError{Part: PartDocument, Err: err}
	}

	doc := &model.Document{ID: uuid.NewString(), Paragraphs: paragraphs}

	// The section fills below are independent of one another; each one
	// writes its own field of doc, so the final Wait is the only join.
	var numFormats map[string]map[int]string
	g, gctx := errgroup.WithContext(ctx)
	p := &partLoader{r: r, log: cfg.log}

	g.Go(func() error { return p.metadata(gctx, doc) })
	g.Go(func() error { return p.headersFooters(gctx, names, doc) })
	g.Go(func() error { return p.notes(gctx, doc) })
	g.Go(func() error {
		var err error
		numFormats, err = p.resources(gctx, doc)
		return err
	})
	if !cfg.skipMedia {
		g.Go(func() error { return p.media(gctx, names, doc) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	applyNumberingFormats(doc.Paragraphs, numFormats)
	return doc, nil
}

// ReplacePart returns new archive bytes with one named part's content
// substituted; every other entry stays byte-identical and the entry order
// is preserved.
func ReplacePart(buf []byte, name string, data []byte) ([]byte, error) {
	return opc.Replace(buf, name, data)
}

// partLoader reads optional parts through the shared guarded reader.
// Archive guard errors propagate; malformed XML in an optional part only
// logs and leaves the section absent.
type partLoader struct {
	r   *opc.Reader
	log observability.Logger
}

func (p *partLoader) read(ctx context.Context, name string) ([]byte, bool, error) {
	return p.r.Read(ctx, name)
}

func (p *partLoader) degrade(part string, err error) {
	p.log.Warn("optional part unreadable, section omitted",
		observability.String("part", part), observability.Error("err", err))
}

func (p *partLoader) metadata(ctx context.Context, doc *model.Document) error {
	meta := &model.Metadata{}
	if data, ok, err := p.read(ctx, PartCore); err != nil {
		return err
	} else if ok {
		if core, err := extractor.ParseCore(data); err != nil {
			p.degrade(PartCore, err)
		} else {
			meta.Core = &core
		}
	}
	if data, ok, err := p.read(ctx, PartApp); err != nil {
		return err
	} else if ok {
		if app, err := extractor.ParseApp(data); err != nil {
			p.degrade(PartApp, err)
		} else {
			meta.App = &app
		}
	}
	if data, ok, err := p.read(ctx, PartCustom); err != nil {
		return err
	} else if ok {
		if custom, err := extractor.ParseCustom(data); err != nil {
			p.degrade(PartCustom, err)
		} else {
			meta.Custom = custom
		}
	}
	if meta.Core != nil || meta.App != nil || meta.Custom != nil {
		doc.Metadata = meta
	}
	return nil
}

func (p *partLoader) headersFooters(ctx context.Context, names []string, doc *model.Document) error {
	for _, name := range names {
		isHeader := strings.HasPrefix(name, headerPrefix) && strings.HasSuffix(name, ".xml")
		isFooter := strings.HasPrefix(name, footerPrefix) && strings.HasSuffix(name, ".xml")
		if !isHeader && !isFooter {
			continue
		}
		data, ok, err := p.read(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		hf, err := extractor.ParseHeaderFooter(data)
		if err != nil {
			p.degrade(name, err)
			continue
		}
		if isHeader {
			if doc.Headers == nil {
				doc.Headers = make(map[string]model.HeaderFooter)
			}
			doc.Headers[name] = hf
		} else {
			if doc.Footers == nil {
				doc.Footers = make(map[string]model.HeaderFooter)
			}
			doc.Footers[name] = hf
		}
	}
	return nil
}

func (p *partLoader) notes(ctx context.Context, doc *model.Document) error {
	if data, ok, err := p.read(ctx, PartComments); err != nil {
		return err
	} else if ok {
		if comments, err := extractor.ParseComments(data); err != nil {
			p.degrade(PartComments, err)
		} else {
			doc.Comments = comments
		}
	}
	if data, ok, err := p.read(ctx, PartFootnotes); err != nil {
		return err
	} else if ok {
		if notes, err := extractor.ParseFootnotes(data); err != nil {
			p.degrade(PartFootnotes, err)
		} else {
			doc.Footnotes = notes
		}
	}
	if data, ok, err := p.read(ctx, PartEndnotes); err != nil {
		return err
	} else if ok {
		if notes, err := extractor.ParseEndnotes(data); err != nil {
			p.degrade(PartEndnotes, err)
		} else {
			doc.Endnotes = notes
		}
	}
	return nil
}

// resources collects the raw styling parts verbatim and parses the theme,
// numbering formats and main-part relationships from the same bytes.
func (p *partLoader) resources(ctx context.Context, doc *model.Document) (map[string]map[int]string, error) {
	res := &model.Resources{}
	found := false
	grab := func(name string, dst *string) error {
		data, ok, err := p.read(ctx, name)
		if err != nil {
			return err
		}
		if ok {
			*dst = string(data)
			found = true
		}
		return nil
	}
	if err := grab(PartStyles, &res.Styles); err != nil {
		return nil, err
	}
	if err := grab(PartNumbering, &res.Numbering); err != nil {
		return nil, err
	}
	if err := grab(PartSettings, &res.Settings); err != nil {
		return nil, err
	}
	if err := grab(PartFontTable, &res.FontTable); err != nil {
		return nil, err
	}
	if err := grab(PartTheme, &res.Theme); err != nil {
		return nil, err
	}
	if found {
		doc.Resources = res
	}

	if res.Theme != "" {
		if theme, err := extractor.ParseTheme([]byte(res.Theme)); err != nil {
			p.degrade(PartTheme, err)
		} else {
			doc.Theme = theme
		}
	}

	var numFormats map[string]map[int]string
	if res.Numbering != "" {
		formats, err := extractor.ParseNumberingFormats([]byte(res.Numbering))
		if err != nil {
			p.degrade(PartNumbering, err)
		} else {
			numFormats = formats
		}
	}

	if data, ok, err := p.read(ctx, PartRels); err != nil {
		return nil, err
	} else if ok {
		if rels, err := extractor.ParseRelationships(data); err != nil {
			p.degrade(PartRels, err)
		} else {
			doc.Relationships = rels
		}
	}
	return numFormats, nil
}

func applyNumberingFormats(paragraphs []model.Paragraph, formats map[string]map[int]string) {
	if formats == nil {
		return
	}
	for i := range paragraphs {
		num := paragraphs[i].Numbering
		if num == nil {
			continue
		}
		if levels, ok := formats[num.NumID]; ok {
			num.Format = levels[num.Level]
		}
	}
}
