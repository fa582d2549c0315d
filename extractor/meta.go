package extractor

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// ParseCore extracts docProps/core.xml. A foreign or missing root yields an
// empty struct; the only error source is malformed XML.
func ParseCore(data []byte) (model.CoreProperties, error) {
	var core model.CoreProperties
	root, err := markup.Parse(data)
	if err != nil {
		return core, err
	}
	if root.Tag != "coreProperties" {
		return core, nil
	}
	for _, ch := range root.ChildElements() {
		v := strings.TrimSpace(markup.Text(ch))
		if v == "" {
			continue
		}
		switch ch.Tag {
		case "title":
			core.Title = v
		case "subject":
			core.Subject = v
		case "creator":
			core.Creator = v
		case "keywords":
			core.Keywords = v
		case "description":
			core.Description = v
		case "lastModifiedBy":
			core.LastModifiedBy = v
		case "revision":
			core.Revision = v
		case "category":
			core.Category = v
		case "contentStatus":
			core.ContentStatus = v
		case "created":
			core.Created = parseTime(v)
		case "modified":
			core.Modified = parseTime(v)
		}
	}
	return core, nil
}

// ParseApp extracts docProps/app.xml. Counter fields that fail numeric
// parse are omitted, never zeroed.
func ParseApp(data []byte) (model.AppProperties, error) {
	var app model.AppProperties
	root, err := markup.Parse(data)
	if err != nil {
		return app, err
	}
	if root.Tag != "Properties" {
		return app, nil
	}
	for _, ch := range root.ChildElements() {
		v := strings.TrimSpace(markup.Text(ch))
		if v == "" {
			continue
		}
		switch ch.Tag {
		case "Application":
			app.Application = v
		case "AppVersion":
			app.AppVersion = v
		case "Company":
			app.Company = v
		case "Manager":
			app.Manager = v
		case "TotalTime":
			app.TotalTime = parseCount(v)
		case "Pages":
			app.Pages = parseCount(v)
		case "Words":
			app.Words = parseCount(v)
		case "Characters":
			app.Characters = parseCount(v)
		case "Lines":
			app.Lines = parseCount(v)
		case "Paragraphs":
			app.Paragraphs = parseCount(v)
		}
	}
	return app, nil
}

// ParseCustom extracts docProps/custom.xml into a name -> typed value map.
// Value types are string, int64, float64, bool, time.Time; timestamps that
// fail to parse stay as their raw string.
func ParseCustom(data []byte) (map[string]interface{}, error) {
	root, err := markup.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != "Properties" {
		return nil, nil
	}
	props := make(map[string]interface{})
	for _, prop := range markup.Children(root, "property") {
		name, ok := markup.Attr(prop, "name")
		if !ok || name == "" {
			continue
		}
		values := prop.ChildElements()
		if len(values) == 0 {
			continue
		}
		if v, ok := customValue(values[0]); ok {
			props[name] = v
		}
	}
	if len(props) == 0 {
		return nil, nil
	}
	return props, nil
}

func customValue(el *etree.Element) (interface{}, bool) {
	text := strings.TrimSpace(markup.Text(el))
	switch el.Tag {
	case "lpwstr", "lpstr", "bstr":
		return text, true
	case "i1", "i2", "i4", "i8", "int", "uint":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	case "r4", "r8":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	case "bool":
		return text == "1" || strings.EqualFold(text, "true"), true
	case "filetime", "date":
		if ts := parseTime(text); ts != nil {
			return *ts, true
		}
		// Unparseable timestamps keep their raw form.
		return text, true
	}
	return nil, false
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(v string) *time.Time {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return &ts
		}
	}
	return nil
}

func parseCount(v string) *int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
