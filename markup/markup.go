// Package markup is the boundary over the generic XML tree primitive. It
// parses one part's bytes into an etree element tree and exposes the few
// namespace-prefix-insensitive accessors the extractors need, so the rest
// of the pipeline deals with exactly one tree shape: repeated children are
// always a slice, attributes are matched by local name.
package markup

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ParseError reports malformed XML in one part.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse markup: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Parse returns the root element of one XML part. Unknown namespace
// prefixes never fail; non-UTF-8 encodings are decoded via the declared
// charset label.
func Parse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Err: errors.New("no root element")}
	}
	return root, nil
}

// Children returns the direct child elements whose local name matches,
// ignoring the namespace prefix.
func Children(el *etree.Element, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, ch := range el.ChildElements() {
		if ch.Tag == local {
			out = append(out, ch)
		}
	}
	return out
}

// Child returns the first direct child element with the given local name,
// or nil.
func Child(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, ch := range el.ChildElements() {
		if ch.Tag == local {
			return ch
		}
	}
	return nil
}

// Attr looks up an attribute by local name, ignoring its prefix.
func Attr(el *etree.Element, local string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Key == local {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the attribute value or dflt when absent.
func AttrDefault(el *etree.Element, local, dflt string) string {
	if v, ok := Attr(el, local); ok {
		return v
	}
	return dflt
}

// Text returns the character data directly inside el.
func Text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Text()
}

// BoolAttr interprets the OOXML on/off attribute convention: absent means
// false here (the caller decides what absence of the whole element means).
func BoolAttr(el *etree.Element, local string) bool {
	v, ok := Attr(el, local)
	if !ok {
		return false
	}
	switch v {
	case "1", "true", "on":
		return true
	}
	return false
}
