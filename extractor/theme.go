package extractor

import (
	"github.com/beevik/etree"

	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// ParseTheme extracts word/theme/theme1.xml: the 12-slot color scheme and
// the major/minor font collections.
func ParseTheme(data []byte) (*model.Theme, error) {
	root, err := markup.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Tag != "theme" {
		return nil, nil
	}
	elements := markup.Child(root, "themeElements")
	if elements == nil {
		return nil, nil
	}
	theme := &model.Theme{}
	if clr := markup.Child(elements, "clrScheme"); clr != nil {
		theme.Colors = model.ColorScheme{
			Dark1:             slotColor(clr, "dk1"),
			Light1:            slotColor(clr, "lt1"),
			Dark2:             slotColor(clr, "dk2"),
			Light2:            slotColor(clr, "lt2"),
			Accent1:           slotColor(clr, "accent1"),
			Accent2:           slotColor(clr, "accent2"),
			Accent3:           slotColor(clr, "accent3"),
			Accent4:           slotColor(clr, "accent4"),
			Accent5:           slotColor(clr, "accent5"),
			Accent6:           slotColor(clr, "accent6"),
			Hyperlink:         slotColor(clr, "hlink"),
			FollowedHyperlink: slotColor(clr, "folHlink"),
		}
	}
	if fonts := markup.Child(elements, "fontScheme"); fonts != nil {
		theme.Fonts = model.FontScheme{
			Major: fontCollection(markup.Child(fonts, "majorFont")),
			Minor: fontCollection(markup.Child(fonts, "minorFont")),
		}
	}
	return theme, nil
}

// slotColor resolves one scheme slot. A slot carries exactly one of three
// encodings: a literal sRGB value, a named system color (whose last
// resolved literal is preferred over the symbolic name), or a scheme
// reference. Empty string when none is present.
func slotColor(clrScheme *etree.Element, slot string) string {
	el := markup.Child(clrScheme, slot)
	if el == nil {
		return ""
	}
	if srgb := markup.Child(el, "srgbClr"); srgb != nil {
		return markup.AttrDefault(srgb, "val", "")
	}
	if sys := markup.Child(el, "sysClr"); sys != nil {
		if last := markup.AttrDefault(sys, "lastClr", ""); last != "" {
			return last
		}
		return markup.AttrDefault(sys, "val", "")
	}
	if scheme := markup.Child(el, "schemeClr"); scheme != nil {
		return markup.AttrDefault(scheme, "val", "")
	}
	return ""
}

func fontCollection(font *etree.Element) model.FontCollection {
	var fc model.FontCollection
	if font == nil {
		return fc
	}
	if latin := markup.Child(font, "latin"); latin != nil {
		fc.Latin = markup.AttrDefault(latin, "typeface", "")
	}
	if ea := markup.Child(font, "ea"); ea != nil {
		fc.EastAsian = markup.AttrDefault(ea, "typeface", "")
	}
	if cs := markup.Child(font, "cs"); cs != nil {
		fc.ComplexScript = markup.AttrDefault(cs, "typeface", "")
	}
	return fc
}
