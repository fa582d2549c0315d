package docx

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"path"
	"strings"

	// Raster decoders for media dimension sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/wudi/docxkit/model"
	"github.com/wudi/docxkit/observability"
)

var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
}

// media collects every media entry, base64-encodes it as a data URI and
// keys it by archive path. Raster entries get their pixel dimensions
// sniffed from the header; a sniff failure leaves the dimensions at zero.
func (p *partLoader) media(ctx context.Context, names []string, doc *model.Document) error {
	for _, name := range names {
		if !strings.HasPrefix(name, mediaPrefix) {
			continue
		}
		contentType, ok := mediaTypes[strings.ToLower(path.Ext(name))]
		if !ok {
			continue
		}
		data, ok, err := p.read(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		img := model.Image{
			Path:        name,
			ContentType: contentType,
			DataURI:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		}
		if contentType != "image/svg+xml" {
			if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
				img.Width = cfg.Width
				img.Height = cfg.Height
			} else {
				p.log.Debug("media dimension sniff failed",
					observability.String("entry", name), observability.Error("err", err))
			}
		}
		if doc.Images == nil {
			doc.Images = make(map[string]model.Image)
		}
		doc.Images[name] = img
	}
	return nil
}
