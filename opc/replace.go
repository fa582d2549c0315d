package opc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Replace returns a new archive identical to buf except that the named
// entry's content is data. Entry order and directory markers are preserved;
// untouched entries are copied in their original compressed form, so they
// stay byte-identical. When name is absent the replacement is silently
// dropped and no entry is added.
func Replace(buf []byte, name string, data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, &ArchiveOpenError{Err: err}
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		if f.Name == name && !f.FileInfo().IsDir() {
			if err := writeReplacement(zw, f, data); err != nil {
				zw.Close()
				return nil, err
			}
			continue
		}
		if err := copyRaw(zw, f); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return out.Bytes(), nil
}

// writeReplacement re-encodes the substituted entry with Deflate. The
// header keeps the original name and timestamp so a repeated replacement
// with the same data reproduces the archive byte-for-byte.
func writeReplacement(zw *zip.Writer, f *zip.File, data []byte) error {
	hdr := &zip.FileHeader{
		Name:     f.Name,
		Comment:  f.Comment,
		Method:   zip.Deflate,
		Modified: f.Modified,
	}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("create entry %q: %w", f.Name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write entry %q: %w", f.Name, err)
	}
	return nil
}

// copyRaw transfers one entry without decompressing it.
func copyRaw(zw *zip.Writer, f *zip.File) error {
	hdr := f.FileHeader
	w, err := zw.CreateRaw(&hdr)
	if err != nil {
		return fmt.Errorf("create entry %q: %w", f.Name, err)
	}
	rr, err := f.OpenRaw()
	if err != nil {
		return fmt.Errorf("open entry %q: %w", f.Name, err)
	}
	if _, err := io.Copy(w, rr); err != nil {
		return fmt.Errorf("copy entry %q: %w", f.Name, err)
	}
	return nil
}
