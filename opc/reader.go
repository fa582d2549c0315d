// Package opc provides safe access to the ZIP container of an Open
// Packaging Conventions document. Every read path validates entry names and
// enforces decompression limits before bytes reach a caller; Replace
// rewrites one part while keeping every other entry byte-identical.
package opc

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/flate"
	"golang.org/x/sync/errgroup"

	"github.com/wudi/docxkit/observability"
)

const (
	copyChunkSize    = 32 * 1024
	defaultCacheSize = 32
	maxReadWorkers   = 4
)

// Reader wraps one in-memory archive buffer. It is safe for concurrent use.
// The aggregate size cap applies to all reads made through one Reader.
type Reader struct {
	zr     *zip.Reader
	limits Limits
	log    observability.Logger
	cache  *lru.Cache[string, []byte]
	total  atomic.Int64
}

type readerConfig struct {
	limits    Limits
	log       observability.Logger
	cacheSize int
}

// Option configures a Reader.
type Option func(*readerConfig)

// WithLimits overrides the default security limits.
func WithLimits(l Limits) Option {
	return func(c *readerConfig) { c.limits = l }
}

// WithLogger attaches a logger; guard trips are reported at Warn.
func WithLogger(log observability.Logger) Option {
	return func(c *readerConfig) { c.log = log }
}

// WithCacheSize bounds the per-handle cache of decompressed parts. A size
// of zero or less disables caching.
func WithCacheSize(n int) Option {
	return func(c *readerConfig) { c.cacheSize = n }
}

// NewReader opens an archive held entirely in buf. It fails with
// *ArchiveOpenError when buf is not a valid ZIP archive.
func NewReader(buf []byte, opts ...Option) (*Reader, error) {
	cfg := readerConfig{
		limits:    DefaultLimits(),
		log:       observability.NopLogger{},
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, &ArchiveOpenError{Err: err}
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	r := &Reader{zr: zr, limits: cfg.limits.withDefaults(), log: cfg.log}
	if cfg.cacheSize > 0 {
		// lru.New only fails on a non-positive size.
		r.cache, _ = lru.New[string, []byte](cfg.cacheSize)
	}
	return r, nil
}

// Entries returns the entry names in archive order, directories included.
func (r *Reader) Entries() []string {
	names := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Read returns the decompressed content of the named entry. The second
// return is false when the entry does not exist; that is not an error.
func (r *Reader) Read(ctx context.Context, name string) ([]byte, bool, error) {
	if err := validatePath(name); err != nil {
		r.log.Warn("rejected entry name", observability.String("name", name), observability.Error("reason", err))
		return nil, false, err
	}
	if r.cache != nil {
		if data, ok := r.cache.Get(name); ok {
			return data, true, nil
		}
	}
	for _, f := range r.zr.File {
		if f.Name != name || f.FileInfo().IsDir() {
			continue
		}
		data, err := r.readFile(ctx, f)
		if err != nil {
			return nil, false, err
		}
		if r.cache != nil {
			r.cache.Add(name, data)
		}
		return data, true, nil
	}
	return nil, false, nil
}

// ReadAll decompresses every non-directory entry concurrently. All entry
// names are validated before any decompression begins, so an adversarial
// name fails the whole call without yielding any bytes.
func (r *Reader) ReadAll(ctx context.Context) (map[string][]byte, error) {
	var files []*zip.File
	for _, f := range r.zr.File {
		if err := validatePath(f.Name); err != nil {
			r.log.Warn("rejected entry name", observability.String("name", f.Name), observability.Error("reason", err))
			return nil, err
		}
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}

	out := make(map[string][]byte, len(files))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxReadWorkers)
	for _, f := range files {
		f := f
		g.Go(func() error {
			data, err := r.readFile(gctx, f)
			if err != nil {
				return err
			}
			mu.Lock()
			out[f.Name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// readFile streams one entry through the guard checks in fixed chunks so an
// oversized or disproportionate entry aborts mid-decompression instead of
// after the full allocation.
func (r *Reader) readFile(ctx context.Context, f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, &ArchiveOpenError{Err: fmt.Errorf("open entry %q: %w", f.Name, err)}
	}
	defer rc.Close()

	compressed := int64(f.CompressedSize64)
	var buf bytes.Buffer
	if hint := preallocHint(int64(f.UncompressedSize64), compressed, r.limits); hint > 0 {
		buf.Grow(int(hint))
	}

	chunk := make([]byte, copyChunkSize)
	var entryTotal int64
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		n, err := rc.Read(chunk)
		if n > 0 {
			entryTotal += int64(n)
			if entryTotal > r.limits.MaxEntrySize {
				r.log.Warn("entry size guard tripped", observability.String("name", f.Name), observability.Int64("bytes", entryTotal))
				return nil, &EntryTooLargeError{Name: f.Name, Limit: r.limits.MaxEntrySize}
			}
			if r.total.Add(int64(n)) > r.limits.MaxArchiveSize {
				r.log.Warn("archive size guard tripped", observability.String("name", f.Name))
				return nil, &ArchiveTooLargeError{Name: f.Name, Limit: r.limits.MaxArchiveSize}
			}
			if compressed > 0 && float64(entryTotal)/float64(compressed) > r.limits.MaxCompressionRatio {
				r.log.Warn("compression ratio guard tripped",
					observability.String("name", f.Name),
					observability.Float64("ratio", float64(entryTotal)/float64(compressed)))
				return nil, &CompressionBombError{Name: f.Name, Ratio: r.limits.MaxCompressionRatio}
			}
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ArchiveOpenError{Err: fmt.Errorf("read entry %q: %w", f.Name, err)}
		}
	}
	return buf.Bytes(), nil
}

// preallocHint bounds the buffer pre-allocation for one entry. The declared
// uncompressed size is attacker-controlled, so it is clamped to what the
// guards would let through anyway: the ratio budget for this compressed size
// and the per-entry cap. A bomb then trips its guard having allocated only
// the budget, never the declared size.
func preallocHint(declared, compressed int64, limits Limits) int64 {
	if declared <= 0 || compressed <= 0 {
		return 0
	}
	if budget := int64(limits.MaxCompressionRatio * float64(compressed)); declared > budget {
		declared = budget
	}
	if declared > limits.MaxEntrySize {
		declared = limits.MaxEntrySize
	}
	return declared
}

// validatePath rejects entry names that could escape the archive root or
// smuggle control bytes into downstream path handling.
func validatePath(name string) error {
	if name == "" {
		return &UnsafePathError{Name: name, Reason: "empty name"}
	}
	if strings.ContainsAny(name, "\x00\r\n") {
		return &UnsafePathError{Name: name, Reason: "control byte in name"}
	}
	if strings.Contains(name, `\`) {
		return &UnsafePathError{Name: name, Reason: "backslash in name"}
	}
	if strings.HasPrefix(name, "/") {
		return &UnsafePathError{Name: name, Reason: "absolute path"}
	}
	if len(name) >= 2 && name[1] == ':' && isDriveLetter(name[0]) {
		return &UnsafePathError{Name: name, Reason: "drive letter prefix"}
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return &UnsafePathError{Name: name, Reason: "parent directory segment"}
		}
	}
	return nil
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// List returns the entry names of buf in archive order.
func List(buf []byte) ([]string, error) {
	r, err := NewReader(buf, WithCacheSize(0))
	if err != nil {
		return nil, err
	}
	return r.Entries(), nil
}

// ReadEntry is a one-shot convenience over NewReader and Reader.Read.
func ReadEntry(ctx context.Context, buf []byte, name string) ([]byte, bool, error) {
	r, err := NewReader(buf, WithCacheSize(0))
	if err != nil {
		return nil, false, err
	}
	return r.Read(ctx, name)
}

// ReadAllEntries is a one-shot convenience over NewReader and Reader.ReadAll.
func ReadAllEntries(ctx context.Context, buf []byte) (map[string][]byte, error) {
	r, err := NewReader(buf, WithCacheSize(0))
	if err != nil {
		return nil, err
	}
	return r.ReadAll(ctx)
}
