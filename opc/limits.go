package opc

// Limits defines security boundaries for reading archive entries. These
// limits prevent resource exhaustion from crafted archives (zip bombs,
// oversized entries). A zero value in any field falls back to its default.
type Limits struct {
	// Maximum decompressed size of one entry. Default: 100 MiB.
	MaxEntrySize int64

	// Maximum total decompressed size across all entries read through one
	// handle. Default: 500 MiB.
	MaxArchiveSize int64

	// Maximum ratio of decompressed output to declared compressed size for
	// one entry, checked incrementally during decompression. Default: 100.
	MaxCompressionRatio float64
}

// DefaultLimits returns a Limits struct with safe default values.
func DefaultLimits() Limits {
	return Limits{
		MaxEntrySize:        100 * 1024 * 1024,
		MaxArchiveSize:      500 * 1024 * 1024,
		MaxCompressionRatio: 100,
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxEntrySize <= 0 {
		l.MaxEntrySize = def.MaxEntrySize
	}
	if l.MaxArchiveSize <= 0 {
		l.MaxArchiveSize = def.MaxArchiveSize
	}
	if l.MaxCompressionRatio <= 0 {
		l.MaxCompressionRatio = def.MaxCompressionRatio
	}
	return l
}
