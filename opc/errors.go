package opc

import "fmt"

// ArchiveOpenError reports a buffer that is not a readable ZIP archive.
type ArchiveOpenError struct {
	Err error
}

func (e *ArchiveOpenError) Error() string { return fmt.Sprintf("open archive: %v", e.Err) }
func (e *ArchiveOpenError) Unwrap() error { return e.Err }

// UnsafePathError reports an adversarial entry name. It is raised before any
// byte of the entry is decompressed.
type UnsafePathError struct {
	Name   string
	Reason string
}

func (e *UnsafePathError) Error() string {
	return fmt.Sprintf("unsafe entry name %q: %s", e.Name, e.Reason)
}

// EntryTooLargeError reports a single entry whose decompressed output
// exceeded the per-entry cap.
type EntryTooLargeError struct {
	Name  string
	Limit int64
}

func (e *EntryTooLargeError) Error() string {
	return fmt.Sprintf("entry %q exceeds decompressed size limit of %d bytes", e.Name, e.Limit)
}

// ArchiveTooLargeError reports that the running decompressed total across
// the archive exceeded the aggregate cap. Name is the entry being read when
// the cap tripped.
type ArchiveTooLargeError struct {
	Name  string
	Limit int64
}

func (e *ArchiveTooLargeError) Error() string {
	return fmt.Sprintf("archive exceeds total decompressed size limit of %d bytes (while reading %q)", e.Limit, e.Name)
}

// CompressionBombError reports an entry whose decompressed output exceeded
// the allowed ratio to its declared compressed size.
type CompressionBombError struct {
	Name  string
	Ratio float64
}

func (e *CompressionBombError) Error() string {
	return fmt.Sprintf("entry %q exceeds compression ratio limit (%.0f:1)", e.Name, e.Ratio)
}
