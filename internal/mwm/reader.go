package mwm

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const (
	maxVarintLen = 10
	maxStringLen = 16 << 20
)

// Reader decodes MWM wire primitives from a seekable stream.
//
// The first failure is kept: every later read returns the zero value and
// Err reports the original cause, so section decoders can read linearly and
// check once.
type Reader struct {
	rs   io.ReadSeeker
	off  int64
	err  error
	buf  [4]byte
	text *encoding.Decoder
}

// NewReader returns a Reader positioned at the stream's current offset.
func NewReader(rs io.ReadSeeker) *Reader {
	off, err := rs.Seek(0, io.SeekCurrent)
	r := &Reader{rs: rs, off: off, text: unicode.UTF8.NewDecoder()}
	if err != nil {
		r.err = errors.Wrap(err, "mwm: seek")
	}
	return r
}

// Err returns the first error encountered, or nil.
func (r *Reader) Err() error { return r.err }

// Offset returns the absolute stream position of the next read.
func (r *Reader) Offset() int64 { return r.off }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) fill(p []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.rs, p)
	r.off += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		r.fail(errors.Wrapf(ErrStreamTruncated, "need %d bytes at offset %d, got %d", len(p), r.off-int64(n), n))
		return false
	}
	if err != nil {
		r.fail(errors.Wrapf(err, "mwm: read at offset %d", r.off))
		return false
	}
	return true
}

// annotate adds context to a pending error.
func (r *Reader) annotate(format string, args ...interface{}) {
	if r.err != nil {
		r.err = errors.Wrapf(r.err, format, args...)
	}
}

// SeekTo moves to an absolute offset.
func (r *Reader) SeekTo(offset int64) {
	if r.err != nil {
		return
	}
	if offset < 0 {
		r.fail(formatErrorf("seek to negative offset %d", offset))
		return
	}
	off, err := r.rs.Seek(offset, io.SeekStart)
	if err != nil {
		r.fail(errors.Wrapf(err, "mwm: seek to %d", offset))
		return
	}
	r.off = off
}

// Skip discards n bytes.
func (r *Reader) Skip(n int64) {
	if r.err != nil || n <= 0 {
		return
	}
	copied, err := io.CopyN(io.Discard, r.rs, n)
	r.off += copied
	if err == io.EOF {
		r.fail(errors.Wrapf(ErrStreamTruncated, "skip %d bytes at offset %d, got %d", n, r.off-copied, copied))
	} else if err != nil {
		r.fail(errors.Wrapf(err, "mwm: skip at offset %d", r.off))
	}
}

// ReadVarint reads an unsigned little-endian base-128 integer.
func (r *Reader) ReadVarint() uint64 {
	var v uint64
	b := r.buf[:1]
	for i := 0; i < maxVarintLen; i++ {
		if !r.fill(b) {
			return 0
		}
		v |= uint64(b[0]&0x7f) << (7 * i)
		if b[0]&0x80 == 0 {
			return v
		}
	}
	r.fail(formatErrorf("varint longer than %d bytes at offset %d", maxVarintLen, r.off))
	return 0
}

// ReadString reads a varint length followed by that many bytes of UTF-8.
func (r *Reader) ReadString() string {
	n := r.ReadVarint()
	if r.err != nil || n == 0 {
		return ""
	}
	if n > maxStringLen {
		r.fail(formatErrorf("string length %d at offset %d", n, r.off))
		return ""
	}
	raw := make([]byte, n)
	if !r.fill(raw) {
		return ""
	}
	decoded, err := r.text.Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// ReadHalf reads a 16-bit half-precision float.
func (r *Reader) ReadHalf() float32 {
	b := r.buf[:2]
	if !r.fill(b) {
		return 0
	}
	return HalfToFloat32(binary.LittleEndian.Uint16(b))
}

// ReadLong reads a signed 32-bit little-endian integer.
func (r *Reader) ReadLong() int32 {
	b := r.buf[:4]
	if !r.fill(b) {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

// ReadUint32 reads 4 raw little-endian bytes.
func (r *Reader) ReadUint32() uint32 {
	b := r.buf[:4]
	if !r.fill(b) {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// ReadFloat reads a little-endian IEEE-754 binary32.
func (r *Reader) ReadFloat() float32 {
	return math.Float32frombits(r.ReadUint32())
}

// ReadBool reads one byte that must be 0 or 1.
func (r *Reader) ReadBool() bool {
	b := r.buf[:1]
	if !r.fill(b) {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	}
	r.fail(formatErrorf("boolean byte 0x%02x at offset %d", b[0], r.off-1))
	return false
}

// ReadCount reads a 32-bit element count and rejects negative values.
func (r *Reader) ReadCount(what string) int {
	n := r.ReadLong()
	if n < 0 {
		r.fail(formatErrorf("negative %s count %d at offset %d", what, n, r.off-4))
		return 0
	}
	return int(n)
}

// capHint bounds slice preallocation so a corrupt count cannot force a huge allocation.
func capHint(n int) int {
	const limit = 1 << 16
	if n > limit {
		return limit
	}
	return n
}
