package mwm

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestReadVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, 0x1fffff, 0x200000, 1<<28 - 1, 1 << 28, 1<<35 - 1}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		values = append(values, uint64(rng.Int63n(1<<35)))
	}

	for _, v := range values {
		enc := binary.AppendUvarint(nil, v)
		// Trailing bytes must not be consumed.
		br := bytes.NewReader(append(enc, 0xff, 0xff))
		r := NewReader(br)
		got := r.ReadVarint()
		if err := r.Err(); err != nil {
			t.Fatalf("ReadVarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("ReadVarint = %d, want %d", got, v)
		}
		if r.Offset() != int64(len(enc)) || br.Len() != 2 {
			t.Errorf("ReadVarint(%d) consumed %d bytes, want %d", v, r.Offset(), len(enc))
		}
	}
}

func TestReadVarintTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x80, 0x80}))
	if v := r.ReadVarint(); v != 0 {
		t.Errorf("ReadVarint = %d, want 0 on failure", v)
	}
	if !errors.Is(r.Err(), ErrStreamTruncated) {
		t.Errorf("err = %v, want ErrStreamTruncated", r.Err())
	}
}

func TestReadVarintTooLong(t *testing.T) {
	r := NewReader(bytes.NewReader(bytes.Repeat([]byte{0xff}, 11)))
	r.ReadVarint()
	if !errors.Is(r.Err(), ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", r.Err())
	}
}

func TestReadString(t *testing.T) {
	var f fixture
	f.str("Version:1066002").str("").str("Ünïcødé")
	r := NewReader(f.reader())
	for _, want := range []string{"Version:1066002", "", "Ünïcødé"} {
		if got := r.ReadString(); got != want {
			t.Errorf("ReadString = %q, want %q", got, want)
		}
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{3, 'a', 0xff, 'b'}))
	if got := r.ReadString(); got != "a\uFFFDb" {
		t.Errorf("ReadString = %q, want replacement character", got)
	}
}

func TestReadStringTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{5, 'a', 'b'}))
	r.ReadString()
	if !errors.Is(r.Err(), ErrStreamTruncated) {
		t.Errorf("err = %v, want ErrStreamTruncated", r.Err())
	}
}

func TestReadScalars(t *testing.T) {
	var f fixture
	f.long(-2).long(math.MaxInt32).float(3.5).float(float32(math.Inf(-1))).boolean(true).boolean(false)
	r := NewReader(f.reader())

	if got := r.ReadLong(); got != -2 {
		t.Errorf("ReadLong = %d, want -2", got)
	}
	if got := r.ReadLong(); got != math.MaxInt32 {
		t.Errorf("ReadLong = %d, want MaxInt32", got)
	}
	if got := r.ReadFloat(); got != 3.5 {
		t.Errorf("ReadFloat = %v, want 3.5", got)
	}
	if got := r.ReadFloat(); !math.IsInf(float64(got), -1) {
		t.Errorf("ReadFloat = %v, want -Inf", got)
	}
	if !r.ReadBool() {
		t.Error("ReadBool = false, want true")
	}
	if r.ReadBool() {
		t.Error("ReadBool = true, want false")
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestReadBoolRejectsOtherBytes(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{2}))
	r.ReadBool()
	if !errors.Is(r.Err(), ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", r.Err())
	}
}

func TestReaderErrorIsSticky(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 0}))
	r.ReadLong()
	first := r.Err()
	if !errors.Is(first, ErrStreamTruncated) {
		t.Fatalf("err = %v, want ErrStreamTruncated", first)
	}
	r.SeekTo(0)
	if got := r.ReadBool(); got {
		t.Error("read after failure returned a value")
	}
	if r.Err() != first {
		t.Errorf("err changed to %v", r.Err())
	}
}

func TestReaderSeekAndSkip(t *testing.T) {
	var f fixture
	f.long(10).long(20).long(30)
	r := NewReader(f.reader())
	r.SeekTo(8)
	if got := r.ReadLong(); got != 30 {
		t.Errorf("after SeekTo(8) ReadLong = %d, want 30", got)
	}
	r.SeekTo(0)
	r.Skip(4)
	if got := r.ReadLong(); got != 20 {
		t.Errorf("after Skip(4) ReadLong = %d, want 20", got)
	}
	r.Skip(8)
	if !errors.Is(r.Err(), ErrStreamTruncated) {
		t.Errorf("Skip past end: err = %v, want ErrStreamTruncated", r.Err())
	}

	r = NewReader(f.reader())
	r.SeekTo(-1)
	if !errors.Is(r.Err(), ErrFormat) {
		t.Errorf("SeekTo(-1): err = %v, want ErrFormat", r.Err())
	}
}

func TestReadCountNegative(t *testing.T) {
	var f fixture
	f.long(-1)
	r := NewReader(f.reader())
	if n := r.ReadCount("part"); n != 0 {
		t.Errorf("ReadCount = %d, want 0", n)
	}
	if !errors.Is(r.Err(), ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", r.Err())
	}
}
