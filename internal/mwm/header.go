package mwm

import (
	"strconv"
	"strings"
)

const (
	versionPrefix = "Version:"

	// ClassicMaxVersion is the last version using the positional layout.
	ClassicMaxVersion = 1066002
)

func (d *decoder) readHeader() Header {
	var h Header
	h.Section = d.r.ReadString()
	h.Flag = d.r.ReadLong()
	if d.r.Err() != nil {
		return h
	}
	d.log.Debugf("header section %q flag %d", h.Section, h.Flag)
	if h.Flag == 0 {
		return h
	}

	s := d.r.ReadString()
	if d.r.Err() != nil {
		return h
	}
	v, err := parseVersion(s)
	if err != nil {
		d.r.fail(err)
		return h
	}
	h.Version = v
	return h
}

func parseVersion(s string) (int, error) {
	if !strings.HasPrefix(s, versionPrefix) {
		return 0, formatErrorf("version string %q does not start with %q", s, versionPrefix)
	}
	v, err := strconv.Atoi(strings.TrimSpace(s[len(versionPrefix):]))
	if err != nil {
		return 0, formatErrorf("version number in %q", s)
	}
	return v, nil
}

func (d *decoder) readIndex() IndexTable {
	n := d.r.ReadCount("index")
	index := make(IndexTable, capHint(n))
	for i := 0; i < n && d.r.Err() == nil; i++ {
		name := d.r.ReadString()
		off := d.r.ReadLong()
		index[name] = off
	}
	d.log.Debugf("index table: %d entries", len(index))
	return index
}

// seek moves to a section named in the index table. It reports false when the table has no such entry.
func (d *decoder) seek(name string) bool {
	off, ok := d.index[name]
	if !ok {
		return false
	}
	d.r.SeekTo(int64(off))
	return true
}

func (d *decoder) mustSeek(name string) {
	if d.r.Err() != nil {
		return
	}
	if !d.seek(name) {
		d.r.fail(formatErrorf("index table has no %q section", name))
	}
}
