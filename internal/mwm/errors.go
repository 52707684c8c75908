package mwm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors. Every decode failure matches exactly one of them with errors.Is.
var (
	ErrStreamTruncated = errors.New("mwm: stream truncated")
	ErrFormat          = errors.New("mwm: format error")
	ErrIndexIntegrity  = errors.New("mwm: index integrity")
)

// IndexIntegrityError reports a triangle index that has no entry in its part's vertex map.
type IndexIntegrityError struct {
	Part  int
	Face  int
	Index int32
}

func (e *IndexIntegrityError) Error() string {
	return fmt.Sprintf("mwm: part %d face %d: index %d missing from vertex map", e.Part, e.Face, e.Index)
}

func (e *IndexIntegrityError) Is(target error) bool {
	return target == ErrIndexIntegrity
}

func formatErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrFormat, format, args...)
}
