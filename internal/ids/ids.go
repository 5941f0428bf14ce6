// Package ids produces record identifiers.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier on every call.
type Generator func() string

// NewV7 returns a time-ordered UUID string. It falls back to a random UUID
// if the v7 clock sequence cannot be produced.
func NewV7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Sequence returns a deterministic generator yielding prefix-1, prefix-2, ...
// It is safe for concurrent use.
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
