package splice

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// SuffixGenerator produces the fresh token used to rename an imported relationship.
// The token becomes part of both the id ("id_<token>") and the part file name
// ("<token>_image1.png"), so it must be safe in both.
type SuffixGenerator interface {
	Next() string
}

// UUIDSuffix draws suffixes from random UUIDs.
type UUIDSuffix struct {
	// Length truncates the dashless UUID; zero means 12 hex characters.
	Length int
}

const defaultUUIDSuffixLength = 12

func (g UUIDSuffix) Next() string {
	n := g.Length
	if n <= 0 {
		n = defaultUUIDSuffixLength
	}
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(token) {
		n = len(token)
	}
	return token[:n]
}

// CounterSuffix yields a deterministic sequence "1", "2", ... It is safe for concurrent
// use, and is mostly useful for reproducible output and tests.
type CounterSuffix struct {
	n atomic.Uint64
}

func (g *CounterSuffix) Next() string {
	return strconv.FormatUint(g.n.Add(1), 10)
}
