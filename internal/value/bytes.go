package value

import (
	"encoding/hex"
	"hash/crc32"

	"github.com/dustin/go-humanize"
)

// Bytes is a raw byte sequence, value-typed: copies are independent.
type Bytes []byte

func (b Bytes) ClassName() string { return "Bytes" }
func (b Bytes) Display() string   { return string(b) }

// Inspect renders a human-readable size alongside the hex preview, using
// go-humanize, so
// that large byte buffers don't dump megabytes of hex into a REPL or log.
func (b Bytes) Inspect() string {
	if len(b) > 32 {
		return "Bytes(" + humanize.Bytes(uint64(len(b))) + ", " + hex.EncodeToString(b[:32]) + "...)"
	}
	return "Bytes(" + hex.EncodeToString(b) + ")"
}
func (b Bytes) Docstring() string { return "" }

// ID is content-derived so that repeated reads of the same binding yield
// the same id without Bytes needing mutable storage
// of its own for a memoized counter value.
func (b Bytes) ID() int64 { return int64(crc32.ChecksumIEEE(b)) }
