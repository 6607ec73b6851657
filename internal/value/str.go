package value

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash/crc32"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lumenlang/lumen/internal/langerr"
)

// Str is a UTF-8 string, value-typed: copies are independent.
type Str string

func (s Str) ClassName() string { return "Str" }
func (s Str) Display() string   { return string(s) }
func (s Str) Inspect() string   { return "\"" + string(s) + "\"" }
func (s Str) Docstring() string { return "" }
func (s Str) ID() int64         { return int64(crc32.ChecksumIEEE([]byte(s))) }

var titleCaser = cases.Title(language.Und)

// Upper/Lower/Capitalize/Title are the case-transform surface. Title is
// Unicode-aware (golang.org/x/text/cases), not a naive byte-wise
// transform.
func (s Str) Upper() Str { return Str(strings.ToUpper(string(s))) }
func (s Str) Lower() Str { return Str(strings.ToLower(string(s))) }

func (s Str) Capitalize() Str {
	r := []rune(string(s))
	if len(r) == 0 {
		return s
	}
	return Str(string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:])))
}

func (s Str) Title() Str { return Str(titleCaser.String(string(s))) }

func (s Str) Trim() Str  { return Str(strings.TrimSpace(string(s))) }
func (s Str) LTrim() Str { return Str(strings.TrimLeft(string(s), " \t\n\r")) }
func (s Str) RTrim() Str { return Str(strings.TrimRight(string(s), " \t\n\r")) }

func (s Str) IsAlpha() Bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range string(s) {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (s Str) IsDigit() Bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range string(s) {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (s Str) IsSpace() Bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range string(s) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (s Str) Contains(sub Str) Bool    { return Bool(strings.Contains(string(s), string(sub))) }
func (s Str) StartsWith(p Str) Bool    { return Bool(strings.HasPrefix(string(s), string(p))) }
func (s Str) EndsWith(p Str) Bool      { return Bool(strings.HasSuffix(string(s), string(p))) }
func (s Str) IndexOf(sub Str) Int      { return Int(strings.Index(string(s), string(sub))) }
func (s Str) Count(sub Str) Int        { return Int(strings.Count(string(s), string(sub))) }

// Slice returns s[start:end] with Python-style negative indices counted
// from the end.
func (s Str) Slice(start, end int) (Str, error) {
	r := []rune(string(s))
	n := len(r)
	start = normalizeIndex(start, n)
	end = normalizeIndex(end, n)
	start = clamp(start, 0, n)
	end = clamp(end, 0, n)
	if start > end {
		return "", nil
	}
	return Str(string(r[start:end])), nil
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}

// Split implements `split(delim)`, with an empty delimiter splitting
// per-character.
func (s Str) Split(delim Str) []Value {
	var parts []string
	if delim == "" {
		for _, r := range string(s) {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(string(s), string(delim))
	}
	out := make([]Value, len(parts))
	for i, p := range parts {
		out[i] = Str(p)
	}
	return out
}

// Hash implements `.hash(algorithm)`, producing a hex digest for one of
// {md5, sha1, sha256, sha512, crc32}. Every supported algorithm ships in
// the standard library.
func (s Str) Hash(algorithm string) (Str, error) {
	data := []byte(s)
	switch algorithm {
	case "md5":
		sum := md5.Sum(data)
		return Str(hex.EncodeToString(sum[:])), nil
	case "sha1":
		sum := sha1.Sum(data)
		return Str(hex.EncodeToString(sum[:])), nil
	case "sha256":
		sum := sha256.Sum256(data)
		return Str(hex.EncodeToString(sum[:])), nil
	case "sha512":
		sum := sha512.Sum512(data)
		return Str(hex.EncodeToString(sum[:])), nil
	case "crc32":
		sum := crc32.ChecksumIEEE(data)
		return Str(hex.EncodeToString([]byte{byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum)})), nil
	default:
		return "", langerr.Value("unsupported hash algorithm %q", algorithm)
	}
}
