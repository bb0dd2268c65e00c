package charset

import (
	"strings"

	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"github.com/pkg/errors"
)

// Encoding names a byte-to-code-point mapping. The zero value is invalid;
// use UTF8, Narrow, or ResolveEncoding.
type Encoding struct {
	name   string
	narrow bool
	xenc   encoding.Encoding // nil for UTF8 and for the identity (Latin-1) narrow mapping
}

func (e Encoding) String() string { return e.name }

// UTF8 is the standard multi-byte encoding.
var UTF8 = Encoding{name: "utf-8"}

// Narrow is the identity single-byte encoding: byte value == code point.
var Narrow = Encoding{name: "narrow", narrow: true}

// ResolveEncoding looks up a named single-byte encoding (e.g. "latin1",
// "windows-1252") through golang.org/x/net/html/charset, the same lookup
// the teacher used for XML charset detection. "utf-8"/"utf8" always
// resolve to UTF8 without a lookup.
func ResolveEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8", "":
		return UTF8, nil
	case "narrow", "latin1", "iso-8859-1":
		return Narrow, nil
	}
	enc, canonical := htmlcharset.Lookup(name)
	if enc == nil {
		return Encoding{}, errors.Errorf("unknown encoding %q", name)
	}
	return Encoding{name: canonical, narrow: true, xenc: enc}, nil
}

// Decode reads one code point from the front of b under enc, returning the
// code point and the number of bytes consumed.
func Decode(b []byte, enc Encoding) (cp rune, size int, err error) {
	if len(b) == 0 {
		return 0, 0, errors.Wrap(ErrInvalidEncoding, "empty input")
	}
	if enc.narrow {
		return decodeNarrow(b[0], enc)
	}
	return decodeUTF8(b)
}

func decodeNarrow(b byte, enc Encoding) (rune, int, error) {
	if enc.xenc == nil {
		return rune(b), 1, nil
	}
	out, err := enc.xenc.NewDecoder().Bytes([]byte{b})
	if err != nil || len(out) == 0 {
		return 0, 0, errors.Wrapf(ErrInvalidEncoding, "byte 0x%02x under %s", b, enc)
	}
	cp, n := decodeUTF8Rune(out)
	if n == 0 {
		return 0, 0, errors.Wrapf(ErrInvalidEncoding, "byte 0x%02x under %s", b, enc)
	}
	return cp, 1, nil
}

// decodeUTF8 performs a strict UTF-8 decode of the leading code point in b,
// rejecting overlong encodings, lone/short continuation sequences, and
// encoded surrogate halves.
func decodeUTF8(b []byte) (rune, int, error) {
	cp, n := decodeUTF8Rune(b)
	if n == 0 {
		return 0, 0, errors.Wrap(ErrInvalidEncoding, "malformed utf-8 sequence")
	}
	return cp, n, nil
}

// decodeUTF8Rune returns (0, 0) on any malformed sequence instead of the
// substitution-character behavior of unicode/utf8.DecodeRune, since callers
// must distinguish "invalid" from "U+FFFD was actually in the input".
func decodeUTF8Rune(b []byte) (rune, int) {
	lead := b[0]
	switch {
	case lead < 0x80:
		return rune(lead), 1
	case lead&0xE0 == 0xC0:
		return decodeMultiByte(b, 2, rune(lead&0x1F), 0x80)
	case lead&0xF0 == 0xE0:
		return decodeMultiByte(b, 3, rune(lead&0x0F), 0x800)
	case lead&0xF8 == 0xF0:
		return decodeMultiByte(b, 4, rune(lead&0x07), 0x10000)
	default:
		return 0, 0
	}
}

func decodeMultiByte(b []byte, size int, leadBits rune, minValue rune) (rune, int) {
	if len(b) < size {
		return 0, 0
	}
	cp := leadBits
	for i := 1; i < size; i++ {
		c := b[i]
		if c&0xC0 != 0x80 {
			return 0, 0
		}
		cp = cp<<6 | rune(c&0x3F)
	}
	if cp < minValue || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return 0, 0
	}
	return cp, size
}

// Encode renders cp as bytes under enc.
func Encode(cp rune, enc Encoding) ([]byte, error) {
	if cp < 0 || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return nil, errors.Wrapf(ErrInvalidEncoding, "code point %#x out of range", cp)
	}
	if enc.narrow {
		if enc.xenc == nil {
			if cp > 0xFF {
				return nil, errors.Wrapf(ErrInvalidEncoding, "code point %#x does not fit %s", cp, enc)
			}
			return []byte{byte(cp)}, nil
		}
		out, err := enc.xenc.NewEncoder().Bytes(encodeUTF8(cp))
		if err != nil || len(out) != 1 {
			return nil, errors.Wrapf(ErrInvalidEncoding, "code point %#x does not fit %s", cp, enc)
		}
		return out, nil
	}
	return encodeUTF8(cp), nil
}

func encodeUTF8(cp rune) []byte {
	switch {
	case cp < 0x80:
		return []byte{byte(cp)}
	case cp < 0x800:
		return []byte{
			byte(0xC0 | cp>>6),
			byte(0x80 | cp&0x3F),
		}
	case cp < 0x10000:
		return []byte{
			byte(0xE0 | cp>>12),
			byte(0x80 | (cp>>6)&0x3F),
			byte(0x80 | cp&0x3F),
		}
	default:
		return []byte{
			byte(0xF0 | cp>>18),
			byte(0x80 | (cp>>12)&0x3F),
			byte(0x80 | (cp>>6)&0x3F),
			byte(0x80 | cp&0x3F),
		}
	}
}
