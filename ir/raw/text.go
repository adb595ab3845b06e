package raw

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var utf16BOM = []byte{0xFE, 0xFF}

// TextString encodes s as a PDF text string: printable ASCII as is, anything
// else as UTF-16BE with a byte order mark.
func TextString(s string) StringObj {
	if isPlainASCII(s) {
		return Str([]byte(s))
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return Str([]byte(s))
	}
	return Str(b)
}

// DecodeText reverses TextString. Strings without a UTF-16 byte order mark
// are returned unchanged.
func DecodeText(b []byte) string {
	if !bytes.HasPrefix(b, utf16BOM) {
		return string(b)
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf || (c < 0x20 && c != '\n' && c != '\r' && c != '\t') {
			return false
		}
	}
	return true
}
