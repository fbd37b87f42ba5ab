package preview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encodings maps accepted -encoding names to single-byte charmaps.
// "utf8" is handled separately.
var Encodings = map[string]encoding.Encoding{
	"cp1251": charmap.Windows1251,
	"koi8r":  charmap.KOI8R,
	"cp866":  charmap.CodePage866,
	"cp1252": charmap.Windows1252,
}

// Text decodes data using the named encoding. Invalid UTF-8 in "utf8"
// mode is replaced with U+FFFD.
func Text(data []byte, enc string) (string, error) {
	if enc == "utf8" || enc == "utf-8" {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
	}
	e, ok := Encodings[enc]
	if !ok {
		return "", fmt.Errorf("preview: unknown encoding %q", enc)
	}
	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("preview: decode %s: %w", enc, err)
	}
	return string(out), nil
}

// HexDump formats up to limit bytes of data as 16-byte rows with offsets
// and a printable-ASCII column. limit <= 0 dumps everything.
func HexDump(data []byte, limit int) string {
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}

	var sb strings.Builder
	for off := 0; off < len(data); off += 16 {
		row := data[off:min(off+16, len(data))]
		fmt.Fprintf(&sb, "%08x  ", off)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&sb, "%02x ", row[i])
			} else {
				sb.WriteString("   ")
			}
			if i == 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(" |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
