package dataset

import (
	"bytes"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode detects the encoding of the input data, strips any BOM,
// and returns decoded UTF-8 bytes along with the detected encoding name.
// Roster exports arrive as UTF-8 with BOM, plain UTF-8, UTF-16, or Latin-1.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return data[3:], "utf-8-bom", nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		decoded, err := decodeUTF16(data[2:], false)
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 LE decode failed: %w", err)
		}
		return decoded, "utf-16le", nil
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		decoded, err := decodeUTF16(data[2:], true)
		if err != nil {
			return nil, "", fmt.Errorf("UTF-16 BE decode failed: %w", err)
		}
		return decoded, "utf-16be", nil
	}

	if utf8.Valid(data) {
		return data, "utf-8", nil
	}

	// Latin-1 maps every byte directly to the same Unicode code point,
	// so it always succeeds as the last resort.
	return decodeLatin1(data), "latin-1", nil
}

func decodeUTF16(data []byte, bigEndian bool) ([]byte, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("odd byte count %d for UTF-16 data", len(data))
	}

	units := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}

	var buf bytes.Buffer
	for _, r := range utf16.Decode(units) {
		buf.WriteRune(r)
	}
	return buf.Bytes(), nil
}

func decodeLatin1(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data))
	for _, b := range data {
		buf.WriteRune(rune(b))
	}
	return buf.Bytes()
}
