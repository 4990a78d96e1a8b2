package splice

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodePart converts the raw bytes of an archived XML part to text.
//
// Parts are UTF-8 unless they start with a byte order mark; a UTF-8 BOM is dropped and
// UTF-16 input is transcoded. Invalid sequences decode to U+FFFD instead of failing.
func DecodePart(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode part text: %w", err)
	}
	return string(out), nil
}
