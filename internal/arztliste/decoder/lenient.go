package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// specialFloats are the non-standard number literals some exporters emit
var specialFloats = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

var null = []byte("null")

// replaceSpecialFloats rewrites bare NaN, Infinity and -Infinity tokens to null.
// String literals and comments are copied unchanged.
func replaceSpecialFloats(raw []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(raw))

	for i := 0; i < len(raw); {
		switch c := raw[i]; {
		case c == '"':
			end := stringEnd(raw, i)
			out.Write(raw[i:end])
			i = end
		case c == '/' && i+1 < len(raw) && raw[i+1] == '/':
			end := bytes.IndexByte(raw[i:], '\n')
			if end < 0 {
				end = len(raw) - i
			}
			out.Write(raw[i : i+end])
			i += end
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			end := bytes.Index(raw[i+2:], []byte("*/"))
			if end < 0 {
				end = len(raw)
			} else {
				end += i + 4
			}
			out.Write(raw[i:end])
			i = end
		default:
			if n := specialFloatAt(raw, i); n > 0 {
				out.Write(null)
				i += n
				continue
			}
			out.WriteByte(c)
			i++
		}
	}
	return out.Bytes()
}

// stringEnd returns the index just past the string literal starting at raw[start]
func stringEnd(raw []byte, start int) int {
	for i := start + 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(raw)
}

// specialFloatAt returns the length of a special float token at raw[i], or 0
func specialFloatAt(raw []byte, i int) int {
	if i > 0 && isIdentByte(raw[i-1]) {
		return 0
	}
	for _, lit := range specialFloats {
		if !bytes.HasPrefix(raw[i:], lit) {
			continue
		}
		if end := i + len(lit); end < len(raw) && isIdentByte(raw[end]) {
			return 0
		}
		return len(lit)
	}
	return 0
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' || c == '.' || c == '+' ||
		'0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// lenientString accepts a JSON string or the raw text of a number or boolean.
// null and a missing field both leave it empty.
type lenientString string

func (s *lenientString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, null):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = lenientString(v)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a scalar value, got %s", firstToken(data))
	default:
		*s = lenientString(data)
	}
	return nil
}

func firstToken(data []byte) string {
	if data[0] == '{' {
		return "object"
	}
	return "array"
}
