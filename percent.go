/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package weburl

import "strings"

const upperHex = "0123456789ABCDEF"

// PercentEncode encodes input's UTF-8 bytes, escaping any byte that is a
// member of set (treating the byte as its own code-point value) as "%XX" in
// uppercase hex. If spaceAsPlus is true, U+0020 is emitted as '+' instead.
func PercentEncode(input string, set CharacterSet, spaceAsPlus bool) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case spaceAsPlus && c == 0x20:
			b.WriteByte('+')
		case set.Contains(rune(c)):
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0xF])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// PercentEncodeRune is PercentEncode(string(c), set, false), the
// single-code-point encode overload.
func PercentEncodeRune(c rune, set CharacterSet) string {
	return PercentEncode(string(c), set, false)
}

// PercentDecode decodes input's UTF-8 bytes, passing through any byte that
// is not '%'. A '%' followed by two ASCII hex digits is decoded to the
// corresponding byte; otherwise the '%' is passed through unchanged and
// scanning resumes at the next byte.
func PercentDecode(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c != '%' || i+2 >= len(input) {
			b.WriteByte(c)
			continue
		}
		hi, lo := rune(input[i+1]), rune(input[i+2])
		if !IsASCIIHexDigit(hi) || !IsASCIIHexDigit(lo) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte(byte(hexVal(hi)<<4 | hexVal(lo)))
		i += 2
	}
	return b.String()
}

// isValidPercentEncodedAt reports whether remaining, the code points after a
// '%' at the cursor's current position, starts with two ASCII hex digits;
// the parser uses it to flag invalid-url-unit without consuming the
// lookahead.
func isValidPercentEncodedAt(remaining []rune) bool {
	return len(remaining) >= 2 && IsASCIIHexDigit(remaining[0]) && IsASCIIHexDigit(remaining[1])
}
