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

// Package punycode implements the bootstring encoding of Unicode code
// points described in RFC 3492, as used by IDNA.
package punycode

import (
	"errors"
	"strings"
)

const (
	base        = 36
	tMin        = 1
	tMax        = 26
	skew        = 38
	damp        = 700
	initialBias = 72
	initialN    = 0x80
	delimiter   = '-'
)

// ErrOverflow is returned when encoding or decoding would require arithmetic
// beyond what a label of this size can represent.
var ErrOverflow = errors.New("punycode: overflow")

// ErrInvalidInput is returned when a label is not well-formed punycode.
var ErrInvalidInput = errors.New("punycode: invalid input")

func adapt(delta, numPoints int, firstTime bool) int {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := 0
	for delta > ((base-tMin)*tMax)/2 {
		delta /= base - tMin
		k += base
	}
	return k + (((base-tMin+1)*delta)/(delta+skew))
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= '0' && c <= '9':
		return int(c-'0') + 26, true
	}
	return 0, false
}

func digitToCodePoint(d int) byte {
	if d < 26 {
		return byte('a' + d)
	}
	return byte('0' + (d - 26))
}

// Encode encodes a label (a sequence of Unicode code points) into its
// punycode form, without the "xn--" ACE prefix. It returns ErrOverflow if
// the arithmetic required would overflow.
func Encode(label string) (string, error) {
	input := []rune(label)

	var out strings.Builder
	basicCount := 0
	for _, c := range input {
		if c < 0x80 {
			out.WriteRune(c)
			basicCount++
		}
	}
	b := basicCount
	if b > 0 {
		out.WriteByte(delimiter)
	}

	n := initialN
	delta := 0
	bias := initialBias
	handled := b

	for handled < len(input) {
		m := -1
		for _, c := range input {
			ci := int(c)
			if ci >= n && (m == -1 || ci < m) {
				m = ci
			}
		}

		if d, overflow := addOverflow(delta, (m-n)*(handled+1)); overflow {
			return "", ErrOverflow
		} else {
			delta = d
		}
		n = m

		for _, c := range input {
			ci := int(c)
			if ci < n {
				if d, overflow := addOverflow(delta, 1); overflow {
					return "", ErrOverflow
				} else {
					delta = d
				}
			}
			if ci == n {
				q := delta
				for k := base; ; k += base {
					t := threshold(k, bias)
					if q < t {
						break
					}
					cp := t + (q-t)%(base-t)
					out.WriteByte(digitToCodePoint(cp))
					q = (q - t) / (base - t)
				}
				out.WriteByte(digitToCodePoint(q))
				bias = adapt(delta, handled+1, handled == b)
				delta = 0
				handled++
			}
		}
		delta++
		n++
	}

	return out.String(), nil
}

// Decode decodes a punycode label (without the "xn--" ACE prefix) back into
// its original Unicode code points.
func Decode(input string) (string, error) {
	n := initialN
	bias := initialBias

	var output []rune

	lastDelim := strings.LastIndexByte(input, delimiter)
	rest := input
	if lastDelim >= 0 {
		for _, c := range input[:lastDelim] {
			if c >= 0x80 {
				return "", ErrInvalidInput
			}
			output = append(output, c)
		}
		rest = input[lastDelim+1:]
	}

	i := 0
	pos := 0
	for pos < len(rest) {
		oldI := i
		w := 1
		for k := base; ; k += base {
			if pos >= len(rest) {
				return "", ErrInvalidInput
			}
			digit, ok := digitValue(rest[pos])
			pos++
			if !ok {
				return "", ErrInvalidInput
			}
			if add, overflow := addOverflow(i, digit*w); overflow {
				return "", ErrOverflow
			} else {
				i = add
			}
			t := threshold(k, bias)
			if digit < t {
				break
			}
			if mul, overflow := mulOverflow(w, base-t); overflow {
				return "", ErrOverflow
			} else {
				w = mul
			}
		}
		outLen := len(output) + 1
		bias = adapt(i-oldI, outLen, oldI == 0)
		if nAdd, overflow := addOverflow(n, i/outLen); overflow {
			return "", ErrOverflow
		} else {
			n = nAdd
		}
		i = i % outLen

		if n > 0x10FFFF {
			return "", ErrInvalidInput
		}

		output = append(output, 0)
		copy(output[i+1:], output[i:])
		output[i] = rune(n)
		i++
	}

	return string(output), nil
}

func threshold(k, bias int) int {
	switch {
	case k <= bias:
		return tMin
	case k >= bias+tMax:
		return tMax
	default:
		return k - bias
	}
}

func addOverflow(a, b int) (int, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, true
	}
	return s, false
}

func mulOverflow(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	p := a * b
	if p/a != b {
		return 0, true
	}
	return p, false
}
