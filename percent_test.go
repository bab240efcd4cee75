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

import "testing"

func TestPercentEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []string{
		"hello world",
		"a/b?c#d",
		"\x00\x1f\x7f",
		"100% sure",
		"café",
	}
	for _, s := range cases {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			encoded := PercentEncode(s, FragmentSet, false)
			decoded := PercentDecode(encoded)
			if decoded != s {
				t.Fatalf("round trip failed: %q -> %q -> %q", s, encoded, decoded)
			}
		})
	}
}

func TestPercentEncodeSpaceAsPlus(t *testing.T) {
	t.Parallel()
	got := PercentEncode("a b", QuerySet, true)
	if got != "a+b" {
		t.Fatalf("PercentEncode with spaceAsPlus = %q, want %q", got, "a+b")
	}
}

func TestPercentEncodeUppercaseHex(t *testing.T) {
	t.Parallel()
	got := PercentEncode("\x00", C0Set, false)
	if got != "%00" {
		t.Fatalf("PercentEncode(%q) = %q, want %q", "\x00", got, "%00")
	}
}

func TestPercentDecodePassesThroughInvalidEscapes(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"%":    "%",
		"%2":   "%2",
		"%zz":  "%zz",
		"%2g":  "%2g",
		"%2F":  "/",
		"100%": "100%",
	}
	for input, want := range cases {
		input, want := input, want
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			if got := PercentDecode(input); got != want {
				t.Fatalf("PercentDecode(%q) = %q, want %q", input, got, want)
			}
		})
	}
}

func TestPercentEncodeRune(t *testing.T) {
	t.Parallel()
	if got := PercentEncodeRune(' ', C0Set); got != " " {
		t.Fatalf("PercentEncodeRune(' ', C0Set) = %q, want %q", got, " ")
	}
	if got := PercentEncodeRune(0x7F, C0Set); got != "%7F" {
		t.Fatalf("PercentEncodeRune(0x7F, C0Set) = %q, want %q", got, "%7F")
	}
}
