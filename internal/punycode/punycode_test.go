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

package punycode

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		unicode  string
		punycode string
	}{
		{"chinese", "他们为什么不说中文", "ihqwcrb4cv8a8dqg056pqjye"},
		{"czech", "Pročprostěnemluvíčesky", "Proprostnemluvesky-uyb24dma41a"},
		{"basic-only", "example", "example-"},
		{"single-char", "ü", "tda"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got, err := Encode(c.unicode)
			if err != nil {
				t.Fatalf("Encode(%q) error: %v", c.unicode, err)
			}
			if got != c.punycode {
				t.Fatalf("Encode(%q) = %q, want %q", c.unicode, got, c.punycode)
			}

			back, err := Decode(c.punycode)
			if err != nil {
				t.Fatalf("Decode(%q) error: %v", c.punycode, err)
			}
			if back != c.unicode {
				t.Fatalf("Decode(%q) = %q, want %q", c.punycode, back, c.unicode)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()
	cases := []string{
		"a-b-$$$",
		"a-9",
		"$",
	}
	for _, c := range cases {
		if _, err := Decode(c); err == nil {
			t.Errorf("Decode(%q): expected error, got none", c)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	t.Parallel()
	got, err := Encode("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("Encode(\"\") = %q, want empty", got)
	}
}
