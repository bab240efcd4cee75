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

func TestCharacterSetContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		set  CharacterSet
		in   []rune
		out  []rune
	}{
		{"C0Set", C0Set, []rune{0x00, 0x1F, 0x7F, 0x80}, []rune{'a', '0', ' '}},
		{"FragmentSet", FragmentSet, []rune{' ', '"', '<', '>', '`'}, []rune{'a', '/'}},
		{"QuerySet", QuerySet, []rune{' ', '"', '#', '<', '>'}, []rune{'\'', '{'}},
		{"SpecialQuerySet", SpecialQuerySet, []rune{'\''}, []rune{'{'}},
		{"PathSet", PathSet, []rune{'?', '`', '{', '}'}, []rune{'/'}},
		{"UserinfoSet", UserinfoSet, []rune{'/', ':', ';', '=', '@', '[', '\\', ']', '^', '|'}, []rune{'a'}},
		{"ForbiddenHostSet", ForbiddenHostSet, []rune{0x00, '\t', '\n', '#', '/', ':', '@', '['}, []rune{'a', '-'}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			for _, c := range tc.in {
				if !tc.set.Contains(c) {
					t.Errorf("expected set to contain %q", c)
				}
			}
			for _, c := range tc.out {
				if tc.set.Contains(c) {
					t.Errorf("expected set not to contain %q", c)
				}
			}
		})
	}
}

func TestURLCodePointSet(t *testing.T) {
	t.Parallel()
	for _, c := range "abcXYZ019!$&'()*+,-./:;=?@_~" {
		if !URLCodePointSet.Contains(c) {
			t.Errorf("expected URLCodePointSet to contain %q", c)
		}
	}
	for _, c := range []rune{0x00, '"', '<', '>', '\\', '^', '`', '{', '}', '|', 0xD800} {
		if URLCodePointSet.Contains(c) {
			t.Errorf("expected URLCodePointSet not to contain %q", c)
		}
	}
}

func TestCharacterSetBuilderMergesAdjacentRanges(t *testing.T) {
	t.Parallel()
	s := NewCharacterSetBuilder().AddRange('a', 'c').AddRange('d', 'f').Build()
	for _, c := range "abcdef" {
		if !s.Contains(c) {
			t.Errorf("expected merged set to contain %q", c)
		}
	}
	if s.Contains('g') {
		t.Errorf("did not expect merged set to contain 'g'")
	}
}

func TestASCIIPredicates(t *testing.T) {
	t.Parallel()
	if !IsASCIIAlpha('a') || !IsASCIIAlpha('Z') || IsASCIIAlpha('0') {
		t.Fatalf("IsASCIIAlpha incorrect")
	}
	if !IsASCIIDigit('5') || IsASCIIDigit('a') {
		t.Fatalf("IsASCIIDigit incorrect")
	}
	if !IsASCIIAlphanumeric('a') || !IsASCIIAlphanumeric('5') || IsASCIIAlphanumeric('-') {
		t.Fatalf("IsASCIIAlphanumeric incorrect")
	}
	if !IsASCIIHexDigit('f') || !IsASCIIHexDigit('F') || !IsASCIIHexDigit('9') || IsASCIIHexDigit('g') {
		t.Fatalf("IsASCIIHexDigit incorrect")
	}
}
