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

func TestUrlPathString(t *testing.T) {
	t.Parallel()
	if got := NewOpaquePath("foo@bar").String(); got != "foo@bar" {
		t.Fatalf("opaque String() = %q", got)
	}
	if got := NewNonOpaquePath(nil).String(); got != "" {
		t.Fatalf("empty non-opaque String() = %q, want empty", got)
	}
	if got := NewNonOpaquePath([]string{"a", "b"}).String(); got != "/a/b" {
		t.Fatalf("non-opaque String() = %q, want %q", got, "/a/b")
	}
}

func TestUrlPathIsOpaque(t *testing.T) {
	t.Parallel()
	if !NewOpaquePath("x").IsOpaque() {
		t.Fatalf("expected opaque path to report IsOpaque")
	}
	if NewNonOpaquePath([]string{"x"}).IsOpaque() {
		t.Fatalf("did not expect non-opaque path to report IsOpaque")
	}
}

func TestUrlPathAppendAndShorten(t *testing.T) {
	t.Parallel()
	p := NewNonOpaquePath([]string{"a", "b", "c"})
	p.Shorten(false)
	if got := p.String(); got != "/a/b" {
		t.Fatalf("after Shorten, String() = %q, want %q", got, "/a/b")
	}
	p.Append("d")
	if got := p.String(); got != "/a/b/d" {
		t.Fatalf("after Append, String() = %q, want %q", got, "/a/b/d")
	}
}

func TestUrlPathShortenNoOpOnOpaque(t *testing.T) {
	t.Parallel()
	p := NewOpaquePath("a/b")
	p.Shorten(false)
	if got := p.String(); got != "a/b" {
		t.Fatalf("Shorten mutated an opaque path: %q", got)
	}
}

func TestUrlPathShortenNoOpOnSingleDriveLetterFileSegment(t *testing.T) {
	t.Parallel()
	p := NewNonOpaquePath([]string{"C:"})
	p.Shorten(true)
	if got := p.String(); got != "/C:" {
		t.Fatalf("Shorten removed the sole normalized drive letter segment: %q", got)
	}
}

func TestIsWindowsDriveLetter(t *testing.T) {
	t.Parallel()
	if !isWindowsDriveLetter("C:") || !isWindowsDriveLetter("c|") {
		t.Fatalf("expected C: and c| to be drive letters")
	}
	if isWindowsDriveLetter("C") || isWindowsDriveLetter("C::") || isWindowsDriveLetter("1:") {
		t.Fatalf("did not expect non-drive-letter strings to match")
	}
}

func TestIsNormalizedWindowsDriveLetter(t *testing.T) {
	t.Parallel()
	if !isNormalizedWindowsDriveLetter("C:") {
		t.Fatalf("expected C: to be normalized")
	}
	if isNormalizedWindowsDriveLetter("C|") {
		t.Fatalf("did not expect C| to be normalized")
	}
}

func TestNormalizeWindowsDriveLetter(t *testing.T) {
	t.Parallel()
	if got := normalizeWindowsDriveLetter("C|"); got != "C:" {
		t.Fatalf("normalizeWindowsDriveLetter(%q) = %q, want %q", "C|", got, "C:")
	}
	if got := normalizeWindowsDriveLetter("C:"); got != "C:" {
		t.Fatalf("normalizeWindowsDriveLetter(%q) = %q, want %q", "C:", got, "C:")
	}
	if got := normalizeWindowsDriveLetter("not-a-drive"); got != "not-a-drive" {
		t.Fatalf("normalizeWindowsDriveLetter should not alter non-drive-letter strings")
	}
}
