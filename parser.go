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

import (
	"strconv"
	"strings"
	"unicode"
)

// parseState is the UrlParser automaton's 21 states.
type parseState int

const (
	stateSchemeStart parseState = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	// stateHost covers both HOST and HOSTNAME; the two differ only for the
	// hostname-only setter state override, which this package does not
	// expose (no mutation API).
	stateHost
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// urlBuilder accumulates the seven-tuple's fields while the automaton runs;
// it is converted to an immutable *UrlValue only on success.
type urlBuilder struct {
	scheme   string
	username string
	password string
	host     *Host
	port     *int
	path     UrlPath
	query    *string
	fragment *string
}

func (b *urlBuilder) isSpecial() bool {
	return IsSpecialScheme(b.scheme)
}

func (b *urlBuilder) toValue() *UrlValue {
	return &UrlValue{
		scheme:   b.scheme,
		username: b.username,
		password: b.password,
		host:     b.host,
		port:     b.port,
		path:     b.path,
		query:    b.query,
		fragment: b.fragment,
	}
}

// run implements the URL parsing algorithm: a single re-entrant loop over a
// CodePointCursor, switching on an explicit state variable.
func (p *Parser) run(rawInput string, base *UrlValue) ParseOutcome {
	diag := &Diagnostics{}

	input, changed := trimC0OrSpace(rawInput)
	if changed {
		diag.Add(InvalidURLUnit, 0)
	}
	input, changed = removeTabsAndNewlines(input)
	if changed {
		diag.Add(InvalidURLUnit, 0)
	}

	u := &urlBuilder{path: UrlPath{Kind: PathNonOpaque}}
	cur := NewCodePointCursor(input)
	state := stateSchemeStart
	var buf strings.Builder
	atFlag := false
	bracketFlag := false
	passwordTokenSeen := false

	fail := func(code ValidationErrorCode) ParseOutcome {
		diag.Add(code, cur.Index())
		return ParseOutcome{kind: Failure, err: &ParseError{Input: rawInput, Errors: diag.Errors()}}
	}

	for {
		pt := cur.PointedAt()

		switch state {
		case stateSchemeStart:
			if pt.Kind == AtCodePoint && IsASCIIAlpha(pt.Rune) {
				buf.WriteRune(unicode.ToLower(pt.Rune))
				state = stateScheme
			} else {
				state = stateNoScheme
				cur.Decrease(1)
			}

		case stateScheme:
			if pt.Kind == AtCodePoint && (IsASCIIAlphanumeric(pt.Rune) || pt.Rune == '+' || pt.Rune == '-' || pt.Rune == '.') {
				buf.WriteRune(unicode.ToLower(pt.Rune))
			} else if pt.Kind == AtCodePoint && pt.Rune == ':' {
				u.scheme = buf.String()
				buf.Reset()
				if u.scheme == "file" {
					if !cur.DoesRemainingStartWith("//") {
						diag.Add(SpecialSchemeMissingFollowingSolidus, cur.Index())
					}
					state = stateFile
				} else if u.isSpecial() && base != nil && base.scheme == u.scheme {
					state = stateSpecialRelativeOrAuthority
				} else if u.isSpecial() {
					state = stateSpecialAuthoritySlashes
				} else if cur.DoesRemainingStartWith("/") {
					state = statePathOrAuthority
					cur.Increase(1)
				} else {
					u.path = UrlPath{Kind: PathOpaque}
					state = stateOpaquePath
				}
			} else {
				buf.Reset()
				state = stateNoScheme
				cur.Reset()
				cur.Decrease(1)
			}

		case stateNoScheme:
			if base == nil || (base.path.Kind == PathOpaque && !(pt.Kind == AtCodePoint && pt.Rune == '#')) {
				return fail(MissingSchemeNonRelativeURL)
			}
			if base.path.Kind == PathOpaque && pt.Kind == AtCodePoint && pt.Rune == '#' {
				u.scheme = base.scheme
				u.path = base.path
				u.query = base.query
				f := ""
				u.fragment = &f
				state = stateFragment
			} else if base.scheme != "file" {
				state = stateRelative
				cur.Decrease(1)
			} else {
				state = stateFile
				cur.Decrease(1)
			}

		case stateSpecialRelativeOrAuthority:
			if pt.Kind == AtCodePoint && pt.Rune == '/' && cur.DoesRemainingStartWith("/") {
				state = stateSpecialAuthorityIgnoreSlashes
				cur.Increase(1)
			} else {
				diag.Add(SpecialSchemeMissingFollowingSolidus, cur.Index())
				state = stateRelative
				cur.Decrease(1)
			}

		case statePathOrAuthority:
			if pt.Kind == AtCodePoint && pt.Rune == '/' {
				state = stateAuthority
			} else {
				state = statePath
				cur.Decrease(1)
			}

		case stateRelative:
			u.scheme = base.scheme
			if pt.Kind == AtEof {
				u.username, u.password, u.host, u.port, u.path = base.username, base.password, base.host, base.port, base.path
				u.query = base.query
			} else if pt.Kind == AtCodePoint && pt.Rune == '/' {
				state = stateRelativeSlash
			} else if pt.Kind == AtCodePoint && pt.Rune == '?' {
				u.username, u.password, u.host, u.port, u.path = base.username, base.password, base.host, base.port, base.path
				q := ""
				u.query = &q
				state = stateQuery
			} else if pt.Kind == AtCodePoint && pt.Rune == '#' {
				u.username, u.password, u.host, u.port, u.path = base.username, base.password, base.host, base.port, base.path
				u.query = base.query
				f := ""
				u.fragment = &f
				state = stateFragment
			} else if u.isSpecial() && pt.Kind == AtCodePoint && pt.Rune == '\\' {
				diag.Add(InvalidReverseSolidus, cur.Index())
				state = stateRelativeSlash
			} else {
				u.username, u.password, u.host, u.port, u.path = base.username, base.password, base.host, base.port, base.path
				u.path.Segments = append([]string(nil), base.path.Segments...)
				u.path.Shorten(u.scheme == "file")
				state = statePath
				cur.Decrease(1)
			}

		case stateRelativeSlash:
			if u.isSpecial() && pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '\\') {
				if pt.Rune == '\\' {
					diag.Add(InvalidReverseSolidus, cur.Index())
				}
				state = stateSpecialAuthorityIgnoreSlashes
			} else if pt.Kind == AtCodePoint && pt.Rune == '/' {
				state = stateAuthority
			} else {
				u.username, u.password, u.host, u.port = base.username, base.password, base.host, base.port
				state = statePath
				cur.Decrease(1)
			}

		case stateSpecialAuthoritySlashes:
			if pt.Kind == AtCodePoint && pt.Rune == '/' && cur.DoesRemainingStartWith("/") {
				state = stateSpecialAuthorityIgnoreSlashes
				cur.Increase(1)
			} else {
				diag.Add(SpecialSchemeMissingFollowingSolidus, cur.Index())
				state = stateSpecialAuthorityIgnoreSlashes
				cur.Decrease(1)
			}

		case stateSpecialAuthorityIgnoreSlashes:
			if pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '\\') {
				diag.Add(SpecialSchemeMissingFollowingSolidus, cur.Index())
			} else {
				state = stateAuthority
				cur.Decrease(1)
			}

		case stateAuthority:
			if pt.Kind == AtCodePoint && pt.Rune == '@' {
				diag.Add(InvalidCredentials, cur.Index())
				if atFlag {
					withSeparator := "%40" + buf.String()
					buf.Reset()
					buf.WriteString(withSeparator)
				}
				atFlag = true
				for _, c := range buf.String() {
					if c == ':' && !passwordTokenSeen {
						passwordTokenSeen = true
						continue
					}
					encoded := PercentEncodeRune(c, UserinfoSet)
					if passwordTokenSeen {
						u.password += encoded
					} else {
						u.username += encoded
					}
				}
				buf.Reset()
			} else if pt.Kind == AtEof || pt.Rune == '/' || pt.Rune == '?' || pt.Rune == '#' || (u.isSpecial() && pt.Kind == AtCodePoint && pt.Rune == '\\') {
				if atFlag && buf.Len() == 0 {
					return fail(HostMissing)
				}
				cur.Decrease(len([]rune(buf.String())) + 1)
				buf.Reset()
				state = stateHost
			} else {
				buf.WriteRune(pt.Rune)
			}

		case stateHost:
			if pt.Kind == AtCodePoint && pt.Rune == ':' && !bracketFlag {
				if buf.Len() == 0 {
					return fail(HostMissing)
				}
				host, err := (&HostParser{LaxHostParsing: p.laxHostParsing}).ParseHost(buf.String(), u.isSpecial(), diag)
				if err != nil {
					if pe, ok := err.(*ParseError); ok {
						pe.Input = rawInput
						return ParseOutcome{kind: Failure, err: pe}
					}
					return fail(HostInvalidCodePoint)
				}
				u.host = &host
				buf.Reset()
				state = statePort
			} else if pt.Kind == AtEof || (pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '?' || pt.Rune == '#')) || (u.isSpecial() && pt.Kind == AtCodePoint && pt.Rune == '\\') {
				cur.Decrease(1)
				if u.isSpecial() && buf.Len() == 0 {
					return fail(HostMissing)
				}
				host, err := (&HostParser{LaxHostParsing: p.laxHostParsing}).ParseHost(buf.String(), u.isSpecial(), diag)
				if err != nil {
					if pe, ok := err.(*ParseError); ok {
						pe.Input = rawInput
						return ParseOutcome{kind: Failure, err: pe}
					}
					return fail(HostInvalidCodePoint)
				}
				u.host = &host
				buf.Reset()
				state = statePathStart
			} else {
				if pt.Kind == AtCodePoint {
					if pt.Rune == '[' {
						bracketFlag = true
					} else if pt.Rune == ']' {
						bracketFlag = false
					}
					buf.WriteRune(pt.Rune)
				}
			}

		case statePort:
			if pt.Kind == AtCodePoint && IsASCIIDigit(pt.Rune) {
				buf.WriteRune(pt.Rune)
			} else if pt.Kind == AtEof || (pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '?' || pt.Rune == '#')) || (u.isSpecial() && pt.Kind == AtCodePoint && pt.Rune == '\\') {
				if buf.Len() > 0 {
					port, err := strconv.Atoi(buf.String())
					if err != nil || port > 65535 {
						return fail(PortOutOfRange)
					}
					if dp, ok := specialSchemeDefaultPorts[u.scheme]; ok && dp == port {
						u.port = nil
					} else {
						u.port = &port
					}
					buf.Reset()
				}
				state = statePathStart
				cur.Decrease(1)
			} else {
				return fail(PortInvalid)
			}

		case stateFile:
			u.scheme = "file"
			u.host = &Host{Kind: HostEmpty}
			if pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '\\') {
				if pt.Rune == '\\' {
					diag.Add(InvalidReverseSolidus, cur.Index())
				}
				state = stateFileSlash
			} else if base != nil && base.scheme == "file" {
				if pt.Kind == AtEof {
					u.host, u.path, u.query = base.host, base.path, base.query
				} else if pt.Kind == AtCodePoint && pt.Rune == '?' {
					u.host, u.path = base.host, base.path
					q := ""
					u.query = &q
					state = stateQuery
				} else if pt.Kind == AtCodePoint && pt.Rune == '#' {
					u.host, u.path, u.query = base.host, base.path, base.query
					f := ""
					u.fragment = &f
					state = stateFragment
				} else {
					if !cur.DoesRemainingStartWithWindowsDriveLetter() {
						u.host = base.host
						u.path = base.path
						u.path.Segments = append([]string(nil), base.path.Segments...)
						u.path.Shorten(true)
					} else {
						diag.Add(FileInvalidWindowsDriveLetter, cur.Index())
					}
					state = statePath
					cur.Decrease(1)
				}
			} else {
				state = statePath
				cur.Decrease(1)
			}

		case stateFileSlash:
			if pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '\\') {
				if pt.Rune == '\\' {
					diag.Add(InvalidReverseSolidus, cur.Index())
				}
				state = stateFileHost
			} else {
				if base != nil && base.scheme == "file" && !cur.DoesRemainingStartWithWindowsDriveLetter() {
					if len(base.path.Segments) > 0 && isNormalizedWindowsDriveLetter(base.path.Segments[0]) {
						u.path.Segments = append(u.path.Segments, base.path.Segments[0])
					} else {
						u.host = base.host
					}
				}
				state = statePath
				cur.Decrease(1)
			}

		case stateFileHost:
			if pt.Kind == AtEof || (pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '\\' || pt.Rune == '?' || pt.Rune == '#')) {
				cur.Decrease(1)
				if isWindowsDriveLetter(buf.String()) {
					diag.Add(FileInvalidWindowsDriveLetterHost, cur.Index())
					state = statePath
				} else if buf.Len() == 0 {
					u.host = &Host{Kind: HostEmpty}
					state = statePathStart
				} else {
					host, err := (&HostParser{LaxHostParsing: p.laxHostParsing}).ParseHost(buf.String(), u.isSpecial(), diag)
					if err != nil {
						if pe, ok := err.(*ParseError); ok {
							pe.Input = rawInput
							return ParseOutcome{kind: Failure, err: pe}
						}
						return fail(HostInvalidCodePoint)
					}
					if host.Kind == HostDomain && host.Domain == "localhost" {
						host = Host{Kind: HostEmpty}
					}
					u.host = &host
					buf.Reset()
					state = statePathStart
				}
			} else {
				buf.WriteRune(pt.Rune)
			}

		case statePathStart:
			if u.isSpecial() {
				if pt.Kind == AtCodePoint && pt.Rune == '\\' {
					diag.Add(InvalidReverseSolidus, cur.Index())
				}
				state = statePath
				if !(pt.Kind == AtCodePoint && (pt.Rune == '/' || pt.Rune == '\\')) {
					cur.Decrease(1)
				}
			} else if pt.Kind == AtCodePoint && pt.Rune == '?' {
				q := ""
				u.query = &q
				state = stateQuery
			} else if pt.Kind == AtCodePoint && pt.Rune == '#' {
				f := ""
				u.fragment = &f
				state = stateFragment
			} else if pt.Kind != AtEof {
				state = statePath
				if !(pt.Kind == AtCodePoint && pt.Rune == '/') {
					cur.Decrease(1)
				}
			}

		case statePath:
			isBoundary := pt.Kind == AtEof || (pt.Kind == AtCodePoint && pt.Rune == '/') ||
				(u.isSpecial() && pt.Kind == AtCodePoint && pt.Rune == '\\') ||
				(pt.Kind == AtCodePoint && (pt.Rune == '?' || pt.Rune == '#'))
			if isBoundary {
				if u.isSpecial() && pt.Kind == AtCodePoint && pt.Rune == '\\' {
					diag.Add(InvalidReverseSolidus, cur.Index())
				}
				seg := buf.String()
				switch {
				case isDoubleDotSegment(seg):
					u.path.Shorten(u.scheme == "file")
					if !(pt.Kind == AtCodePoint && (pt.Rune == '/' || (u.isSpecial() && pt.Rune == '\\'))) {
						u.path.Append("")
					}
				case isSingleDotSegment(seg):
					if !(pt.Kind == AtCodePoint && (pt.Rune == '/' || (u.isSpecial() && pt.Rune == '\\'))) {
						u.path.Append("")
					}
				default:
					if u.scheme == "file" && len(u.path.Segments) == 0 && isWindowsDriveLetter(seg) {
						if u.host != nil && u.host.Kind != HostEmpty {
							diag.Add(FileInvalidWindowsDriveLetter, cur.Index())
							u.host = &Host{Kind: HostEmpty}
						}
						seg = normalizeWindowsDriveLetter(seg)
					}
					u.path.Append(seg)
				}
				buf.Reset()

				if u.scheme == "file" && (pt.Kind == AtEof || pt.Rune == '?' || pt.Rune == '#') {
					for len(u.path.Segments) > 1 && u.path.Segments[0] == "" {
						diag.Add(InvalidReverseSolidus, cur.Index())
						u.path.Segments = u.path.Segments[1:]
					}
				}
				if pt.Kind == AtCodePoint && pt.Rune == '?' {
					q := ""
					u.query = &q
					state = stateQuery
				} else if pt.Kind == AtCodePoint && pt.Rune == '#' {
					f := ""
					u.fragment = &f
					state = stateFragment
				}
			} else {
				if pt.Kind == AtCodePoint && !URLCodePointSet.Contains(pt.Rune) && pt.Rune != '%' {
					diag.Add(InvalidURLUnit, cur.Index())
				}
				if pt.Kind == AtCodePoint && pt.Rune == '%' && !isValidPercentEncodedAt(cur.remainingAfterCurrent()) {
					diag.Add(InvalidURLUnit, cur.Index())
				}
				if pt.Kind == AtCodePoint {
					buf.WriteString(PercentEncodeRune(pt.Rune, PathSet))
				}
			}

		case stateOpaquePath:
			if pt.Kind == AtCodePoint && pt.Rune == '?' {
				q := ""
				u.query = &q
				state = stateQuery
			} else if pt.Kind == AtCodePoint && pt.Rune == '#' {
				f := ""
				u.fragment = &f
				state = stateFragment
			} else {
				if pt.Kind == AtCodePoint {
					if !URLCodePointSet.Contains(pt.Rune) && pt.Rune != '%' {
						diag.Add(InvalidURLUnit, cur.Index())
					}
					if pt.Rune == '%' && !isValidPercentEncodedAt(cur.remainingAfterCurrent()) {
						diag.Add(InvalidURLUnit, cur.Index())
					}
					u.path.Opaque += PercentEncodeRune(pt.Rune, C0Set)
				}
			}

		case stateQuery:
			if pt.Kind == AtCodePoint && pt.Rune == '#' {
				f := ""
				u.fragment = &f
				state = stateFragment
			} else if pt.Kind != AtEof {
				if !URLCodePointSet.Contains(pt.Rune) && pt.Rune != '%' {
					diag.Add(InvalidURLUnit, cur.Index())
				}
				if pt.Rune == '%' && !isValidPercentEncodedAt(cur.remainingAfterCurrent()) {
					diag.Add(InvalidURLUnit, cur.Index())
				}
				set := QuerySet
				if u.isSpecial() {
					set = SpecialQuerySet
				}
				*u.query += PercentEncode(string(pt.Rune), set, false)
			}

		case stateFragment:
			if pt.Kind == AtCodePoint {
				if !URLCodePointSet.Contains(pt.Rune) && pt.Rune != '%' {
					diag.Add(InvalidURLUnit, cur.Index())
				}
				if pt.Rune == '%' && !isValidPercentEncodedAt(cur.remainingAfterCurrent()) {
					diag.Add(InvalidURLUnit, cur.Index())
				}
				*u.fragment += PercentEncodeRune(pt.Rune, FragmentSet)
			}
		}

		if cur.PointedAt().Kind == AtEof {
			break
		}
		cur.Increase(1)
	}

	value := u.toValue()
	if diag.HasErrors() && p.reportWarnings {
		return ParseOutcome{kind: SuccessWithWarnings, value: value, warnings: diag.Errors()}
	}
	return ParseOutcome{kind: Success, value: value}
}

func isSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

func isDoubleDotSegment(s string) bool {
	return s == ".." || strings.EqualFold(s, ".%2e") || strings.EqualFold(s, "%2e.") || strings.EqualFold(s, "%2e%2e")
}

// trimC0OrSpace removes leading and trailing C0 control characters and
// spaces from s, the input preprocessing step that runs before parsing.
func trimC0OrSpace(s string) (string, bool) {
	runes := []rune(s)
	start, end := 0, len(runes)
	for start < end && isC0OrSpace(runes[start]) {
		start++
	}
	for end > start && isC0OrSpace(runes[end-1]) {
		end--
	}
	if start == 0 && end == len(runes) {
		return s, false
	}
	return string(runes[start:end]), true
}

func isC0OrSpace(r rune) bool {
	return r <= 0x1F || r == 0x20
}

// removeTabsAndNewlines strips ASCII tab and newline code points from s.
func removeTabsAndNewlines(s string) (string, bool) {
	if !strings.ContainsAny(s, "\t\n\r") {
		return s, false
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		b.WriteRune(c)
	}
	return b.String(), true
}
