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

// Severity classifies a ValidationErrorCode as either accumulated
// (non-fatal) or aborting the parse.
type Severity int

const (
	// SeverityValidation errors are accumulated; parsing continues.
	SeverityValidation Severity = iota
	// SeverityFatal errors abort the parse with a Failure outcome.
	SeverityFatal
)

// ValidationErrorCode is the closed, tagged enumeration of parse
// diagnostics. Callers pattern-match on the code; never parse strings.
type ValidationErrorCode int

const (
	InvalidURLUnit ValidationErrorCode = iota
	SpecialSchemeMissingFollowingSolidus
	MissingSchemeNonRelativeURL
	InvalidReverseSolidus
	InvalidCredentials
	HostMissing
	HostInvalidCodePoint
	IPv6Unclosed
	IPv6InvalidCompression
	IPv6TooManyPieces
	IPv6MultipleCompression
	IPv4InIPv6InvalidCodePoint
	IPv4InIPv6TooManyPieces
	IPv4InIPv6OutOfRangePart
	IPv4InIPv6TooFewParts
	IPv6InvalidCodePoint
	IPv6TooFewPieces
	PortOutOfRange
	PortInvalid
	FileInvalidWindowsDriveLetter
	FileInvalidWindowsDriveLetterHost
	DomainToASCII
	DomainInvalidCodePoint
)

var errorNames = map[ValidationErrorCode]string{
	InvalidURLUnit:                        "invalid-url-unit",
	SpecialSchemeMissingFollowingSolidus:  "special-scheme-missing-following-solidus",
	MissingSchemeNonRelativeURL:           "missing-scheme-non-relative-url",
	InvalidReverseSolidus:                 "invalid-reverse-solidus",
	InvalidCredentials:                    "invalid-credentials",
	HostMissing:                           "host-missing",
	HostInvalidCodePoint:                  "host-invalid-code-point",
	IPv6Unclosed:                          "ipv6-unclosed",
	IPv6InvalidCompression:                "ipv6-invalid-compression",
	IPv6TooManyPieces:                     "ipv6-too-many-pieces",
	IPv6MultipleCompression:               "ipv6-multiple-compression",
	IPv4InIPv6InvalidCodePoint:            "ipv4-in-ipv6-invalid-code-point",
	IPv4InIPv6TooManyPieces:               "ipv4-in-ipv6-too-many-pieces",
	IPv4InIPv6OutOfRangePart:              "ipv4-in-ipv6-out-of-range-part",
	IPv4InIPv6TooFewParts:                 "ipv4-in-ipv6-too-few-parts",
	IPv6InvalidCodePoint:                  "ipv6-invalid-code-point",
	IPv6TooFewPieces:                      "ipv6-too-few-pieces",
	PortOutOfRange:                        "port-out-of-range",
	PortInvalid:                           "port-invalid",
	FileInvalidWindowsDriveLetter:         "file-invalid-windows-drive-letter",
	FileInvalidWindowsDriveLetterHost:     "file-invalid-windows-drive-letter-host",
	DomainToASCII:                         "domain-to-ascii",
	DomainInvalidCodePoint:                "domain-invalid-code-point",
}

// fatalCodes is the set of codes that abort the parse outright.
var fatalCodes = map[ValidationErrorCode]bool{
	MissingSchemeNonRelativeURL: true,
	HostMissing:                 true,
	IPv6Unclosed:                true,
	IPv6InvalidCompression:      true,
	IPv6TooManyPieces:           true,
	IPv6MultipleCompression:     true,
	IPv6TooFewPieces:            true,
	IPv6InvalidCodePoint:        true,
	IPv4InIPv6InvalidCodePoint:  true,
	IPv4InIPv6TooManyPieces:     true,
	IPv4InIPv6OutOfRangePart:    true,
	IPv4InIPv6TooFewParts:       true,
	PortOutOfRange:              true,
	PortInvalid:                 true,
	HostInvalidCodePoint:        true,
	DomainInvalidCodePoint:      true,
	DomainToASCII:               true,
}

// String returns the kebab-case name of the error code.
func (c ValidationErrorCode) String() string {
	if name, ok := errorNames[c]; ok {
		return name
	}
	return "unknown-validation-error"
}

// Severity reports whether c aborts the parse or is merely accumulated.
func (c ValidationErrorCode) Severity() Severity {
	if fatalCodes[c] {
		return SeverityFatal
	}
	return SeverityValidation
}

// ValidationError is a single diagnostic produced while parsing, carrying
// its code and an offset: for errors raised by the parser's states, the
// code-point index into the (preprocessed) input where it was detected;
// errors raised inside host parsing carry an offset within the host string,
// or 0.
type ValidationError struct {
	Code   ValidationErrorCode
	Offset int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Code.String()
}

// IsFatal reports whether e aborts the parse.
func (e ValidationError) IsFatal() bool {
	return e.Code.Severity() == SeverityFatal
}

// Diagnostics accumulates ValidationErrors over the course of one parse.
type Diagnostics struct {
	errors []ValidationError
}

// Add records a validation error at the given offset.
func (d *Diagnostics) Add(code ValidationErrorCode, offset int) {
	d.errors = append(d.errors, ValidationError{Code: code, Offset: offset})
}

// Errors returns the accumulated diagnostics in detection order.
func (d *Diagnostics) Errors() []ValidationError {
	return d.errors
}

// HasErrors reports whether any diagnostic has been recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

// ParseError is the error ParseOutcome.Value returns (and the value
// MustParse panics with) when parsing fails fatally. It wraps the accumulated diagnostics and
// retains the original input.
type ParseError struct {
	Input  string
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	codes := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		codes[i] = ve.Code.String()
	}
	return "weburl: failed to parse " + quote(e.Input) + ": " + strings.Join(codes, ", ")
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
	return b.String()
}
