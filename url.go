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

// ParseOutcomeKind discriminates the three shapes a parse can produce: a
// clean success, a success that still accumulated non-fatal diagnostics, or
// an outright failure.
type ParseOutcomeKind int

const (
	Success ParseOutcomeKind = iota
	SuccessWithWarnings
	Failure
)

// ParseOutcome is the result of a parse. It is a value, never an exception:
// callers inspect Kind (or call Value) rather than relying on panics.
type ParseOutcome struct {
	kind     ParseOutcomeKind
	value    *UrlValue
	warnings []ValidationError
	err      *ParseError
}

// Kind reports which of the three outcome shapes this is.
func (o ParseOutcome) Kind() ParseOutcomeKind { return o.kind }

// IsSuccess reports whether parsing produced a UrlValue, with or without
// warnings.
func (o ParseOutcome) IsSuccess() bool { return o.kind != Failure }

// Warnings returns the non-fatal diagnostics accumulated during a
// SuccessWithWarnings parse. It is empty for Success and Failure.
func (o ParseOutcome) Warnings() []ValidationError { return o.warnings }

// Value returns the parsed UrlValue, or the ParseError if parsing failed.
func (o ParseOutcome) Value() (*UrlValue, error) {
	if o.kind == Failure {
		return nil, o.err
	}
	return o.value, nil
}

// Parser holds configuration for repeated parsing, built via ParserOption
// functions.
type Parser struct {
	laxHostParsing bool
	reportWarnings bool
	baseURL        *UrlValue
}

// ParserOption configures a Parser built by NewParser.
type ParserOption func(*Parser)

// WithLaxHostParsing makes host parsing fall back to a best-effort host
// instead of failing fatally when ToASCII or forbidden-code-point checks
// do not pass.
func WithLaxHostParsing(lax bool) ParserOption {
	return func(p *Parser) { p.laxHostParsing = lax }
}

// WithReportedErrors controls whether non-fatal diagnostics are surfaced as
// SuccessWithWarnings (the default) or folded silently into Success.
func WithReportedErrors(report bool) ParserOption {
	return func(p *Parser) { p.reportWarnings = report }
}

// WithBaseURL sets the default base URL used by Parse (not ParseRef, which
// always takes its base from its argument).
func WithBaseURL(base *UrlValue) ParserOption {
	return func(p *Parser) { p.baseURL = base }
}

// NewParser builds a Parser with warnings reporting enabled by default.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{reportWarnings: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses input against this Parser's configured base URL, if any.
func (p *Parser) Parse(input string) ParseOutcome {
	return p.run(input, p.baseURL)
}

// ParseRef parses input against base, ignoring any base URL configured on
// the Parser.
func (p *Parser) ParseRef(input string, base *UrlValue) ParseOutcome {
	return p.run(input, base)
}

var defaultParser = NewParser()

// Parse parses input with no base URL.
func Parse(input string) ParseOutcome {
	return defaultParser.Parse(input)
}

// ParseRef parses input against base.
func ParseRef(input string, base *UrlValue) ParseOutcome {
	return defaultParser.ParseRef(input, base)
}

// MustParse parses input with no base URL and panics if it fails.
func MustParse(input string) *UrlValue {
	v, err := Parse(input).Value()
	if err != nil {
		panic(err)
	}
	return v
}
