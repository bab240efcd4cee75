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

package idna

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jplu/weburl/internal/punycode"
)

const acePrefix = "xn--"

// maxDomainLength and maxLabelLength are the DNS length bounds checked
// after reassembly.
const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

// Options controls the seven named parameters of the ToASCII pipeline.
// CheckBidi and CheckJoiners are accepted for API compatibility with the
// WHATWG algorithm's parameter list but are not enforced: their rule tables
// are an acknowledged non-goal.
type Options struct {
	// TransitionalProcessing maps DEVIATION code points when true; when
	// false (the WHATWG URL default), DEVIATION code points pass through
	// unchanged.
	TransitionalProcessing bool
	// CheckBidi and CheckJoiners are accepted but inert (see above).
	CheckBidi    bool
	CheckJoiners bool
	// VerifyDNSLength controls whether domain/label length limits are
	// enforced (step 6).
	VerifyDNSLength bool
	// UseSTD3ASCIIRules, when true, disallows code points whose status is
	// DISALLOWED_STD3_VALID or DISALLOWED_STD3_MAPPED instead of treating
	// them as VALID/MAPPED.
	UseSTD3ASCIIRules bool
	// CheckHyphens enables the leading/trailing-hyphen and
	// third-and-fourth-position-hyphen label-shape checks.
	CheckHyphens bool
	// IgnoreInvalidPunycode makes a failed Punycode decode of an xn--
	// label keep the label as-is instead of failing the pipeline.
	IgnoreInvalidPunycode bool
}

// ToASCII implements the six-step IDNA ToASCII pipeline: map each code
// point per m, normalize to NFC, split into labels on U+002E, Punycode each
// non-ASCII label, validate each label, and reassemble with dots.
func ToASCII(m *Mapper, domain string, opts Options) (string, error) {
	mapped, err := mapCodePoints(m, domain, opts)
	if err != nil {
		return "", err
	}

	normalized := norm.NFC.String(mapped)

	labels := strings.Split(normalized, ".")
	out := make([]string, len(labels))
	for i, label := range labels {
		asciiLabel, err := processLabel(label, opts)
		if err != nil {
			return "", err
		}
		out[i] = asciiLabel
	}

	result := strings.Join(out, ".")

	if opts.VerifyDNSLength {
		if err := verifyDNSLength(out, result); err != nil {
			return "", err
		}
	}

	return result, nil
}

// mapCodePoints is step 1: classify every code point via m and apply its
// mapping, dropping IGNORED code points and rejecting DISALLOWED ones.
func mapCodePoints(m *Mapper, domain string, opts Options) (string, error) {
	var b strings.Builder
	b.Grow(len(domain))
	for _, c := range domain {
		status, mapping := m.Classify(c)
		switch status {
		case StatusValid:
			b.WriteRune(c)
		case StatusDisallowedSTD3Valid:
			if opts.UseSTD3ASCIIRules {
				return "", errDisallowedCodePoint
			}
			b.WriteRune(c)
		case StatusMapped:
			for _, r := range mapping {
				b.WriteRune(r)
			}
		case StatusDisallowedSTD3Mapped:
			if opts.UseSTD3ASCIIRules {
				return "", errDisallowedCodePoint
			}
			for _, r := range mapping {
				b.WriteRune(r)
			}
		case StatusDeviation:
			if opts.TransitionalProcessing {
				for _, r := range mapping {
					b.WriteRune(r)
				}
			} else {
				b.WriteRune(c)
			}
		case StatusIgnored:
			// dropped
		case StatusDisallowed:
			return "", errDisallowedCodePoint
		}
	}
	return b.String(), nil
}

// processLabel is steps 3-5 for a single label: Punycode-decode an ACE label
// to validate its source form, or Punycode-encode a non-ASCII label, then
// validate the resulting ASCII label's shape.
func processLabel(label string, opts Options) (string, error) {
	if label == "" {
		return label, nil
	}

	isASCII := isASCIILabel(label)
	var ascii string
	if isASCII {
		ascii = label
	} else {
		encoded, err := punycode.Encode(label)
		if err != nil {
			return "", err
		}
		ascii = acePrefix + encoded
	}

	if strings.HasPrefix(strings.ToLower(ascii), acePrefix) {
		decoded, err := punycode.Decode(ascii[len(acePrefix):])
		if err != nil {
			if opts.IgnoreInvalidPunycode {
				return ascii, nil
			}
			return "", errPunycode
		}
		if err := validateLabel(decoded, true, opts.CheckHyphens); err != nil {
			return "", err
		}
	} else {
		if err := validateLabel(ascii, false, opts.CheckHyphens); err != nil {
			return "", err
		}
	}

	return ascii, nil
}

func isASCIILabel(label string) bool {
	for i := 0; i < len(label); i++ {
		if label[i] > 0x7F {
			return false
		}
	}
	return true
}

// validateLabel checks the label-shape rules: not empty, no dots, and, only
// when checkHyphens is set, no leading/trailing hyphen and no hyphens in
// both the third and fourth positions (unless it is a valid ACE label).
func validateLabel(label string, wasPunycode bool, checkHyphens bool) error {
	if label == "" {
		return errEmptyLabel
	}
	runes := []rune(label)
	if checkHyphens {
		if runes[0] == '-' || runes[len(runes)-1] == '-' {
			return errHyphenAtEdge
		}
		if len(runes) >= 4 && runes[2] == '-' && runes[3] == '-' && !wasPunycode {
			return errHyphensAtPositions34
		}
	}
	for _, c := range runes {
		if c == '.' {
			return errDotInLabel
		}
	}
	return nil
}

func verifyDNSLength(labels []string, full string) error {
	if len(full) == 0 || len(full) > maxDomainLength {
		return errDomainLength
	}
	for _, l := range labels {
		if len(l) > maxLabelLength {
			return errLabelLength
		}
	}
	return nil
}
