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

	"github.com/jplu/weburl/internal/idna"
)

// HostKind discriminates the four variants of Host.
type HostKind int

const (
	HostDomain HostKind = iota
	HostIP
	HostOpaque
	HostEmpty
)

// IPKind discriminates an IPAddress as IPv4 or IPv6.
type IPKind int

const (
	IPv4 IPKind = iota
	IPv6
)

// IPAddress is either a 32-bit IPv4 address or an 8-piece IPv6 address.
type IPAddress struct {
	Kind IPKind
	V4   uint32
	V6   [8]uint16
}

// String serializes the address (unbracketed; Host.String adds IPv6
// brackets).
func (a IPAddress) String() string {
	if a.Kind == IPv4 {
		return ipv4String(a.V4)
	}
	return ipv6String(a.V6)
}

func ipv4String(addr uint32) string {
	var b strings.Builder
	n := addr
	for i := 0; i < 4; i++ {
		octet := (n >> (8 * (3 - i))) & 0xFF
		b.WriteString(strconv.FormatUint(uint64(octet), 10))
		if i != 3 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func ipv6String(pieces [8]uint16) string {
	compress := -1
	curIdx, curLen, bestLen := -1, 0, 0
	for i := 0; i < 8; i++ {
		if pieces[i] == 0 {
			if curIdx < 0 {
				curIdx = i
			}
			curLen++
		} else {
			if curLen > 1 && curLen > bestLen {
				compress, bestLen = curIdx, curLen
			}
			curIdx, curLen = -1, 0
		}
	}
	if curLen > 1 && curLen > bestLen {
		compress, bestLen = curIdx, curLen
	}

	var b strings.Builder
	ignoreZero := false
	for i := 0; i < 8; i++ {
		if ignoreZero && pieces[i] == 0 {
			continue
		}
		if ignoreZero {
			ignoreZero = false
		}
		if compress == i {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignoreZero = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(pieces[i]), 16))
		if i != 7 {
			b.WriteByte(':')
		}
	}
	return b.String()
}

// Host is the tagged union of domain, IP address, opaque host, and empty
// host.
type Host struct {
	Kind   HostKind
	Domain string
	IP     IPAddress
	Opaque string
}

// String serializes the host: IPv6 addresses are bracketed, other
// variants render their stored string as-is.
func (h Host) String() string {
	switch h.Kind {
	case HostDomain:
		return h.Domain
	case HostIP:
		if h.IP.Kind == IPv6 {
			return "[" + h.IP.String() + "]"
		}
		return h.IP.String()
	case HostOpaque:
		return h.Opaque
	default:
		return ""
	}
}

// HostParser dispatches to bracketed-IPv6, opaque-host, or domain parsing,
// reporting failures as ValidationError codes rather than a single generic
// error.
type HostParser struct {
	// LaxHostParsing, when true, falls back to an opaque-ish best-effort
	// host instead of failing fatally on a ToASCII or forbidden-code-point
	// error.
	LaxHostParsing bool
}

// ParseHost implements the host-parsing algorithm. isSpecial
// selects domain-vs-opaque parsing for non-bracketed input; file hosts are
// parsed as domains and share the same forbidden-host-code-point set as
// opaque hosts.
func (hp *HostParser) ParseHost(input string, isSpecial bool, diag *Diagnostics) (Host, error) {
	if input == "" {
		return Host{Kind: HostEmpty}, nil
	}

	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			diag.Add(IPv6Unclosed, 0)
			return Host{}, &ParseError{Errors: diag.Errors()}
		}
		pieces, err := parseIPv6(input[1:len(input)-1], diag)
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIP, IP: IPAddress{Kind: IPv6, V6: pieces}}, nil
	}

	if !isSpecial {
		return hp.parseOpaqueHost(input, diag)
	}

	domain := PercentDecode(input)

	mapper, err := idna.Default()
	if err != nil {
		diag.Add(DomainToASCII, 0)
		return Host{}, &ParseError{Errors: diag.Errors()}
	}
	asciiDomain, err := idna.ToASCII(mapper, domain, idna.Options{CheckBidi: true})
	if err != nil {
		if hp.LaxHostParsing {
			return Host{Kind: HostDomain, Domain: domain}, nil
		}
		diag.Add(DomainToASCII, 0)
		return Host{}, &ParseError{Errors: diag.Errors()}
	}

	for _, c := range asciiDomain {
		if ForbiddenHostSet.Contains(c) {
			if hp.LaxHostParsing {
				return Host{Kind: HostDomain, Domain: asciiDomain}, nil
			}
			diag.Add(DomainInvalidCodePoint, 0)
			return Host{}, &ParseError{Errors: diag.Errors()}
		}
	}

	if ip, ok, err := parseIPv4(asciiDomain, diag); ok {
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIP, IP: ip}, nil
	}

	return Host{Kind: HostDomain, Domain: asciiDomain}, nil
}

func (hp *HostParser) parseOpaqueHost(input string, diag *Diagnostics) (Host, error) {
	for i, c := range input {
		if ForbiddenHostSet.Contains(c) && c != '%' {
			diag.Add(HostInvalidCodePoint, i)
			return Host{}, &ParseError{Errors: diag.Errors()}
		}
	}
	var b strings.Builder
	for _, c := range input {
		b.WriteString(PercentEncodeRune(c, C0Set))
	}
	return Host{Kind: HostOpaque, Opaque: b.String()}, nil
}

// parseIPv4Number parses one dot-separated IPv4 part: decimal by default,
// octal on a leading "0", hex on a leading "0x"/"0X", reporting via
// validationError whether a non-decimal or leading-zero form was used.
func parseIPv4Number(part string, validationError *bool) (int64, bool) {
	base := 10
	switch {
	case len(part) >= 2 && (strings.HasPrefix(part, "0x") || strings.HasPrefix(part, "0X")):
		*validationError = true
		part = part[2:]
		base = 16
	case len(part) >= 2 && part[0] == '0':
		*validationError = true
		part = part[1:]
		base = 8
	}
	if part == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(part, base, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIPv4 tries to interpret a domain's final attempt as an IPv4
// address. ok is false when input is not
// shaped like an IPv4 address at all (so the caller should keep it as a
// domain); ok is true with a non-nil error only when it is shaped like one
// but violates a hard constraint.
func parseIPv4(input string, diag *Diagnostics) (IPAddress, bool, error) {
	parts := strings.Split(input, ".")
	validationError := false
	if parts[len(parts)-1] == "" {
		validationError = true
		if len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) > 4 {
		return IPAddress{}, false, nil
	}

	numbers := make([]int64, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return IPAddress{}, false, nil
		}
		n, isNumeric := parseIPv4Number(part, &validationError)
		if !isNumeric {
			return IPAddress{}, false, nil
		}
		numbers = append(numbers, n)
	}

	for _, n := range numbers {
		if n > 255 {
			validationError = true
		}
	}
	_ = validationError // IPv4EmptyPart/leading-zero/hex forms are non-fatal

	for _, n := range numbers[:len(numbers)-1] {
		if n > 255 {
			diag.Add(IPv4InIPv6OutOfRangePart, 0)
			return IPAddress{}, true, &ParseError{Errors: diag.Errors()}
		}
	}
	maxLast := int64(1)
	for i := 0; i < 5-len(numbers); i++ {
		maxLast *= 256
	}
	if numbers[len(numbers)-1] >= maxLast {
		diag.Add(IPv4InIPv6OutOfRangePart, 0)
		return IPAddress{}, true, &ParseError{Errors: diag.Errors()}
	}

	var addr uint32 = uint32(numbers[len(numbers)-1])
	rest := numbers[:len(numbers)-1]
	for i, n := range rest {
		shift := uint(8 * (3 - i))
		addr += uint32(n) << shift
	}

	return IPAddress{Kind: IPv4, V4: addr}, true, nil
}

// parseIPv6 is a bracket-contents state machine tracking piece index and
// at most one "::" compression point, with support for a trailing embedded
// IPv4 address whose two 16-bit halves are packed into the last two pieces
// (a u16 pair, not a truncating byte pair).
func parseIPv6(input string, diag *Diagnostics) ([8]uint16, error) {
	var address [8]uint16
	cur := NewCodePointCursor(input)
	pieceIndex := 0
	compress := -1

	p := cur.PointedAt()
	if p.Kind == AtCodePoint && p.Rune == ':' {
		if !cur.DoesRemainingStartWith(":") {
			diag.Add(IPv6InvalidCompression, cur.Index())
			return address, &ParseError{Errors: diag.Errors()}
		}
		cur.Increase(2)
		pieceIndex++
		compress = pieceIndex
		p = cur.PointedAt()
	}

	for p.Kind != AtEof {
		if pieceIndex == 8 {
			diag.Add(IPv6TooManyPieces, cur.Index())
			return address, &ParseError{Errors: diag.Errors()}
		}
		if p.Kind == AtCodePoint && p.Rune == ':' {
			if compress >= 0 {
				diag.Add(IPv6MultipleCompression, cur.Index())
				return address, &ParseError{Errors: diag.Errors()}
			}
			cur.Increase(1)
			pieceIndex++
			compress = pieceIndex
			p = cur.PointedAt()
			continue
		}

		value := 0
		length := 0
		for length < 4 && p.Kind == AtCodePoint && IsASCIIHexDigit(p.Rune) {
			value = value*0x10 + hexVal(p.Rune)
			cur.Increase(1)
			p = cur.PointedAt()
			length++
		}

		if p.Kind == AtCodePoint && p.Rune == '.' {
			if length == 0 {
				diag.Add(IPv4InIPv6InvalidCodePoint, cur.Index())
				return address, &ParseError{Errors: diag.Errors()}
			}
			cur.Decrease(length)
			p = cur.PointedAt()
			if pieceIndex > 6 {
				diag.Add(IPv4InIPv6TooManyPieces, cur.Index())
				return address, &ParseError{Errors: diag.Errors()}
			}

			numbersSeen := 0
			for p.Kind != AtEof {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if p.Kind == AtCodePoint && p.Rune == '.' && numbersSeen < 4 {
						cur.Increase(1)
						p = cur.PointedAt()
					} else {
						diag.Add(IPv4InIPv6InvalidCodePoint, cur.Index())
						return address, &ParseError{Errors: diag.Errors()}
					}
				}
				if !(p.Kind == AtCodePoint && IsASCIIDigit(p.Rune)) {
					diag.Add(IPv4InIPv6InvalidCodePoint, cur.Index())
					return address, &ParseError{Errors: diag.Errors()}
				}
				for p.Kind == AtCodePoint && IsASCIIDigit(p.Rune) {
					digit := int(p.Rune - '0')
					switch {
					case ipv4Piece < 0:
						ipv4Piece = digit
					case ipv4Piece == 0:
						diag.Add(IPv4InIPv6InvalidCodePoint, cur.Index())
						return address, &ParseError{Errors: diag.Errors()}
					default:
						ipv4Piece = ipv4Piece*10 + digit
					}
					if ipv4Piece > 255 {
						diag.Add(IPv4InIPv6OutOfRangePart, cur.Index())
						return address, &ParseError{Errors: diag.Errors()}
					}
					cur.Increase(1)
					p = cur.PointedAt()
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				diag.Add(IPv4InIPv6TooFewParts, cur.Index())
				return address, &ParseError{Errors: diag.Errors()}
			}
			break
		} else if p.Kind == AtCodePoint && p.Rune == ':' {
			cur.Increase(1)
			p = cur.PointedAt()
			if p.Kind == AtEof {
				diag.Add(IPv6InvalidCodePoint, cur.Index())
				return address, &ParseError{Errors: diag.Errors()}
			}
		} else if p.Kind != AtEof {
			diag.Add(IPv6InvalidCodePoint, cur.Index())
			return address, &ParseError{Errors: diag.Errors()}
		}
		address[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress >= 0 {
		swaps := pieceIndex - compress
		pieceIndex = 7
		for pieceIndex != 0 && swaps > 0 {
			address[pieceIndex], address[compress+swaps-1] = address[compress+swaps-1], address[pieceIndex]
			pieceIndex--
			swaps--
		}
	} else if pieceIndex != 8 {
		diag.Add(IPv6TooFewPieces, cur.Index())
		return address, &ParseError{Errors: diag.Errors()}
	}

	return address, nil
}
