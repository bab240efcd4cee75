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
	"encoding/json"
	"strconv"
	"strings"
)

// specialSchemeDefaultPorts maps each special scheme to its default port,
// omitted from String's authority when matched exactly.
var specialSchemeDefaultPorts = map[string]int{
	"ftp":   21,
	"file":  -1, // file has no default port, and never carries one
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// IsSpecialScheme reports whether scheme is one of the six special schemes
// (ftp, file, http, https, ws, wss).
func IsSpecialScheme(scheme string) bool {
	_, ok := specialSchemeDefaultPorts[scheme]
	return ok
}

// UrlValue is the fully-parsed, immutable 7-tuple result of a successful
// parse: scheme, optional userinfo, optional host and port, a path, and
// optional query and fragment.
type UrlValue struct {
	scheme   string
	username string
	password string
	host     *Host
	port     *int
	path     UrlPath
	query    *string
	fragment *string
}

// Scheme returns the URL's lowercase ASCII scheme.
func (u *UrlValue) Scheme() string { return u.scheme }

// Username returns the percent-encoded username, empty if absent.
func (u *UrlValue) Username() string { return u.username }

// Password returns the percent-encoded password, empty if absent.
func (u *UrlValue) Password() string { return u.password }

// Host returns the URL's host, or nil if it has none.
func (u *UrlValue) Host() *Host { return u.host }

// Port returns the URL's port, or nil if it has none (including when it
// equals the special scheme's default port, which is normalized away).
func (u *UrlValue) Port() *int { return u.port }

// Path returns the URL's path.
func (u *UrlValue) Path() UrlPath { return u.path }

// Query returns the URL's query string (without the leading '?'), or nil
// if absent.
func (u *UrlValue) Query() *string { return u.query }

// Fragment returns the URL's fragment (without the leading '#'), or nil if
// absent.
func (u *UrlValue) Fragment() *string { return u.fragment }

// IsSpecial reports whether the URL's scheme is one of the six special
// schemes.
func (u *UrlValue) IsSpecial() bool { return IsSpecialScheme(u.scheme) }

// HasCredentials reports whether the URL carries a non-empty username or
// password.
func (u *UrlValue) HasCredentials() bool {
	return u.username != "" || u.password != ""
}

// String serializes the URL.
func (u *UrlValue) String() string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')

	if u.host != nil {
		b.WriteString("//")
		if u.HasCredentials() {
			b.WriteString(u.username)
			if u.password != "" {
				b.WriteByte(':')
				b.WriteString(u.password)
			}
			b.WriteByte('@')
		}
		b.WriteString(u.host.String())
		if u.port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(*u.port))
		}
	} else if u.scheme == "file" {
		b.WriteString("//")
	} else if u.path.Kind == PathNonOpaque && u.host == nil && len(u.path.Segments) > 1 && u.path.Segments[0] == "" {
		// a non-opaque path with no authority and a leading empty segment
		// would otherwise collide with "//"; insert "/." to disambiguate.
		b.WriteString("/.")
	}

	b.WriteString(u.path.String())

	if u.query != nil {
		b.WriteByte('?')
		b.WriteString(*u.query)
	}
	if u.fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.fragment)
	}
	return b.String()
}

// urlValueJSON is the wire representation used by MarshalJSON/UnmarshalJSON.
type urlValueJSON struct {
	Scheme   string  `json:"scheme"`
	Username string  `json:"username,omitempty"`
	Password string  `json:"password,omitempty"`
	Host     *string `json:"host,omitempty"`
	Port     *int    `json:"port,omitempty"`
	Path     string  `json:"path"`
	Query    *string `json:"query,omitempty"`
	Fragment *string `json:"fragment,omitempty"`
	Href     string  `json:"href"`
}

// MarshalJSON renders the URL as an object mirroring the WHATWG URL
// interface's readable fields, plus a "href" field holding String's output.
func (u *UrlValue) MarshalJSON() ([]byte, error) {
	out := urlValueJSON{
		Scheme:   u.scheme,
		Username: u.username,
		Password: u.password,
		Port:     u.port,
		Path:     u.path.String(),
		Query:    u.query,
		Fragment: u.fragment,
		Href:     u.String(),
	}
	if u.host != nil {
		s := u.host.String()
		out.Host = &s
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the object produced by MarshalJSON back into a
// UrlValue by re-running it through Parse on the "href" field: the other
// fields are informational and are not independently trusted, avoiding a
// second, divergent code path for reconstructing host/path/port state.
func (u *UrlValue) UnmarshalJSON(data []byte) error {
	var in urlValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	outcome := Parse(in.Href)
	v, err := outcome.Value()
	if err != nil {
		return err
	}
	*u = *v
	return nil
}
