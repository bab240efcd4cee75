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

// Package weburl implements the WHATWG URL Standard's parsing and
// serialization algorithm: the 21-state parser, host parsing (IPv6, IPv4,
// opaque and domain hosts), IDNA ToASCII via the internal/idna and
// internal/punycode packages, and percent-encoding.
//
// Parsing is a pure function of its input and an optional base URL; it
// never mutates either and never panics except through MustParse. The
// embedded IDNA mapping table is loaded lazily, exactly once, the first
// time a domain host is parsed.
package weburl
