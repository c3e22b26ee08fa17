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

// Package weburl provides a URL accessor object in the style of the WHATWG
// URL interface, backed by the strict parser of package uri.
//
// Every projection keeps its delimiter: Protocol ends with ':', Search starts
// with '?' and Hash with '#'. Parsing an invalid URL does not fail: Valid
// reports false, Err holds the reason and every projection but Href is
// empty. Resolution against a base URL is not supported.
package weburl

import (
	"encoding/json"
	"errors"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/jplu/uriparse/uri"
)

// ErrBaseNotSupported is returned when a base URL is supplied.
var ErrBaseNotSupported = errors.New("weburl: base URL is not supported")

// parser keeps every delimiter so projections can be concatenated back.
var parser = uri.Parser{
	Config: uri.Config{
		KeepSchemeDelimiter: true,
		KeepQueryPrefix:     true,
		KeepFragmentPrefix:  true,
	},
}

// URL is a parsed URL. The zero value is an invalid, empty URL.
type URL struct {
	components uri.Components
	protocol   string
	origin     string
	host       string
	hostname   string
}

// New parses href.
func New(href string) *URL {
	u := &URL{}
	u.SetHref(href)
	return u
}

// NewWithBase exists for interface parity with constructors taking a base
// URL. It always fails with ErrBaseNotSupported.
func NewWithBase(href, base string) (*URL, error) {
	return nil, errtrace.Wrap(ErrBaseNotSupported)
}

// SetHref replaces the URL with the result of parsing href.
func (u *URL) SetHref(href string) {
	u.components = parser.Parse(href)
	u.setup()
}

// setup recomputes the derived projections.
func (u *URL) setup() {
	u.protocol, u.hostname, u.host, u.origin = "", "", "", ""
	if !u.components.Valid {
		return
	}

	u.protocol = u.components.Scheme
	if !u.components.HasAuthority {
		return
	}
	u.hostname = u.components.Host
	u.host = joinHostPort(u.components.Host, u.components.Port)
	u.origin = u.protocol + "//" + u.host
}

// Valid reports whether the URL parsed successfully.
func (u *URL) Valid() bool {
	return u.components.Valid
}

// Err returns the reason the URL is invalid, or nil.
func (u *URL) Err() error {
	return u.components.Err
}

// Components returns the raw parse result.
func (u *URL) Components() uri.Components {
	return u.components
}

// Href returns the text the URL was parsed from.
func (u *URL) Href() string {
	return u.components.URI
}

// Protocol returns the scheme followed by ':'.
func (u *URL) Protocol() string {
	return u.protocol
}

// Origin returns "protocol//host[:port]", or "" when the URL has no
// authority.
func (u *URL) Origin() string {
	return u.origin
}

// Username returns the user part of the userinfo.
func (u *URL) Username() string {
	return u.components.User
}

// Password returns the password part of the userinfo.
func (u *URL) Password() string {
	return u.components.Password
}

// Host returns the host followed by ":port" when a port is present.
func (u *URL) Host() string {
	return u.host
}

// Hostname returns the host without the port. IP literals keep their
// brackets.
func (u *URL) Hostname() string {
	return u.hostname
}

// Port returns the port digits as written.
func (u *URL) Port() string {
	return u.components.Port
}

// Pathname returns the path.
func (u *URL) Pathname() string {
	return u.components.Path
}

// Search returns the query with its leading '?'.
func (u *URL) Search() string {
	return u.components.Query
}

// Hash returns the fragment with its leading '#'.
func (u *URL) Hash() string {
	return u.components.Fragment
}

// String returns Href.
func (u *URL) String() string {
	return u.Href()
}

// MarshalJSON implements the json.Marshaler interface, encoding the URL as
// a JSON string.
func (u *URL) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(json.Marshal(u.Href()))
}

// UnmarshalJSON implements the json.Unmarshaler interface. It decodes a JSON
// string and parses it. An invalid URL is reported as an error and leaves u
// unchanged.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errtrace.Wrap(err)
	}
	parsed := New(s)
	if !parsed.Valid() {
		return errtrace.Wrap(parsed.Err())
	}
	*u = *parsed
	return nil
}

// LogValue implements [slog.LogValuer] for structured logging.
func (u *URL) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	return u.components.LogValue()
}
