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

package uri

import (
	"fmt"
	"log/slog"
	"strconv"
)

const (
	// maxPortDigits is the longest digit string accepted as a port.
	maxPortDigits = 5
	// maxPort is the largest accepted port value.
	maxPort = 65535
)

// stateKind identifies a grammar stage of the parser.
type stateKind uint8

const (
	stateInitial stateKind = iota
	stateAuthorityBegin
	stateUserInfoBegin
	stateHostBegin
	stateIPv6HostBegin
	stateNotIPv6HostBegin
	statePortBegin
	statePathBegin
	stateQueryBegin
	stateFragmentBegin
	stateEnd
	stateError
)

var stateKindNames = [...]string{
	stateInitial:          "Initial",
	stateAuthorityBegin:   "AuthorityBegin",
	stateUserInfoBegin:    "UserInfoBegin",
	stateHostBegin:        "HostBegin",
	stateIPv6HostBegin:    "Ipv6HostBegin",
	stateNotIPv6HostBegin: "NotIpv6HostBegin",
	statePortBegin:        "PortBegin",
	statePathBegin:        "PathBegin",
	stateQueryBegin:       "QueryBegin",
	stateFragmentBegin:    "FragmentBegin",
	stateEnd:              "End",
	stateError:            "Error",
}

func (k stateKind) String() string {
	if int(k) < len(stateKindNames) {
		return stateKindNames[k]
	}
	return fmt.Sprintf("stateKind(%d)", k)
}

// terminal reports whether no transition leaves a state of this kind.
func (k stateKind) terminal() bool {
	return k == stateEnd || k == stateError
}

// fields holds the component values accumulated so far.
type fields struct {
	scheme       string
	user         string
	password     string
	host         string
	port         string
	path         string
	query        string
	fragment     string
	hasAuthority bool
}

// state is one step of a parse. States are values: every transition method
// has a value receiver, sets its overrides on that copy and returns it as the
// successor, so a state is never modified once produced.
type state struct {
	kind   stateKind
	config Config
	input  parserInput
	// start is the offset the state begins scanning at. It has no meaning
	// on terminal states, see cursor.
	start  int
	fields fields
	// cause is set on error states only.
	cause *kindError
}

// initialState returns the state a parse of s begins with.
func initialState(config Config, s string) state {
	return state{
		kind:   stateInitial,
		config: config,
		input:  parserInput(s),
		fields: fields{path: "/"},
	}
}

// cursor returns the offset the state begins scanning at. Terminal states
// have no cursor.
func (s state) cursor() (int, bool) {
	if s.kind.terminal() {
		return 0, false
	}
	return s.start, true
}

// to returns the successor of kind beginning at start. It inherits every
// accumulated component value.
func (s state) to(kind stateKind, start int) state {
	s.kind = kind
	s.start = start
	return s
}

// end returns the successful terminal state.
func (s state) end() state {
	s.kind = stateEnd
	s.start = 0
	return s
}

// fail returns the error terminal state. It drops every accumulated
// component value.
func (s state) fail(kind error, message string, char rune, offset int) state {
	return state{
		kind:   stateError,
		config: s.config,
		input:  s.input,
		cause:  newKindError(kind, message, char, offset),
	}
}

// failAt is fail for a failure at offset i, pointing at the character found
// there if any.
func (s state) failAt(kind error, message string, i int) state {
	c, ok := s.input.at(i)
	if !ok {
		return s.fail(kind, message, noChar, i)
	}
	return s.fail(kind, message, c, i)
}

// next consumes the grammar segment the state owns and returns its
// successor. Advancing a terminal state is a programming error.
func (s state) next() state {
	switch s.kind {
	case stateInitial:
		return s.parseScheme()
	case stateAuthorityBegin:
		return s.parseAuthority()
	case stateUserInfoBegin:
		return s.parseUserInfo()
	case stateHostBegin:
		return s.parseHost()
	case stateIPv6HostBegin:
		return s.parseIPv6Host()
	case stateNotIPv6HostBegin:
		return s.parseRegHost()
	case statePortBegin:
		return s.parsePort()
	case statePathBegin:
		return s.parsePath()
	case stateQueryBegin:
		return s.parseQuery()
	case stateFragmentBegin:
		return s.parseFragment()
	default:
		panic(fmt.Sprintf("uri: cannot advance past the %s state", s.kind))
	}
}

// delimiterKind returns the state that begins at the component delimiter c.
func delimiterKind(c rune) (stateKind, bool) {
	switch c {
	case ':':
		return statePortBegin, true
	case '/':
		return statePathBegin, true
	case '?':
		return stateQueryBegin, true
	case '#':
		return stateFragmentBegin, true
	default:
		return 0, false
	}
}

// parseScheme consumes the scheme and its ':' delimiter.
func (s state) parseScheme() state {
	end := s.input.scan(s.start, isSchemeChar)
	if end == s.start {
		return s.failAt(ErrMalformedScheme, "empty scheme", end)
	}
	if c, ok := s.input.at(end); !ok || c != ':' {
		return s.failAt(ErrMalformedScheme, "scheme not terminated by ':'", end)
	}

	if s.config.KeepSchemeDelimiter {
		s.fields.scheme = s.input.slice(s.start, end+1)
	} else {
		s.fields.scheme = s.input.slice(s.start, end)
	}

	next := end + 1
	if s.input.hasPrefixAt(next, "//") {
		s.fields.hasAuthority = true
		return s.to(stateAuthorityBegin, next+len("//"))
	}
	return s.to(statePathBegin, next)
}

// parseAuthority looks ahead for a userinfo section. It consumes nothing.
func (s state) parseAuthority() state {
	if i := s.input.indexAny(s.start, "@/?#"); i >= 0 && s.input[i] == '@' {
		return s.to(stateUserInfoBegin, s.start)
	}
	return s.to(stateHostBegin, s.start)
}

// parseUserInfo consumes "user[:password]@".
func (s state) parseUserInfo() state {
	colon := -1
	for i := s.start; i < s.input.len(); i++ {
		switch s.input[i] {
		case ':':
			if colon != -1 {
				return s.failAt(ErrMalformedUserInfo, "more than one ':'", i)
			}
			colon = i
		case '@':
			if colon == -1 {
				s.fields.user = s.input.slice(s.start, i)
			} else {
				s.fields.user = s.input.slice(s.start, colon)
				s.fields.password = s.input.slice(colon+1, i)
			}
			return s.to(stateHostBegin, i+1)
		}
	}
	return s.fail(ErrMalformedUserInfo, "missing '@'", noChar, s.input.len())
}

// parseHost dispatches on the first host character.
func (s state) parseHost() state {
	c, ok := s.input.at(s.start)
	switch {
	case !ok:
		return s.fail(ErrMalformedHost, "empty host", noChar, s.start)
	case c == '[':
		return s.to(stateIPv6HostBegin, s.start)
	default:
		return s.to(stateNotIPv6HostBegin, s.start)
	}
}

// parseIPv6Host consumes a bracketed IP literal. The brackets are part of
// the host value.
func (s state) parseIPv6Host() state {
	opened := 0
	for i := s.start; i < s.input.len(); i++ {
		switch s.input[i] {
		case '[':
			opened++
			if opened == 2 {
				return s.failAt(ErrMalformedHost, "duplicate '['", i)
			}
		case ']':
			if i == s.start+1 {
				return s.failAt(ErrMalformedHost, "empty IP literal", i)
			}
			s.fields.host = s.input.slice(s.start, i+1)

			next := i + 1
			c, ok := s.input.at(next)
			if !ok {
				return s.end()
			}
			if kind, ok := delimiterKind(c); ok {
				return s.to(kind, next)
			}
			return s.failAt(ErrMalformedHost, "unexpected character after IP literal", next)
		}
	}
	return s.fail(ErrMalformedHost, "unterminated IP literal", noChar, s.input.len())
}

// parseRegHost consumes a host that is not an IP literal, up to the first
// component delimiter.
func (s state) parseRegHost() state {
	if s.start >= s.input.len() {
		return s.fail(ErrMalformedHost, "empty host", noChar, s.start)
	}
	i := s.input.indexAny(s.start, ":/?#")
	if i < 0 {
		s.fields.host = s.input.slice(s.start, s.input.len())
		return s.end()
	}
	s.fields.host = s.input.slice(s.start, i)
	kind, _ := delimiterKind(rune(s.input[i]))
	return s.to(kind, i)
}

// parsePort consumes ":port". The start offset points at the ':'. The digit
// count is checked before the numeric value.
func (s state) parsePort() state {
	digitsStart := s.start + 1
	if digitsStart >= s.input.len() {
		return s.fail(ErrMalformedPort, "empty port", noChar, digitsStart)
	}

	end := s.input.scan(digitsStart, isASCIIDigit)
	digits := s.input.slice(digitsStart, end)
	if digits == "" {
		return s.failAt(ErrMalformedPort, "empty port", end)
	}
	if len(digits) > maxPortDigits {
		return s.fail(ErrMalformedPort, "too many digits", noChar, digitsStart)
	}
	if n, err := strconv.Atoi(digits); err != nil || n > maxPort {
		return s.fail(ErrMalformedPort, "out of range", noChar, digitsStart)
	}
	s.fields.port = digits

	c, ok := s.input.at(end)
	if !ok {
		return s.end()
	}
	if kind, ok := delimiterKind(c); ok && kind != statePortBegin {
		return s.to(kind, end)
	}
	return s.failAt(ErrMalformedPort, "unexpected character", end)
}

// isPathScanChar is the predicate for characters allowed after the first
// character of a path.
func isPathScanChar(c rune) bool {
	return IsPathChar(c) || c == '/'
}

// parsePath consumes the path. The character at the start offset is always
// part of the path: it is the delimiter that led here, or the first
// character of an opaque path when there is no authority.
func (s state) parsePath() state {
	end := s.input.scan(s.start+1, isPathScanChar)
	if end == s.input.len() {
		s.fields.path = s.input.slice(s.start, end)
		return s.end()
	}

	c, ok := s.input.at(end)
	switch {
	case !ok:
		return s.fail(ErrMalformedPath, "empty path", noChar, s.start)
	case c == '?':
		s.fields.path = s.input.slice(s.start, end)
		return s.to(stateQueryBegin, end)
	case c == '#':
		s.fields.path = s.input.slice(s.start, end)
		return s.to(stateFragmentBegin, end)
	default:
		return s.fail(ErrMalformedPath, "invalid character", c, end)
	}
}

// parseQuery consumes the query up to the fragment or the end of input.
// It never fails.
func (s state) parseQuery() state {
	from := s.start
	if !s.config.KeepQueryPrefix {
		from++
	}
	i := s.input.indexAny(from, "#")
	if i < 0 {
		s.fields.query = s.input.slice(from, s.input.len())
		return s.end()
	}
	s.fields.query = s.input.slice(from, i)
	return s.to(stateFragmentBegin, i)
}

// parseFragment consumes the rest of the input. It never fails.
func (s state) parseFragment() state {
	from := s.start
	if !s.config.KeepFragmentPrefix {
		from++
	}
	s.fields.fragment = s.input.slice(from, s.input.len())
	return s.end()
}

// LogValue implements [slog.LogValuer] for structured logging.
func (s state) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 4)
	attrs = append(attrs, slog.String("kind", s.kind.String()))
	if start, ok := s.cursor(); ok {
		attrs = append(attrs, slog.Int("cursor", start))
	}
	if s.cause != nil {
		attrs = append(attrs, slog.Any("cause", s.cause))
	} else {
		attrs = append(attrs, slog.Any("fields", s.fields))
	}
	return slog.GroupValue(attrs...)
}

// LogValue implements [slog.LogValuer] for structured logging.
func (f fields) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("scheme", f.scheme),
		slog.String("user", f.user),
		slog.String("host", f.host),
		slog.String("port", f.port),
		slog.String("path", f.path),
		slog.String("query", f.query),
		slog.String("fragment", f.fragment),
		slog.Bool("has_authority", f.hasAuthority),
	)
}
