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
	"errors"
	"fmt"
)

// Errors identifying the grammar segment a parse failed on. They are reachable
// from [Components.Err] with errors.Is.
var (
	// ErrAbsentInput is reported when no input value was supplied at all,
	// as opposed to an empty string.
	ErrAbsentInput = errors.New("no input supplied")
	// ErrMalformedScheme is reported for an empty scheme or a scheme that is
	// not terminated by ':'.
	ErrMalformedScheme = errors.New("malformed scheme")
	// ErrMalformedUserInfo is reported when the userinfo has no terminating
	// '@' or contains more than one ':'.
	ErrMalformedUserInfo = errors.New("malformed userinfo")
	// ErrMalformedHost is reported for an empty host and for IP literals with
	// missing, duplicated or empty brackets.
	ErrMalformedHost = errors.New("malformed host")
	// ErrMalformedPort is reported for a port that is empty, longer than five
	// digits, greater than 65535 or followed by an unexpected character.
	ErrMalformedPort = errors.New("malformed port")
	// ErrMalformedPath is reported when the path contains a character that is
	// neither a path character nor a recognized terminator.
	ErrMalformedPath = errors.New("malformed path")
)

// noChar marks a kindError that does not point at a specific character.
const noChar = -1

// kindError is the cause recorded on an error state. It points at the
// offending byte and the offset where the state gave up.
type kindError struct {
	kind    error
	message string
	char    rune
	offset  int
}

// newKindError creates a cause for the given sentinel. Pass noChar when the
// failure is not tied to a character, e.g. an unexpected end of input.
func newKindError(kind error, message string, char rune, offset int) *kindError {
	return &kindError{kind: kind, message: message, char: char, offset: offset}
}

// Error formats the error message with the offending character, if any,
// and its offset.
func (e *kindError) Error() string {
	msg := e.kind.Error()
	if e.message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.message)
	}
	if e.char != noChar {
		return fmt.Sprintf("%s %q at offset %d", msg, e.char, e.offset)
	}
	return fmt.Sprintf("%s at offset %d", msg, e.offset)
}

// Unwrap returns the sentinel error of the failed grammar segment.
func (e *kindError) Unwrap() error {
	return e.kind
}

// ParseError is the error carried by an invalid [Components]. Its message is
// always "<input> is not a valid URL." and the detailed cause is available
// through Unwrap.
type ParseError struct {
	// Input is the text that failed validation. It is empty for absent input.
	Input string
	// Absent reports that no input value was supplied.
	Absent bool
	// Err is the detailed cause.
	Err error
}

// Error returns the caller-facing message embedding the rejected input.
func (e *ParseError) Error() string {
	if e.Absent {
		return "null is not a valid URL."
	}
	return e.Input + " is not a valid URL."
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}
