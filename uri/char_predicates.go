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

// CharClass is the semantic class of a character in the URI grammar.
type CharClass uint8

// Character classes, following RFC 3986 Section 2.
const (
	ClassForbidden CharClass = iota
	ClassUnreservedDigit
	ClassUnreservedAlpha
	ClassUnreservedMark
	ClassReservedDelimiter
	ClassReservedSubDelimiter
	ClassPctEncodeLeader
)

const (
	// tableFirst and tableLast bound the printable US-ASCII range covered by
	// the lookup table. Everything outside it is forbidden.
	tableFirst = 0x21
	tableLast  = 0x7E
	tableSize  = tableLast - tableFirst + 1
)

// charClasses maps every printable US-ASCII character to its class,
// indexed by c - tableFirst.
//
//	unreserved  = ALPHA / DIGIT / "-" / "." / "_" / "~"
//	gen-delims  = ":" / "/" / "?" / "#" / "[" / "]" / "@"
//	sub-delims  = "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
//
// "!" is classified as an unreserved mark, the way the accepted language of
// this parser has always treated it.
var charClasses = buildCharClasses()

func buildCharClasses() [tableSize]CharClass {
	var t [tableSize]CharClass
	set := func(class CharClass, chars string) {
		for i := 0; i < len(chars); i++ {
			t[chars[i]-tableFirst] = class
		}
	}
	for c := '0'; c <= '9'; c++ {
		t[c-tableFirst] = ClassUnreservedDigit
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c-tableFirst] = ClassUnreservedAlpha
		t[c-'a'+'A'-tableFirst] = ClassUnreservedAlpha
	}
	set(ClassUnreservedMark, "!-._~")
	set(ClassReservedDelimiter, "#/:?@[]")
	set(ClassReservedSubDelimiter, "$&'()*+,;=")
	set(ClassPctEncodeLeader, "%")
	// '"', '<', '>', '\\', '^', '`', '{', '|' and '}' keep the zero value.
	return t
}

// Classify returns the class of the code point c. It is total: code points
// up to 0x20 and from 0x7F upwards are forbidden.
func Classify(c rune) CharClass {
	if c < tableFirst || c > tableLast {
		return ClassForbidden
	}
	return charClasses[c-tableFirst]
}

// IsUnreserved reports whether the class is one of the unreserved classes.
func (c CharClass) IsUnreserved() bool {
	switch c {
	case ClassUnreservedDigit, ClassUnreservedAlpha, ClassUnreservedMark:
		return true
	default:
		return false
	}
}

// String returns the class name.
func (c CharClass) String() string {
	switch c {
	case ClassForbidden:
		return "forbidden"
	case ClassUnreservedDigit:
		return "unreserved-digit"
	case ClassUnreservedAlpha:
		return "unreserved-alpha"
	case ClassUnreservedMark:
		return "unreserved-mark"
	case ClassReservedDelimiter:
		return "reserved-delimiter"
	case ClassReservedSubDelimiter:
		return "reserved-sub-delimiter"
	case ClassPctEncodeLeader:
		return "pct-encode-leader"
	default:
		return "unknown"
	}
}

// isASCIIDigit checks if a rune is an ASCII digit.
func isASCIIDigit(c rune) bool {
	return Classify(c) == ClassUnreservedDigit
}

// isASCIILetter checks if a rune is an ASCII letter.
func isASCIILetter(c rune) bool {
	return Classify(c) == ClassUnreservedAlpha
}

// isSchemeChar checks if a rune may appear in a scheme.
func isSchemeChar(c rune) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '+' || c == '-' || c == '.'
}

// IsHexDigit reports whether c is an ASCII hexadecimal digit.
func IsHexDigit(c rune) bool {
	return isASCIIDigit(c) || ('A' <= c && c <= 'F') || ('a' <= c && c <= 'f')
}

// IsPathChar reports whether c is a "pchar": an unreserved character,
// a sub-delimiter, the percent-escape leader, ':' or '@'.
func IsPathChar(c rune) bool {
	switch class := Classify(c); {
	case class.IsUnreserved(),
		class == ClassReservedSubDelimiter,
		class == ClassPctEncodeLeader:
		return true
	}
	return c == ':' || c == '@'
}
