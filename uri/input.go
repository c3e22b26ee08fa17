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

import "strings"

// parserInput is the original text being parsed. States address it with
// absolute byte offsets and never modify it; component values are substrings
// of it.
type parserInput string

// len returns the length of the input in bytes.
func (in parserInput) len() int {
	return len(in)
}

// at returns the character at offset i, or false if i is past the end of
// the input.
func (in parserInput) at(i int) (rune, bool) {
	if i < 0 || i >= len(in) {
		return 0, false
	}
	return rune(in[i]), true
}

// slice returns the substring between from and to, clamped to the input.
func (in parserInput) slice(from, to int) string {
	to = min(to, len(in))
	if from >= to {
		return ""
	}
	return string(in[from:to])
}

// scan returns the offset of the first character at or after from that does
// not satisfy pred. It returns from unchanged when from is already past the
// last character.
func (in parserInput) scan(from int, pred func(rune) bool) int {
	i := from
	for i < len(in) && pred(rune(in[i])) {
		i++
	}
	return i
}

// indexAny returns the offset of the first character at or after from that
// is one of chars, or -1.
func (in parserInput) indexAny(from int, chars string) int {
	if from >= len(in) {
		return -1
	}
	i := strings.IndexAny(string(in[from:]), chars)
	if i < 0 {
		return -1
	}
	return from + i
}

// hasPrefixAt checks if the input continues with prefix at offset i.
func (in parserInput) hasPrefixAt(i int, prefix string) bool {
	return i <= len(in) && strings.HasPrefix(string(in[i:]), prefix)
}
