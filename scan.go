// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package commonmark

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// Line scanners.
// Each scanner examines a detabbed line (or its tail)
// and reports marker data without consuming parser state.
// Scanners that can fail return a zero value (0, false, or an empty ListData)
// on no match, so callers can branch on a single comparison.

// maybeSpecial reports whether the byte at offset could begin a new block:
// a space (possible indented code), a marker character, or a digit.
// It is a cheap gate before the opening phase.
func maybeSpecial(line string, offset int) bool {
	if offset >= len(line) {
		return false
	}
	c := line[offset]
	return c == ' ' || c >= '0' && c <= '9' || strings.IndexByte("#`~*+_=<>-", c) >= 0
}

// peek returns the byte at position i, or 0 past the end of the line.
func peek(line string, i int) byte {
	if i < len(line) {
		return line[i]
	}
	return 0
}

// scanATXHeaderMarker attempts to parse an [ATX heading] opener
// at the beginning of s: one to six '#' followed by a space or end of line.
// It returns the header level and the total marker length
// including the spaces after it, or 0, 0.
//
// [ATX heading]: https://spec.commonmark.org/0.30/#atx-headings
func scanATXHeaderMarker(s string) (level, markerLen int) {
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level < 1 || level > 6 {
		return 0, 0
	}
	if level < len(s) && s[level] != ' ' {
		return 0, 0
	}
	markerLen = level
	for markerLen < len(s) && s[markerLen] == ' ' {
		markerLen++
	}
	return level, markerLen
}

// stripATXTrailer removes a closing sequence of '#' characters
// and any surrounding spaces from the end of an ATX header's content.
// A trailing '#' run is a closing sequence only if it is the whole content
// or is preceded by a space; otherwise (as in "hi##" or "hi \#")
// it is kept as header text.
func stripATXTrailer(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	hashEnd := end
	for end > 0 && s[end-1] == '#' {
		end--
	}
	if end == hashEnd || end > 0 && s[end-1] != ' ' {
		// No closing sequence; drop trailing spaces only.
		return s[:hashEnd]
	}
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}

// scanCodeFence attempts to parse a [code fence] opener at the beginning of s:
// at least three backticks with no further backtick on the line,
// or at least three tildes with no further tilde on the line.
// It returns the fence length and character, or 0, 0.
//
// [code fence]: https://spec.commonmark.org/0.30/#code-fence
func scanCodeFence(s string) (length int, char byte) {
	if len(s) == 0 || s[0] != '`' && s[0] != '~' {
		return 0, 0
	}
	char = s[0]
	for length < len(s) && s[length] == char {
		length++
	}
	if length < 3 || strings.IndexByte(s[length:], char) >= 0 {
		return 0, 0
	}
	return length, char
}

// scanCloseCodeFence reports whether s begins with a closing fence
// of the given character at least minLength long,
// followed by spaces only.
func scanCloseCodeFence(s string, char byte, minLength int) bool {
	n := 0
	for n < len(s) && s[n] == char {
		n++
	}
	if n < 3 || n < minLength {
		return false
	}
	for _, c := range []byte(s[n:]) {
		if c != ' ' {
			return false
		}
	}
	return true
}

// scanSetextLine attempts to parse a [setext heading underline]:
// a run of '=' (level 1) or '-' (level 2) optionally trailed by spaces.
// It returns 0 if s is not an underline.
//
// [setext heading underline]: https://spec.commonmark.org/0.30/#setext-heading-underline
func scanSetextLine(s string) (level int) {
	if len(s) == 0 {
		return 0
	}
	char := s[0]
	switch char {
	case '=':
		level = 1
	case '-':
		level = 2
	default:
		return 0
	}
	i := 0
	for i < len(s) && s[i] == char {
		i++
	}
	for ; i < len(s); i++ {
		if s[i] != ' ' {
			return 0
		}
	}
	return level
}

// scanHorizontalRule reports whether s is a [thematic break]:
// three or more of the same '*', '_', or '-' separated only by spaces.
//
// [thematic break]: https://spec.commonmark.org/0.30/#thematic-breaks
func scanHorizontalRule(s string) bool {
	n := 0
	var want byte
	for _, c := range []byte(s) {
		switch c {
		case '-', '_', '*':
			if n == 0 {
				want = c
			} else if c != want {
				return false
			}
			n++
		case ' ':
			// Ignore.
		default:
			return false
		}
	}
	return n >= 3
}

// scanListMarker attempts to parse a [list marker] at pos within line.
// It returns the marker data with Padding filled in,
// or the zero value if no marker is present.
// MarkerOffset is left for the caller,
// which knows the indent the marker was found at.
//
// [list marker]: https://spec.commonmark.org/0.30/#list-marker
func scanListMarker(line string, pos int) ListData {
	rest := line[pos:]
	if scanHorizontalRule(rest) {
		return ListData{}
	}
	var data ListData
	markerLen := 0
	switch {
	case len(rest) > 0 && (rest[0] == '*' || rest[0] == '+' || rest[0] == '-'):
		data.Type = BulletList
		data.BulletChar = rest[0]
		markerLen = 1
	default:
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			return ListData{}
		}
		delim := peek(rest, digits)
		if delim != '.' && delim != ')' {
			return ListData{}
		}
		data.Type = OrderedList
		data.Start = parseInt(rest[:digits])
		data.Delimiter = delim
		markerLen = digits + 1
	}

	// The marker must be followed by spaces or end of line.
	spacesAfter := 0
	for markerLen+spacesAfter < len(rest) && rest[markerLen+spacesAfter] == ' ' {
		spacesAfter++
	}
	if markerLen+spacesAfter < len(rest) && spacesAfter == 0 {
		return ListData{}
	}
	blankItem := markerLen+spacesAfter == len(rest)
	if spacesAfter >= 5 || spacesAfter < 1 || blankItem {
		data.Padding = markerLen + 1
	} else {
		data.Padding = markerLen + spacesAfter
	}
	data.Tight = true
	return data
}

// listsMatch reports whether a new item with the given marker data
// continues the list the current item data belongs to.
func listsMatch(a, b ListData) bool {
	return a.Type == b.Type &&
		a.Delimiter == b.Delimiter &&
		a.BulletChar == b.BulletChar
}

func parseInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			return 1 << 31
		}
	}
	return n
}

// htmlBlockTags is the fixed set of tag names
// whose open or close tags start an [HTML block].
//
// [HTML block]: https://spec.commonmark.org/0.30/#html-blocks
var htmlBlockTags = func() map[string]bool {
	tags := map[string]bool{}
	for _, a := range []atom.Atom{
		atom.Article,
		atom.Header,
		atom.Aside,
		atom.Hgroup,
		atom.Iframe,
		atom.Blockquote,
		atom.Hr,
		atom.Body,
		atom.Li,
		atom.Map,
		atom.Button,
		atom.Object,
		atom.Canvas,
		atom.Ol,
		atom.Caption,
		atom.Output,
		atom.Col,
		atom.P,
		atom.Colgroup,
		atom.Pre,
		atom.Dd,
		atom.Progress,
		atom.Div,
		atom.Section,
		atom.Dl,
		atom.Table,
		atom.Td,
		atom.Dt,
		atom.Tbody,
		atom.Embed,
		atom.Textarea,
		atom.Fieldset,
		atom.Tfoot,
		atom.Figcaption,
		atom.Th,
		atom.Figure,
		atom.Thead,
		atom.Footer,
		atom.Tr,
		atom.Form,
		atom.Ul,
		atom.H1,
		atom.H2,
		atom.H3,
		atom.H4,
		atom.H5,
		atom.H6,
		atom.Video,
		atom.Script,
		atom.Style,
	} {
		tags[a.String()] = true
	}
	return tags
}()

// scanHTMLBlockOpen reports whether s begins an HTML block:
// '<' followed by a known block tag name and a terminator,
// "</" followed by the same, or "<?" or "<!".
// Tag names are matched case-insensitively.
func scanHTMLBlockOpen(s string) bool {
	if len(s) < 2 || s[0] != '<' {
		return false
	}
	i := 1
	switch s[i] {
	case '?', '!':
		return true
	case '/':
		i++
	}
	start := i
	for i < len(s) && (isASCIILetter(s[i]) || s[i] >= '0' && s[i] <= '9') {
		i++
	}
	if i == start || i >= len(s) {
		return false
	}
	switch s[i] {
	case ' ', '\t', '/', '>':
	default:
		return false
	}
	return htmlBlockTags[strings.ToLower(s[start:i])]
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
