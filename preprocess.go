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
	"bytes"
	"strings"

	"go4.org/bytereplacer"
)

// tabStopSize is the multiple of columns that a [tab] advances to.
//
// [tab]: https://spec.commonmark.org/0.30/#tabs
const tabStopSize = 4

// nulReplacer substitutes NUL bytes with the Unicode replacement character,
// per the [insecure characters] rule.
//
// [insecure characters]: https://spec.commonmark.org/0.30/#insecure-characters
var nulReplacer = bytereplacer.New("\x00", "�")

// preprocess splits source into lines suitable for [*Parser.incorporateLine]:
// NUL bytes are replaced with U+FFFD,
// line terminators ("\r\n", "\n", or "\r") are removed,
// and tabs are expanded to spaces.
// A terminator on the final line does not produce a trailing empty line.
func preprocess(source []byte) []string {
	if bytes.IndexByte(source, 0) >= 0 {
		source = nulReplacer.Replace(bytes.Clone(source))
	}
	lines := splitLines(source)
	for i, line := range lines {
		lines[i] = expandTabs(line)
	}
	return lines
}

func splitLines(source []byte) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '\n':
			lines = append(lines, string(source[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, string(source[start:i]))
			if i+1 < len(source) && source[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, string(source[start:]))
	}
	return lines
}

// expandTabs replaces tabs with spaces,
// advancing each tab to the next multiple of [tabStopSize] columns
// counted from the start of the line.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	sb := new(strings.Builder)
	sb.Grow(len(line) + tabStopSize)
	col := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			n := tabStopSize - col%tabStopSize
			for ; n > 0; n-- {
				sb.WriteByte(' ')
				col++
			}
		} else {
			sb.WriteByte(line[i])
			col++
		}
	}
	return sb.String()
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}
