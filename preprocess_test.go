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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "Empty",
			source: "",
			want:   nil,
		},
		{
			name:   "SingleNewline",
			source: "\n",
			want:   []string{""},
		},
		{
			name:   "TrailingNewlineSuppressed",
			source: "a\nb\n",
			want:   []string{"a", "b"},
		},
		{
			name:   "NoTrailingNewline",
			source: "a\nb",
			want:   []string{"a", "b"},
		},
		{
			name:   "MixedTerminators",
			source: "a\r\nb\rc\nd",
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "CarriageReturnOnly",
			source: "a\rb\r",
			want:   []string{"a", "b"},
		},
		{
			name:   "BlankLinesKept",
			source: "a\n\n\nb\n",
			want:   []string{"a", "", "", "b"},
		},
		{
			name:   "NULReplaced",
			source: "a\x00b\n",
			want:   []string{"a�b"},
		},
		{
			name:   "TabToNextStop",
			source: "\ta\n",
			want:   []string{"    a"},
		},
		{
			name:   "TabAfterText",
			source: "ab\tc\n",
			want:   []string{"ab  c"},
		},
		{
			name:   "MultipleTabsTrackColumns",
			source: "a\tb\tc\n",
			want:   []string{"a   b   c"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := preprocess([]byte(test.source))
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("preprocess(%q) (-want +got):\n%s", test.source, diff)
			}
		})
	}
}

func TestExpandTabsIdempotent(t *testing.T) {
	inputs := []string{
		"\ta",
		"a\tb\tc",
		"  \t  x",
		"no tabs here",
	}
	for _, input := range inputs {
		once := expandTabs(input)
		if twice := expandTabs(once); twice != once {
			t.Errorf("expandTabs(expandTabs(%q)) = %q; want %q", input, twice, once)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t", true},
		{" a ", false},
	}
	for _, test := range tests {
		if got := isBlank(test.s); got != test.want {
			t.Errorf("isBlank(%q) = %t; want %t", test.s, got, test.want)
		}
	}
}
