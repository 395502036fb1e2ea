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
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"foo", "foo"},
		{"  foo  ", "foo"},
		{"Foo Bar", "foo bar"},
		{"foo \n  bar", "foo bar"},
		{"ΑΓΩ", "αγω"},
		{"Straße", "strasse"},
		{"", ""},
		{"   ", ""},
	}
	for _, test := range tests {
		if got := NormalizeLabel(test.label); got != test.want {
			t.Errorf("NormalizeLabel(%q) = %q; want %q", test.label, got, test.want)
		}
	}
}

func TestReferenceMapAdd(t *testing.T) {
	m := ReferenceMap{}
	m.Add("Foo", LinkDefinition{Destination: "/first"})
	m.Add("foo", LinkDefinition{Destination: "/second"})
	m.Add("  FOO  ", LinkDefinition{Destination: "/third"})
	m.Add("", LinkDefinition{Destination: "/empty"})
	m.Add("   ", LinkDefinition{Destination: "/blank"})

	want := ReferenceMap{
		"foo": {Destination: "/first"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("map after adds (-want +got):\n%s", diff)
	}
	if !m.MatchReference("foo") {
		t.Error(`MatchReference("foo") = false; want true`)
	}
	if m.MatchReference("bar") {
		t.Error(`MatchReference("bar") = true; want false`)
	}
}
