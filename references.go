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

	"golang.org/x/text/cases"
)

// LinkDefinition is the data of a [link reference definition].
//
// [link reference definition]: https://spec.commonmark.org/0.30/#link-reference-definition
type LinkDefinition struct {
	Destination string
	Title       string
}

// ReferenceMap is a mapping of [normalized labels] to link definitions.
// Definitions are harvested from the heads of paragraphs as they finalize.
//
// [normalized labels]: https://spec.commonmark.org/0.30/#matches
type ReferenceMap map[string]LinkDefinition

// MatchReference reports whether the normalized label appears in the map.
func (m ReferenceMap) MatchReference(normalizedLabel string) bool {
	_, ok := m[normalizedLabel]
	return ok
}

// Add records a definition under the normalized form of label.
// The first definition for a label wins; later ones are ignored.
func (m ReferenceMap) Add(label string, def LinkDefinition) {
	normalized := NormalizeLabel(label)
	if normalized == "" {
		return
	}
	if _, exists := m[normalized]; exists {
		return
	}
	m[normalized] = def
}

var labelFolder = cases.Fold()

// NormalizeLabel converts a reference label to its canonical form:
// surrounding whitespace stripped,
// internal whitespace runs collapsed to a single space,
// and Unicode case folding applied.
func NormalizeLabel(label string) string {
	return labelFolder.String(strings.Join(strings.Fields(label), " "))
}
