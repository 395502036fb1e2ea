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

// Package commonmark provides a streaming, line-oriented [CommonMark]
// block-structure parser.
// It consumes a text document and produces a tree of block-level nodes;
// inline content is handed off to an [InlineParser] collaborator
// once block structure is known.
//
// [CommonMark]: https://commonmark.org/
package commonmark

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options is the set of optional parameters to [NewParser].
type Options struct {
	// Time emits timing diagnostics for the parse phases:
	// preparing input, block parsing, and inline parsing.
	Time bool

	// Logger receives the timing diagnostics.
	// If nil, the logrus standard logger is used.
	Logger logrus.FieldLogger

	// Inline is the collaborator used to parse link reference definitions
	// during paragraph finalization
	// and inline content once block structure is complete.
	// If nil, [ReferenceScanner] is used.
	Inline InlineParser
}

// A Parser builds a block tree from a document,
// one line at a time.
// A Parser owns its tree, tip, and reference map exclusively
// for the duration of a Parse call;
// parse distinct documents concurrently with distinct parsers.
type Parser struct {
	opts   Options
	inline InlineParser

	doc                  *Node
	tip                  *Node
	oldtip               *Node
	lastMatchedContainer *Node
	refmap               ReferenceMap

	line          string
	offset        int
	firstNonspace int
	indent        int
	blank         bool

	lineNumber     int
	lastLineLength int
}

// NewParser returns a parser configured with opts.
// A nil opts is equivalent to the zero Options.
func NewParser(opts *Options) *Parser {
	p := new(Parser)
	if opts != nil {
		p.opts = *opts
	}
	p.inline = p.opts.Inline
	if p.inline == nil {
		p.inline = ReferenceScanner{}
	}
	return p
}

// Parse builds the block tree for source with default options.
// Any byte sequence is valid input; see [*Parser.Parse].
func Parse(source []byte) (*Node, error) {
	return NewParser(nil).Parse(source)
}

// Parse consumes the document and returns the root [DocumentKind] node.
// There are no syntactic parse errors:
// any byte stream produces a tree, and malformed markers degrade to text.
// A non-nil error reports resource exhaustion (nesting beyond the depth bound);
// the partial tree accompanying it is finalized as far as possible.
func (p *Parser) Parse(source []byte) (*Node, error) {
	start := time.Now()
	lines := preprocess(source)
	p.phaseDone("preparing input", start)

	start = time.Now()
	p.doc = newNode(DocumentKind, Pos{Line: 1, Col: 1})
	p.tip = p.doc
	p.oldtip = p.doc
	p.lastMatchedContainer = p.doc
	p.refmap = ReferenceMap{}
	p.lineNumber = 0
	p.lastLineLength = 0

	var err error
	for i, line := range lines {
		p.lineNumber = i + 1
		if err = p.incorporateLine(line); err != nil {
			break
		}
	}
	for p.tip != nil {
		p.finalize(p.tip, p.lineNumber)
	}
	p.phaseDone("block parsing", start)
	if err != nil {
		return p.doc, err
	}

	start = time.Now()
	Walk(p.doc, &WalkOptions{
		Post: func(c *Cursor) bool {
			if k := c.Node().Kind(); k == ParagraphKind || k == HeaderKind {
				p.inline.ParseInlines(c.Node(), p.refmap)
			}
			return true
		},
	})
	p.phaseDone("inline parsing", start)
	return p.doc, nil
}

// References returns the reference map populated by the last Parse call.
func (p *Parser) References() ReferenceMap {
	return p.refmap
}

func (p *Parser) phaseDone(phase string, start time.Time) {
	if !p.opts.Time {
		return
	}
	logger := p.opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithField("elapsed", time.Since(start)).Info(phase)
}
