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
	"fmt"
	"strings"
)

// codeBlockIndentLimit is the column width of an indent
// required to start an indented code block.
const codeBlockIndentLimit = 4

// maxOpenDepth bounds the open container stack.
// Inputs nested deeper fail with a diagnostic
// instead of growing the spine without limit.
const maxOpenDepth = 1024

// blockRule is the per-kind behavior consulted by [*Parser.incorporateLine]:
// matchContinue tests the block's continuation rule against the current line,
// advancing the parser offset past any consumed prefix,
// and finalize runs the block's close-time post-processing.
type blockRule struct {
	matchContinue func(p *Parser, n *Node) bool
	finalize      func(p *Parser, n *Node)
}

var blockRules = map[BlockKind]blockRule{
	DocumentKind: {
		matchContinue: func(p *Parser, n *Node) bool { return true },
	},
	ListKind: {
		matchContinue: func(p *Parser, n *Node) bool { return true },
		finalize:      finalizeList,
	},
	BlockQuoteKind: {
		matchContinue: func(p *Parser, n *Node) bool {
			if p.indent <= 3 && peek(p.line, p.firstNonspace) == '>' {
				p.offset = p.firstNonspace + 1
				if peek(p.line, p.offset) == ' ' {
					p.offset++
				}
				return true
			}
			return false
		},
	},
	ItemKind: {
		matchContinue: func(p *Parser, n *Node) bool {
			if p.indent >= n.listData.MarkerOffset+n.listData.Padding {
				p.offset += n.listData.MarkerOffset + n.listData.Padding
				return true
			}
			if p.blank {
				p.offset = p.firstNonspace
				return true
			}
			return false
		},
	},
	HeaderKind: {
		// A header can never span more than one line.
		matchContinue: func(p *Parser, n *Node) bool {
			if p.blank {
				n.lastLineBlank = true
			}
			return false
		},
		finalize: func(p *Parser, n *Node) {
			n.stringContent = strings.Join(n.strings, "\n")
		},
	},
	HorizontalRuleKind: {
		matchContinue: func(p *Parser, n *Node) bool {
			if p.blank {
				n.lastLineBlank = true
			}
			return false
		},
	},
	CodeBlockKind: {
		matchContinue: func(p *Parser, n *Node) bool {
			if n.isFenced() {
				// Skip optional spaces of fence offset.
				for i := n.fenceOffset; i > 0 && peek(p.line, p.offset) == ' '; i-- {
					p.offset++
				}
				return true
			}
			if p.indent >= codeBlockIndentLimit {
				p.offset += codeBlockIndentLimit
				return true
			}
			if p.blank {
				p.offset = p.firstNonspace
				return true
			}
			return false
		},
		finalize: finalizeCodeBlock,
	},
	HTMLBlockKind: {
		matchContinue: func(p *Parser, n *Node) bool {
			if p.blank {
				n.lastLineBlank = true
				return false
			}
			return true
		},
		finalize: func(p *Parser, n *Node) {
			n.literal = strings.Join(n.strings, "\n")
		},
	},
	ParagraphKind: {
		matchContinue: func(p *Parser, n *Node) bool {
			if p.blank {
				n.lastLineBlank = true
				return false
			}
			return true
		},
		finalize: finalizeParagraph,
	},
}

// findNonspace measures the line at the current offset,
// recording the first non-space position,
// whether the remainder is blank,
// and the indent between the two.
func (p *Parser) findNonspace() {
	i := p.offset
	for i < len(p.line) && p.line[i] == ' ' {
		i++
	}
	p.firstNonspace = i
	p.blank = i == len(p.line)
	p.indent = i - p.offset
}

// incorporateLine analyzes one line and adjusts the document tree:
// open blocks may close, new blocks may open,
// and text is added to the deepest open block that accepts lines.
func (p *Parser) incorporateLine(line string) error {
	p.line = line
	p.offset = 0
	p.oldtip = p.tip

	// Phase 1: match continuation rules down the last-child spine.
	// The deepest open block that continues is the last matched container.
	container := p.doc
	depth := 0
	for {
		lastChild := container.lastChild
		if lastChild == nil || !lastChild.open {
			break
		}
		container = lastChild
		if depth++; depth > maxOpenDepth {
			return fmt.Errorf("line %d: open block depth exceeds %d", p.lineNumber, maxOpenDepth)
		}
		p.findNonspace()
		if !blockRules[container.kind].matchContinue(p, container) {
			container = container.parent
			break
		}
	}
	p.lastMatchedContainer = container
	p.findNonspace()

	// Phase 2: a second consecutive blank line breaks out of all lists.
	if p.blank && container.lastLineBlank {
		p.breakOutOfLists(container)
	}

	// Phase 3: unless the last matched container is a code or HTML block,
	// try to open new containers.
opening:
	for container.kind != CodeBlockKind && container.kind != HTMLBlockKind &&
		maybeSpecial(p.line, p.offset) {

		p.findNonspace()
		rest := p.line[p.firstNonspace:]

		switch {
		case p.indent >= codeBlockIndentLimit && p.tip.kind != ParagraphKind && !p.blank:
			// Indented code.
			p.offset += codeBlockIndentLimit
			p.closeUnmatchedBlocks()
			container = p.addChild(CodeBlockKind, p.offset)
		case p.indent >= codeBlockIndentLimit:
			// Over-indented lazy continuation or blank remainder; not a block start.
			break opening
		case peek(p.line, p.firstNonspace) == '>':
			// Block quote.
			p.offset = p.firstNonspace + 1
			if peek(p.line, p.offset) == ' ' {
				p.offset++
			}
			p.closeUnmatchedBlocks()
			container = p.addChild(BlockQuoteKind, p.offset)
		default:
			if level, markerLen := scanATXHeaderMarker(rest); level > 0 {
				p.offset = p.firstNonspace + markerLen
				p.closeUnmatchedBlocks()
				container = p.addChild(HeaderKind, p.firstNonspace)
				container.level = level
				container.strings = []string{stripATXTrailer(p.line[p.offset:])}
				break opening
			}
			if length, char := scanCodeFence(rest); length > 0 {
				p.closeUnmatchedBlocks()
				container = p.addChild(CodeBlockKind, p.firstNonspace)
				container.fenceLength = length
				container.fenceChar = char
				container.fenceOffset = p.indent
				p.offset = p.firstNonspace + length
				break opening
			}
			if scanHTMLBlockOpen(rest) {
				p.closeUnmatchedBlocks()
				container = p.addChild(HTMLBlockKind, p.firstNonspace)
				// Offset is not adjusted: the tag and its indent are block text.
				break opening
			}
			if container.kind == ParagraphKind && len(container.strings) == 1 {
				if level := scanSetextLine(rest); level > 0 {
					// Convert the single-line paragraph in place.
					p.closeUnmatchedBlocks()
					container.kind = HeaderKind
					container.level = level
					p.offset = len(p.line)
					break opening
				}
			}
			if scanHorizontalRule(rest) {
				p.closeUnmatchedBlocks()
				container = p.addChild(HorizontalRuleKind, p.firstNonspace)
				p.offset = len(p.line)
				break opening
			}
			data := scanListMarker(p.line, p.firstNonspace)
			if data.Type == 0 {
				break opening
			}
			p.closeUnmatchedBlocks()
			data.MarkerOffset = p.indent
			p.offset = p.firstNonspace + data.Padding
			if container.kind != ListKind || !listsMatch(container.listData, data) {
				container = p.addChild(ListKind, p.firstNonspace)
				container.listData = data
			}
			container = p.addChild(ItemKind, p.firstNonspace)
			container.listData = data
		}
		if container.acceptsLines() {
			// A block that accepts lines cannot open further containers.
			break opening
		}
	}

	if depth := p.tip.depth(); depth > maxOpenDepth {
		return fmt.Errorf("line %d: open block depth exceeds %d", p.lineNumber, maxOpenDepth)
	}

	// Phase 4: what remains on the line is text for the deepest open block.
	p.findNonspace()

	if p.tip != p.lastMatchedContainer && !p.blank &&
		p.tip.kind == ParagraphKind && len(p.tip.strings) > 0 {
		// Lazy paragraph continuation.
		p.addLine(p.offset)
	} else {
		p.closeUnmatchedBlocks()

		container.lastLineBlank = p.blank &&
			!(container.kind == BlockQuoteKind ||
				container.kind == HeaderKind ||
				(container.kind == CodeBlockKind && container.isFenced()) ||
				(container.kind == ItemKind && container.firstChild == nil && container.start.Line == p.lineNumber))
		for cont := container; cont.parent != nil; cont = cont.parent {
			cont.parent.lastLineBlank = false
		}

		switch {
		case container.kind == HTMLBlockKind:
			p.addLine(p.offset)
		case container.kind == CodeBlockKind && container.isFenced():
			if p.indent <= 3 && peek(p.line, p.firstNonspace) == container.fenceChar &&
				scanCloseCodeFence(p.line[p.firstNonspace:], container.fenceChar, container.fenceLength) {
				// Closing fence; not part of the block's content.
				p.lastLineLength = len(p.line) - 1
				p.finalize(container, p.lineNumber)
			} else {
				p.addLine(p.offset)
			}
		case container.kind == CodeBlockKind:
			p.addLine(p.offset)
		case container.kind == HeaderKind || container.kind == HorizontalRuleKind:
			// Content was captured when the block opened.
		case container.acceptsLines():
			p.addLine(p.firstNonspace)
		case p.blank:
			// Blank line in a container block.
		default:
			container = p.addChild(ParagraphKind, p.firstNonspace)
			p.addLine(p.firstNonspace)
		}
	}

	p.lastLineLength = len(line) - 1
	return nil
}

// addLine appends the remainder of the current line to the tip.
func (p *Parser) addLine(offset int) {
	if !p.tip.open {
		panic(fmt.Sprintf("commonmark: line %d: adding line to closed %v block", p.lineNumber, p.tip.kind))
	}
	p.tip.strings = append(p.tip.strings, p.line[offset:])
}

// addChild opens a new block of the given kind as a child of the tip,
// finalizing open blocks up the tree
// until reaching one that can contain the new kind.
// The new block becomes the tip.
func (p *Parser) addChild(kind BlockKind, offset int) *Node {
	for !p.tip.canContain(kind) {
		if p.tip.parent == nil {
			panic(fmt.Sprintf("commonmark: line %d: no container can hold a %v block", p.lineNumber, kind))
		}
		p.finalize(p.tip, p.lineNumber-1)
	}
	child := newNode(kind, Pos{Line: p.lineNumber, Col: offset + 1})
	p.tip.appendChild(child)
	p.tip = child
	return child
}

func (n *Node) depth() int {
	d := 0
	for ; n != nil; n = n.parent {
		d++
	}
	return d
}

// closeUnmatchedBlocks finalizes every block
// below the last matched container on the old tip's spine.
func (p *Parser) closeUnmatchedBlocks() {
	for p.oldtip != p.lastMatchedContainer {
		parent := p.oldtip.parent
		p.finalize(p.oldtip, p.lineNumber-1)
		p.oldtip = parent
	}
}

// breakOutOfLists finalizes every block from the given one
// up to and including the outermost enclosing list,
// resetting the tip to the list's parent.
// Called on the second of two consecutive blank lines.
func (p *Parser) breakOutOfLists(block *Node) {
	var lastList *Node
	for b := block; b != nil; b = b.parent {
		if b.kind == ListKind {
			lastList = b
		}
	}
	if lastList == nil {
		return
	}
	for block != lastList {
		parent := block.parent
		p.finalize(block, p.lineNumber-1)
		block = parent
	}
	p.finalize(lastList, p.lineNumber-1)
	p.tip = lastList.parent
}

// finalize closes a block:
// it records the end position, runs the kind's close-time processing,
// releases the collected line fragments,
// and resets the tip to the block's parent.
// Finalizing an already-closed block no-ops.
func (p *Parser) finalize(n *Node, lineNumber int) {
	if !n.open {
		return
	}
	above := n.parent
	n.open = false
	n.end = Pos{Line: lineNumber, Col: p.lastLineLength + 1}
	if posLess(n.end, n.start) {
		n.end = n.start
	}
	if rule := blockRules[n.kind]; rule.finalize != nil {
		rule.finalize(p, n)
	}
	n.strings = nil
	p.tip = above
}

func posLess(a, b Pos) bool {
	return a.Line < b.Line || a.Line == b.Line && a.Col < b.Col
}

// finalizeParagraph joins the collected lines,
// then harvests link reference definitions from the head of the content.
// A paragraph that contained only definitions is removed from the tree.
func finalizeParagraph(p *Parser, n *Node) {
	content := strings.Join(n.strings, "\n")
	for strings.HasPrefix(content, "[") {
		pos := p.inline.ParseReference(content, p.refmap)
		if pos == 0 {
			break
		}
		content = content[pos:]
		if isBlank(content) {
			n.unlink()
			break
		}
	}
	n.stringContent = content
}

func finalizeCodeBlock(p *Parser, n *Node) {
	if n.isFenced() {
		// First line becomes the info string.
		n.info = unescapeString(strings.TrimSpace(n.strings[0]))
		if len(n.strings) == 1 {
			n.literal = ""
		} else {
			n.literal = strings.Join(n.strings[1:], "\n") + "\n"
		}
		return
	}
	// Indented: strip trailing blank lines, keep leading ones.
	lines := n.strings
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	n.literal = strings.Join(lines, "\n") + "\n"
}

// finalizeList computes tightness.
// A list is loose if any item ends with a blank line
// and has a following sibling,
// or any sub-block within an item ends with a blank line
// when anything follows it.
func finalizeList(p *Parser, n *Node) {
	tight := true
loop:
	for item := n.firstChild; item != nil; item = item.next {
		lastItem := item.next == nil
		if item.endsWithBlankLine() && !lastItem {
			tight = false
			break
		}
		for sub := item.firstChild; sub != nil; sub = sub.next {
			lastSub := sub.next == nil
			if sub.endsWithBlankLine() && !(lastItem && lastSub) {
				tight = false
				break loop
			}
		}
	}
	n.listData.Tight = tight
}
