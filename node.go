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

import "fmt"

// BlockKind identifies the type of a [Node].
type BlockKind uint16

const (
	DocumentKind BlockKind = 1 + iota
	BlockQuoteKind
	ListKind
	ItemKind
	ParagraphKind
	HeaderKind
	HorizontalRuleKind
	CodeBlockKind
	HTMLBlockKind
)

// String returns the name of the block kind in lowercase,
// words separated by underscores.
func (k BlockKind) String() string {
	switch k {
	case DocumentKind:
		return "document"
	case BlockQuoteKind:
		return "block_quote"
	case ListKind:
		return "list"
	case ItemKind:
		return "item"
	case ParagraphKind:
		return "paragraph"
	case HeaderKind:
		return "header"
	case HorizontalRuleKind:
		return "horizontal_rule"
	case CodeBlockKind:
		return "code_block"
	case HTMLBlockKind:
		return "html_block"
	default:
		return fmt.Sprintf("BlockKind(%d)", uint16(k))
	}
}

// Pos is a 1-based line/column position in the source document.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ListType distinguishes bullet lists from ordered lists.
type ListType uint8

const (
	BulletList ListType = 1 + iota
	OrderedList
)

func (t ListType) String() string {
	switch t {
	case BulletList:
		return "bullet"
	case OrderedList:
		return "ordered"
	default:
		return fmt.Sprintf("ListType(%d)", uint8(t))
	}
}

// ListData describes a list marker.
// A [ListKind] node carries the data recorded when its first marker was parsed;
// each of its [ItemKind] children carries the data of its own marker.
type ListData struct {
	Type         ListType
	BulletChar   byte // '*', '+', or '-' for bullet lists
	Start        int  // first number of an ordered list
	Delimiter    byte // '.' or ')' for ordered lists
	Padding      int  // columns from the marker start to the item content
	MarkerOffset int  // indent of the marker itself
	Tight        bool
}

// A Node is a block in the parsed document tree.
// Exactly one node per parse is the tip:
// the deepest open block still accepting lines.
type Node struct {
	kind BlockKind
	open bool

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node

	start Pos
	end   Pos

	// strings collects raw line fragments while the block is open.
	// Finalization consumes it into stringContent or literal.
	strings       []string
	stringContent string
	literal       string
	lastLineBlank bool

	level       int // headers: 1-6
	fenceChar   byte
	fenceLength int // 0 for indented code blocks
	fenceOffset int
	info        string
	listData    ListData
}

func newNode(kind BlockKind, start Pos) *Node {
	return &Node{
		kind:  kind,
		open:  true,
		start: start,
		end:   Pos{},
	}
}

// Kind returns the type of the block.
// Calling Kind on a nil node returns 0.
func (n *Node) Kind() BlockKind {
	if n == nil {
		return 0
	}
	return n.kind
}

// IsOpen reports whether the block is still accepting lines.
func (n *Node) IsOpen() bool {
	return n != nil && n.open
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.firstChild
}

func (n *Node) LastChild() *Node {
	if n == nil {
		return nil
	}
	return n.lastChild
}

func (n *Node) Prev() *Node {
	if n == nil {
		return nil
	}
	return n.prev
}

func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

// Start returns the 1-based position of the block's first character.
func (n *Node) Start() Pos {
	if n == nil {
		return Pos{}
	}
	return n.start
}

// End returns the 1-based position of the block's last character.
// It is set at finalization.
func (n *Node) End() Pos {
	if n == nil {
		return Pos{}
	}
	return n.end
}

// StringContent returns the finalized text payload
// of a paragraph or header.
func (n *Node) StringContent() string {
	if n == nil {
		return ""
	}
	return n.stringContent
}

// SetStringContent replaces the text payload.
// It may be called during a [Walk].
func (n *Node) SetStringContent(s string) {
	n.stringContent = s
}

// Literal returns the finalized raw payload
// of a code block or HTML block.
func (n *Node) Literal() string {
	if n == nil {
		return ""
	}
	return n.literal
}

// SetLiteral replaces the raw payload.
// It may be called during a [Walk].
func (n *Node) SetLiteral(s string) {
	n.literal = s
}

// Level returns the header level, 1 through 6,
// or 0 for non-header blocks.
func (n *Node) Level() int {
	if n == nil {
		return 0
	}
	return n.level
}

// Info returns the info string of a fenced code block,
// trimmed and backslash-unescaped.
func (n *Node) Info() string {
	if n == nil {
		return ""
	}
	return n.info
}

// FenceLength returns the length of the opening fence,
// or 0 for indented code blocks.
func (n *Node) FenceLength() int {
	if n == nil {
		return 0
	}
	return n.fenceLength
}

// FenceChar returns '`' or '~' for fenced code blocks and 0 otherwise.
func (n *Node) FenceChar() byte {
	if n == nil {
		return 0
	}
	return n.fenceChar
}

func (n *Node) isFenced() bool {
	return n.fenceChar != 0
}

// ListData returns the marker data of a list or list item.
func (n *Node) ListData() ListData {
	if n == nil {
		return ListData{}
	}
	return n.listData
}

// ChildCount returns the number of children the node has.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild(); c != nil; c = c.next {
		count++
	}
	return count
}

// appendChild adds child as the last child of n,
// fixing up parent and sibling links.
func (n *Node) appendChild(child *Node) {
	child.parent = n
	child.prev = n.lastChild
	child.next = nil
	if n.lastChild != nil {
		n.lastChild.next = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child
}

// unlink removes n from its parent's child list,
// clearing the parent and sibling links.
// The node's own children are untouched.
func (n *Node) unlink() {
	if n.prev != nil {
		n.prev.next = n.next
	} else if n.parent != nil {
		n.parent.firstChild = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if n.parent != nil {
		n.parent.lastChild = n.prev
	}
	n.parent = nil
	n.prev = nil
	n.next = nil
}

// canContain reports whether a block of kind k may be a direct child of n.
// Lists contain only items; items never appear elsewhere.
func (n *Node) canContain(k BlockKind) bool {
	switch n.Kind() {
	case DocumentKind, BlockQuoteKind, ItemKind:
		return k != ItemKind
	case ListKind:
		return k == ItemKind
	default:
		return false
	}
}

// acceptsLines reports whether the block collects raw lines after opening.
func (n *Node) acceptsLines() bool {
	switch n.Kind() {
	case ParagraphKind, CodeBlockKind, HTMLBlockKind:
		return true
	default:
		return false
	}
}

// endsWithBlankLine reports whether the block,
// or the chain of last children of a list or item,
// ended with a blank line.
// Used to compute list tightness.
func (n *Node) endsWithBlankLine() bool {
	for {
		if n.lastLineBlank {
			return true
		}
		if (n.kind == ListKind || n.kind == ItemKind) && n.lastChild != nil {
			n = n.lastChild
			continue
		}
		return false
	}
}
