// Copyright 2024 Ross Light
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

// A Cursor describes a [Node] encountered during [Walk].
type Cursor struct {
	node     *Node
	entering bool
}

// Node returns the current [Node].
func (c *Cursor) Node() *Node {
	return c.node
}

// Entering reports whether the walk is descending into the node.
// Every node is visited once with Entering true and,
// unless the walk was cut short, once with Entering false.
func (c *Cursor) Entering() bool {
	return c.entering
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each node before the node's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that node.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each node after the node's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool
}

// Walk traverses the block tree rooted at root in document order,
// calling [WalkOptions.Pre] on descent and [WalkOptions.Post] on ascent.
// Callbacks may replace a node's string content or literal,
// but must not mutate the tree structure.
func Walk(root *Node, opts *WalkOptions) {
	if root == nil {
		return
	}
	type walkFrame struct {
		node *Node
		post bool
	}

	stack := []walkFrame{{node: root}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr.post {
			if opts.Post != nil {
				cursor.node = curr.node
				cursor.entering = false
				if !opts.Post(cursor) {
					break
				}
			}
			continue
		}

		if opts.Pre != nil {
			cursor.node = curr.node
			cursor.entering = true
			if !opts.Pre(cursor) {
				continue
			}
		}
		curr.post = true
		stack = append(stack, curr)
		for child := curr.node.LastChild(); child != nil; child = child.Prev() {
			stack = append(stack, walkFrame{node: child})
		}
	}
}
