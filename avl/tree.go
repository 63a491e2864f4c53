// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Item - a key must implement the Compare function
type Item interface {
	Compare(interface{}) int // -1, 0, +1 for receiver <, ==, > argument
}

// Node - one key/value in the tree
type Node struct {
	left   *Node
	right  *Node
	key    Item
	value  interface{}
	height int // leaf is 1
	size   int // nodes in this sub-tree including this one
}

// Tree - type to hold the root node of a tree
type Tree struct {
	root *Node
}

// New - create an initially empty tree
func New() *Tree {
	return &Tree{}
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree) Count() int {
	return tree.root.count()
}

// Key - read the key from a node
func (p *Node) Key() Item {
	return p.key
}

// Value - read the value from a node
func (p *Node) Value() interface{} {
	return p.value
}

// Search - find a specific key, returns the node and its zero based
// position or nil and -1 if not present
func (tree *Tree) Search(key Item) (*Node, int) {
	p := tree.root
	index := 0
	for nil != p {
		switch p.key.Compare(key) {
		case +1: // p.key > key
			p = p.left
		case -1: // p.key < key
			index += p.left.count() + 1
			p = p.right
		default:
			return p, index + p.left.count()
		}
	}
	return nil, -1
}

// Get - the node at a zero based position, nil if out of range
func (tree *Tree) Get(index int) *Node {
	if index < 0 || index >= tree.Count() {
		return nil
	}
	p := tree.root
	for nil != p {
		n := p.left.count()
		switch {
		case index < n:
			p = p.left
		case index > n:
			index -= n + 1
			p = p.right
		default:
			return p
		}
	}
	return nil
}

// First - the node with the lowest key
func (tree *Tree) First() *Node {
	return tree.Get(0)
}

// Last - the node with the highest key
func (tree *Tree) Last() *Node {
	return tree.Get(tree.Count() - 1)
}

// internal: nil safe accessors
func (p *Node) count() int {
	if nil == p {
		return 0
	}
	return p.size
}

func (p *Node) depth() int {
	if nil == p {
		return 0
	}
	return p.height
}
