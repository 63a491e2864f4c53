// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - add a key or overwrite the value of an existing key
//
// returns true if a new node was added
func (tree *Tree) Insert(key Item, value interface{}) bool {
	added := false
	tree.root, added = insert(tree.root, key, value)
	return added
}

func insert(p *Node, key Item, value interface{}) (*Node, bool) {
	if nil == p {
		return &Node{
			key:    key,
			value:  value,
			height: 1,
			size:   1,
		}, true
	}

	added := false
	switch p.key.Compare(key) {
	case +1: // p.key > key
		p.left, added = insert(p.left, key, value)
	case -1: // p.key < key
		p.right, added = insert(p.right, key, value)
	default:
		p.value = value
		return p, false
	}
	return rebalance(p), added
}

// internal: recompute height and size from the children
func (p *Node) update() {
	l := p.left.depth()
	r := p.right.depth()
	if l > r {
		p.height = l + 1
	} else {
		p.height = r + 1
	}
	p.size = p.left.count() + p.right.count() + 1
}

// internal: right sub-tree height minus left sub-tree height
func (p *Node) balance() int {
	return p.right.depth() - p.left.depth()
}

func rotateLeft(p *Node) *Node {
	r := p.right
	p.right = r.left
	r.left = p
	p.update()
	r.update()
	return r
}

func rotateRight(p *Node) *Node {
	l := p.left
	p.left = l.right
	l.right = p
	p.update()
	l.update()
	return l
}

// internal: restore the AVL property at p after one of its sub-trees
// changed height by at most one
func rebalance(p *Node) *Node {
	p.update()
	switch b := p.balance(); {
	case b < -1:
		if p.left.balance() > 0 {
			p.left = rotateLeft(p.left) // LR
		}
		return rotateRight(p)
	case b > 1:
		if p.right.balance() < 0 {
			p.right = rotateRight(p.right) // RL
		}
		return rotateLeft(p)
	}
	return p
}
