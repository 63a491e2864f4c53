// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Delete - remove a key, returns its value and whether it was present
func (tree *Tree) Delete(key Item) (interface{}, bool) {
	root, removed := remove(tree.root, key)
	if nil == removed {
		return nil, false
	}
	tree.root = root
	return removed.value, true
}

func remove(p *Node, key Item) (*Node, *Node) {
	if nil == p {
		return nil, nil
	}

	var removed *Node
	switch p.key.Compare(key) {
	case +1: // p.key > key
		p.left, removed = remove(p.left, key)
	case -1: // p.key < key
		p.right, removed = remove(p.right, key)
	default:
		removed = p
		if nil == p.left {
			return p.right, removed
		}
		if nil == p.right {
			return p.left, removed
		}

		// the successor node replaces p so nodes never swap keys
		var successor *Node
		right := p.right
		right, successor = removeFirst(right)
		successor.left = p.left
		successor.right = right
		p.left = nil
		p.right = nil
		return rebalance(successor), removed
	}
	if nil == removed {
		return p, nil
	}
	return rebalance(p), removed
}

// internal: detach the lowest node of a sub-tree
func removeFirst(p *Node) (*Node, *Node) {
	if nil == p.left {
		return p.right, p
	}
	var first *Node
	p.left, first = removeFirst(p.left)
	return rebalance(p), first
}
