// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Walk - visit every node in key order until f returns false
func (tree *Tree) Walk(f func(*Node) bool) {
	walk(tree.root, nil, f)
}

// WalkFrom - visit nodes with keys >= start in key order until f
// returns false
func (tree *Tree) WalkFrom(start Item, f func(*Node) bool) {
	walk(tree.root, start, f)
}

// internal: in-order traversal, returns false if stopped early
func walk(p *Node, start Item, f func(*Node) bool) bool {
	if nil == p {
		return true
	}

	// whole left sub-tree is below start
	if nil != start && p.key.Compare(start) < 0 {
		return walk(p.right, start, f)
	}
	if !walk(p.left, start, f) {
		return false
	}
	if !f(p) {
		return false
	}
	return walk(p.right, start, f)
}
