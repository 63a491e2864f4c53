// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Check - verify ordering, balance, heights and sizes of every node
func (tree *Tree) Check() bool {
	_, ok := check(tree.root, nil, nil)
	return ok
}

// internal: returns the sub-tree size
func check(p *Node, low Item, high Item) (int, bool) {
	if nil == p {
		return 0, true
	}
	if nil != low && p.key.Compare(low) <= 0 {
		return 0, false
	}
	if nil != high && p.key.Compare(high) >= 0 {
		return 0, false
	}

	nl, ok := check(p.left, low, p.key)
	if !ok {
		return 0, false
	}
	nr, ok := check(p.right, p.key, high)
	if !ok {
		return 0, false
	}

	b := p.balance()
	if b < -1 || b > 1 {
		return 0, false
	}
	l := p.left.depth()
	r := p.right.depth()
	h := l + 1
	if r > l {
		h = r + 1
	}
	if h != p.height || nl+nr+1 != p.size {
		return 0, false
	}
	return p.size, true
}
