// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package fitch

import "fmt"

// PreOrder returns the nodes of a tree in pre-order
// (parents before children,
// children in the order given by the tree),
// and the parent of each node
// (-1 for the root).
//
// It uses an explicit stack,
// so deep trees do not exhaust the goroutine stack.
func preOrder(t Tree) (order, parent []int, err error) {
	nodes := t.Nodes()
	n := len(nodes)
	if n == 0 {
		return nil, nil, fmt.Errorf("%w: tree without nodes", ErrInvalidTree)
	}

	seen := make([]bool, n)
	for _, id := range nodes {
		if id < 0 || id >= n {
			return nil, nil, fmt.Errorf("%w: node %d: index out of range [0, %d)", ErrInvalidTree, id, n)
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("%w: node %d: duplicated index", ErrInvalidTree, id)
		}
		seen[id] = true
	}

	root := t.Root()
	if root < 0 || root >= n {
		return nil, nil, fmt.Errorf("%w: root %d: index out of range [0, %d)", ErrInvalidTree, root, n)
	}

	parent = make([]int, n)
	visited := make([]bool, n)
	order = make([]int, 0, n)
	stack := []int{root}
	parent[root] = -1
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return nil, nil, fmt.Errorf("%w: node %d: visited twice (cycle or reticulation)", ErrInvalidTree, id)
		}
		visited[id] = true
		order = append(order, id)

		children := t.Children(id)
		if t.IsTerm(id) {
			if len(children) > 0 {
				return nil, nil, fmt.Errorf("%w: node %d: terminal with descendants", ErrInvalidTree, id)
			}
			continue
		}
		if len(children) == 0 {
			return nil, nil, fmt.Errorf("%w: node %d: internal node without descendants", ErrInvalidTree, id)
		}

		// push in reverse,
		// so the first child is visited first
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			if c < 0 || c >= n {
				return nil, nil, fmt.Errorf("%w: node %d: child %d: index out of range [0, %d)", ErrInvalidTree, id, c, n)
			}
			if visited[c] {
				return nil, nil, fmt.Errorf("%w: node %d: child %d: visited twice (cycle or reticulation)", ErrInvalidTree, id, c)
			}
			parent[c] = id
			stack = append(stack, c)
		}
	}

	if len(order) != n {
		return nil, nil, fmt.Errorf("%w: %d of %d nodes unreachable from root %d", ErrInvalidTree, n-len(order), n, root)
	}
	return order, parent, nil
}
