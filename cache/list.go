// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

// node is an element of the recency list. It carries its key so the oldest
// entry can be removed from the map in O(1).
type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// recency is a doubly-linked list ordered from most recently used (head) to
// least recently used (tail). It is not safe for concurrent use.
type recency[K comparable] struct {
	head, tail *node[K]
	n          int
}

// pushFront inserts key as the most recently used entry.
func (l *recency[K]) pushFront(key K) *node[K] {
	e := &node[K]{key: key}
	l.link(e)
	return e
}

// touch marks e as most recently used.
func (l *recency[K]) touch(e *node[K]) {
	if e == l.head {
		return
	}
	l.unlink(e)
	l.link(e)
}

// remove drops e from the list.
func (l *recency[K]) remove(e *node[K]) {
	l.unlink(e)
}

// oldest returns the least recently used entry, or nil.
func (l *recency[K]) oldest() *node[K] {
	return l.tail
}

func (l *recency[K]) len() int { return l.n }

func (l *recency[K]) clear() {
	l.head, l.tail, l.n = nil, nil, 0
}

func (l *recency[K]) link(e *node[K]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.n++
}

func (l *recency[K]) unlink(e *node[K]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = nil, nil
	l.n--
}
