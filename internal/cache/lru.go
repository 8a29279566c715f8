// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

// node is an element of a recency list. It carries the key so an evicted
// node can be deleted from the shard map.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// recency is a doubly-linked list ordered from most recently used (head)
// to least recently used (tail). It is not safe for concurrent use.
type recency[K comparable, V any] struct {
	head, tail *node[K, V]
	n          int
}

func (l *recency[K, V]) len() int { return l.n }

// pushFront inserts a new node at the head.
func (l *recency[K, V]) pushFront(key K, value V) *node[K, V] {
	e := &node[K, V]{key: key, value: value, next: l.head}
	if l.head != nil {
		l.head.prev = e
	} else {
		l.tail = e
	}
	l.head = e
	l.n++
	return e
}

// touch moves e to the head.
func (l *recency[K, V]) touch(e *node[K, V]) {
	if e == l.head {
		return
	}
	l.unlink(e)
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	} else {
		l.tail = e
	}
	l.head = e
	l.n++
}

// popBack removes and returns the least recently used node, or nil.
func (l *recency[K, V]) popBack() *node[K, V] {
	e := l.tail
	if e != nil {
		l.unlink(e)
	}
	return e
}

func (l *recency[K, V]) remove(e *node[K, V]) {
	l.unlink(e)
}

func (l *recency[K, V]) reset() {
	l.head, l.tail, l.n = nil, nil, 0
}

func (l *recency[K, V]) unlink(e *node[K, V]) {
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
