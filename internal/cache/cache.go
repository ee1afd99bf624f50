// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a bounded in-memory cache for memoizing component
// normalization.
package cache

import (
	"container/list"
	"sync"

	"github.com/pkg/errors"
)

// Cache is a simple interface defining a cache.
type Cache interface {
	Get(any) (any, error)
	Set(any, func() (any, error)) error
	GetOrSet(any, func() (any, error)) (any, error)
	Del(any)
	Clear()
	Len() int
}

// ErrNotExist is returned when a key does not exist in the cache.
var ErrNotExist = errors.New("does not exist")

type entry struct {
	key   any
	value func() (any, error)
}

// LRU is a cache holding at most a fixed number of entries. Once full, the
// least recently used entry is evicted. Concurrent GetOrSet calls for a
// missing key share a single fetch.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is the most recently used entry
	items    map[any]*list.Element
}

// NewLRU returns an empty LRU holding up to capacity entries.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[any]*list.Element),
	}
}

func (c *LRU) lookup(key any) (*entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry), true
}

// store records fetch under key, unless keep is set and key is present, and
// returns the entry now held for key.
func (c *LRU) store(key any, fetch func() (any, error), keep bool) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		if keep {
			return el.Value.(*entry)
		}
		c.order.Remove(el)
		delete(c.items, key)
	}
	e := &entry{key: key, value: sync.OnceValues(fetch)}
	c.items[key] = c.order.PushFront(e)
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
	return e
}

// valueOrClear evaluates e, dropping it from the cache on error.
func (c *LRU) valueOrClear(e *entry) (any, error) {
	val, err := e.value()
	if err != nil {
		c.mu.Lock()
		if el, ok := c.items[e.key]; ok && el.Value.(*entry) == e {
			c.order.Remove(el)
			delete(c.items, e.key)
		}
		c.mu.Unlock()
	}
	return val, err
}

// Get returns the value for the given key.
func (c *LRU) Get(key any) (any, error) {
	e, ok := c.lookup(key)
	if !ok {
		return nil, ErrNotExist
	}
	return c.valueOrClear(e)
}

// Set sets the value for the given key with the returned value from fetch.
func (c *LRU) Set(key any, fetch func() (any, error)) error {
	_, err := c.valueOrClear(c.store(key, fetch, false))
	return err
}

// GetOrSet returns the value for the given key, or sets it if it does not exist.
func (c *LRU) GetOrSet(key any, fetch func() (any, error)) (any, error) {
	return c.valueOrClear(c.store(key, fetch, true))
}

// Del deletes the value for the given key.
func (c *LRU) Del(key any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
}

// Clear clears the cache.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[any]*list.Element)
}

// Len returns the number of entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

var _ Cache = &LRU{}
