// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"

	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of a transaction
type Cache interface {
	Get(string) ([]byte, bool)
	Set(int, string, []byte)
	Keys() []string
	Size() int
	Clear()
}

const (
	dbPut = iota
)

// writes are never expired while a transaction is open, and with
// nothing to expire no janitor goroutine is started
const (
	defaultExpiration = cache.NoExpiration
	cleanupInterval   = 0
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	return data.value, true
}

func (c *dbCache) Set(op int, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, defaultExpiration)
}

// Keys - cached keys in ascending byte order
func (c *dbCache) Keys() []string {
	items := c.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *dbCache) Size() int {
	return c.cache.ItemCount()
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
