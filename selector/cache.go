// Copyright (c) 2018 the AIND-Recognizer Authors. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selector

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Polarbeargo/AIND-Recognizer/model"
)

const defaultCacheSize = 1024

type cacheKey struct {
	label     string
	numStates int
}

// Cache holds fitted models keyed by class label and state count. The
// discriminative selector fits every class at every candidate, so a cache
// shared across a run's selectors saves most of those fits. Safe for
// concurrent use.
type Cache struct {
	lru *lru.Cache[cacheKey, model.Scorer]
}

// NewCache creates a model cache holding up to size fitted models.
// A non-positive size selects a default capacity.
func NewCache(size int) *Cache {

	if size < 1 {
		size = defaultCacheSize
	}
	c, err := lru.New[cacheKey, model.Scorer](size)
	if err != nil {
		// lru.New fails only for non-positive sizes.
		panic(err)
	}
	return &Cache{lru: c}
}

func (c *Cache) get(label string, numStates int) (model.Scorer, bool) {
	return c.lru.Get(cacheKey{label: label, numStates: numStates})
}

func (c *Cache) add(label string, numStates int, m model.Scorer) {
	c.lru.Add(cacheKey{label: label, numStates: numStates}, m)
}

// Len returns the number of cached models.
func (c *Cache) Len() int { return c.lru.Len() }
