// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two keys, returning a negative number, zero or a
// positive number.
type Comparator func(a, b string) int

// ByteOrder compares keys byte by byte.
var ByteOrder Comparator = strings.Compare

// CaseInsensitive compares keys ignoring ASCII and Unicode simple case.
func CaseInsensitive(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Collated returns a Comparator following the collation rules of tag.
func Collated(tag language.Tag, opts ...collate.Option) Comparator {
	c := collate.New(tag, opts...)
	// A Collator holds buffers and can not be shared between goroutines.
	var mu sync.Mutex
	return func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(a, b)
	}
}
