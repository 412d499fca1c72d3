/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package segmenttrie

import (
	"errors"
	"strings"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// ErrInvalidPrefix is returned when inserting a prefix that is empty, has
// empty segments, contains characters outside [A-Z0-9_], or consists only of
// wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// Trie is a segment-aware prefix index over dot-separated codes such as
// "BILLING.CARD.DECLINED". Each node represents one segment. Lookups return
// the deepest stored prefix, so a more specific rule wins over a shorter one.
//
// A Trie is not safe for concurrent Insert; once built it may be read from
// any number of goroutines.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted, kept for Explain output.
	pattern string
}

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with prefix. Re-inserting a prefix replaces its
// value.
//
//	"BILLING"
//	"STORAGE.PG"
//	"*.NOT_FOUND"
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	segs, ok := splitPrefix(prefix)
	if !ok {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the deepest prefix of key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also reports the stored pattern which
// produced the value. An exact segment and a wildcard are both explored; at
// equal depth the exact branch wins.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best := -1
	var bestVal T
	var bestPat string

	var walk func(n *Trie[T], off, depth int)
	walk = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > best {
			best, bestVal, bestPat = depth, n.val, n.pattern
		}
		if off >= len(key) {
			return
		}
		end, ok := scanSegment(key, off)
		if !ok {
			return
		}
		seg := key[off:end]
		next := end
		if next < len(key) {
			next++ // '.'
		}
		if c, ok := n.children[seg]; ok {
			walk(c, next, depth+1)
		}
		if c, ok := n.children[Wildcard]; ok {
			walk(c, next, depth+1)
		}
	}
	walk(t, 0, 0)

	if best < 0 {
		return zero, false, ""
	}
	return bestVal, true, bestPat
}

// scanSegment validates the segment starting at off and returns the offset
// of its end (the '.' or len(key)).
func scanSegment(key string, off int) (int, bool) {
	if !upper(key[off]) {
		return off, false
	}
	i := off + 1
	for ; i < len(key) && key[i] != '.'; i++ {
		if !segmentByte(key[i]) {
			return off, false
		}
	}
	return i, true
}

func splitPrefix(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	segs := strings.Split(s, ".")
	wildOnly := true
	for _, seg := range segs {
		if !ValidSegment(seg) {
			return nil, false
		}
		if seg != Wildcard {
			wildOnly = false
		}
	}
	return segs, !wildOnly
}

// ValidSegment reports whether seg may appear in a prefix: either the
// wildcard or [A-Z][A-Z0-9_]*.
func ValidSegment(seg string) bool {
	if seg == Wildcard {
		return true
	}
	if seg == "" || !upper(seg[0]) {
		return false
	}
	for i := 1; i < len(seg); i++ {
		if !segmentByte(seg[i]) {
			return false
		}
	}
	return true
}

func upper(c byte) bool { return c >= 'A' && c <= 'Z' }

func segmentByte(c byte) bool {
	return upper(c) || (c >= '0' && c <= '9') || c == '_'
}
