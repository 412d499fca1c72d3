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

package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/squid/apis"
	"dirpx.dev/squid/code"
	"dirpx.dev/squid/mapper/internal/segmenttrie"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides, prefix rules).
//  3. Normalize and validate every code key and prefix.
//  4. Build one segment trie per transport for the prefix rules.
//  5. Freeze all maps into fresh copies.
//
// The returned Mapper shares nothing with the options or the package
// defaults and is safe for concurrent use.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpTable, err := compile("HTTP", b.httpDefaults, b.httpOverride, b.httpPrefixes, b.fallbackHTTP)
	if err != nil {
		return nil, err
	}
	grpcTable, err := compile("gRPC", b.grpcDefaults, b.grpcOverride, b.grpcPrefixes, b.fallbackGRPC)
	if err != nil {
		return nil, err
	}
	return &mapper{http: httpTable, grpc: grpcTable}, nil
}

// mapper resolves HTTP and gRPC through two tables built from the same
// options. Lookups are O(segments) and allocation-free once the code is
// canonical.
type mapper struct {
	http table[int]
	grpc table[codes.Code]
}

// table holds the rules of one transport.
type table[V any] struct {
	override map[code.Code]V
	prefix   *segmenttrie.Trie[V]
	defaults map[code.Code]V
	fallback V
}

type source string

const (
	sourceOverride source = "override"
	sourcePrefix   source = "prefix"
	sourceDefault  source = "default"
	sourceLeaf     source = "leaf"
	sourceFallback source = "fallback"
)

type match[V any] struct {
	val     V
	src     source
	pattern string
}

func compile[V any](transport string, defaults, override map[code.Code]V, rules []prefixRule[V], fallback V) (table[V], error) {
	t := table[V]{fallback: fallback}

	var err error
	if t.defaults, err = freeze(defaults); err != nil {
		return t, fmt.Errorf("mapper: invalid %s default: %w", transport, err)
	}
	if t.override, err = freeze(override); err != nil {
		return t, fmt.Errorf("mapper: invalid %s override: %w", transport, err)
	}

	if len(rules) == 0 {
		return t, nil
	}
	t.prefix = segmenttrie.New[V]()
	for _, r := range rules {
		p, err := normalizePrefix(r.prefix)
		if err != nil {
			return t, fmt.Errorf("mapper: invalid %s prefix %q: %w", transport, r.prefix, err)
		}
		if err := t.prefix.Insert(p, r.val); err != nil {
			return t, fmt.Errorf("mapper: cannot insert %s prefix %q: %w", transport, p, err)
		}
	}
	return t, nil
}

// resolve applies, in order:
//  1. exact override;
//  2. longest-prefix-match rule;
//  3. default for the code;
//  4. default for the code's last segment;
//  5. fallback.
func (t *table[V]) resolve(c code.Code) match[V] {
	if v, ok := t.override[c]; ok {
		return match[V]{val: v, src: sourceOverride}
	}
	if v, ok, pat := t.prefix.MatchWithPattern(string(c)); ok {
		return match[V]{val: v, src: sourcePrefix, pattern: pat}
	}
	if v, ok := t.defaults[c]; ok {
		return match[V]{val: v, src: sourceDefault}
	}
	if leaf := c.Leaf(); leaf != c {
		if v, ok := t.defaults[leaf]; ok {
			return match[V]{val: v, src: sourceLeaf, pattern: string(leaf)}
		}
	}
	return match[V]{val: t.fallback, src: sourceFallback}
}

func (m match[V]) line(transport string, render func(V) string) string {
	if m.pattern != "" {
		return fmt.Sprintf("%s: source=%s pattern=%q -> %s", transport, m.src, m.pattern, render(m.val))
	}
	return fmt.Sprintf("%s: source=%s -> %s", transport, m.src, render(m.val))
}

func canonical(c code.Code) code.Code {
	return code.Code(code.Normalize(string(c)))
}

// HTTPStatus resolves an HTTP status for c.
func (m *mapper) HTTPStatus(c code.Code) int {
	return m.http.resolve(canonical(c)).val
}

// GRPCStatus resolves a gRPC status for c with the same precedence as
// HTTPStatus.
func (m *mapper) GRPCStatus(c code.Code) codes.Code {
	return m.grpc.resolve(canonical(c)).val
}

// Status resolves both HTTP and gRPC using the same inputs.
func (m *mapper) Status(c code.Code) apis.Status {
	c = canonical(c)
	return apis.Status{
		HTTP: m.http.resolve(c).val,
		GRPC: m.grpc.resolve(c).val,
	}
}

// Explain produces a textual trace of how the mapper resolved c.
//
// Example output:
//
//	code="STORAGE.PG.CONNECT_TIMEOUT"
//	http: source=prefix pattern="STORAGE.PG" -> 503
//	grpc: source=fallback -> Internal(13)
//
// source is one of override, prefix, default, leaf or fallback. pattern is
// the prefix rule as stored, or the last segment for leaf matches.
func (m *mapper) Explain(c code.Code) string {
	c = canonical(c)
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q\n", c)
	b.WriteString(m.http.resolve(c).line("http", renderHTTP))
	b.WriteByte('\n')
	b.WriteString(m.grpc.resolve(c).line("grpc", renderGRPC))
	return b.String()
}

func renderHTTP(v int) string { return strconv.Itoa(v) }

func renderGRPC(v codes.Code) string { return fmt.Sprintf("%s(%d)", v, uint32(v)) }

// normalizePrefix brings a prefix to canonical form. Wildcards survive
// code.Normalize untouched.
func normalizePrefix(raw string) (string, error) {
	p := code.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	for _, seg := range strings.Split(p, ".") {
		if !segmenttrie.ValidSegment(seg) {
			return "", fmt.Errorf("invalid segment %q", seg)
		}
	}
	return p, nil
}

// freeze copies src into a fresh map keyed by canonical codes.
func freeze[V any](src map[code.Code]V) (map[code.Code]V, error) {
	if len(src) == 0 {
		return nil, nil
	}
	dst := make(map[code.Code]V, len(src))
	for k, v := range src {
		c, err := code.Parse(string(k))
		if err != nil {
			return nil, fmt.Errorf("code %q: %w", k, err)
		}
		dst[c] = v
	}
	return dst, nil
}
