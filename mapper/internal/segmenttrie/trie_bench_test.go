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
	"math/rand"
	"strings"
	"testing"
)

// genSegment returns a valid segment: [A-Z][A-Z0-9_]*
func genSegment(rng *rand.Rand, min, max int) string {
	n := min + rng.Intn(max-min+1)
	var b strings.Builder
	b.WriteByte(byte('A' + rng.Intn(26)))
	for i := 1; i < n; i++ {
		switch rng.Intn(3) {
		case 0:
			b.WriteByte(byte('A' + rng.Intn(26)))
		case 1:
			b.WriteByte(byte('0' + rng.Intn(10)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// makePrefix builds a dotted prefix of depth segments, with a wildcard every
// k-th segment when k > 0.
func makePrefix(rng *rand.Rand, depth, k int) string {
	segs := make([]string, depth)
	for i := range segs {
		if k > 0 && (i+1)%k == 0 {
			segs[i] = Wildcard
			continue
		}
		segs[i] = genSegment(rng, 3, 8)
	}
	return strings.Join(segs, ".")
}

// buildTrie inserts n prefixes and returns keys that extend each of them by
// one segment, so every key hits through LPM.
func buildTrie(b *testing.B, n, depth, k int) (*Trie[int], []string) {
	rng := rand.New(rand.NewSource(1))
	tr := New[int]()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p := makePrefix(rng, depth, k)
		if err := tr.Insert(p, 100+i); err != nil {
			b.Fatalf("insert %q: %v", p, err)
		}
		parts := strings.Split(p, ".")
		for j := range parts {
			if parts[j] == Wildcard {
				parts[j] = genSegment(rng, 3, 8)
			}
		}
		keys = append(keys, strings.Join(parts, ".")+"."+genSegment(rng, 3, 8))
	}
	return tr, keys
}

func BenchmarkTrieInsert_N128_Depth3(b *testing.B)  { benchInsert(b, 128, 3, 0) }
func BenchmarkTrieInsert_N1024_Depth3(b *testing.B) { benchInsert(b, 1024, 3, 0) }

func benchInsert(b *testing.B, n, depth, k int) {
	rng := rand.New(rand.NewSource(2))
	prefixes := make([]string, n)
	for i := range prefixes {
		prefixes[i] = makePrefix(rng, depth, k)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New[int]()
		for j, p := range prefixes {
			if err := tr.Insert(p, j); err != nil {
				b.Fatalf("insert: %v", err)
			}
		}
	}
}

func BenchmarkTrieMatch_N128_Depth3(b *testing.B)  { benchMatch(b, 128, 3, 0) }
func BenchmarkTrieMatch_N1024_Depth3(b *testing.B) { benchMatch(b, 1024, 3, 0) }

func BenchmarkTrieMatch_N1024_Depth3_WildcardEvery2(b *testing.B) { benchMatch(b, 1024, 3, 2) }

func benchMatch(b *testing.B, n, depth, k int) {
	tr, keys := buildTrie(b, n, depth, k)
	b.ReportAllocs()
	b.ResetTimer()
	var sum int
	for i := 0; i < b.N; i++ {
		if v, ok := tr.Match(keys[i%len(keys)]); ok {
			sum += v
		}
	}
	if sum == 0 {
		b.Fatal("no key matched")
	}
}

func BenchmarkTrieMatchParallel_N1024_Depth3(b *testing.B) {
	tr, keys := buildTrie(b, 1024, 3, 0)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = tr.Match(keys[i%len(keys)])
			i++
		}
	})
}
