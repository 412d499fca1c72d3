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
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/squid/code"
)

type prefixRule[V any] struct {
	// prefix is the raw, dot-separated code prefix (may contain "*").
	// It is normalized and validated when the trie is built.
	prefix string
	val    V
}

type builder struct {
	// httpDefaults starts as a copy of the library defaults; WithHTTPDefault
	// edits it in place.
	httpDefaults map[code.Code]int
	grpcDefaults map[code.Code]codes.Code

	// exact per-code overrides, highest precedence
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code

	// prefix rules in registration order; a later rule for the same prefix
	// replaces an earlier one
	httpPrefixes []prefixRule[int]
	grpcPrefixes []prefixRule[codes.Code]

	// used when nothing else matched
	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	b := &builder{
		httpDefaults: make(map[code.Code]int, len(defaultHTTP)),
		grpcDefaults: make(map[code.Code]codes.Code, len(defaultGRPC)),
		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]codes.Code),
		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = v
	}
	return b
}
