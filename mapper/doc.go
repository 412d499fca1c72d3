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

// Package mapper provides deterministic, immutable mappings from squid error
// codes (dirpx.dev/squid/code) to transport-level statuses for HTTP and gRPC.
//
// # Resolution model
//
// Codes are normalized first ("billing/not-found" becomes
// "BILLING.NOT_FOUND"). A Mapper then resolves statuses in the following
// order:
//
//  1. exact override for the code;
//  2. longest-prefix-match (LPM) rule over the code's segments;
//  3. default for the code;
//  4. default for the code's last segment ("BILLING.NOT_FOUND" uses the
//     NOT_FOUND default);
//  5. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: "*" matches exactly one segment and the
// more specific prefix wins.
//
//	WithHTTPPrefix("BILLING", http.StatusPaymentRequired)
//	WithHTTPPrefix("STORAGE.*.CONNECT", http.StatusServiceUnavailable)
//
// # Library defaults
//
// Defaults cover the generic classes in package code (INVALID -> 400 /
// InvalidArgument, NOT_FOUND -> 404 / NotFound, ...) and the errno names a
// structured error adopts from a failed system call (ENOENT -> 404 /
// NotFound, ECONNREFUSED -> 502 / Unavailable, ...). ERROR_CODE_NOT_SET has
// no default and lands on the fallback.
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(code.Canceled, 499),
//	    mapper.WithHTTPPrefix("STORAGE.PG", 503),
//	)
//	if err != nil {
//	    // invalid code or prefix
//	}
//	st := m.Status("STORAGE.PG.CONNECT_TIMEOUT")
//	// st.HTTP == 503, st.GRPC == codes.Internal
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched. It is
// meant for inspection (see the squid CLI), not for machine parsing.
package mapper
