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

// Package code provides the canonical vocabulary of squid error codes.
//
// A code is the stable, machine-readable classifier of a structured error,
// such as "NOT_FOUND", "ENOENT" or "BILLING.INVOICE.NOT_FOUND". Canonical
// codes are:
//
//   - upper-cased;
//   - underscore-separated within a segment;
//   - optionally namespaced with '.' (at most four segments);
//   - suitable for lookup in mappers and registries.
//
// The structured error itself stores whatever string the caller supplied;
// this package is what transport adapters use to compare and route codes.
package code
