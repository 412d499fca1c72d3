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

// Package squid is a structured-error model for dirpx services.
//
// A StructuredError augments a platform error with a stable code, arbitrary
// detail, an identifier, a timestamp and a uniform serialization contract.
// It can be built from explicit Settings, from a caught platform error, or
// from both:
//
//	f, err := os.Open(path)
//	if err != nil {
//	    return squid.Create(squid.Settings{Detail: map[string]any{"path": path}}, err)
//	}
//
// The wrapped error is absorbed eagerly: its message and code become the
// defaults of the new error, its system-call metadata (path, syscall, errno,
// address, port, ...) is projected onto SystemInfo, and a snapshot is kept
// in NativeError. Record (and Serialize) turn the structured error into a
// plain, JSON-safe value for loggers and transports.
//
// HTTPError is the reference specialization and adds an HTTP status code.
//
// Classification helpers decide what a caught value is before handling it:
//
//   - IsSquidError: carries the capability tag (any copy of this package);
//   - ExactInstanceOf / ExactHTTPInstanceOf: exact kind match;
//   - Convert: "make sure I hold a structured error, wrap if not";
//   - Serialize: normalize any caught value into a record.
//
// Transport adapters live in the httpx and grpcx subpackages; status mapping
// per code lives in mapper.
package squid
