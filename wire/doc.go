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

// Package wire moves squid records across protobuf-based transports.
//
// A record (squid.Record, squid.HTTPRecord or a NativeRecord) is first
// rendered with its JSON tags and then loaded into a google.protobuf.Struct,
// so the field names on the wire are exactly the JSON ones:
//
//	{"message": "...", "name": "SquidError", "code": "NOT_FOUND", "id": 0, ...}
//
// Numbers inside a Struct are doubles; integral fields (id, errno, port,
// httpStatusCode) survive the trip exactly, numbers nested in detail come
// back as float64.
package wire
