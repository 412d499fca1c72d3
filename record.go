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

package squid

import "time"

// Serializer is implemented by errors that produce their own transport
// record. Serialize must return a plain value that is safe to marshal and
// holds no reference back to the error.
type Serializer interface {
	Serialize() any
}

// Record is the serialized form of a StructuredError.
//
// JSON shape:
//
//	message, name, code, stack?, signal?, address?, dest?, errno?, info?,
//	path?, port?, syscall?, id, detail, timeStamp
type Record struct {
	NativeRecord
	ID        int            `json:"id"`
	Detail    map[string]any `json:"detail"`
	TimeStamp time.Time      `json:"timeStamp"`
}

// HTTPRecord is the serialized form of an HTTPError: a Record plus the HTTP
// status code.
type HTTPRecord struct {
	Record
	HTTPStatusCode int `json:"httpStatusCode"`
}

// Record snapshots e. The native part is computed over e itself, not over
// the wrapped platform error; that one is available through NativeError.
//
// Repeated calls on an unmodified error return equal records.
func (e *StructuredError) Record() Record {
	if e == nil {
		return Record{}
	}
	return Record{
		NativeRecord: SerializeNativeError(e),
		ID:           e.id,
		Detail:       cloneMap(e.detail),
		TimeStamp:    e.timeStamp,
	}
}

// Serialize implements Serializer and returns e.Record().
func (e *StructuredError) Serialize() any { return e.Record() }

// Serialize normalizes any caught value:
//
//  1. values implementing Serializer are asked to serialize themselves;
//  2. other errors are normalized with SerializeNativeError;
//  3. anything else is returned unchanged.
func Serialize(v any) any {
	switch x := v.(type) {
	case Serializer:
		return x.Serialize()
	case error:
		return SerializeNativeError(x)
	default:
		return v
	}
}
