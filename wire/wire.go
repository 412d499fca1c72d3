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

package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/squid"
)

// ErrNotRecord is returned by Unpack when the Any does not hold a Struct.
var ErrNotRecord = errors.New("wire: payload is not a squid record")

// ToStruct converts rec into a protobuf Struct using rec's JSON shape.
// Values implementing squid.Serializer and plain errors are normalized with
// squid.Serialize first.
func ToStruct(rec any) (*structpb.Struct, error) {
	b, err := json.Marshal(squid.Serialize(rec))
	if err != nil {
		return nil, fmt.Errorf("wire: encode record: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("wire: record is not a JSON object: %w", err)
	}
	return s, nil
}

// Marshal renders rec as protojson. The output is valid JSON with the same
// keys as encoding/json would produce; its whitespace is not stable.
func Marshal(rec any) ([]byte, error) {
	s, err := ToStruct(rec)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

// RecordFromStruct decodes s back into an HTTPRecord. HTTPStatusCode is zero
// when s came from a base Record.
func RecordFromStruct(s *structpb.Struct) (squid.HTTPRecord, error) {
	var rec squid.HTTPRecord
	if s == nil {
		return rec, ErrNotRecord
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return rec, fmt.Errorf("wire: encode struct: %w", err)
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return rec, fmt.Errorf("wire: decode record: %w", err)
	}
	return rec, nil
}

// Pack wraps rec into an Any, ready to be attached to a gRPC status.
func Pack(rec any) (*anypb.Any, error) {
	s, err := ToStruct(rec)
	if err != nil {
		return nil, err
	}
	return anypb.New(s)
}

// Unpack is the inverse of Pack.
func Unpack(a *anypb.Any) (squid.HTTPRecord, error) {
	if a == nil || !a.MessageIs((*structpb.Struct)(nil)) {
		return squid.HTTPRecord{}, ErrNotRecord
	}
	s := &structpb.Struct{}
	if err := a.UnmarshalTo(s); err != nil {
		return squid.HTTPRecord{}, fmt.Errorf("wire: unpack: %w", err)
	}
	return RecordFromStruct(s)
}

// Rebuild turns a received record back into a structured error.
//
// Message, code, stack, detail, id and timestamp are restored as settings.
// The remote error itself becomes the native error, so the system-call
// fields and the remote name are available through SystemInfo and
// NativeError. A record with a non-zero HTTPStatusCode yields an HTTPError.
func Rebuild(rec squid.HTTPRecord) squid.Structured {
	settings := squid.Settings{
		Message:   rec.Message,
		Stack:     rec.Stack,
		Code:      rec.Code,
		Detail:    rec.Detail,
		ID:        rec.ID,
		TimeStamp: rec.TimeStamp,
	}
	native := &remoteError{rec: rec.NativeRecord}
	if rec.HTTPStatusCode != 0 {
		return squid.NewHTTP(squid.HTTPSettings{Settings: settings, HTTPStatusCode: rec.HTTPStatusCode}, native)
	}
	return squid.New(settings, native)
}

// remoteError presents a received NativeRecord as a platform error.
type remoteError struct {
	rec squid.NativeRecord
}

func (e *remoteError) Error() string                { return e.rec.Message }
func (e *remoteError) Name() string                 { return e.rec.Name }
func (e *remoteError) Code() string                 { return e.rec.Code }
func (e *remoteError) Stack() string                { return e.rec.Stack }
func (e *remoteError) SystemInfo() squid.SystemInfo { return e.rec.SystemInfo }
