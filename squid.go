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

import (
	"fmt"
	"log/slog"
	"time"

	"dirpx.dev/squid/code"
)

// DefaultMessage is the message of a structured error built without an
// explicit message and without a wrapped platform error.
const DefaultMessage = "An error occurred and no error message was set."

// Names and kinds of the structured error types shipped by this package.
//
// Name is what shows up in serialized records. Kind is the discriminator that
// ExactInstanceOf compares; it is versioned so that two copies of this
// package linked into one binary still recognize each other's errors.
const (
	NameStructuredError = "SquidError"
	NameHTTPError       = "SquidHttpError"

	KindStructuredError = "dirpx.squid/StructuredError.v1"
	KindHTTPError       = "dirpx.squid/HTTPError.v1"
)

// Settings is the caller-supplied configuration of a structured error.
// Every field is optional; zero values fall back to the defaults documented
// on StructuredError.
type Settings struct {
	Message   string
	Stack     string
	Code      string
	Detail    map[string]any
	ID        int
	TimeStamp time.Time
	SkipLog   bool
}

// Structured is the behaviour shared by every structured error, including
// specializations defined outside this package.
type Structured interface {
	error
	Serializer

	Code() string
	Message() string
	Detail() map[string]any
	ID() int
	TimeStamp() time.Time
	SkipLog() bool
	Kind() string

	// IsSquidError reports the capability tag. It is true for every value
	// built through this package.
	IsSquidError() bool
}

// StructuredError is the base structured error.
//
// It carries:
//   - message: human-readable summary (never empty);
//   - code: stable machine-readable classifier (never empty, code.NotSet when unknown);
//   - detail: arbitrary structured context (never nil);
//   - id: correlation/sequence identifier;
//   - timeStamp: creation time;
//   - skipLog: hint that callers should not log this instance;
//   - stack: textual stack trace, adopted or captured at construction;
//   - nativeError: snapshot of the wrapped platform error, taken once;
//   - system-call metadata projected from the wrapped platform error.
//
// Everything is fixed at construction except detail and skipLog, which
// change only through SetDetail and SetSkipLog. Instances are not safe for
// concurrent mutation.
type StructuredError struct {
	message   string
	name      string
	kind      string
	code      string
	detail    map[string]any
	id        int
	timeStamp time.Time
	skipLog   bool
	stack     string

	sys       SystemInfo
	nativeRec *NativeRecord
	// native is kept only for Unwrap; records never reference it.
	native error

	marker bool
}

var _ Structured = (*StructuredError)(nil)

// New builds a structured error from settings and an optional wrapped
// platform error.
//
// Resolution rules:
//   - message: settings.Message, then the platform error's message, then DefaultMessage;
//   - stack: settings.Stack, then the platform error's own stack, then a fresh trace
//     starting at the caller of New (see WithCallerSkip);
//   - code: settings.Code, then the platform error's string code or errno name,
//     then code.NotSet;
//   - detail, id, timeStamp, skipLog: from settings with empty/zero/now/false defaults.
//
// When native is non-nil its snapshot is stored eagerly and its system-call
// metadata is copied onto the new error field by field.
func New(settings Settings, native error, opts ...Option) *StructuredError {
	return build(settings, native, NameStructuredError, KindStructuredError, newBuildConfig(opts))
}

// build is the shared constructor body. Stack capture counts frames from
// here, so every exported constructor must call build directly.
func build(s Settings, native error, name, kind string, cfg buildConfig) *StructuredError {
	native = liveError(native)
	e := &StructuredError{
		name:      name,
		kind:      kind,
		message:   resolveMessage(s.Message, native),
		code:      resolveCode(s.Code, native),
		detail:    cloneMap(s.Detail),
		id:        s.ID,
		timeStamp: s.TimeStamp,
		skipLog:   s.SkipLog,
		native:    native,
		marker:    true,
	}
	if e.detail == nil {
		e.detail = map[string]any{}
	}
	if e.timeStamp.IsZero() {
		e.timeStamp = cfg.now()
	}

	e.stack = s.Stack
	if e.stack == "" {
		e.stack = ownStack(native)
	}
	if e.stack == "" {
		// 0 = runtime.Callers, 1 = captureStack, 2 = build, 3 = New/NewHTTP.
		e.stack = captureStack(name, e.message, 4+cfg.callerSkip)
	}

	if native != nil {
		rec := SerializeNativeError(native)
		e.nativeRec = &rec
		e.sys = systemInfoOf(native)
	}
	return e
}

func resolveMessage(msg string, native error) string {
	if msg != "" {
		return msg
	}
	if native != nil {
		if m := nativeMessage(native); m != "" {
			return m
		}
	}
	return DefaultMessage
}

func resolveCode(c string, native error) string {
	if c != "" {
		return c
	}
	if native != nil {
		if nc := nativeCode(native); nc != "" {
			return nc
		}
	}
	return string(code.NotSet)
}

// Error implements the error interface.
//
// The format is:
//
//	<code>: <message>
func (e *StructuredError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Unwrap returns the wrapped platform error, enabling errors.Is / errors.As.
func (e *StructuredError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.native
}

func (e *StructuredError) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *StructuredError) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

func (e *StructuredError) Kind() string {
	if e == nil {
		return ""
	}
	return e.kind
}

func (e *StructuredError) Code() string {
	if e == nil {
		return ""
	}
	return e.code
}

// Detail returns a copy of the detail map. It is never nil for a
// constructed error.
func (e *StructuredError) Detail() map[string]any {
	if e == nil {
		return nil
	}
	return cloneMap(e.detail)
}

func (e *StructuredError) ID() int {
	if e == nil {
		return 0
	}
	return e.id
}

func (e *StructuredError) TimeStamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.timeStamp
}

func (e *StructuredError) SkipLog() bool { return e != nil && e.skipLog }

func (e *StructuredError) Stack() string {
	if e == nil {
		return ""
	}
	return e.stack
}

// SystemInfo returns the system-call metadata copied from the wrapped
// platform error. Fields the platform error did not expose are zero.
func (e *StructuredError) SystemInfo() SystemInfo {
	if e == nil {
		return SystemInfo{}
	}
	return e.sys.clone()
}

// NativeError returns the snapshot of the wrapped platform error taken at
// construction time, or nil when nothing was wrapped.
func (e *StructuredError) NativeError() *NativeRecord {
	if e == nil || e.nativeRec == nil {
		return nil
	}
	cp := *e.nativeRec
	cp.SystemInfo = e.nativeRec.SystemInfo.clone()
	return &cp
}

// IsSquidError reports the capability tag set by every constructor.
func (e *StructuredError) IsSquidError() bool { return e != nil && e.marker }

// SetDetail replaces the detail map and returns the receiver for chaining.
// A nil map is stored as an empty one.
func (e *StructuredError) SetDetail(detail map[string]any) *StructuredError {
	if e == nil {
		return nil
	}
	e.detail = cloneMap(detail)
	if e.detail == nil {
		e.detail = map[string]any{}
	}
	return e
}

// SetSkipLog sets the logging hint and returns the receiver for chaining.
func (e *StructuredError) SetSkipLog(skipLog bool) *StructuredError {
	if e == nil {
		return nil
	}
	e.skipLog = skipLog
	return e
}

// LogValue implements slog.LogValuer so that structured errors render as a
// group instead of a flat string.
func (e *StructuredError) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}
	return slog.GroupValue(e.logAttrs()...)
}

func (e *StructuredError) logAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("name", e.name),
		slog.String("code", e.code),
		slog.String("message", e.message),
	}
	if e.id != 0 {
		attrs = append(attrs, slog.Int("id", e.id))
	}
	if len(e.detail) > 0 {
		attrs = append(attrs, slog.Any("detail", cloneMap(e.detail)))
	}
	if e.nativeRec != nil {
		attrs = append(attrs, slog.Group("native",
			slog.String("name", e.nativeRec.Name),
			slog.String("code", e.nativeRec.Code),
			slog.String("message", e.nativeRec.Message),
		))
	}
	return attrs
}

// cloneMap copies in, descending into nested string-keyed maps so callers
// cannot reach the stored values through a returned map.
func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if mv, ok := v.(map[string]any); ok {
			out[k] = cloneMap(mv)
			continue
		}
		out[k] = v
	}
	return out
}
