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
	"log/slog"
	"net/http"
)

// DefaultHTTPStatusCode is used when HTTPSettings.HTTPStatusCode is zero.
const DefaultHTTPStatusCode = http.StatusInternalServerError

// HTTPSettings extends Settings with the HTTP status code.
type HTTPSettings struct {
	Settings
	HTTPStatusCode int
}

// HTTPError is a StructuredError that also carries an HTTP status code.
//
// It is the reference specialization: embed StructuredError, build it through
// the same resolution rules, re-declare the chaining setters so they return
// the specialized type, and overlay the extra field on Record/Serialize.
type HTTPError struct {
	StructuredError
	httpStatusCode int
}

var _ Structured = (*HTTPError)(nil)

// NewHTTP builds an HTTPError. settings.Settings, native and opts follow
// New exactly; the status code defaults to DefaultHTTPStatusCode and is not
// range-checked.
func NewHTTP(settings HTTPSettings, native error, opts ...Option) *HTTPError {
	base := build(settings.Settings, native, NameHTTPError, KindHTTPError, newBuildConfig(opts))
	status := settings.HTTPStatusCode
	if status == 0 {
		status = DefaultHTTPStatusCode
	}
	return &HTTPError{StructuredError: *base, httpStatusCode: status}
}

// HTTPStatusCode returns the HTTP status carried by e.
func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.httpStatusCode
}

// SetHTTPStatusCode replaces the status code and returns the receiver.
func (e *HTTPError) SetHTTPStatusCode(status int) *HTTPError {
	if e == nil {
		return nil
	}
	e.httpStatusCode = status
	return e
}

// SetDetail replaces the detail map and returns the receiver.
func (e *HTTPError) SetDetail(detail map[string]any) *HTTPError {
	if e == nil {
		return nil
	}
	e.StructuredError.SetDetail(detail)
	return e
}

// SetSkipLog sets the logging hint and returns the receiver.
func (e *HTTPError) SetSkipLog(skipLog bool) *HTTPError {
	if e == nil {
		return nil
	}
	e.StructuredError.SetSkipLog(skipLog)
	return e
}

// Record snapshots e, overlaying httpStatusCode on the base record.
func (e *HTTPError) Record() HTTPRecord {
	if e == nil {
		return HTTPRecord{}
	}
	return HTTPRecord{
		Record:         e.StructuredError.Record(),
		HTTPStatusCode: e.httpStatusCode,
	}
}

// Serialize implements Serializer and returns e.Record().
func (e *HTTPError) Serialize() any { return e.Record() }

// LogValue implements slog.LogValuer.
func (e *HTTPError) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}
	attrs := e.StructuredError.logAttrs()
	attrs = append(attrs, slog.Int("http_status", e.httpStatusCode))
	return slog.GroupValue(attrs...)
}
