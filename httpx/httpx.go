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

// Package httpx writes squid structured errors as HTTP responses.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"dirpx.dev/squid"
	"dirpx.dev/squid/apis"
	"dirpx.dev/squid/code"
	"dirpx.dev/squid/mapper"
	"dirpx.dev/squid/wire"
)

// ContentType is the media type of error bodies.
const ContentType = "application/json"

var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, err := mapper.New()
	if err != nil {
		panic(err) // library defaults are static
	}
	return m
})

// Writer is a thin adapter that knows how to turn an error into an HTTP
// response using the provided status mapper.
//
// The zero value is usable: Mapper defaults to mapper.New() and Logger to
// slog.Default().
type Writer struct {
	Mapper apis.Mapper
	Logger *slog.Logger
}

// HandlerFunc is an http.HandlerFunc that may fail.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handler adapts h into an http.Handler; a returned error is written with w.
func (w Writer) Handler(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := h(rw, r); err != nil {
			w.write(r.Context(), rw, err, slog.String("method", r.Method), slog.String("path", r.URL.Path))
		}
	})
}

// Write serializes err and writes it to rw. Nothing is written for a nil err.
//
// err is converted to a structured error when needed. The status is the
// error's own HTTPStatusCode when it has one, the Mapper's answer for the
// error code otherwise. The body is the serialized record.
//
// No redaction is performed: stack and system-call fields are exposed as-is.
// Handlers serving untrusted clients should strip them before the error
// reaches the Writer.
func (w Writer) Write(rw http.ResponseWriter, err error) {
	w.write(context.Background(), rw, err)
}

// WriteContext is Write with a context for the log record.
func (w Writer) WriteContext(ctx context.Context, rw http.ResponseWriter, err error) {
	w.write(ctx, rw, err)
}

func (w Writer) write(ctx context.Context, rw http.ResponseWriter, err error, attrs ...slog.Attr) {
	if err == nil {
		return
	}
	se, ok := squid.AsStructured(err)
	if !ok {
		se = squid.Convert(err, true)
	}
	status := w.Status(se)

	if !skipLog(err) {
		w.logger().LogAttrs(ctx, slog.LevelError, "http request failed",
			append(attrs, slog.Int("status", status), slog.Any("error", se))...)
	}

	body, mErr := wire.Marshal(se)
	if mErr != nil {
		body = fallbackBody(se)
	}

	rw.Header().Set("Content-Type", ContentType)
	rw.Header().Set("X-Content-Type-Options", "nosniff")
	rw.WriteHeader(status)
	_, _ = rw.Write(body)
}

// Status resolves the HTTP status Write would answer err with.
func (w Writer) Status(err error) int {
	var pinned apis.HTTPStatusCoder
	if errors.As(err, &pinned) {
		if s := pinned.HTTPStatusCode(); s != 0 {
			return s
		}
	}
	c := string(code.NotSet)
	if se, ok := squid.AsStructured(err); ok {
		c = se.Code()
	}
	return w.mapper().HTTPStatus(code.Code(c))
}

func (w Writer) mapper() apis.Mapper {
	if w.Mapper != nil {
		return w.Mapper
	}
	return defaultMapper()
}

func (w Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// skipLog reports whether the first logging hint in err's chain asks for
// silence.
func skipLog(err error) bool {
	var ls apis.LogSkipper
	return errors.As(err, &ls) && ls.SkipLog()
}

// fallbackBody is used when the record holds a detail value that cannot be
// encoded.
func fallbackBody(se squid.Structured) []byte {
	b, _ := json.Marshal(map[string]any{
		"message": se.Message(),
		"code":    se.Code(),
		"id":      se.ID(),
	})
	return b
}
