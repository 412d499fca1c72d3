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

package httpx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/squid"
	"dirpx.dev/squid/apis"
	"dirpx.dev/squid/httpx"
	"dirpx.dev/squid/mapper"
)

var _ apis.HTTPStatusCoder = (*squid.HTTPError)(nil)

func newWriter(t *testing.T, logs *bytes.Buffer, opts ...mapper.Option) httpx.Writer {
	t.Helper()
	m, err := mapper.New(opts...)
	require.NoError(t, err)
	return httpx.Writer{Mapper: m, Logger: slog.New(slog.NewJSONHandler(logs, nil))}
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestWrite_StatusFromMapper(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)
	rr := httptest.NewRecorder()

	w.Write(rr, squid.New(squid.Settings{Message: "no such invoice", Code: "BILLING.NOT_FOUND", ID: 3}, nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, httpx.ContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	body := decode(t, rr)
	assert.Equal(t, "no such invoice", body["message"])
	assert.Equal(t, "BILLING.NOT_FOUND", body["code"])
	assert.Equal(t, squid.NameStructuredError, body["name"])
	assert.Equal(t, float64(3), body["id"])
	assert.NotContains(t, body, "httpStatusCode")

	assert.Contains(t, logs.String(), "http request failed")
	assert.Contains(t, logs.String(), `"status":404`)
}

func TestWrite_HTTPErrorPinsStatus(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs, mapper.WithHTTPOverride("NOT_FOUND", 500))
	rr := httptest.NewRecorder()

	w.Write(rr, squid.NewHTTP(squid.HTTPSettings{
		Settings:       squid.Settings{Code: "NOT_FOUND"},
		HTTPStatusCode: http.StatusGone,
	}, nil))

	assert.Equal(t, http.StatusGone, rr.Code)
	assert.Equal(t, float64(http.StatusGone), decode(t, rr)["httpStatusCode"])
}

func TestWrite_WrappedStructuredError(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)
	rr := httptest.NewRecorder()

	inner := squid.New(squid.Settings{Code: "UNAUTHENTICATED", Message: "token expired"}, nil)
	w.Write(rr, errors.Join(errors.New("auth middleware"), inner))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "token expired", decode(t, rr)["message"])
}

func TestWrite_PlainErrorIsConverted(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)
	rr := httptest.NewRecorder()

	w.Write(rr, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "boom", body["message"])
	assert.Equal(t, "ERROR_CODE_NOT_SET", body["code"])
}

func TestWrite_SkipLog(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)
	rr := httptest.NewRecorder()

	w.Write(rr, squid.New(squid.Settings{Code: "INVALID"}, nil).SetSkipLog(true))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, logs.String())
}

// quietErr is a plain error that asks not to be logged.
type quietErr struct{}

func (quietErr) Error() string { return "client went away" }
func (quietErr) SkipLog() bool { return true }

func TestWrite_SkipLogOnPlainError(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)
	rr := httptest.NewRecorder()

	w.Write(rr, fmt.Errorf("read body: %w", quietErr{}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "read body: client went away", decode(t, rr)["message"])
	assert.Empty(t, logs.String())
}

func TestWrite_Nil(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	httpx.Writer{}.Write(rr, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestWrite_UnencodableDetail(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)
	rr := httptest.NewRecorder()

	w.Write(rr, squid.New(squid.Settings{Code: "INTERNAL", Message: "bad detail", Detail: map[string]any{"ch": make(chan int)}}, nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "bad detail", body["message"])
	assert.Equal(t, "INTERNAL", body["code"])
}

func TestHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	w := newWriter(t, &logs)

	srv := httptest.NewServer(w.Handler(func(rw http.ResponseWriter, r *http.Request) error {
		if r.URL.Path == "/ok" {
			rw.WriteHeader(http.StatusNoContent)
			return nil
		}
		return squid.New(squid.Settings{Code: "PERMISSION_DENIED", Message: "nope"}, nil)
	}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/ok")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/admin")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "nope", body["message"])
	assert.Contains(t, logs.String(), `"path":"/admin"`)
	assert.Contains(t, logs.String(), `"method":"GET"`)
}

func TestWriter_ZeroValueUsesDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusNotFound, httpx.Writer{}.Status(squid.New(squid.Settings{Code: "ENOENT"}, nil)))
	assert.Equal(t, http.StatusInternalServerError, httpx.Writer{}.Status(errors.New("plain")))
}
