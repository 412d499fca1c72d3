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

package mapper

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc/codes"

	"dirpx.dev/squid/apis"
	"dirpx.dev/squid/code"
)

func TestDefaults_GenericAndErrno(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct {
		c    code.Code
		http int
		grpc codes.Code
	}{
		{code.Invalid, http.StatusBadRequest, codes.InvalidArgument},
		{code.NotFound, http.StatusNotFound, codes.NotFound},
		{code.Unauthenticated, http.StatusUnauthorized, codes.Unauthenticated},
		{code.PermissionDenied, http.StatusForbidden, codes.PermissionDenied},
		{code.Unavailable, http.StatusServiceUnavailable, codes.Unavailable},
		{code.Timeout, http.StatusGatewayTimeout, codes.DeadlineExceeded},
		{code.ENOENT, http.StatusNotFound, codes.NotFound},
		{code.EACCES, http.StatusForbidden, codes.PermissionDenied},
		{code.ECONNREFUSED, http.StatusBadGateway, codes.Unavailable},
		{code.NotSet, http.StatusInternalServerError, codes.Internal},
		{"", http.StatusInternalServerError, codes.Internal},
	}
	for _, tc := range cases {
		st := m.Status(tc.c)
		if st.HTTP != tc.http || st.GRPC != tc.grpc {
			t.Fatalf("Status(%q) = %+v; want HTTP=%d GRPC=%v", tc.c, st, tc.http, tc.grpc)
		}
	}
}

func TestEveryDefaultHasBothTransports(t *testing.T) {
	for c := range defaultHTTP {
		if _, ok := defaultGRPC[c]; !ok {
			t.Fatalf("%s has an HTTP default but no gRPC default", c)
		}
		if err := code.Validate(c); err != nil {
			t.Fatalf("default key %q is not canonical: %v", c, err)
		}
	}
	if len(defaultHTTP) != len(defaultGRPC) {
		t.Fatalf("default tables differ in size: http=%d grpc=%d", len(defaultHTTP), len(defaultGRPC))
	}
}

func TestLeafFallback(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.HTTPStatus("BILLING.INVOICE.NOT_FOUND"); got != http.StatusNotFound {
		t.Fatalf("leaf default: HTTP=%d, want 404", got)
	}
	if got := m.GRPCStatus("STORAGE.ENOENT"); got != codes.NotFound {
		t.Fatalf("leaf default: GRPC=%v, want NotFound", got)
	}
	if got := m.HTTPStatus("BILLING.CARD_DECLINED"); got != http.StatusInternalServerError {
		t.Fatalf("unknown leaf must fall back: HTTP=%d", got)
	}
}

func TestNormalizesInput(t *testing.T) {
	m, err := New(WithHTTPOverride("billing/declined", 402))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, in := range []code.Code{"billing/declined", "BILLING.DECLINED", " Billing.Declined "} {
		if got := m.HTTPStatus(in); got != 402 {
			t.Fatalf("HTTPStatus(%q) = %d, want 402", in, got)
		}
	}
	if got := m.HTTPStatus("not-found"); got != http.StatusNotFound {
		t.Fatalf("HTTPStatus(not-found) = %d, want 404", got)
	}
}

func TestPrecedence(t *testing.T) {
	m, err := New(
		WithHTTPPrefix("STORAGE", 502),
		WithHTTPPrefix("STORAGE.PG", 503),
		WithHTTPOverride("STORAGE.PG.NOT_FOUND", 410),
		WithHTTPDefault("STORAGE.PG.TIMEOUT", 599),
		WithGRPCPrefix("*.NOT_FOUND", codes.FailedPrecondition),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		c    code.Code
		want int
	}{
		{"STORAGE.PG.NOT_FOUND", 410}, // override beats prefix
		{"STORAGE.PG.CONNECT", 503},   // deeper prefix wins
		{"STORAGE.S3.CONNECT", 502},   // shorter prefix
		{"STORAGE.PG.TIMEOUT", 503},   // prefix beats default
		{"CACHE.TIMEOUT", 504},        // leaf default
		{"STORAGE", 502},              // the prefix itself
		{code.Unavailable, 503},       // plain default untouched
	}
	for _, tc := range cases {
		if got := m.HTTPStatus(tc.c); got != tc.want {
			t.Fatalf("HTTPStatus(%q) = %d, want %d", tc.c, got, tc.want)
		}
	}

	if got := m.GRPCStatus("USERS.NOT_FOUND"); got != codes.FailedPrecondition {
		t.Fatalf("wildcard prefix: GRPC=%v, want FailedPrecondition", got)
	}
	if got := m.GRPCStatus(code.NotFound); got != codes.NotFound {
		t.Fatalf("wildcard needs one leading segment: GRPC=%v, want NotFound", got)
	}
}

func TestDefaultOverrideOption(t *testing.T) {
	m, err := New(
		WithHTTPDefault(code.Canceled, 499),
		WithGRPCDefault(code.Canceled, codes.Aborted),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st := m.Status(code.Canceled); st.HTTP != 499 || st.GRPC != codes.Aborted {
		t.Fatalf("Status(CANCELED) = %+v", st)
	}
	if st := m.Status("JOBS.CANCELED"); st.HTTP != 499 || st.GRPC != codes.Aborted {
		t.Fatalf("leaf must see the adjusted default, got %+v", st)
	}

	// The package defaults are untouched by a previous build.
	fresh, _ := New()
	if got := fresh.HTTPStatus(code.Canceled); got != http.StatusRequestTimeout {
		t.Fatalf("defaults leaked between builds: %d", got)
	}
}

func TestFallbackOption(t *testing.T) {
	m, err := New(WithFallback(http.StatusBadGateway, codes.Unknown))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st := m.Status(code.NotSet); st.HTTP != http.StatusBadGateway || st.GRPC != codes.Unknown {
		t.Fatalf("Status(NotSet) = %+v", st)
	}
}

func TestNew_InvalidInput(t *testing.T) {
	cases := map[string]Option{
		"empty prefix":      WithHTTPPrefix("", 400),
		"wildcard only":     WithGRPCPrefix("*.*", codes.Internal),
		"bad segment":       WithHTTPPrefix("STORAGE..PG", 503),
		"bad override key":  WithHTTPOverride("1BAD", 500),
		"bad default key":   WithGRPCDefault("x", codes.Internal),
		"too many segments": WithHTTPOverride("A.B.C.D.E", 500),
	}
	for name, opt := range cases {
		if _, err := New(opt); err == nil {
			t.Fatalf("%s: New must fail", name)
		}
	}
}

func TestExplain_Sources_And_Pattern(t *testing.T) {
	m, err := New(
		WithHTTPPrefix("STORAGE.PG", 503),
		WithGRPCPrefix("STORAGE.PG", codes.Unavailable),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	exp := m.Explain("storage.pg.connect")
	for _, want := range []string{
		`code="STORAGE.PG.CONNECT"`,
		`http: source=prefix pattern="STORAGE.PG" -> 503`,
		`grpc: source=prefix pattern="STORAGE.PG" -> Unavailable(14)`,
	} {
		if !strings.Contains(exp, want) {
			t.Fatalf("Explain must include %s:\n%s", want, exp)
		}
	}

	exp = m.Explain("BILLING.NOT_FOUND")
	if !strings.Contains(exp, `source=leaf pattern="NOT_FOUND"`) {
		t.Fatalf("Explain must name the leaf:\n%s", exp)
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	m, err := New(
		WithHTTPPrefix("STORAGE.PG", 503),
		WithHTTPOverride(code.Canceled, 408),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				_ = m.Status("STORAGE.PG.CONNECT")
				_ = m.Status(code.Canceled)
				_ = m.Status("BILLING.INVOICE.INVALID")
			}
		}()
	}
	wg.Wait()
}

func BenchmarkMapperStatus_Default(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status(code.Invalid)
	}
}

func BenchmarkMapperStatus_PrefixHit(b *testing.B) {
	m, _ := New(
		WithHTTPPrefix("STORAGE.PG", 503),
		WithGRPCPrefix("STORAGE.PG", codes.Unavailable),
	)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("STORAGE.PG.CONNECT")
	}
}

func BenchmarkMapperStatus_Leaf(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("BILLING.INVOICE.NOT_FOUND")
	}
}

// Ensure mapper implements apis.Mapper
func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
