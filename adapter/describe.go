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

// Package adapter flattens a structured error and its resolved transport
// statuses into one portable descriptor, for structured logging, tracing or
// message bus propagation.
package adapter

import (
	"fmt"
	"net/http"

	"dirpx.dev/squid"
	"dirpx.dev/squid/apis"
	"dirpx.dev/squid/code"
)

// Descriptor is a flat, transport-friendly description of one error.
type Descriptor struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`

	// Errno is the system-call error number, when the error absorbed one.
	Errno int `json:"errno,omitempty"`

	HTTPStatus int    `json:"http_status"`
	GRPCCode   int    `json:"grpc_code"`
	GRPCName   string `json:"grpc_name"`
}

// Describe resolves err through m and returns its descriptor. err is
// converted to a structured error when it is not one; an HTTPError keeps its
// own HTTP status. nil yields the zero Descriptor.
func Describe(m apis.Mapper, err error) Descriptor {
	if err == nil {
		return Descriptor{}
	}
	se, ok := squid.AsStructured(err)
	if !ok {
		se = squid.Convert(err, true)
	}
	st := m.Status(code.Code(se.Code()))
	if p, ok := se.(apis.HTTPStatusCoder); ok && p.HTTPStatusCode() != 0 {
		st.HTTP = p.HTTPStatusCode()
	}

	d := Descriptor{
		Code:       se.Code(),
		Message:    se.Message(),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		GRPCName:   st.GRPC.String(),
	}
	if n, ok := se.(squid.Namer); ok {
		d.Name = n.Name()
	}
	if s, ok := se.(squid.SystemError); ok {
		d.Errno = s.SystemInfo().Errno
	}
	return d
}

// String renders d on one line, e.g.
//
//	ENOENT (404 Not Found, NotFound): open /x: no such file or directory
func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%d %s, %s): %s", d.Code, d.HTTPStatus, http.StatusText(d.HTTPStatus), d.GRPCName, d.Message)
}
