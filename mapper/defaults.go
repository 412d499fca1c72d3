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

	"google.golang.org/grpc/codes"

	"dirpx.dev/squid/code"
)

// defaultHTTP defines the built-in HTTP mappings for the generic classes and
// the errno names structured errors pick up from system-call failures.
var defaultHTTP = map[code.Code]int{
	// 5xx: server and dependency failures.
	code.Internal:    http.StatusInternalServerError,
	code.Unavailable: http.StatusServiceUnavailable,
	code.Timeout:     http.StatusGatewayTimeout,
	code.Unsupported: http.StatusNotImplemented,
	// 499 (nginx) would be more precise, but it is not a registered status.
	code.Canceled: http.StatusRequestTimeout,

	// 4xx: client mistakes.
	code.Invalid:          http.StatusBadRequest,
	code.NotFound:         http.StatusNotFound,
	code.AlreadyExists:    http.StatusConflict,
	code.Conflict:         http.StatusConflict,
	code.Unauthenticated:  http.StatusUnauthorized,
	code.PermissionDenied: http.StatusForbidden,
	code.RateLimited:      http.StatusTooManyRequests,

	// errno names.
	code.ENOENT:       http.StatusNotFound,
	code.EEXIST:       http.StatusConflict,
	code.EACCES:       http.StatusForbidden,
	code.EPERM:        http.StatusForbidden,
	code.ENOTDIR:      http.StatusBadRequest,
	code.EISDIR:       http.StatusBadRequest,
	code.EINVAL:       http.StatusBadRequest,
	code.ENOSPC:       http.StatusInsufficientStorage,
	code.EAGAIN:       http.StatusServiceUnavailable,
	code.EADDRINUSE:   http.StatusInternalServerError,
	code.ETIMEDOUT:    http.StatusGatewayTimeout,
	code.ECONNREFUSED: http.StatusBadGateway,
	code.ECONNRESET:   http.StatusBadGateway,
	code.EHOSTUNREACH: http.StatusBadGateway,
	code.EPIPE:        http.StatusBadGateway,
}

// defaultGRPC defines the built-in gRPC mappings, aligned with the canonical
// status codes.
var defaultGRPC = map[code.Code]codes.Code{
	code.Internal:    codes.Internal,
	code.Unavailable: codes.Unavailable,
	code.Timeout:     codes.DeadlineExceeded,
	code.Unsupported: codes.Unimplemented,
	code.Canceled:    codes.Canceled,

	code.Invalid:          codes.InvalidArgument,
	code.NotFound:         codes.NotFound,
	code.AlreadyExists:    codes.AlreadyExists,
	code.Conflict:         codes.Aborted,
	code.Unauthenticated:  codes.Unauthenticated,
	code.PermissionDenied: codes.PermissionDenied,
	code.RateLimited:      codes.ResourceExhausted,

	code.ENOENT:       codes.NotFound,
	code.EEXIST:       codes.AlreadyExists,
	code.EACCES:       codes.PermissionDenied,
	code.EPERM:        codes.PermissionDenied,
	code.ENOTDIR:      codes.FailedPrecondition,
	code.EISDIR:       codes.FailedPrecondition,
	code.EINVAL:       codes.InvalidArgument,
	code.ENOSPC:       codes.ResourceExhausted,
	code.EAGAIN:       codes.Unavailable,
	code.EADDRINUSE:   codes.Internal,
	code.ETIMEDOUT:    codes.DeadlineExceeded,
	code.ECONNREFUSED: codes.Unavailable,
	code.ECONNRESET:   codes.Unavailable,
	code.EHOSTUNREACH: codes.Unavailable,
	code.EPIPE:        codes.Unavailable,
}
