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

package code

// NotSet is the sentinel carried by structured errors when neither the
// caller nor the wrapped platform error supplied a code.
const NotSet Code = "ERROR_CODE_NOT_SET"

// Generic error classes.
//
// These are the codes callers are expected to use most often when they build
// a structured error by hand. The mapper package ships transport defaults for
// each of them.
const (
	// Internal is the fallback class for unexpected server-side failures.
	// Can be mapped to an HTTP 500.
	Internal Code = "INTERNAL"

	// Invalid means the input violates a structural or semantic invariant.
	// Can be mapped to an HTTP 400.
	Invalid Code = "INVALID"

	// NotFound means the referenced entity does not exist or is not visible.
	// Can be mapped to an HTTP 404.
	NotFound Code = "NOT_FOUND"

	// AlreadyExists means a create collided with an existing entity.
	// Can be mapped to an HTTP 409.
	AlreadyExists Code = "ALREADY_EXISTS"

	// Conflict means a concurrent modification or version mismatch.
	// Can be mapped to an HTTP 409.
	Conflict Code = "CONFLICT"

	// Unauthenticated means the caller did not present valid credentials.
	// Can be mapped to an HTTP 401.
	Unauthenticated Code = "UNAUTHENTICATED"

	// PermissionDenied means the caller is known but not allowed.
	// Can be mapped to an HTTP 403.
	PermissionDenied Code = "PERMISSION_DENIED"

	// Unsupported means the operation or option is not supported.
	// Can be mapped to an HTTP 501.
	Unsupported Code = "UNSUPPORTED"

	// RateLimited means the caller exceeded a rate limit or quota.
	// Can be mapped to an HTTP 429.
	RateLimited Code = "RATE_LIMITED"

	// Unavailable means a dependency is temporarily unreachable.
	// Can be mapped to an HTTP 503.
	Unavailable Code = "UNAVAILABLE"

	// Timeout means the operation exceeded its time budget.
	// Can be mapped to an HTTP 504.
	Timeout Code = "TIMEOUT"

	// Canceled means the caller gave up on the operation.
	// Can be mapped to an HTTP 408.
	Canceled Code = "CANCELED"
)

// POSIX errno names.
//
// Structured errors that absorb a system-call failure take the errno name as
// their code, so these values show up in serialized records as-is.
const (
	ENOENT       Code = "ENOENT"       // no such file or directory
	EEXIST       Code = "EEXIST"       // file exists
	EACCES       Code = "EACCES"       // permission denied
	EPERM        Code = "EPERM"        // operation not permitted
	ENOTDIR      Code = "ENOTDIR"      // not a directory
	EISDIR       Code = "EISDIR"       // is a directory
	ENOSPC       Code = "ENOSPC"       // no space left on device
	EINVAL       Code = "EINVAL"       // invalid argument
	EAGAIN       Code = "EAGAIN"       // resource temporarily unavailable
	EPIPE        Code = "EPIPE"        // broken pipe
	ETIMEDOUT    Code = "ETIMEDOUT"    // connection timed out
	ECONNREFUSED Code = "ECONNREFUSED" // connection refused
	ECONNRESET   Code = "ECONNRESET"   // connection reset by peer
	EADDRINUSE   Code = "EADDRINUSE"   // address already in use
	EHOSTUNREACH Code = "EHOSTUNREACH" // no route to host
)
