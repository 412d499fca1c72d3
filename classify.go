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

import "errors"

// IsSquidError reports whether v carries the structured-error capability
// tag. It relies only on the IsSquidError() bool method, so errors built by
// another copy of this package are recognized too. nil yields false.
func IsSquidError(v any) bool {
	m, ok := v.(interface{ IsSquidError() bool })
	return ok && m.IsSquidError()
}

// ExactInstanceOf reports whether v is a base StructuredError (not a
// specialization), judged by its kind discriminator.
func ExactInstanceOf(v any) bool {
	return kindOf(v) == KindStructuredError
}

// ExactHTTPInstanceOf reports whether v is an HTTPError, judged by its kind
// discriminator.
func ExactHTTPInstanceOf(v any) bool {
	return kindOf(v) == KindHTTPError
}

func kindOf(v any) string {
	if k, ok := v.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return ""
}

// Create builds a StructuredError on behalf of its caller.
//
// native is used only if it really is an error; any other value is
// discarded. The factory's own frame is excluded from a captured stack.
func Create(settings Settings, native any, opts ...Option) *StructuredError {
	err, _ := native.(error)
	return New(settings, err, append([]Option{WithCallerSkip(1)}, opts...)...)
}

// CreateHTTP is the HTTPError counterpart of Create.
func CreateHTTP(settings HTTPSettings, native any, opts ...Option) *HTTPError {
	err, _ := native.(error)
	return NewHTTP(settings, err, append([]Option{WithCallerSkip(1)}, opts...)...)
}

// Convert makes sure the caller holds a structured error.
//
// With onlyConvertNonSquidErrors, any value that reports the capability tag
// is returned as-is. Otherwise only an exact base StructuredError is returned
// as-is. Everything else is wrapped with Create, so its snapshot ends up in
// NativeError().
func Convert(v any, onlyConvertNonSquidErrors bool) Structured {
	if s, ok := keep(v, onlyConvertNonSquidErrors, ExactInstanceOf); ok {
		return s
	}
	return Create(Settings{}, v, WithCallerSkip(1))
}

// ConvertHTTP is Convert for callers that need an HTTPError; the exact
// check is made against HTTPError instead of the base type.
func ConvertHTTP(v any, onlyConvertNonSquidErrors bool) Structured {
	if s, ok := keep(v, onlyConvertNonSquidErrors, ExactHTTPInstanceOf); ok {
		return s
	}
	return CreateHTTP(HTTPSettings{}, v, WithCallerSkip(1))
}

func keep(v any, onlyNonSquid bool, exact func(any) bool) (Structured, bool) {
	s, ok := v.(Structured)
	if !ok {
		return nil, false
	}
	if onlyNonSquid {
		return s, IsSquidError(s)
	}
	return s, exact(s)
}

// AsStructured finds the first structured error in err's chain, whatever
// its concrete type.
func AsStructured(err error) (Structured, bool) {
	err = liveError(err)
	if err == nil {
		return nil, false
	}
	var s Structured
	if errors.As(err, &s) && s.IsSquidError() {
		return s, true
	}
	return nil, false
}
