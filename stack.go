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
	"errors"
	"runtime"
	"strconv"
	"strings"
)

const (
	// MaxCauseDepth bounds how many causes FullErrorStack walks. Chains that
	// are longer, or that cycle, end with a truncation marker.
	MaxCauseDepth = 32

	maxStackFrames = 32

	causedBy       = "\nCaused by: "
	truncatedChain = causedBy + "... (cause chain truncated)"
)

// captureStack renders the current goroutine's stack as
//
//	<name>: <message>
//	pkg.Func
//		/path/file.go:42
//
// skip follows runtime.Callers: 0 is Callers itself, 1 is captureStack.
func captureStack(name, message string, skip int) string {
	pcs := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pcs)

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(message)

	frames := runtime.CallersFrames(pcs[:n])
	for n > 0 {
		f, more := frames.Next()
		b.WriteByte('\n')
		b.WriteString(f.Function)
		b.WriteString("\n\t")
		b.WriteString(f.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// FullErrorStack flattens err and its cause chain into one diagnostic string.
//
// Each error contributes its own stack when it has one (Stacker) and its
// Error() text otherwise; causes are appended as "\nCaused by: <segment>".
// Causes are found through Cause() error first and Unwrap() error second.
//
// An error that unwraps to the error whose stack it adopted has already
// printed that stack, so the unwrapped error is walked through silently.
// Every other cause is printed, even when its text repeats.
func FullErrorStack(err error) string {
	err = liveError(err)
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(stackSegment(err))

	cur := err
	for walked := 0; ; walked++ {
		cause, explicit := causeOf(cur)
		if cause == nil {
			break
		}
		if walked == MaxCauseDepth {
			b.WriteString(truncatedChain)
			break
		}
		adopted := !explicit && adoptedStack(cur, cause)
		cur = cause
		if adopted {
			continue
		}
		b.WriteString(causedBy)
		b.WriteString(stackSegment(cause))
	}
	return b.String()
}

func stackSegment(err error) string {
	if s := ownStack(err); s != "" {
		return s
	}
	return err.Error()
}

// causeOf returns err's cause and whether it came from an explicit Cause()
// method rather than Unwrap.
func causeOf(err error) (error, bool) {
	if c, ok := err.(interface{ Cause() error }); ok {
		return liveError(c.Cause()), true
	}
	return liveError(errors.Unwrap(err)), false
}

// adoptedStack reports whether cur carries cause's stack as its own.
func adoptedStack(cur, cause error) bool {
	s := ownStack(cur)
	return s != "" && s == ownStack(cause)
}
