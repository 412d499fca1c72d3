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

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package squid

import (
	"os/exec"
	"syscall"
)

// errnoName has no portable symbolic table outside POSIX systems; the
// structured error falls back to its other code sources.
func errnoName(syscall.Errno) string { return "" }

func exitSignal(*exec.ExitError) string { return "" }
