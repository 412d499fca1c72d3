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
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"strings"
	"syscall"
)

// Optional accessors a platform error may expose. None of them is required:
// a plain error contributes only its Error() text.
type (
	// Coder is implemented by errors that carry a string code. Codes of any
	// other type are ignored.
	Coder interface{ Code() string }

	// Namer is implemented by errors that want a specific name in records.
	Namer interface{ Name() string }

	// Stacker is implemented by errors that carry their own stack trace.
	Stacker interface{ Stack() string }

	// SystemError is implemented by errors that expose system-call metadata
	// directly instead of through the standard library error types.
	SystemError interface{ SystemInfo() SystemInfo }
)

// SystemInfo is the system-call style failure metadata a platform error may
// carry. Every field is optional; the zero value means "not exposed".
type SystemInfo struct {
	Signal  string         `json:"signal,omitempty"`
	Address string         `json:"address,omitempty"`
	Dest    string         `json:"dest,omitempty"`
	Errno   int            `json:"errno,omitempty"`
	Info    map[string]any `json:"info,omitempty"`
	Path    string         `json:"path,omitempty"`
	Port    int            `json:"port,omitempty"`
	Syscall string         `json:"syscall,omitempty"`
}

// IsZero reports whether no field is set.
func (s SystemInfo) IsZero() bool {
	return s.Signal == "" && s.Address == "" && s.Dest == "" && s.Errno == 0 &&
		len(s.Info) == 0 && s.Path == "" && s.Port == 0 && s.Syscall == ""
}

// merge copies every non-zero field of o that is still zero in s.
func (s *SystemInfo) merge(o SystemInfo) {
	if s.Signal == "" {
		s.Signal = o.Signal
	}
	if s.Address == "" {
		s.Address = o.Address
	}
	if s.Dest == "" {
		s.Dest = o.Dest
	}
	if s.Errno == 0 {
		s.Errno = o.Errno
	}
	if len(s.Info) == 0 && len(o.Info) > 0 {
		s.Info = cloneMap(o.Info)
	}
	if s.Path == "" {
		s.Path = o.Path
	}
	if s.Port == 0 {
		s.Port = o.Port
	}
	if s.Syscall == "" {
		s.Syscall = o.Syscall
	}
}

func (s SystemInfo) clone() SystemInfo {
	s.Info = cloneMap(s.Info)
	return s
}

// systemInfoOf projects err onto SystemInfo. Sources are consulted in a fixed
// order and a field set by an earlier source is never overwritten.
func systemInfoOf(err error) SystemInfo {
	var info SystemInfo
	if err == nil {
		return info
	}

	var se SystemError
	if errors.As(err, &se) {
		info.merge(se.SystemInfo())
	}

	var pe *fs.PathError
	if errors.As(err, &pe) {
		info.merge(SystemInfo{Path: pe.Path, Syscall: pe.Op})
	}

	var le *os.LinkError
	if errors.As(err, &le) {
		info.merge(SystemInfo{Path: le.Old, Dest: le.New, Syscall: le.Op})
	}

	var sce *os.SyscallError
	if errors.As(err, &sce) {
		info.merge(SystemInfo{Syscall: sce.Syscall})
	}

	var oe *net.OpError
	if errors.As(err, &oe) {
		host, port := splitAddr(oe.Addr)
		info.merge(SystemInfo{Address: host, Port: port, Syscall: oe.Op})
	}

	var ae *net.AddrError
	if errors.As(err, &ae) {
		info.merge(SystemInfo{Address: ae.Addr})
	}

	var de *net.DNSError
	if errors.As(err, &de) {
		info.merge(SystemInfo{Address: de.Name, Info: dnsInfo(de)})
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		info.merge(SystemInfo{Signal: exitSignal(ee)})
	}

	var en syscall.Errno
	if errors.As(err, &en) && en != 0 {
		info.merge(SystemInfo{Errno: int(en)})
	}

	return info
}

func splitAddr(addr net.Addr) (string, int) {
	if addr == nil {
		return "", 0
	}
	s := addr.String()
	host, p, err := net.SplitHostPort(s)
	if err != nil {
		return s, 0
	}
	port, _ := strconv.Atoi(p)
	return host, port
}

func dnsInfo(de *net.DNSError) map[string]any {
	m := map[string]any{}
	if de.Server != "" {
		m["server"] = de.Server
	}
	if de.IsTimeout {
		m["is_timeout"] = true
	}
	if de.IsNotFound {
		m["is_not_found"] = true
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// nativeMessage prefers an explicit Message() accessor over Error(), so a
// wrapped structured error contributes its bare message.
func nativeMessage(err error) string {
	if m, ok := err.(interface{ Message() string }); ok {
		if s := m.Message(); s != "" {
			return s
		}
	}
	return err.Error()
}

// nativeCode returns the string code exposed anywhere in err's chain, or the
// symbolic name of a wrapped errno.
func nativeCode(err error) string {
	var c Coder
	if errors.As(err, &c) {
		if s := c.Code(); s != "" {
			return s
		}
	}
	var en syscall.Errno
	if errors.As(err, &en) && en != 0 {
		return errnoName(en)
	}
	return ""
}

func nativeName(err error) string {
	if n, ok := err.(Namer); ok {
		if s := n.Name(); s != "" {
			return s
		}
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// liveError maps an interface holding a nil pointer to nil. Methods of such
// values usually dereference the receiver.
func liveError(err error) error {
	if err == nil {
		return nil
	}
	if v := reflect.ValueOf(err); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return err
}

func ownStack(err error) string {
	if err == nil {
		return ""
	}
	if s, ok := err.(Stacker); ok {
		return s.Stack()
	}
	return ""
}

// NativeRecord is the normalized snapshot of a platform error.
type NativeRecord struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Stack   string `json:"stack,omitempty"`
	SystemInfo
}

// SerializeNativeError normalizes err into a NativeRecord without touching
// err.
//
// Message, Name and Code are always filled (Code may be empty). Stack is the
// full cause-chain stack and is present only when err carries its own
// stack. System-call fields are present only when non-zero.
func SerializeNativeError(err error) NativeRecord {
	err = liveError(err)
	if err == nil {
		return NativeRecord{}
	}
	rec := NativeRecord{
		Message:    nativeMessage(err),
		Name:       nativeName(err),
		Code:       nativeCode(err),
		SystemInfo: systemInfoOf(err),
	}
	if ownStack(err) != "" {
		rec.Stack = FullErrorStack(err)
	}
	return rec
}
