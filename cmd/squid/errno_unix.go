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

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"dirpx.dev/squid"
	"dirpx.dev/squid/adapter"
	"dirpx.dev/squid/mapper"
)

func addErrnoCmd(parent *cobra.Command, root *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "errno NAME|NUMBER",
		Short: "Show how a raw errno is absorbed and mapped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			en, err := parseErrno(args[0])
			if err != nil {
				return err
			}
			root.logger.Debug("errno resolved", "errno", int(en))

			m, err := mapper.New()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), adapter.Describe(m, squid.New(squid.Settings{}, en)))
		},
	})
}

// maxErrno bounds the reverse name lookup; no supported platform defines
// errno values above it.
const maxErrno = 255

func parseErrno(s string) (syscall.Errno, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 || unix.ErrnoName(syscall.Errno(n)) == "" {
			return 0, fmt.Errorf("unknown errno %d", n)
		}
		return syscall.Errno(n), nil
	}
	name := strings.ToUpper(s)
	for n := 1; n <= maxErrno; n++ {
		if unix.ErrnoName(syscall.Errno(n)) == name {
			return syscall.Errno(n), nil
		}
	}
	return 0, fmt.Errorf("unknown errno %q", s)
}
