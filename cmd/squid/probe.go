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

package main

import (
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/squid"
)

func newProbeCmd(root *rootOptions) *cobra.Command {
	var withStack bool

	cmd := &cobra.Command{
		Use:   "probe PATH",
		Short: "Open PATH and print the record of the resulting error",
		Long: `Opens PATH for reading. When the open fails, the failure is absorbed into a
structured error and its serialized record is printed; "{}" is printed when
the open succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root.logger.Debug("probing", "path", args[0])

			f, err := os.Open(args[0])
			if err == nil {
				_ = f.Close()
				return writeJSON(cmd.OutOrStdout(), struct{}{})
			}

			rec := squid.Create(squid.Settings{}, err).Record()
			if !withStack {
				rec.Stack = ""
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().BoolVar(&withStack, "stack", false, "Include the captured stack")
	return cmd
}
