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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/squid/code"
	"dirpx.dev/squid/mapper"
)

func newExplainCmd(root *rootOptions) *cobra.Command {
	var httpPrefixes, httpOverrides []string

	cmd := &cobra.Command{
		Use:   "explain CODE...",
		Short: "Show which mapping rule resolves each code",
		Long: `Prints, for every code, the HTTP and gRPC statuses a squid mapper resolves
and the rule tier that produced them.

Extra rules can be given as PREFIX=STATUS pairs:

  squid explain --http-prefix BILLING=402 BILLING.CARD_DECLINED`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []mapper.Option
			for _, kv := range httpPrefixes {
				k, status, err := splitRule(kv)
				if err != nil {
					return err
				}
				opts = append(opts, mapper.WithHTTPPrefix(k, status))
			}
			for _, kv := range httpOverrides {
				k, status, err := splitRule(kv)
				if err != nil {
					return err
				}
				opts = append(opts, mapper.WithHTTPOverride(code.Code(k), status))
			}

			m, err := mapper.New(opts...)
			if err != nil {
				return err
			}
			root.logger.Debug("mapper built", "rules", len(opts))

			for i, arg := range args {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "---")
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.Explain(code.Code(arg)))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&httpPrefixes, "http-prefix", nil, "Add an HTTP prefix rule PREFIX=STATUS")
	cmd.Flags().StringArrayVar(&httpOverrides, "http-override", nil, "Add an HTTP override CODE=STATUS")
	return cmd
}

func splitRule(kv string) (string, int, error) {
	k, v, ok := strings.Cut(kv, "=")
	if !ok || k == "" {
		return "", 0, fmt.Errorf("rule %q: want KEY=STATUS", kv)
	}
	status, err := strconv.Atoi(v)
	if err != nil || status < 100 || status > 599 {
		return "", 0, fmt.Errorf("rule %q: status must be an HTTP status code", kv)
	}
	return k, status, nil
}
