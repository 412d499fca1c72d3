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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExplain(t *testing.T) {
	out, err := run(t, "explain", "billing/not-found", "ENOENT")
	require.NoError(t, err)

	want := strings.Join([]string{
		`code="BILLING.NOT_FOUND"`,
		`http: source=leaf pattern="NOT_FOUND" -> 404`,
		`grpc: source=leaf pattern="NOT_FOUND" -> NotFound(5)`,
		"---",
		`code="ENOENT"`,
		"http: source=default -> 404",
		"grpc: source=default -> NotFound(5)",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestExplain_Rules(t *testing.T) {
	out, err := run(t, "explain", "--http-prefix", "BILLING=402", "--http-override", "BILLING.REFUND=409", "BILLING.CARD_DECLINED", "BILLING.REFUND")
	require.NoError(t, err)
	assert.Contains(t, out, `http: source=prefix pattern="BILLING" -> 402`)
	assert.Contains(t, out, "http: source=override -> 409")
}

func TestExplain_BadInput(t *testing.T) {
	for _, args := range [][]string{
		{"explain"},
		{"explain", "--http-prefix", "BILLING", "X"},
		{"explain", "--http-prefix", "BILLING=abc", "X"},
		{"explain", "--http-prefix", "BILLING=42", "X"},
		{"explain", "--http-prefix", "bad..prefix=400", "X"},
	} {
		_, err := run(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestProbe_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	out, err := run(t, "probe", missing)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "ENOENT", rec["code"])
	assert.Equal(t, missing, rec["path"])
	assert.Equal(t, "open", rec["syscall"])
	assert.Equal(t, "SquidError", rec["name"])
	assert.NotContains(t, rec, "stack")
}

func TestProbe_WithStack(t *testing.T) {
	out, err := run(t, "probe", "--stack", filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	stack, _ := rec["stack"].(string)
	assert.True(t, strings.HasPrefix(stack, "SquidError: open "), stack)
	assert.Contains(t, stack, "Caused by: open ")
}

func TestProbe_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	out, err := run(t, "probe", path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestVerboseLogsToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"-v", "explain", "INVALID"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "mapper built")
	assert.NotContains(t, out.String(), "mapper built")
}
