package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/indexgen/internal/testutil"
)

const testSchema = `
entities:
  - name: Account
    fields:
      - {name: id, type: "ID!"}
      - {name: balance, type: "BigInt!"}
`

const testProject = `
name: "demo"
schema: "schema.yaml"
contracts: [
	{name: "Greeter", ecosystem: "fuel", abi: "abis/greeter.json"},
	{name: "ERC20", ecosystem: "evm", abi: "abis/erc20.json", events: ["Transfer"]},
]
`

// writeTestProject lays out a project directory with a Fuel and an EVM
// contract and a user schema.
func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "indexgen.cue"), testProject)
	writeFile(t, filepath.Join(dir, "schema.yaml"), testSchema)
	writeFile(t, filepath.Join(dir, "abis", "greeter.json"), string(testutil.GreeterFuelABI()))
	writeFile(t, filepath.Join(dir, "abis", "erc20.json"), string(testutil.ERC20ABI()))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
