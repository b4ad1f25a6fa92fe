package cli

import (
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/indexgen/internal/testutil"
)

func TestValidate_ValidProject(t *testing.T) {
	dir := writeTestProject(t)

	stdout, _, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "demo is valid (2 contract(s))")
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	dir := writeTestProject(t)
	writeFile(t, filepath.Join(dir, "abis", "greeter.json"), `{"types": [{"typeId": 0, "type": "struct Foo", "components": [{"name": "x", "type": 9}]}]}`)
	writeFile(t, filepath.Join(dir, "abis", "erc20.json"), string(testutil.EVMABI(
		testutil.EVMEvent("Transfer", testutil.EVMParam{Name: "path", Type: "tuple[]"}),
	)))

	stdout, _, err := execute(t, "--format", "json", "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string            `json:"code"`
			Details []ValidationIssue `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "Greeter", resp.Error.Details[0].Contract)
	assert.Equal(t, "E213", resp.Error.Details[0].Code)
	assert.Equal(t, "ERC20", resp.Error.Details[1].Contract)
	assert.Equal(t, "E201", resp.Error.Details[1].Code)
}

func TestValidate_SchemaIssue(t *testing.T) {
	dir := writeTestProject(t)
	// Collides with the entity imported for the ERC20 Transfer event.
	writeFile(t, filepath.Join(dir, "schema.yaml"), `
entities:
  - name: ERC20_Transfer
    fields:
      - {name: id, type: "ID!"}
`)

	stdout, _, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, stdout, "E401")
}

func TestValidate_BadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "indexgen.cue"), `name: "x", contracts: [{name: "A", ecosystem: "solana", abi: "a.json"}]`)

	stdout, _, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeConfig)
}
