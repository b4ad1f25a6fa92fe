package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_WritesArtifacts(t *testing.T) {
	dir := writeTestProject(t)

	stdout, _, err := execute(t, "generate", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated")
	assert.Contains(t, stdout, "Greeter.res")

	for _, name := range []string{"Greeter.res", "Greeter.ts", "GreeterDefaults.js", "ERC20.res", "Entities.res", "Entities.ts"} {
		_, err := os.Stat(filepath.Join(dir, "generated", name))
		assert.NoError(t, err, "missing %s", name)
	}
}

func TestGenerate_CacheHit(t *testing.T) {
	dir := writeTestProject(t)
	cache := filepath.Join(t.TempDir(), "cache.db")

	stdout, _, err := execute(t, "--format", "json", "generate", "--cache", cache, dir)
	require.NoError(t, err)

	var first struct {
		Status string         `json:"status"`
		Data   GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &first))
	assert.Equal(t, "ok", first.Status)
	assert.False(t, first.Data.Cached)

	// Remove output so the restore is observable
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "generated")))

	stdout, _, err = execute(t, "--format", "json", "generate", "--cache", cache, dir)
	require.NoError(t, err)

	var second struct {
		Data GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &second))
	assert.True(t, second.Data.Cached)
	assert.Equal(t, first.Data.InputHash, second.Data.InputHash)
	assert.Equal(t, first.Data.Files, second.Data.Files)

	_, err = os.Stat(filepath.Join(dir, "generated", "Greeter.res"))
	assert.NoError(t, err)

	stdout, _, err = execute(t, "--format", "json", "generate", "--cache", cache, "--force", dir)
	require.NoError(t, err)
	var forced struct {
		Data GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &forced))
	assert.False(t, forced.Data.Cached)
}

func TestGenerate_MissingABI(t *testing.T) {
	dir := writeTestProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "abis", "erc20.json")))

	stdout, _, err := execute(t, "generate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeReadFailed)
	assert.Contains(t, stdout, "contract ERC20")
}

func TestGenerate_LoweringFailure(t *testing.T) {
	dir := writeTestProject(t)
	writeFile(t, filepath.Join(dir, "abis", "greeter.json"), `{"types": [{"typeId": 0, "type": "struct Foo", "components": null}]}`)

	stdout, _, err := execute(t, "--format", "json", "generate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E211", resp.Error.Code)
}
