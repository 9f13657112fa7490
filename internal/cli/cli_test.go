package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateEmbedded(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded is valid")
	assert.Contains(t, out, "templates:")
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
laws:
  central:
    - {id: a, title: A, preview: a, category: rights, type: law}
  MH:
    - {id: a, title: A again, preview: a, category: rights, type: law}
`), 0o600))

	_, err := run(t, "validate", path)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	out, err := run(t, "search", "RTI")
	require.NoError(t, err)
	assert.Contains(t, out, "rti-act-2005")
	assert.Contains(t, out, "result(s)")

	out, err = run(t, "search", "--kind", "cases", "--category", "labour")
	require.NoError(t, err)
	assert.Contains(t, out, "case-wage-claim-2023-7")
	assert.NotContains(t, out, "case-cc-2024-118")

	out, err = run(t, "search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results")
}

func TestSearchRejectsBadFlags(t *testing.T) {
	_, err := run(t, "search", "--category", "tax")
	assert.Error(t, err)

	_, err = run(t, "search", "--kind", "judges")
	assert.Error(t, err)

	_, err = run(t, "search", "--kind", "cases", "--type", "scheme")
	assert.Error(t, err)
}
