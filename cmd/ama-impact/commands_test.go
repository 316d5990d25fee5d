package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("AMA_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_FILE", filepath.Join(dir, "test.db"))
	t.Setenv("DEBUG", "false")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_PASSWORD", "supersecret")
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSubcommandsRegistered(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "migrate", "seed", "create-admin", "cleanup-notifications"} {
		assert.Contains(t, names, want)
	}
}

func TestSeedIsRepeatable(t *testing.T) {
	dir := testEnv(t)
	bundle := filepath.Join(dir, "fixtures.json")
	require.NoError(t, os.WriteFile(bundle, []byte(`{
		"contracts": [{"code": "ASSESS", "name": "Assessment"}],
		"departments": [{"contract_code": "ASSESS", "code": "ENG", "name": "Engineering"}]
	}`), 0o600))

	out, _, err := execute(t, "seed", "--file", bundle)
	require.NoError(t, err)
	assert.Contains(t, out, "created 1, updated 0")

	out, _, err = execute(t, "seed", "--file", bundle)
	require.NoError(t, err)
	assert.Contains(t, out, "created 0, updated 1")
}

func TestSeedReportsRowErrors(t *testing.T) {
	dir := testEnv(t)
	bundle := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bundle, []byte(`{"departments": [{"contract_code": "NOPE", "code": "X", "name": "X"}]}`), 0o600))

	_, stderr, err := execute(t, "seed", "--file", bundle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 row(s) failed")
	assert.Contains(t, stderr, "departments[0]")
}

func TestSeedNeedsFile(t *testing.T) {
	testEnv(t)
	_, _, err := execute(t, "seed")
	assert.Error(t, err)
}

func TestCreateAdminAndCleanup(t *testing.T) {
	testEnv(t)

	_, _, err := execute(t, "create-admin")
	require.NoError(t, err)
	_, _, err = execute(t, "create-admin")
	require.NoError(t, err)

	out, _, err := execute(t, "cleanup-notifications", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 0 notification(s)")
}
