package jetschema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beckay96/jetschema-sub001/schema"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunJSONModel(t *testing.T) {
	file := writeTempFile(t, "schema.sql", "CREATE TABLE users (id INT PRIMARY KEY, email TEXT NOT NULL);")

	var out bytes.Buffer
	require.NoError(t, Run(&Options{InputFile: file}, &out))

	var tables []schema.Table
	require.NoError(t, json.Unmarshal(out.Bytes(), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "users", tables[0].Name)
	require.Len(t, tables[0].Fields, 2)
	assert.Equal(t, "INTEGER", tables[0].Fields[0].Type)
	assert.True(t, tables[0].Fields[0].PrimaryKey)
}

func TestRunExport(t *testing.T) {
	file := writeTempFile(t, "schema.sql", "CREATE TABLE users (id INT PRIMARY KEY);")

	var out bytes.Buffer
	require.NoError(t, Run(&Options{InputFile: file, Export: true}, &out))
	assert.Contains(t, out.String(), "CREATE TABLE users (")
	assert.Contains(t, out.String(), "id INTEGER PRIMARY KEY")
}

func TestRunExportNothingRecognized(t *testing.T) {
	file := writeTempFile(t, "schema.sql", "hello world")

	var out bytes.Buffer
	require.NoError(t, Run(&Options{InputFile: file, Export: true}, &out))
	assert.Contains(t, out.String(), "-- No table exists --")
}

func TestRunInputCeiling(t *testing.T) {
	file := writeTempFile(t, "schema.sql", "CREATE TABLE users (id INT);")

	err := Run(&Options{InputFile: file, Config: ImportConfig{MaxInputBytes: 8}}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ceiling")
}

func TestRunSkipTables(t *testing.T) {
	file := writeTempFile(t, "schema.sql", "CREATE TABLE users (id INT); CREATE TABLE sessions (id INT);")

	var out bytes.Buffer
	options := &Options{InputFile: file, Export: true, Config: ImportConfig{SkipTables: []string{"sessions"}}}
	require.NoError(t, Run(options, &out))
	assert.Contains(t, out.String(), "CREATE TABLE users")
	assert.NotContains(t, out.String(), "sessions")
}

func TestParseImportConfig(t *testing.T) {
	path := writeTempFile(t, "config.yml", `
target_tables:
  - users
  - posts
skip_tables:
  - sessions
max_input_bytes: 2048
`)
	config, err := ParseImportConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "posts"}, config.TargetTables)
	assert.Equal(t, []string{"sessions"}, config.SkipTables)
	assert.Equal(t, 2048, config.MaxInputBytes)
}

func TestParseImportConfigDefaults(t *testing.T) {
	config, err := ParseImportConfig("")
	require.NoError(t, err)
	assert.Empty(t, config.TargetTables)
	assert.Greater(t, config.MaxInputBytes, 0)
}

func TestParseImportConfigRejectsUnknownKeys(t *testing.T) {
	path := writeTempFile(t, "config.yml", "no_such_option: true\n")
	_, err := ParseImportConfig(path)
	assert.Error(t, err)
}
