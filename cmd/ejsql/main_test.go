package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestRun_RendersTemplates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	scalar := writeTemp(t, dir, "scalar.sql", "SELECT * FROM users where user_id = <%= test %>;")
	list := writeTemp(t, dir, "list.sql", "SELECT * FROM users where user_id IN <%~ ids %>;")
	data := writeTemp(t, dir, "data.yaml", "test: motojouya\nids: [motojouya, nick]\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--template", scalar, "-t", list, "--data", data, "--cache"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT * FROM users where user_id = 'motojouya';\n"+
			"SELECT * FROM users where user_id IN ('motojouya', 'nick');\n",
		stdout.String())
}

func TestRun_JSONDataAndConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tpl := writeTemp(t, dir, "q.sql", "SELECT <%= name %>")
	data := writeTemp(t, dir, "data.json", `{"name": "it\\'s"}`)
	cfg := writeTemp(t, dir, "ejsql.yaml", "dialect: mysql\ncache_size: 4\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{tpl, "--data", data, "--config", cfg}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, `SELECT 'it\\''s'`+"\n", stdout.String())
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tpl := writeTemp(t, dir, "q.sql", "SELECT <%= missing %>")
	var stdout, stderr bytes.Buffer

	assert.ErrorContains(t, run(nil, &stdout, &stderr), "no template given")
	assert.ErrorContains(t, run([]string{tpl}, &stdout, &stderr), `missing field "missing"`)
	assert.ErrorContains(t, run([]string{tpl, "--debug"}, &stdout, &stderr), "<%= missing %>")
	assert.ErrorContains(t, run([]string{tpl, "--dialect", "oracle"}, &stdout, &stderr), "unknown dialect")
	assert.ErrorContains(t, run([]string{tpl, "--log-level", "loud"}, &stdout, &stderr), "invalid log level")
	assert.Empty(t, stdout.String())
}
