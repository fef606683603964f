package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/ejsql/errs"
)

func TestRenderConfig_Validate(t *testing.T) {
	assert.NoError(t, RenderConfig{}.Validate())
	assert.NoError(t, RenderConfig{Filename: "x"}.Validate())
	assert.NoError(t, RenderConfig{Cache: true, Filename: "x"}.Validate())

	err := RenderConfig{Cache: true}.Validate()
	assert.ErrorIs(t, err, errs.ErrConfig)

	var ce *errs.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "filename", ce.Field)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{Dialect: "tidb", CacheSize: 10}.Validate())
	assert.ErrorIs(t, Config{Dialect: "sqlite"}.Validate(), errs.ErrConfig)
	assert.ErrorIs(t, Config{CacheSize: -1}.Validate(), errs.ErrConfig)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("dialect: mysql\ncache_size: 128\ndebug: true\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{Dialect: "mysql", CacheSize: 128, Debug: true}, cfg)

	cfg, err = LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	_, err = LoadConfig(strings.NewReader("dialect: postgres\ncache: true\n"))
	assert.ErrorContains(t, err, "cache")

	_, err = LoadConfig(strings.NewReader("dialect: oracle\n"))
	assert.ErrorIs(t, err, errs.ErrConfig)
}
