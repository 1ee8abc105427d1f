package config

import (
	"os"
	"path/filepath"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	u.SetupLogging("warn")
	u.SetColorOutput()
}

func TestParse(t *testing.T) {
	var configData = `
# settings for a batch of conversions
epsilon     = "eps"
log_level   = debug
trace       = false
parallel    = true
format      = grid
compression = 1
`
	c, err := Parse(configData)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Epsilon:     "eps",
		LogLevel:    "debug",
		Trace:       false,
		Parallel:    true,
		Format:      FormatGrid,
		Compression: 1,
	}, c)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse(`parallel = true`)
	require.NoError(t, err)
	expected := Default()
	expected.Parallel = true
	assert.Equal(t, expected, c)
}

func TestParse_ExpandEnv(t *testing.T) {
	t.Setenv("NFA2DFA_TEST_FORMAT", "json")
	c, err := Parse(`format = "$NFA2DFA_TEST_FORMAT"`)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, c.Format)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		caption string
		conf    string
	}{
		{
			caption: "an unknown format",
			conf:    `format = html`,
		},
		{
			caption: "a compression level out of range",
			conf:    `compression = 3`,
		},
		{
			caption: "an empty epsilon",
			conf:    `epsilon = ""`,
		},
		{
			caption: "a broken document",
			conf:    `format = [`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Parse(tt.conf)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfa2dfa.conf")
	require.NoError(t, os.WriteFile(path, []byte("format = grid\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatGrid, c.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.conf"))
	assert.Error(t, err)
}
