package config

import (
	"bytes"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	cfg, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, tempDir, cfg.Dir())

	// Check that the config is valid
	loaded, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, cfg.ShellOptions(), loaded.ShellOptions())

	t.Run("load file path", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
	})

	t.Run("HistoryPath", func(t *testing.T) {
		assert.Equal(t, filepath.Join(tempDir, "history"), cfg.HistoryPath())
	})

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := cfg.OpenAppLog()
		require.Nil(t, err)
		_, err = fd.WriteString("first\n")
		assert.Nil(t, err)
		fd.Close()

		fd, err = cfg.OpenAppLog()
		require.Nil(t, err)
		_, err = fd.WriteString("second\n")
		assert.Nil(t, err)
		fd.Close()

		contents, err := ioutil.ReadFile(filepath.Join(tempDir, AppLogName))
		assert.Nil(t, err)
		assert.Equal(t, "first\nsecond\n", string(contents))
	})

	t.Run("ReadAppLog", func(t *testing.T) {
		fd, err := cfg.ReadAppLog()
		require.Nil(t, err)
		defer fd.Close()

		contents, err := afero.ReadAll(fd)
		assert.Nil(t, err)
		assert.Equal(t, "first\nsecond\n", string(contents))
	})
}

func TestInitialize_existing(t *testing.T) {
	tempDir := t.TempDir()
	custom := []byte("prompt: \"$ \"\nlimits:\n  line_capacity: 16\n")
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ConfigurationName), custom, 0600))

	var logs bytes.Buffer
	cfg, err := Initialize(tempDir, log.New(&logs, "", 0))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "already exists")
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, 16, cfg.Limits.LineCapacity)
	// Unset values keep their defaults.
	assert.Equal(t, 128, cfg.Limits.ArgCapacity)
	assert.Equal(t, "PATH", cfg.Env.SearchPath)

	contents, err := os.ReadFile(filepath.Join(tempDir, ConfigurationName))
	require.NoError(t, err)
	assert.Equal(t, custom, contents)
}

func TestLoad_errors(t *testing.T) {
	cases := map[string]string{
		"unknown field": "not_a_field: true\n",
		"invalid value": "line_editor: vi\n",
		"bad type":      "limits: 12\n",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte(contents), 0600))

			_, err := loadFs(fs, "/config")
			assert.Error(t, err)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
