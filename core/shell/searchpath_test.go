package shell

import (
	"testing"

	"github.com/josephlewis42/crsh/core/vos"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := vos.NewMemFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, nil, 0755))
	}
	return fs
}

func TestParseSearchPath(t *testing.T) {
	path := ParseSearchPath("/usr/local/bin:/usr/bin::/bin", 8)
	assert.Equal(t, []string{"/usr/local/bin", "/usr/bin", "", "/bin"}, path.Dirs())
	assert.Equal(t, 4, path.Len())
	assert.False(t, path.Truncated())

	truncated := ParseSearchPath("/a:/b:/c", 2)
	assert.Equal(t, []string{"/a", "/b"}, truncated.Dirs())
	assert.True(t, truncated.Truncated())

	empty := EmptySearchPath()
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Dirs())
}

func TestSearchPath_Resolve(t *testing.T) {
	fs := newSearchFs(t, "/bin/true", "/usr/bin/true", "/usr/bin/ls", "/rootcmd")
	require.NoError(t, fs.MkdirAll("/bin/somedir", 0755))

	cases := map[string]struct {
		source string
		name   string
		want   string
		found  bool
	}{
		"first match wins":      {source: "/bin:/usr/bin", name: "true", want: "/bin/true", found: true},
		"table order":           {source: "/usr/bin:/bin", name: "true", want: "/usr/bin/true", found: true},
		"later directory":       {source: "/bin:/usr/bin", name: "ls", want: "/usr/bin/ls", found: true},
		"missing":               {source: "/bin:/usr/bin", name: "nope", found: false},
		"empty entry is root":   {source: ":/bin", name: "rootcmd", want: "/rootcmd", found: true},
		"directories can open":  {source: "/bin", name: "somedir", want: "/bin/somedir", found: true},
		"missing directory":     {source: "/nonexistent:/bin", name: "true", want: "/bin/true", found: true},
		"no directories at all": {source: "", name: "true", found: false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, found := ParseSearchPath(tc.source, 8).Resolve(fs, tc.name)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("empty table", func(t *testing.T) {
		_, found := EmptySearchPath().Resolve(fs, "true")
		assert.False(t, found)
	})
}

func TestSearchPath_ResolveArgs(t *testing.T) {
	fs := newSearchFs(t, "/bin/true")
	path := ParseSearchPath("/bin", 8)

	args := NewArgArray(4)
	args.Fill("true -x", ' ')
	assert.True(t, path.ResolveArgs(fs, args))
	assert.Equal(t, []string{"/bin/true", "-x"}, args.Args())

	args.Fill("./true", ' ')
	assert.False(t, path.ResolveArgs(fs, args), "names with a slash are never searched")
	assert.Equal(t, []string{"./true"}, args.Args())

	args.Fill("missing", ' ')
	assert.False(t, path.ResolveArgs(fs, args))
	assert.Equal(t, []string{"missing"}, args.Args())
}

func TestSearchPath_Release(t *testing.T) {
	fs := newSearchFs(t, "/bin/true")
	path := ParseSearchPath("/bin", 8)

	path.Release()
	path.Release()

	assert.Equal(t, 0, path.Len())
	_, found := path.Resolve(fs, "true")
	assert.False(t, found)
}
