package realpath

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeInfo struct {
	name string
	mode fs.FileMode
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() interface{}   { return nil }

// fakeOS is a filesystem where entries are either directories, files or
// symlinks to the given target.
type fakeOS struct {
	wd    string
	dirs  map[string]bool
	files map[string]bool
	links map[string]string
}

func (f *fakeOS) Getwd() string {
	return f.wd
}

func (f *fakeOS) Lstat(name string) (os.FileInfo, error) {
	switch {
	case f.dirs[name]:
		return fakeInfo{name, fs.ModeDir}, nil
	case f.files[name]:
		return fakeInfo{name, 0}, nil
	case f.links[name] != "":
		return fakeInfo{name, fs.ModeSymlink}, nil
	}
	return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
}

func (f *fakeOS) Readlink(name string) (string, error) {
	if target, ok := f.links[name]; ok {
		return target, nil
	}
	return "", errors.New("not a link")
}

func newFakeOS() *fakeOS {
	return &fakeOS{
		wd: "/home/user",
		dirs: map[string]bool{
			"/home":      true,
			"/home/user": true,
			"/tmp":       true,
		},
		files: map[string]bool{
			"/home/user/file": true,
		},
		links: map[string]string{
			"/home/user/tmp":   "/tmp",
			"/home/user/up":    "..",
			"/home/user/loop":  "loop2",
			"/home/user/loop2": "loop",
		},
	}
}

func TestRealpath(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    string
		wantErr error
	}{
		"empty is wd":        {in: "", want: "/home/user"},
		"dot":                {in: ".", want: "/home/user"},
		"root":               {in: "/", want: "/"},
		"relative":           {in: "file", want: "/home/user/file"},
		"parent":             {in: "..", want: "/home"},
		"parent of root":     {in: "/..", want: "/"},
		"extra slashes":      {in: "//home///user//", want: "/home/user"},
		"absolute link":      {in: "tmp", want: "/tmp"},
		"relative link":      {in: "up/user/tmp", want: "/tmp"},
		"missing":            {in: "/missing", wantErr: fs.ErrNotExist},
		"loop":               {in: "loop", wantErr: syscall.ELOOP},
		"file as directory":  {in: "file/child", wantErr: syscall.ENOTDIR},
		"missing under link": {in: "tmp/missing", wantErr: fs.ErrNotExist},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := Realpath(newFakeOS(), tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
