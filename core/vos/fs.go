package vos

import (
	"errors"
	"io/fs"
	"path"

	"github.com/josephlewis42/crsh/third_party/realpath"
	"github.com/spf13/afero"
)

// VFS implements a virtual filesystem.
type VFS = afero.Fs

// NewMemFs creates an empty in-memory filesystem with a root directory.
func NewMemFs() VFS {
	memFs := afero.NewMemMapFs()
	// MemMapFs always succeeds creating the root.
	_ = memFs.MkdirAll("/", 0755)
	return memFs
}

func absPath(wd, name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Join(wd, name)
}

// Realpath resolves name against the working directory, following symlinks
// on filesystems that support them.
func Realpath(base VFS, Getwd func() (dir string), name string) (string, error) {
	return realpath.Realpath(&realpathOs{Getwd, base}, name)
}

type realpathOs struct {
	getwd func() (dir string)
	base  VFS
}

var _ realpath.OS = (*realpathOs)(nil)

func (r *realpathOs) Getwd() string {
	return r.getwd()
}

func (r *realpathOs) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := r.base.(afero.Lstater); ok {
		stat, _, err := lstater.LstatIfPossible(name)
		return stat, err
	}
	return r.base.Stat(name)
}

func (r *realpathOs) Readlink(name string) (string, error) {
	if reader, ok := r.base.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	return "", errors.New("not a link")
}
