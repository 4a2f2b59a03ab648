package vos

import (
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"
)

// relativeFs resolves every name against the sandbox working directory
// before handing it to the base filesystem. Errors come back naming the
// path the caller asked for rather than the resolved one.
type relativeFs struct {
	base  VFS
	getwd func() string
}

var _ afero.Lstater = (*relativeFs)(nil)
var _ afero.LinkReader = (*relativeFs)(nil)

// NewRelativeFs resolves relative paths on base against the working
// directory reported by Getwd.
func NewRelativeFs(base VFS, Getwd func() (dir string)) VFS {
	return &relativeFs{base: base, getwd: Getwd}
}

func (r *relativeFs) abs(name string) string {
	return absPath(r.getwd(), name)
}

// asTyped relabels a *fs.PathError so it names the path the caller used.
// Wrapped errors are left alone.
func asTyped(err error, name string) error {
	if pathErr, ok := err.(*fs.PathError); ok && pathErr.Path != name {
		return &fs.PathError{Op: pathErr.Op, Path: name, Err: pathErr.Err}
	}
	return err
}

func (r *relativeFs) Name() string {
	return "RelativeFs"
}

func (r *relativeFs) Create(name string) (afero.File, error) {
	f, err := r.base.Create(r.abs(name))
	return f, asTyped(err, name)
}

func (r *relativeFs) Mkdir(name string, perm os.FileMode) error {
	return asTyped(r.base.Mkdir(r.abs(name), perm), name)
}

func (r *relativeFs) MkdirAll(name string, perm os.FileMode) error {
	return asTyped(r.base.MkdirAll(r.abs(name), perm), name)
}

func (r *relativeFs) Open(name string) (afero.File, error) {
	f, err := r.base.Open(r.abs(name))
	return f, asTyped(err, name)
}

func (r *relativeFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := r.base.OpenFile(r.abs(name), flag, perm)
	return f, asTyped(err, name)
}

func (r *relativeFs) Remove(name string) error {
	return asTyped(r.base.Remove(r.abs(name)), name)
}

func (r *relativeFs) RemoveAll(name string) error {
	return asTyped(r.base.RemoveAll(r.abs(name)), name)
}

func (r *relativeFs) Rename(oldname, newname string) error {
	return asTyped(r.base.Rename(r.abs(oldname), r.abs(newname)), oldname)
}

func (r *relativeFs) Stat(name string) (os.FileInfo, error) {
	fi, err := r.base.Stat(r.abs(name))
	return fi, asTyped(err, name)
}

func (r *relativeFs) Chmod(name string, mode os.FileMode) error {
	return asTyped(r.base.Chmod(r.abs(name), mode), name)
}

func (r *relativeFs) Chown(name string, uid, gid int) error {
	return asTyped(r.base.Chown(r.abs(name), uid, gid), name)
}

func (r *relativeFs) Chtimes(name string, atime, mtime time.Time) error {
	return asTyped(r.base.Chtimes(r.abs(name), atime, mtime), name)
}

func (r *relativeFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if lstater, ok := r.base.(afero.Lstater); ok {
		fi, lstatCalled, err := lstater.LstatIfPossible(r.abs(name))
		return fi, lstatCalled, asTyped(err, name)
	}
	fi, err := r.Stat(name)
	return fi, false, err
}

func (r *relativeFs) ReadlinkIfPossible(name string) (string, error) {
	if reader, ok := r.base.(afero.LinkReader); ok {
		target, err := reader.ReadlinkIfPossible(r.abs(name))
		return target, asTyped(err, name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}
