package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// DirErrorKind classifies a failed directory change.
type DirErrorKind int

const (
	DirOther DirErrorKind = iota
	DirNotFound
	DirNotADirectory
	DirSymlinkLoop
)

// DirectoryChangeError is reported when cd fails. The working directory is
// left unchanged.
type DirectoryChangeError struct {
	Path string
	Kind DirErrorKind
	Err  error
}

// NewDirectoryChangeError classifies the error returned by a Chdir of path.
func NewDirectoryChangeError(path string, err error) *DirectoryChangeError {
	return &DirectoryChangeError{Path: path, Kind: classifyDirError(err), Err: err}
}

func classifyDirError(err error) DirErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return DirNotFound
	case errors.Is(err, syscall.ENOTDIR):
		return DirNotADirectory
	case errors.Is(err, syscall.ELOOP):
		return DirSymlinkLoop
	default:
		return DirOther
	}
}

func (e *DirectoryChangeError) Error() string {
	switch e.Kind {
	case DirNotFound:
		return fmt.Sprintf("%s: no such directory", e.Path)
	case DirNotADirectory:
		return fmt.Sprintf("%s: not a directory", e.Path)
	case DirSymlinkLoop:
		return fmt.Sprintf("%s: symbolic loop encountered", e.Path)
	default:
		return fmt.Sprintf("%s: error encountered", e.Path)
	}
}

func (e *DirectoryChangeError) Unwrap() error {
	return e.Err
}

// FileErrorKind classifies a script that couldn't be sourced.
type FileErrorKind int

const (
	FileReadError FileErrorKind = iota
	FileAccessDenied
	FileNotFound
	FileIsDirectory
	FileDepthExceeded
)

// FileAccessError is reported when a script can't be opened.
type FileAccessError struct {
	Path string
	Kind FileErrorKind
	Err  error
}

// NewFileAccessError classifies the error returned when opening path.
func NewFileAccessError(path string, err error) *FileAccessError {
	return &FileAccessError{Path: path, Kind: classifyFileError(err), Err: err}
}

func classifyFileError(err error) FileErrorKind {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return FileAccessDenied
	// EEXIST is reported as a missing file too.
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrExist):
		return FileNotFound
	case errors.Is(err, syscall.EISDIR):
		return FileIsDirectory
	default:
		return FileReadError
	}
}

func (e *FileAccessError) Error() string {
	switch e.Kind {
	case FileAccessDenied:
		return fmt.Sprintf("%s: read access denied.", e.Path)
	case FileNotFound:
		return fmt.Sprintf("%s: no such file.", e.Path)
	case FileIsDirectory:
		return fmt.Sprintf("%s: is a directory.", e.Path)
	case FileDepthExceeded:
		return fmt.Sprintf("%s: source depth exceeded.", e.Path)
	default:
		return fmt.Sprintf("%s: read access error.", e.Path)
	}
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ErrSourceDepth is wrapped by FileAccessErrors of kind FileDepthExceeded.
var ErrSourceDepth = errors.New("source depth exceeded")

// ExecutionError is reported when a program image can't be loaded.
type ExecutionError struct {
	Name string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: no such command", e.Name)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
