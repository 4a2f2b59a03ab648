package vos

import (
	"fmt"
	"io/fs"
	"syscall"
)

// SandboxOS is a VOS backed by a virtual filesystem whose programs are
// in-process ProcessFuncs. Nothing it does touches the host process state.
type SandboxOS struct {
	VEnv
	VIO
	VFS

	// base holds the absolute-path filesystem shared with all children.
	base     VFS
	resolver ProcessResolver
	dir      string
	args     []string
}

var _ VOS = (*SandboxOS)(nil)

// NewSandboxOS creates a sandbox rooted at "/" with an empty environment.
func NewSandboxOS(base VFS, resolver ProcessResolver, stdio VIO) *SandboxOS {
	if stdio == nil {
		stdio = NewNullIO()
	}
	return newSandboxProc(base, resolver, stdio, NewMapEnv(), "/", []string{"/bin/crsh"})
}

func newSandboxProc(base VFS, resolver ProcessResolver, stdio VIO, env VEnv, dir string, argv []string) *SandboxOS {
	out := &SandboxOS{
		VEnv:     env,
		VIO:      stdio,
		base:     base,
		resolver: resolver,
		dir:      dir,
		args:     argv,
	}
	out.VFS = NewRelativeFs(base, out.Getwd)
	return out
}

// Args implements VOS.Args.
func (s *SandboxOS) Args() []string {
	return s.args
}

// Getwd implements VOS.Getwd.
func (s *SandboxOS) Getwd() string {
	return s.dir
}

// Chdir implements VOS.Chdir.
func (s *SandboxOS) Chdir(dir string) error {
	if dir == "" {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	}

	resolved, err := Realpath(s.base, s.Getwd, dir)
	if err != nil {
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	}

	stat, err := s.base.Stat(resolved)
	switch {
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	case !stat.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	default:
		s.dir = resolved
		return nil
	}
}

// StartProcess implements VOS.StartProcess.
//
// The program must exist in the filesystem and be known to the resolver,
// otherwise the image can't be loaded.
func (s *SandboxOS) StartProcess(name string, argv []string, attr *ProcAttr) (Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	dir := s.dir
	if attr.Dir != "" {
		dir = absPath(s.dir, attr.Dir)
	}
	execPath := absPath(dir, name)

	stat, err := s.base.Stat(execPath)
	switch {
	case err != nil:
		return nil, &fs.PathError{Op: "fork/exec", Path: name, Err: err}
	case stat.IsDir():
		return nil, &fs.PathError{Op: "fork/exec", Path: name, Err: syscall.EACCES}
	}

	var proc ProcessFunc
	if s.resolver != nil {
		proc = s.resolver(execPath)
	}
	if proc == nil {
		return nil, &fs.PathError{Op: "fork/exec", Path: name, Err: syscall.ENOEXEC}
	}

	env := attr.Env
	if env == nil {
		env = s.Environ()
	}
	files := attr.Files
	if files == nil {
		files = s.VIO
	}

	child := newSandboxProc(s.base, s.resolver, files, NewMapEnvFromEnvList(env), dir, argv)
	return &sandboxProcess{vos: child, exec: proc}, nil
}

type sandboxProcess struct {
	vos  *SandboxOS
	exec ProcessFunc
}

func (p *sandboxProcess) Run() (status int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(p.vos.Stderr(), "%q: panic: %v\n", p.vos.args, r)
			status = 2
		}
	}()

	return p.exec(p.vos)
}
