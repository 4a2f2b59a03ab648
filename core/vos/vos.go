package vos

// ProcessFunc is an in-process program that can be run by a sandbox.
type ProcessFunc func(VOS) int

// ProcessResolver looks up an in-process program by its absolute path, it
// returns nil if no program was found.
type ProcessResolver func(path string) ProcessFunc

// Process is a started program.
type Process interface {
	// Run waits for the program to terminate and returns its exit status.
	Run() int
}

// ProcAttr holds the attributes that will be applied to a new process.
type ProcAttr struct {
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-nil, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string
	// Files specifies the open files inherited by the new process.
	Files VIO
}

// VOS provides a virtual OS interface.
//
// The interpreter only talks to the operating system through a VOS so it can
// be run against the host or against a sandbox with no process-level side
// effects.
type VOS interface {
	VEnv
	VIO
	VFS

	// Args holds the command line arguments, including the program name as
	// Args()[0].
	Args() []string

	// Getwd returns the absolute path of the current working directory.
	Getwd() string

	// Chdir changes the current working directory.
	Chdir(dir string) error

	// StartProcess starts a new program with the given arguments. The error
	// is non-nil if the program image could not be loaded.
	StartProcess(name string, argv []string, attr *ProcAttr) (Process, error)
}
