package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/josephlewis42/crsh/core/logger"
	"github.com/josephlewis42/crsh/core/vos"
)

const (
	// DefaultPrompt is shown before each line is read.
	DefaultPrompt = "crsh> "

	// DefaultCapacity is the default size of every bounded buffer.
	DefaultCapacity = 128

	// DefaultMaxSourceDepth is the default number of nested scripts.
	DefaultMaxSourceDepth = 64

	// EnvPath holds the colon separated directories searched for programs.
	EnvPath = "PATH"
	// EnvHome is the directory cd changes to when given no argument.
	EnvHome = "HOME"

	// ArgDelim separates the tokens of a command line.
	ArgDelim = ' '
)

// Options configure an Interpreter.
type Options struct {
	// Prompt is shown before each line is read.
	Prompt string
	// LineCapacity is the longest line that will be run, extra bytes are
	// dropped.
	LineCapacity int
	// ArgCapacity is the maximum number of tokens in a command.
	ArgCapacity int
	// PathCapacity is the maximum number of search path directories.
	PathCapacity int
	// ReadChunkSize is the size of reads from sourced scripts.
	ReadChunkSize int
	// MaxSourceDepth limits how many scripts can be open at once, zero
	// means no limit.
	MaxSourceDepth int
	// SearchPathEnv names the variable holding the search path.
	SearchPathEnv string
	// HomeEnv names the variable holding the home directory.
	HomeEnv string
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		Prompt:         DefaultPrompt,
		LineCapacity:   DefaultCapacity,
		ArgCapacity:    DefaultCapacity,
		PathCapacity:   DefaultCapacity,
		ReadChunkSize:  DefaultCapacity,
		MaxSourceDepth: DefaultMaxSourceDepth,
		SearchPathEnv:  EnvPath,
		HomeEnv:        EnvHome,
	}
}

// EventRecorder stores interpreter events.
type EventRecorder interface {
	Record(eventType logger.EventType, fields logger.Fields) error
}

// Interpreter holds the state of a single shell session.
type Interpreter struct {
	VirtualOS vos.VOS

	opts       Options
	args       *ArgArray
	path       *SearchPath
	sources    []*sourceFrame
	draining   bool
	events     EventRecorder
	lastStatus int
	quit       bool
}

// New creates an interpreter and builds its search path from the
// environment of virtualOS.
func New(virtualOS vos.VOS, opts Options, events EventRecorder) *Interpreter {
	if events == nil {
		events = logger.NewNopLogger().Sessionless()
	}
	if opts.ReadChunkSize <= 0 {
		opts.ReadChunkSize = DefaultCapacity
	}

	s := &Interpreter{
		VirtualOS: virtualOS,
		opts:      opts,
		args:      NewArgArray(opts.ArgCapacity),
		events:    events,
	}

	if source, ok := virtualOS.LookupEnv(opts.SearchPathEnv); ok {
		s.path = ParseSearchPath(source, opts.PathCapacity)
		if s.path.Truncated() {
			s.record(logger.EventInputTruncated, logger.Fields{
				"input":    "search_path",
				"capacity": opts.PathCapacity,
			})
		}
	} else {
		s.path = EmptySearchPath()
	}

	return s
}

// SearchPath returns the directories searched for programs.
func (s *Interpreter) SearchPath() *SearchPath {
	return s.path
}

// LastStatus returns the exit status of the last command.
func (s *Interpreter) LastStatus() int {
	return s.lastStatus
}

// Exited is set once the exit builtin has run.
func (s *Interpreter) Exited() bool {
	return s.quit
}

func (s *Interpreter) record(eventType logger.EventType, fields logger.Fields) {
	// Recording errors are ignored.
	_ = s.events.Record(eventType, fields)
}

// RunLine runs a single command line.
func (s *Interpreter) RunLine(line string) {
	if s.quit || line == "" {
		return
	}

	if s.opts.LineCapacity > 0 && len(line) > s.opts.LineCapacity {
		line = line[:s.opts.LineCapacity]
		s.record(logger.EventInputTruncated, logger.Fields{
			"input":    "line",
			"capacity": s.opts.LineCapacity,
		})
	}

	if s.args.Fill(line, ArgDelim) {
		s.record(logger.EventInputTruncated, logger.Fields{
			"input":    "args",
			"capacity": s.opts.ArgCapacity,
		})
	}
	if s.args.Len() == 0 {
		return
	}

	if !s.runBuiltin(s.args.Args()) {
		s.path.ResolveArgs(s.VirtualOS, s.args)
		s.execute(s.args.Args())
	}

	s.args.Clear()
}

// Exit releases the interpreter's resources and stops it from running
// further lines.
func (s *Interpreter) Exit() {
	s.args.Clear()
	s.args = nil
	s.path.Release()
	s.closeSources()
	s.quit = true
}

// Run reads and runs lines until the input ends or exit is run.
func (s *Interpreter) Run(r LineReader) int {
	s.record(logger.EventSessionStart, logger.Fields{
		"search_path": s.path.Dirs(),
		"wd":          s.VirtualOS.Getwd(),
	})

	for !s.quit {
		line, err := r.ReadLine(s.opts.Prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(s.VirtualOS.Stderr(), err)
			}
			fmt.Fprintln(s.VirtualOS.Stdout())
			break
		}

		s.RunLine(line)
	}

	s.Close()
	s.record(logger.EventSessionEnd, logger.Fields{"exited": s.quit})
	return 0
}

// Close releases the search path and any open scripts.
func (s *Interpreter) Close() error {
	s.path.Release()
	s.closeSources()
	return nil
}
