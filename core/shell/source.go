package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"

	"github.com/josephlewis42/crsh/core/logger"
	"github.com/spf13/afero"
)

// sourceFrame is an open script and the offset of its next line.
type sourceFrame struct {
	path   string
	file   afero.File
	offset int64
	buf    []byte
}

// next reads the line at the current offset. Lines longer than the buffer
// are split. ok is false once the file is exhausted.
func (f *sourceFrame) next() (line string, ok bool, err error) {
	n, err := f.file.ReadAt(f.buf, f.offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}

	chunk := f.buf[:n]
	consumed := n
	if end := bytes.IndexByte(chunk, '\n'); end >= 0 {
		chunk = chunk[:end]
		consumed = end + 1
	}
	f.offset += int64(consumed)

	return string(chunk), true, nil
}

func (s *Interpreter) openSource(path string) (*sourceFrame, error) {
	if s.opts.MaxSourceDepth > 0 && len(s.sources) >= s.opts.MaxSourceDepth {
		return nil, &FileAccessError{Path: path, Kind: FileDepthExceeded, Err: ErrSourceDepth}
	}
	if path == "" {
		return nil, NewFileAccessError(path, fs.ErrNotExist)
	}

	fd, err := s.VirtualOS.Open(path)
	if err != nil {
		return nil, NewFileAccessError(path, err)
	}

	stat, err := fd.Stat()
	switch {
	case err != nil:
		fd.Close()
		return nil, NewFileAccessError(path, err)
	case stat.IsDir():
		fd.Close()
		return nil, NewFileAccessError(path, syscall.EISDIR)
	}

	return &sourceFrame{
		path: path,
		file: fd,
		buf:  make([]byte, s.opts.ReadChunkSize),
	}, nil
}

// Source runs each line of the file at path through RunLine.
//
// Scripts sourced while another script is running are pushed onto a stack
// and run to completion before the outer script continues, so nesting
// doesn't grow the call stack.
func (s *Interpreter) Source(path string) int {
	frame, err := s.openSource(path)
	if err != nil {
		fmt.Fprintln(s.VirtualOS.Stdout(), err)
		s.record(logger.EventSourceFile, logger.Fields{
			"path":  path,
			"depth": len(s.sources),
			"error": err,
		})
		return 1
	}

	s.sources = append(s.sources, frame)
	s.record(logger.EventSourceFile, logger.Fields{
		"path":  path,
		"depth": len(s.sources),
	})

	if s.draining {
		return 0
	}

	s.draining = true
	defer func() { s.draining = false }()

	for len(s.sources) > 0 && !s.quit {
		top := s.sources[len(s.sources)-1]
		line, ok, err := top.next()
		if err != nil {
			fmt.Fprintln(s.VirtualOS.Stdout(), "error while reading file.")
		}
		if !ok {
			s.popSource()
			continue
		}

		s.args.Clear()
		s.RunLine(line)
	}

	return 0
}

func (s *Interpreter) popSource() {
	top := s.sources[len(s.sources)-1]
	top.file.Close()
	s.sources[len(s.sources)-1] = nil
	s.sources = s.sources[:len(s.sources)-1]
}

// closeSources closes every open script.
func (s *Interpreter) closeSources() {
	for len(s.sources) > 0 {
		s.popSource()
	}
}
