package shell

import (
	"fmt"
	"io"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/crsh/core/vos"
)

// LineReader produces input lines for the interpreter.
type LineReader interface {
	// ReadLine shows the prompt and returns the next line without its
	// terminator. It returns io.EOF once the input is exhausted.
	ReadLine(prompt string) (string, error)
}

// ByteLineReader reads a line one byte at a time into a bounded buffer.
//
// Bytes beyond the capacity are dropped and a partial line at the end of
// the input is discarded.
type ByteLineReader struct {
	r        io.ByteReader
	w        io.Writer
	capacity int
	buf      []byte
}

var _ LineReader = (*ByteLineReader)(nil)

// NewByteLineReader reads from r and writes prompts to w.
func NewByteLineReader(r io.Reader, w io.Writer, capacity int) *ByteLineReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &unbufferedByteReader{r: r}
	}
	return &ByteLineReader{
		r:        br,
		w:        w,
		capacity: capacity,
		buf:      make([]byte, 0, capacity),
	}
}

// ReadLine implements LineReader.ReadLine.
func (b *ByteLineReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(b.w, prompt)

	b.buf = b.buf[:0]
	for {
		c, err := b.r.ReadByte()
		if err != nil {
			return "", err
		}

		if c == '\n' {
			return string(b.buf), nil
		}

		if len(b.buf) < b.capacity {
			b.buf = append(b.buf, c)
		}
	}
}

// unbufferedByteReader never reads past the current byte so input meant for
// child processes isn't consumed.
type unbufferedByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (u *unbufferedByteReader) ReadByte() (byte, error) {
	for {
		n, err := u.r.Read(u.buf[:])
		if n == 1 {
			return u.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// ReadlineReader reads lines with an interactive line editor.
type ReadlineReader struct {
	Readline *readline.Instance
}

var _ LineReader = (*ReadlineReader)(nil)

// NewReadlineReader creates a line editor for a terminal connected to
// stdio. History is persisted to historyFile if it's non-empty.
func NewReadlineReader(stdio vos.VIO, historyFile string, width func() int) (*ReadlineReader, error) {
	cfg := &readline.Config{
		HistoryFile: historyFile,
		Stdin:       readline.NewCancelableStdin(stdio.Stdin()),
		Stdout:      stdio.Stdout(),
		Stderr:      stdio.Stderr(),

		FuncGetWidth: width,
		FuncIsTerminal: func() bool {
			return true
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineReader{Readline: rl}, nil
}

// ReadLine implements LineReader.ReadLine.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.Readline.SetPrompt(prompt)
	line, err := r.Readline.Readline()

	switch {
	case err == readline.ErrInterrupt:
		// Abandon the partial line.
		return "", nil
	case err != nil:
		return "", err
	default:
		return line, nil
	}
}

// Close releases the terminal.
func (r *ReadlineReader) Close() error {
	return r.Readline.Close()
}
