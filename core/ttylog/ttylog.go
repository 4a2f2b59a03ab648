// Package ttylog records the output of a session so it can be replayed.
package ttylog

import (
	"io"
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/josephlewis42/crsh/core/vos"
)

var (
	crlf = regexp.MustCompile(`\r?\n`)
)

// FD is the stream an entry was written to.
type FD int

const (
	FDStdin FD = iota
	FDStdout
	FDStderr
)

// Entry is a single chunk of data seen on a stream.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It reutrns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	return newPlayback(maxSleep, time.Sleep, next)
}

func newPlayback(maxSleep time.Duration, sleep func(time.Duration), next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(e *Entry) error {
		once.Do(func() {
			prevTimeMicros = e.TimestampMicros
		})

		delta := e.TimestampMicros - prevTimeMicros
		prevTimeMicros = e.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			sleep(sleepDuration)
		}

		return next(e)
	}
}

// NewCRLFAdapter rewrites bare newlines as \r\n.
//
// The terminal adds carriage returns on the way out so recorded data only
// has \n, without them playback creeps across the screen.
func NewCRLFAdapter(next LogSink) LogSink {
	return func(e *Entry) error {
		e.Data = crlf.ReplaceAll(e.Data, []byte("\r\n"))
		return next(e)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(e *Entry) error {
		if e.FD == FDStdin {
			return nil
		}
		_, err := w.Write(e.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		e, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(e); err != nil {
			return err
		}
	}
}

// Recorder wraps the output streams of a VIO and copies everything written
// to a LogSink. Stdin is passed through untouched so programs reading it
// directly aren't affected.
type Recorder struct {
	*vos.VIOAdapter
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
}

func (r *Recorder) recordIO(fd FD, data []byte, dest func([]byte) (int, error)) (int, error) {
	eventTime := r.now()
	amount, err := dest(data)
	if amount > 0 {
		r.mutex.Lock()
		e2 := r.output(&Entry{
			TimestampMicros: eventTime.UnixMicro(),
			FD:              fd,
			Data:            append([]byte(nil), data[:amount]...),
		})
		r.mutex.Unlock()
		if e2 != nil {
			log.Print(e2)
		}
	}
	return amount, err
}

var _ vos.VIO = (*Recorder)(nil)

type recorderWriteCloser struct {
	r       *Recorder
	fd      FD
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	return rc.r.recordIO(rc.fd, p, rc.wrapped.Write)
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}

// NewRecorder creates a logger that forwards all output to sink.
func NewRecorder(toWrap vos.VIO, output LogSink) *Recorder {
	recorder := &Recorder{
		output: output,
		now:    time.Now,
	}

	recorder.VIOAdapter = &vos.VIOAdapter{
		IStdin:  toWrap.Stdin(),
		IStdout: &recorderWriteCloser{fd: FDStdout, r: recorder, wrapped: toWrap.Stdout()},
		IStderr: &recorderWriteCloser{fd: FDStderr, r: recorder, wrapped: toWrap.Stderr()},
	}

	return recorder
}
