package logger

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventType is the kind of event being logged.
type EventType string

const (
	// EventSessionStart is logged when the interpreter starts.
	EventSessionStart EventType = "session_start"
	// EventSessionEnd is logged when the interpreter stops.
	EventSessionEnd EventType = "session_end"
	// EventBuiltin is logged when a builtin is run.
	EventBuiltin EventType = "builtin"
	// EventRunCommand is logged when an external program finishes.
	EventRunCommand EventType = "run_command"
	// EventUnknownCommand is logged when a program couldn't be started.
	EventUnknownCommand EventType = "unknown_command"
	// EventSourceFile is logged when a script is opened, or fails to open.
	EventSourceFile EventType = "source_file"
	// EventInputTruncated is logged when input exceeds a capacity limit.
	EventInputTruncated EventType = "input_truncated"
)

// Fields holds event specific values. Values must be representable in JSON.
type Fields map[string]interface{}

// LogEntry is a single event.
type LogEntry struct {
	TimestampMicros int64
	SessionID       string
	EventType       EventType
	Event           Fields
}

// Proto converts the entry to its wire representation.
func (le *LogEntry) Proto() (*structpb.Struct, error) {
	event := make(map[string]interface{}, len(le.Event))
	for k, v := range le.Event {
		event[k] = normalize(v)
	}

	return structpb.NewStruct(map[string]interface{}{
		"timestamp_micros": le.TimestampMicros,
		"session_id":       le.SessionID,
		"event_type":       string(le.EventType),
		"event":            event,
	})
}

// normalize converts common Go types structpb doesn't understand.
func normalize(v interface{}) interface{} {
	switch tv := v.(type) {
	case []string:
		out := make([]interface{}, len(tv))
		for i, s := range tv {
			out[i] = s
		}
		return out
	case error:
		return tv.Error()
	case EventType:
		return string(tv)
	default:
		return v
	}
}

func entryFromProto(msg *structpb.Struct) (*LogEntry, error) {
	fields := msg.GetFields()
	le := &LogEntry{
		TimestampMicros: int64(fields["timestamp_micros"].GetNumberValue()),
		SessionID:       fields["session_id"].GetStringValue(),
		EventType:       EventType(fields["event_type"].GetStringValue()),
		Event:           Fields(fields["event"].GetStructValue().AsMap()),
	}
	if le.EventType == "" {
		return nil, fmt.Errorf("log entry missing event_type")
	}
	return le, nil
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interpreter events.
type Logger struct {
	Record LogRecorder

	now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			msg, err := le.Proto()
			if err != nil {
				return err
			}
			entry, err := protojson.Marshal(msg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards all events.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error {
			return nil
		},
	}
}

func (l *Logger) timestampMicros() int64 {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	return now().UnixNano() / int64(time.Microsecond)
}

func (l *Logger) recordEvent(sessionID string, eventType EventType, fields Fields) error {
	le := &LogEntry{}
	le.TimestampMicros = l.timestampMicros()
	le.SessionID = sessionID
	le.EventType = eventType
	le.Event = fields

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record logs an event.
func (l *SessionLogger) Record(eventType EventType, fields Fields) error {
	return l.recordEvent(l.sessionID, eventType, fields)
}
