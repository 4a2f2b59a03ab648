package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var msg structpb.Struct
		if err := protojson.Unmarshal([]byte(line), &msg); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		le, err := entryFromProto(&msg)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		handler(le)
	}
	return scanner.Err()
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Builtin        BuiltinReport        `json:"builtin_report"`
	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	SourceFile     SourceFileReport     `json:"source_file_report"`
	Truncation     TruncationReport     `json:"truncation_report"`
}

// Update adds the entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch le.EventType {
	case EventSessionStart:
		r.Sessions++
	case EventBuiltin:
		r.Builtin.update(le.Event)
	case EventRunCommand:
		r.RunCommand.update(le.Event)
	case EventUnknownCommand:
		r.UnknownCommand.update(le.Event)
	case EventSourceFile:
		r.SourceFile.update(le.Event)
	case EventInputTruncated:
		r.Truncation.update(le.Event)
	case EventSessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(string(le.EventType))
	}
}

type BuiltinReport struct {
	Names StrCounter `json:"names"`
}

func (r *BuiltinReport) update(event Fields) {
	r.Names.Increment(firstArg(event))
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Exit statuses of the commands
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *RunCommandReport) update(event Fields) {
	r.ResolvedCommandPaths.Increment(firstArg(event))
	r.ExitStatuses.Increment(fmt.Sprint(event["status"]))
}

type UnknownCommandReport struct {
	CommandNames StrCounter   `json:"command_names"`
	Errors       *PathCounter `json:"errors"`
}

func (r *UnknownCommandReport) update(event Fields) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}

	msg, _ := event["error"].(string)
	r.CommandNames.Increment(firstArg(event))
	r.Errors.Increment(firstArg(event), msg)
}

type SourceFileReport struct {
	Paths  StrCounter `json:"paths"`
	Errors StrCounter `json:"errors"`
}

func (r *SourceFileReport) update(event Fields) {
	path, _ := event["path"].(string)
	r.Paths.Increment(path)
	if msg, ok := event["error"].(string); ok {
		r.Errors.Increment(msg)
	}
}

type TruncationReport struct {
	Inputs StrCounter `json:"inputs"`
}

func (r *TruncationReport) update(event Fields) {
	input, _ := event["input"].(string)
	r.Inputs.Increment(input)
}

// firstArg gets the program name from the event's command.
func firstArg(event Fields) string {
	if command, ok := event["command"].([]interface{}); ok && len(command) > 0 {
		if name, ok := command[0].(string); ok {
			return name
		}
	}
	return ""
}

// SessionReport holds the commands run by each session.
type SessionReport struct {
	// Map of sessionID -> session
	sessions map[string]*Session
}

// Session is a summary of a single interpreter run.
type Session struct {
	LogEntries int      `json:"log_entries"`
	Commands   []string `json:"commands"`
	Ended      bool     `json:"ended"`
}

func (s *Session) update(le *LogEntry) {
	s.LogEntries++

	switch le.EventType {
	case EventBuiltin, EventRunCommand, EventUnknownCommand:
		if command, ok := le.Event["command"].([]interface{}); ok {
			var args []string
			for _, arg := range command {
				args = append(args, fmt.Sprint(arg))
			}
			s.Commands = append(s.Commands, strings.Join(args, " "))
		}
	case EventSessionEnd:
		s.Ended = true
	}
}

func (i *SessionReport) init() {
	if i.sessions == nil {
		i.sessions = make(map[string]*Session)
	}
}

// MarshalJSON implemnts custom JSON marshaler.
func (i *SessionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.sessions)
}

// Update adds the entry to the session it belongs to.
func (i *SessionReport) Update(le *LogEntry) {
	i.init()

	if le.SessionID == "" {
		return
	}
	report, ok := i.sessions[le.SessionID]
	if !ok {
		report = &Session{}
		i.sessions[le.SessionID] = report
	}

	report.update(le)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times the key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

// PathCounter counts tuples of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
