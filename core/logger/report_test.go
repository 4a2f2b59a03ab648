package logger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []*LogEntry {
	return []*LogEntry{
		{SessionID: "1", EventType: EventSessionStart},
		{SessionID: "1", EventType: EventBuiltin, Event: Fields{"command": []interface{}{"cd", "/tmp"}}},
		{SessionID: "1", EventType: EventRunCommand, Event: Fields{"command": []interface{}{"/bin/ls"}, "status": float64(0)}},
		{SessionID: "1", EventType: EventRunCommand, Event: Fields{"command": []interface{}{"/bin/ls"}, "status": float64(2)}},
		{SessionID: "1", EventType: EventUnknownCommand, Event: Fields{"command": []interface{}{"nope"}, "error": "not found"}},
		{SessionID: "1", EventType: EventSessionEnd},
		{SessionID: "2", EventType: EventSessionStart},
		{SessionID: "2", EventType: EventSourceFile, Event: Fields{"path": "missing", "error": "missing: no such file."}},
		{SessionID: "2", EventType: EventInputTruncated, Event: Fields{"input": "line"}},
		{SessionID: "2", EventType: "mystery"},
	}
}

func TestReport(t *testing.T) {
	var report Report
	for _, le := range testEntries() {
		report.Update(le)
	}

	assert.Equal(t, 10, report.LogEntries)
	assert.Equal(t, 2, report.Sessions)
	assert.Equal(t, 1, report.Builtin.Names.Count("cd"))
	assert.Equal(t, 2, report.RunCommand.ResolvedCommandPaths.Count("/bin/ls"))
	assert.Equal(t, 1, report.RunCommand.ExitStatuses.Count("2"))
	assert.Equal(t, 1, report.UnknownCommand.CommandNames.Count("nope"))
	assert.Equal(t, 1, report.SourceFile.Errors.Count("missing: no such file."))
	assert.Equal(t, 1, report.Truncation.Inputs.Count("line"))
	assert.Equal(t, 1, report.InvalidEntries.Count("mystery"))

	_, err := json.Marshal(&report)
	assert.NoError(t, err)
}

func TestSessionReport(t *testing.T) {
	var report SessionReport
	for _, le := range testEntries() {
		report.Update(le)
	}

	out, err := json.Marshal(&report)
	require.NoError(t, err)

	var got map[string]Session
	require.NoError(t, json.Unmarshal(out, &got))

	assert.Equal(t, []string{"cd /tmp", "/bin/ls", "/bin/ls", "nope"}, got["1"].Commands)
	assert.True(t, got["1"].Ended)
	assert.False(t, got["2"].Ended)
	assert.Equal(t, 4, got["2"].LogEntries)
}

func TestPathCounter_MarshalJSON(t *testing.T) {
	ctr := NewPathCounter("command", "error")
	ctr.Increment("a", "x")
	ctr.Increment("b", "y")
	ctr.Increment("b", "y")

	out, err := json.Marshal(ctr)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"count": 2, "event": {"command": "b", "error": "y"}},
		{"count": 1, "event": {"command": "a", "error": "x"}}
	]`, string(out))
}
