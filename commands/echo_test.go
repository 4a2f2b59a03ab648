package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcho(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":     {[]string{"echo"}},
		"words":      {[]string{"echo", "hello", "world"}},
		"separator":  {[]string{"echo", "one", "two"}},
		"escaped":    {[]string{"echo", "-e", `a\tb\n`}},
		"literal":    {[]string{"echo", `a\tb`}},
		"no-newline": {[]string{"echo", "-n", "hi"}},
		"stop":       {[]string{"echo", "-e", `a\cb`, "ignored"}},
		"combined":   {[]string{"echo", "-ne", `x\x41\0102`}},
	}

	cases.Run(t, Echo)
}

func TestUnescape(t *testing.T) {
	cases := []struct {
		escaped  string
		expected string
		more     bool
	}{
		{"not escaped", "not escaped", true},
		{`newline\n`, "newline\n", true},
		{`double-escape\\n`, `double-escape\n`, true},
		{`unknown\q`, `unknown\q`, true},
		{`trailing\`, `trailing\`, true},
		{`stop\chere`, "stop", false},
		// Octal
		{`\07`, "\a", true},
		{`\011`, "\t", true},
		{`\0101`, "A", true},
		{`\01012`, "A2", true},
		{`\09`, "\x009", true},
		// Hex
		{`\x7`, "\a", true},
		{`\x9`, "\t", true},
		{`\x4A`, "J", true},
		{`\x4a5`, "J5", true},
		{`\xg`, `\xg`, true},
	}

	for _, tc := range cases {
		t.Run(tc.escaped, func(t *testing.T) {
			actual, more := unescape(tc.escaped)

			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.more, more)
		})
	}
}
