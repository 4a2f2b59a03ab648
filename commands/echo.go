package commands

import (
	"io"
	"strings"

	"github.com/josephlewis42/crsh/core/vos"
)

var echoEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
}

const echoDigits = "0123456789abcdef"

// leadingDigits parses up to max digits of the given base from the start of
// s and returns the value and how many bytes were used.
func leadingDigits(s string, base, max int) (value, width int) {
	for width < len(s) && width < max {
		c := s[width]
		if 'A' <= c && c <= 'F' {
			c += 'a' - 'A'
		}
		digit := strings.IndexByte(echoDigits, c)
		if digit < 0 || digit >= base {
			break
		}
		value = value*base + digit
		width++
	}
	return value, width
}

// unescape expands backslash sequences in s. It reports false if \c asked
// for all further output to be suppressed.
func unescape(s string) (string, bool) {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out.WriteByte(s[i])
			continue
		}

		i++
		switch c := s[i]; c {
		case 'c':
			return out.String(), false
		case '0':
			value, width := leadingDigits(s[i+1:], 8, 3)
			out.WriteByte(byte(value))
			i += width
		case 'x':
			value, width := leadingDigits(s[i+1:], 16, 2)
			if width == 0 {
				out.WriteString(`\x`)
				continue
			}
			out.WriteByte(byte(value))
			i += width
		default:
			if replacement, ok := echoEscapes[c]; ok {
				out.WriteByte(replacement)
			} else {
				out.WriteByte('\\')
				out.WriteByte(c)
			}
		}
	}
	return out.String(), true
}

// Echo writes its arguments separated by spaces.
func Echo(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "echo [-ne] [ARG] ...",
		Short: "Display a line of text.",
	}

	opt := cmd.Flags()
	noNewline := opt.Bool('n', "do not output the trailing newline")
	escaped := opt.Bool('e', "interpret backslash escapes")

	return cmd.Run(virtOS, func() int {
		line := strings.Join(opt.Args(), " ")
		more := true
		if *escaped {
			line, more = unescape(line)
		}
		if more && !*noNewline {
			line += "\n"
		}

		io.WriteString(virtOS.Stdout(), line)
		return 0
	})
}

var _ vos.ProcessFunc = Echo

func init() {
	addBinCmd("echo", Echo)
}
