// Package shell implements crsh, a minimal command interpreter.
//
// Lines are split on single spaces with no quoting, expansion or
// redirection. The first token names a builtin (cd, exit or .) or a program
// which is looked up in the search path when it contains no slash. Programs
// run in the foreground through a vos.VOS with the interpreter's
// environment, streams and working directory.
package shell
