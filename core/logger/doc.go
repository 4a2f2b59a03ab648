// Package logger is a standardized event logging framework for the
// interpreter.
//
// Events are stored as newline delimited JSON objects, one per line, so they
// can be appended to by concurrent sessions and processed with standard
// tools.
package logger
