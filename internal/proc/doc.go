// Package proc decodes individual /proc files into model records. Every
// parser is composed from the primitives in internal/procfs and returns
// either a record or one of its *OSError / *ParseError failures.
package proc
