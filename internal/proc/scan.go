package proc

import (
	"fmt"
	"strings"

	"github.com/pranshuparmar/procfs/internal/procfs"
)

// fieldScanner decodes the positional tokens of one record and keeps the
// first failure, so a parser can list its fields without an error check per
// line.
type fieldScanner struct {
	what   string
	raw    string
	fields []string
	err    error
}

func newFieldScanner(what, raw string, fields []string) *fieldScanner {
	return &fieldScanner{what: what, raw: raw, fields: fields}
}

// need fails the scan unless at least n tokens are present.
func (s *fieldScanner) need(n int) bool {
	if s.err == nil && len(s.fields) < n {
		s.err = procfs.NewParseError(
			fmt.Sprintf("corrupted %s - expected at least %d tokens, got %d", s.what, n, len(s.fields)),
			s.raw, nil)
	}
	return s.err == nil
}

func (s *fieldScanner) has(i int) bool {
	return s.err == nil && i < len(s.fields)
}

func (s *fieldScanner) fail(i int, cause error) {
	if s.err == nil {
		s.err = procfs.NewParseError(fmt.Sprintf("corrupted %s - bad token %d", s.what, i), s.raw, cause)
	}
}

// scanInt decodes token i into dst. Missing trailing tokens leave dst alone;
// they belong to newer kernels.
func scanInt[T procfs.Integer](s *fieldScanner, dst *T, i int, base procfs.Base) {
	if !s.has(i) {
		return
	}
	v, err := procfs.ParseInt[T](s.fields[i], base)
	if err != nil {
		s.fail(i, err)
		return
	}
	*dst = v
}

// scanPair decodes an "a<sep>b" token, e.g. the "tx_queue:rx_queue" column.
func scanPair[T procfs.Integer](s *fieldScanner, a, b *T, i int, sep byte, base procfs.Base) {
	if !s.has(i) {
		return
	}
	head, rest := procfs.SplitOnce(s.fields[i], sep)
	x, err := procfs.ParseInt[T](head, base)
	if err != nil {
		s.fail(i, err)
		return
	}
	y, err := procfs.ParseInt[T](rest, base)
	if err != nil {
		s.fail(i, err)
		return
	}
	*a, *b = x, y
}

// cutFields splits off the first n whitespace separated fields and returns
// the remainder with its leading whitespace removed. Used where the last
// column is free text (paths with spaces).
func cutFields(line string, n int) ([]string, string) {
	fields := make([]string, 0, n)
	rest := procfs.LTrim(line)
	for len(fields) < n && rest != "" {
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			fields = append(fields, rest)
			return fields, ""
		}
		fields = append(fields, rest[:end])
		rest = procfs.LTrim(rest[end:])
	}
	return fields, rest
}

// unescapeOctal undoes the \ooo escaping the kernel applies to spaces, tabs,
// newlines and backslashes in paths (see seq_path / mangle_path).
func unescapeOctal(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }
