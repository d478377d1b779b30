package procfs

import "strings"

// Split cuts buf at every delim. Empty tokens are dropped unless keepEmpty is
// set; the text after the last delimiter is always kept when non-empty, so a
// trailing delimiter never yields a trailing empty token.
func Split(buf string, delim byte, keepEmpty bool) []string {
	var out []string

	last := 0
	for curr := 0; curr < len(buf); curr++ {
		if buf[curr] != delim {
			continue
		}
		if tok := buf[last:curr]; tok != "" || keepEmpty {
			out = append(out, tok)
		}
		last = curr + 1
	}

	if last < len(buf) {
		out = append(out, buf[last:])
	}
	return out
}

// Fields splits buf around runs of whitespace.
func Fields(buf string) []string {
	return strings.FieldsFunc(buf, isSpace)
}

// SplitOnce cuts buf at the first delim. Without a delim the whole buffer is
// the head and rest is empty.
func SplitOnce(buf string, delim byte) (head, rest string) {
	i := strings.IndexByte(buf, delim)
	if i < 0 {
		return buf, ""
	}
	return buf[:i], buf[i+1:]
}

func LTrim(s string) string { return strings.TrimLeftFunc(s, isSpace) }
func RTrim(s string) string { return strings.TrimRightFunc(s, isSpace) }
func Trim(s string) string  { return RTrim(LTrim(s)) }

// EnsureDirTerminator appends a '/' unless path already ends with one.
func EnsureDirTerminator(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

// isSpace matches C's isspace in the "C" locale.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
