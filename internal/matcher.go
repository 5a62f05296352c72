package internal

import (
	"fmt"
	"regexp"
)

// Matcher is a compiled byte pattern. It is immutable and compiled once
// per run, before any input is read.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds the matcher for raw byte scanning: `.` matches any byte
// including newline, and case sensitivity is fixed here for the whole run.
func Compile(pattern string, caseInsensitive bool) (*Matcher, error) {
	flags := "s"
	if caseInsensitive {
		flags += "i"
	}
	re, err := regexp.Compile("(?" + flags + ")" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &Matcher{re: re}, nil
}

// IsMatch reports whether the pattern matches anywhere in buf.
func (m *Matcher) IsMatch(buf []byte) bool { return m.re.Match(buf) }
