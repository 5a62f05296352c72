package internal

import (
	"errors"
)

// Output selects how matches are reported.
type Output int

const (
	// OutputOffset prints each match's start offset in hex, one per line.
	OutputOffset Output = iota
	// OutputBytes prints each match's raw bytes, one per line.
	OutputBytes
	// OutputFileName prints the input's name once if it matched.
	OutputFileName
)

func (o Output) String() string {
	switch o {
	case OutputBytes:
		return "bytes"
	case OutputFileName:
		return "filename"
	default:
		return "offset"
	}
}

// Options - public options from CLI.
type Options struct {
	CaseInsensitive   bool
	Inverse           bool
	NonMatching       bool // XOR against the raw verdict; filename mode only
	TrimEndingNewline bool
	Output            Output

	Recursive bool
	Depth     int
	Archives  bool
}

// Validate checks invariants.
func (o *Options) Validate() error {
	if o.Depth < 0 {
		return errors.New("depth must be >= 0")
	}
	if o.Depth > 0 && !o.Recursive {
		return errors.New("depth requires --recursive")
	}
	return nil
}
