package internal

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Runner executes one whole search run: compile the pattern once, stream
// every input through the shared buffer, fold the per-input verdicts.
// Inputs are processed strictly one at a time, in the given order.
type Runner struct {
	opts  Options
	stdin io.Reader
	out   io.Writer
	stats AppStats
}

func NewRunner(opts Options, stdin io.Reader, out io.Writer) *Runner {
	return &Runner{opts: opts, stdin: stdin, out: out}
}

// Stats exposes the counters of the last Run.
func (r *Runner) Stats() *AppStats { return &r.stats }

// Run reports whether at least one input matched. The first failure
// (invalid pattern, unreadable input, sink write) aborts the whole run;
// the boolean is meaningless when err != nil. Zero inputs or zero matches
// yield (false, nil).
func (r *Runner) Run(ctx context.Context, pattern string, paths []string) (bool, error) {
	m, err := Compile(pattern, r.opts.CaseInsensitive)
	if err != nil {
		logrus.WithError(err).Error("Pattern compile failed")
		return false, err
	}

	inputs, err := ExpandInputs(ctx, paths, r.opts)
	if err != nil {
		logrus.WithError(err).Error("Input expansion failed")
		return false, err
	}

	e := NewEmitter(r.out)
	src := NewBufferSource(r.stdin)
	r.stats.Start()

	matched := false
	for _, in := range inputs {
		buf, name, err := src.Load(ctx, in, r.opts.TrimEndingNewline)
		if err != nil {
			r.stats.Errors.Add(1)
			logrus.WithField("input", name).WithError(err).Error("Read failed")
			return false, err
		}

		ok, err := grepBuffer(e, r.opts, name, m, buf)
		if err != nil {
			r.stats.Errors.Add(1)
			return false, fmt.Errorf("write output: %w", err)
		}
		r.stats.Inputs.Add(1)
		if ok {
			matched = true
			r.stats.Matches.Add(1)
		}
	}

	if err := e.Flush(); err != nil {
		r.stats.Errors.Add(1)
		return false, fmt.Errorf("write output: %w", err)
	}

	logrus.Debugf("Run finished in %s: inputs=%d matched=%d",
		r.stats.Elapsed(), r.stats.Inputs.Load(), r.stats.Matches.Load())
	return matched, nil
}
