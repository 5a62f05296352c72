package internal

import (
	"bufio"
	"io"
	"strconv"
)

// Emitter writes result records to the output sink, one line per record.
// The sink is wrapped in a single buffered writer acquired for the whole
// run; diagnostics never pass through here.
type Emitter struct {
	w *bufio.Writer
}

func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Record writes one raw-bytes record. The bytes go out verbatim, embedded
// newlines included, followed by the terminating newline.
func (e *Emitter) Record(b []byte) error {
	if _, err := e.w.Write(b); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

// RecordHex writes one offset record, e.g. "0x2f".
func (e *Emitter) RecordHex(off int) error {
	if _, err := e.w.WriteString("0x"); err != nil {
		return err
	}
	if _, err := e.w.WriteString(strconv.FormatInt(int64(off), 16)); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

// RecordName writes one input-name record.
func (e *Emitter) RecordName(name string) error {
	if _, err := e.w.WriteString(name); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

func (e *Emitter) Flush() error { return e.w.Flush() }

// grepBuffer runs the selected output mode over one input's buffer and
// reports whether the input counts as matched for the whole run.
func grepBuffer(e *Emitter, opts Options, name string, m *Matcher, buf []byte) (bool, error) {
	switch opts.Output {
	case OutputFileName:
		return grepFileName(e, opts, name, m, buf)
	case OutputBytes:
		return grepBytes(e, opts, m, buf)
	default:
		return grepOffset(e, opts, m, buf)
	}
}

// grepFileName emits the input's name once iff the final verdict is true.
// The raw verdict (any match, or any gap when inverse) is XORed with
// NonMatching; this is the only mode that consults NonMatching.
func grepFileName(e *Emitter, opts Options, name string, m *Matcher, buf []byte) (bool, error) {
	var raw bool
	if opts.Inverse {
		// The first gap decides; the iterator stops engine work there.
		_, raw = m.Gaps(buf).Next()
	} else {
		raw = m.IsMatch(buf)
	}

	matched := raw != opts.NonMatching
	if matched {
		if err := e.RecordName(name); err != nil {
			return false, err
		}
	}
	return matched, nil
}

// grepBytes emits the raw bytes of each match, or of each gap when
// inverse, one record per span. Gaps are non-empty by construction, so
// inverse mode never emits a record for an empty interval.
func grepBytes(e *Emitter, opts Options, m *Matcher, buf []byte) (bool, error) {
	matched := false
	if opts.Inverse {
		gaps := m.Gaps(buf)
		for sp, ok := gaps.Next(); ok; sp, ok = gaps.Next() {
			if err := e.Record(sp.Bytes(buf)); err != nil {
				return matched, err
			}
			matched = true
		}
	} else {
		it := m.Matches(buf)
		for sp, ok := it.Next(); ok; sp, ok = it.Next() {
			if err := e.Record(sp.Bytes(buf)); err != nil {
				return matched, err
			}
			matched = true
		}
	}
	return matched, nil
}

// grepOffset emits the start offset of each match, or of each gap when
// inverse, in lowercase hex.
func grepOffset(e *Emitter, opts Options, m *Matcher, buf []byte) (bool, error) {
	matched := false
	if opts.Inverse {
		gaps := m.Gaps(buf)
		for sp, ok := gaps.Next(); ok; sp, ok = gaps.Next() {
			if err := e.RecordHex(sp.Start); err != nil {
				return matched, err
			}
			matched = true
		}
	} else {
		it := m.Matches(buf)
		for sp, ok := it.Next(); ok; sp, ok = it.Next() {
			if err := e.RecordHex(sp.Start); err != nil {
				return matched, err
			}
			matched = true
		}
	}
	return matched, nil
}
