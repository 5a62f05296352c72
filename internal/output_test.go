package internal

import (
	"bytes"
	"errors"
	"testing"
)

func runGrep(t *testing.T, opts Options, name, pattern, buf string) (string, bool) {
	t.Helper()
	m := mustCompile(t, pattern, opts.CaseInsensitive)
	var out bytes.Buffer
	e := NewEmitter(&out)
	matched, err := grepBuffer(e, opts, name, m, []byte(buf))
	if err != nil {
		t.Fatalf("grep: %v", err)
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return out.String(), matched
}

func TestGrepOffset_Forward(t *testing.T) {
	out, matched := runGrep(t, Options{Output: OutputOffset}, "f", "ab", "xxabxxabxx")
	if out != "0x2\n0x6\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if !matched {
		t.Error("expected matched=true")
	}
}

func TestGrepOffset_Inverse(t *testing.T) {
	out, matched := runGrep(t, Options{Output: OutputOffset, Inverse: true}, "f", "ab", "xxabxxabxx")
	if out != "0x0\n0x4\n0x8\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if !matched {
		t.Error("expected matched=true")
	}
}

func TestGrepOffset_LowercaseHex(t *testing.T) {
	buf := string(make([]byte, 0x2f)) + "ab"
	out, _ := runGrep(t, Options{Output: OutputOffset}, "f", "ab", buf)
	if out != "0x2f\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestGrepBytes_Forward(t *testing.T) {
	out, matched := runGrep(t, Options{Output: OutputBytes}, "f", "ab", "xxabxxabxx")
	if out != "ab\nab\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if !matched {
		t.Error("expected matched=true")
	}
}

func TestGrepBytes_Inverse(t *testing.T) {
	out, matched := runGrep(t, Options{Output: OutputBytes, Inverse: true}, "f", "ab", "xxabxxabxx")
	if out != "xx\nxx\nxx\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if !matched {
		t.Error("expected matched=true")
	}
}

func TestGrepBytes_InverseAdjacentEmitsNothing(t *testing.T) {
	out, matched := runGrep(t, Options{Output: OutputBytes, Inverse: true}, "f", "a", "aa")
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
	if matched {
		t.Error("expected matched=false")
	}
}

func TestGrepBytes_EmbeddedNewlinesVerbatim(t *testing.T) {
	out, _ := runGrep(t, Options{Output: OutputBytes}, "f", "a.b", "xa\nbx")
	if out != "a\nb\n" {
		t.Errorf("expected verbatim bytes plus newline, got %q", out)
	}
}

func TestGrepFileName_Forward(t *testing.T) {
	out, matched := runGrep(t, Options{Output: OutputFileName}, "data.bin", "ab", "xxabxxabxx")
	if out != "data.bin\n" {
		t.Errorf("name must be written exactly once: %q", out)
	}
	if !matched {
		t.Error("expected matched=true")
	}

	out, matched = runGrep(t, Options{Output: OutputFileName}, "data.bin", "zz", "xxabxx")
	if out != "" || matched {
		t.Errorf("expected no output and matched=false, got %q %v", out, matched)
	}
}

func TestGrepFileName_InverseFullCover(t *testing.T) {
	// Pattern matching the whole buffer leaves no hole: raw=false.
	out, matched := runGrep(t, Options{Output: OutputFileName, Inverse: true}, "f", ".*", "hello")
	if out != "" || matched {
		t.Errorf("expected no output, got %q %v", out, matched)
	}

	// With non-matching the verdict flips and the name is written.
	out, matched = runGrep(t, Options{Output: OutputFileName, Inverse: true, NonMatching: true}, "f", ".*", "hello")
	if out != "f\n" || !matched {
		t.Errorf("expected name written, got %q %v", out, matched)
	}
}

func TestGrepFileName_NonMatchingIsXOR(t *testing.T) {
	// Applying the flag flips the raw verdict; flipping twice restores it.
	for _, raw := range []bool{true, false} {
		pattern := "ab"
		if !raw {
			pattern = "zz"
		}
		_, plain := runGrep(t, Options{Output: OutputFileName}, "f", pattern, "xxabxx")
		_, flipped := runGrep(t, Options{Output: OutputFileName, NonMatching: true}, "f", pattern, "xxabxx")
		if plain == flipped {
			t.Errorf("raw=%v: expected flipped verdict", raw)
		}
	}
}

func TestGrepBytes_NonMatchingInert(t *testing.T) {
	// The flag only applies to filename mode; bytes and offset output is
	// unchanged by it.
	plain, pm := runGrep(t, Options{Output: OutputBytes}, "f", "ab", "xxabxx")
	flagged, fm := runGrep(t, Options{Output: OutputBytes, NonMatching: true}, "f", "ab", "xxabxx")
	if plain != flagged || pm != fm {
		t.Errorf("non-matching must be inert for bytes mode: %q/%v vs %q/%v", plain, pm, flagged, fm)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("sink closed") }

func TestEmitter_WriteErrorPropagates(t *testing.T) {
	m := mustCompile(t, "a", false)
	e := NewEmitter(failWriter{})
	// A big enough buffer forces the bufio layer to hit the sink.
	buf := bytes.Repeat([]byte("a"), 64*1024)
	_, err := grepBuffer(e, Options{Output: OutputBytes}, "f", m, buf)
	if err == nil {
		err = e.Flush()
	}
	if err == nil {
		t.Fatal("expected write error")
	}
}
