package internal

import (
	"bytes"
	"io"
	"testing"
)

func BenchmarkMatches(b *testing.B) {
	m, err := Compile("ab+c", false)
	if err != nil {
		b.Fatal(err)
	}
	buf := bytes.Repeat([]byte("xxabbcxx"), 8192)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := m.Matches(buf)
		for _, ok := it.Next(); ok; _, ok = it.Next() {
		}
	}
}

func BenchmarkGrepBytes_Inverse(b *testing.B) {
	m, err := Compile("ab+c", false)
	if err != nil {
		b.Fatal(err)
	}
	buf := bytes.Repeat([]byte("xxabbcxx"), 8192)
	e := NewEmitter(io.Discard)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := grepBytes(e, Options{Inverse: true, Output: OutputBytes}, m, buf); err != nil {
			b.Fatal(err)
		}
	}
}
