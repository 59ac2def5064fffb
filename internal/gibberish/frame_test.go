package gibberish

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseFrame_TooShort(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, SaltSize, HeaderSize - 1} {
		if _, err := ParseFrame(make([]byte, n)); !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("ParseFrame(%d bytes) error = %v, want ErrMalformedFrame", n, err)
		}
	}
}

func TestParseFrame_HeaderOnly(t *testing.T) {
	t.Parallel()

	f, err := ParseFrame(make([]byte, HeaderSize))
	if err != nil {
		t.Fatalf("ParseFrame(%d bytes) error = %v", HeaderSize, err)
	}
	if len(f.Ciphertext) != 0 {
		t.Errorf("len(Ciphertext) = %d, want 0", len(f.Ciphertext))
	}
}

func TestFrame_Layout(t *testing.T) {
	t.Parallel()

	f := &Frame{Ciphertext: []byte("box")}
	for i := range f.Salt {
		f.Salt[i] = 's'
	}
	for i := range f.Nonce {
		f.Nonce[i] = 'n'
	}

	data := f.Bytes()
	want := append(append(bytes.Repeat([]byte{'s'}, SaltSize), bytes.Repeat([]byte{'n'}, NonceSize)...), "box"...)
	if !bytes.Equal(data, want) {
		t.Fatalf("Bytes() = %q, want %q", data, want)
	}

	parsed, err := ParseFrame(data)
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	if parsed.Salt != f.Salt || parsed.Nonce != f.Nonce || !bytes.Equal(parsed.Ciphertext, f.Ciphertext) {
		t.Errorf("ParseFrame(Bytes()) = %+v, want %+v", parsed, f)
	}

	data[HeaderSize] = 'X'
	if parsed.Ciphertext[0] != 'b' {
		t.Error("ParseFrame() ciphertext aliases the input slice")
	}
}
