package gibberish

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

// encodeRaw builds a MessagePack document with the given encoder calls.
func encodeRaw(t *testing.T, build func(enc *msgpack.Encoder) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := build(msgpack.NewEncoder(&buf)); err != nil {
		t.Fatalf("building msgpack input: %v", err)
	}
	return buf.Bytes()
}

func TestMarshalEnvelope_WireFormat(t *testing.T) {
	t.Parallel()

	got, err := MarshalEnvelope(&Envelope{Extension: "txt", Content: []byte("hi")})
	if err != nil {
		t.Fatalf("MarshalEnvelope() error = %v", err)
	}

	// fixmap(2), fixstr(9) "extension", fixstr(3) "txt", fixstr(4) "file", bin8(2) "hi"
	want := []byte{0x82, 0xa9}
	want = append(want, "extension"...)
	want = append(want, 0xa3)
	want = append(want, "txt"...)
	want = append(want, 0xa4)
	want = append(want, "file"...)
	want = append(want, 0xc4, 0x02, 'h', 'i')

	if !bytes.Equal(got, want) {
		t.Errorf("MarshalEnvelope() = % x, want % x", got, want)
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  Envelope
	}{
		{name: "typical", env: Envelope{Extension: "pdf", Content: []byte("%PDF-1.7 ...")}},
		{name: "empty content", env: Envelope{Extension: "txt", Content: []byte{}}},
		{name: "nil content", env: Envelope{Extension: "txt"}},
		{name: "empty extension", env: Envelope{Extension: "", Content: []byte{0, 1, 2}}},
		{name: "unicode extension", env: Envelope{Extension: "тxt", Content: []byte("x")}},
		{name: "large content", env: Envelope{Extension: "bin", Content: bytes.Repeat([]byte{0xFE}, 70000)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := MarshalEnvelope(&tt.env)
			if err != nil {
				t.Fatalf("MarshalEnvelope() error = %v", err)
			}
			got, err := UnmarshalEnvelope(data)
			if err != nil {
				t.Fatalf("UnmarshalEnvelope() error = %v", err)
			}
			if got.Extension != tt.env.Extension {
				t.Errorf("Extension = %q, want %q", got.Extension, tt.env.Extension)
			}
			if !bytes.Equal(got.Content, tt.env.Content) {
				t.Errorf("Content differs: got %d bytes, want %d", len(got.Content), len(tt.env.Content))
			}
			if got.Content == nil {
				t.Error("Content = nil, want non-nil slice")
			}
		})
	}
}

func TestUnmarshalEnvelope_Tolerant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(enc *msgpack.Encoder) error
	}{
		{
			name: "reversed order",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(2),
					enc.EncodeString("file"), enc.EncodeBytes([]byte("data")),
					enc.EncodeString("extension"), enc.EncodeString("md"),
				)
			},
		},
		{
			name: "unknown string key",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(3),
					enc.EncodeString("version"), enc.EncodeInt(2),
					enc.EncodeString("extension"), enc.EncodeString("md"),
					enc.EncodeString("file"), enc.EncodeBytes([]byte("data")),
				)
			},
		},
		{
			name: "non-string key",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(3),
					enc.EncodeString("extension"), enc.EncodeString("md"),
					enc.EncodeInt(7), enc.EncodeArrayLen(2), enc.EncodeBool(true), enc.EncodeNil(),
					enc.EncodeString("file"), enc.EncodeBytes([]byte("data")),
				)
			},
		},
		{
			name: "nested unknown value",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(3),
					enc.EncodeString("meta"), enc.EncodeMapLen(1), enc.EncodeString("k"), enc.EncodeString("v"),
					enc.EncodeString("file"), enc.EncodeBytes([]byte("data")),
					enc.EncodeString("extension"), enc.EncodeString("md"),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, err := UnmarshalEnvelope(encodeRaw(t, tt.build))
			if err != nil {
				t.Fatalf("UnmarshalEnvelope() error = %v", err)
			}
			if env.Extension != "md" || string(env.Content) != "data" {
				t.Errorf("UnmarshalEnvelope() = {%q, %q}, want {\"md\", \"data\"}", env.Extension, env.Content)
			}
		})
	}
}

func TestUnmarshalEnvelope_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		build       func(enc *msgpack.Encoder) error
		wantErr     error
		wantField   string
		wantMessage string
	}{
		{
			name:    "array",
			build:   func(enc *msgpack.Encoder) error { return enc.Encode([]string{"extension", "file"}) },
			wantErr: ErrNotAMap,
		},
		{
			name:    "string",
			build:   func(enc *msgpack.Encoder) error { return enc.EncodeString("extension") },
			wantErr: ErrNotAMap,
		},
		{
			name:    "nil",
			build:   func(enc *msgpack.Encoder) error { return enc.EncodeNil() },
			wantErr: ErrNotAMap,
		},
		{
			name: "missing extension",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(enc.EncodeMapLen(1), enc.EncodeString("file"), enc.EncodeBytes([]byte("x")))
			},
			wantErr:     ErrMissingField,
			wantField:   "extension",
			wantMessage: "Original file extension missing",
		},
		{
			name: "missing file",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(enc.EncodeMapLen(1), enc.EncodeString("extension"), enc.EncodeString("txt"))
			},
			wantErr:     ErrMissingField,
			wantField:   "file",
			wantMessage: "Original file content missing",
		},
		{
			name:    "empty map",
			build:   func(enc *msgpack.Encoder) error { return enc.EncodeMapLen(0) },
			wantErr: ErrMissingField,
		},
		{
			name: "extension as binary",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(2),
					enc.EncodeString("extension"), enc.EncodeBytes([]byte("txt")),
					enc.EncodeString("file"), enc.EncodeBytes([]byte("x")),
				)
			},
			wantErr:   ErrFieldType,
			wantField: "extension",
		},
		{
			name: "file as string",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(2),
					enc.EncodeString("extension"), enc.EncodeString("txt"),
					enc.EncodeString("file"), enc.EncodeString("x"),
				)
			},
			wantErr:   ErrFieldType,
			wantField: "file",
		},
		{
			name: "file as integer",
			build: func(enc *msgpack.Encoder) error {
				return firstErr(
					enc.EncodeMapLen(2),
					enc.EncodeString("extension"), enc.EncodeString("txt"),
					enc.EncodeString("file"), enc.EncodeInt(42),
				)
			},
			wantErr:   ErrFieldType,
			wantField: "file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := UnmarshalEnvelope(encodeRaw(t, tt.build))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UnmarshalEnvelope() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrEnvelopeSchema) {
				t.Errorf("UnmarshalEnvelope() error = %v, want it to match ErrEnvelopeSchema", err)
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("UnmarshalEnvelope() error type = %T, want *SchemaError", err)
			}
			if tt.wantField != "" && schemaErr.Field != tt.wantField {
				t.Errorf("SchemaError.Field = %q, want %q", schemaErr.Field, tt.wantField)
			}
			if tt.wantMessage != "" && schemaErr.Message() != tt.wantMessage {
				t.Errorf("SchemaError.Message() = %q, want %q", schemaErr.Message(), tt.wantMessage)
			}
		})
	}
}

func TestUnmarshalEnvelope_Truncated(t *testing.T) {
	t.Parallel()

	data, err := MarshalEnvelope(&Envelope{Extension: "txt", Content: []byte("hello")})
	if err != nil {
		t.Fatalf("MarshalEnvelope() error = %v", err)
	}

	for _, n := range []int{0, 1, len(data) - 1} {
		if _, err := UnmarshalEnvelope(data[:n]); !errors.Is(err, ErrEnvelopeSchema) {
			t.Errorf("UnmarshalEnvelope(%d of %d bytes) error = %v, want ErrEnvelopeSchema", n, len(data), err)
		}
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
