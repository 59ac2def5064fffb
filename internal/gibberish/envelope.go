package gibberish

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

const (
	fieldExtension = "extension"
	fieldFile      = "file"
)

// Envelope is the plaintext record sealed inside a frame: the original file
// content and the extension it had before encoding.
type Envelope struct {
	Extension string
	Content   []byte
}

// MarshalEnvelope encodes e as a MessagePack map with a str "extension" entry
// and a bin "file" entry.
func MarshalEnvelope(e *Envelope) ([]byte, error) {
	content := e.Content
	if content == nil {
		// EncodeBytes writes nil for a nil slice; an empty file is still bin.
		content = []byte{}
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(e.Extension) + 32)
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeMapLen(2); err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	if err := enc.EncodeString(fieldExtension); err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	if err := enc.EncodeString(e.Extension); err != nil {
		return nil, fmt.Errorf("encoding envelope extension: %w", err)
	}
	if err := enc.EncodeString(fieldFile); err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	if err := enc.EncodeBytes(content); err != nil {
		return nil, fmt.Errorf("encoding envelope content: %w", err)
	}

	return buf.Bytes(), nil
}

// UnmarshalEnvelope decodes an envelope by walking the map entry by entry.
// Entries may come in any order; keys other than "extension" and "file",
// including non-string keys, are skipped so newer writers can add fields.
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	c, err := dec.PeekCode()
	if err != nil {
		return nil, &SchemaError{Err: err}
	}
	if !isMap(c) {
		return nil, &SchemaError{Err: ErrNotAMap}
	}

	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, &SchemaError{Err: err}
	}

	var (
		env        Envelope
		hasExt     bool
		hasContent bool
	)

	for i := 0; i < n; i++ {
		c, err := dec.PeekCode()
		if err != nil {
			return nil, &SchemaError{Err: err}
		}
		if !isStr(c) {
			if err := skipEntry(dec); err != nil {
				return nil, &SchemaError{Err: err}
			}
			continue
		}

		key, err := dec.DecodeString()
		if err != nil {
			return nil, &SchemaError{Err: err}
		}

		switch key {
		case fieldExtension:
			if env.Extension, err = decodeStr(dec, key); err != nil {
				return nil, err
			}
			hasExt = true
		case fieldFile:
			if env.Content, err = decodeBin(dec, key); err != nil {
				return nil, err
			}
			hasContent = true
		default:
			if err := dec.Skip(); err != nil {
				return nil, &SchemaError{Field: key, Err: err}
			}
		}
	}

	if !hasExt {
		return nil, &SchemaError{Field: fieldExtension, Err: ErrMissingField}
	}
	if !hasContent {
		return nil, &SchemaError{Field: fieldFile, Err: ErrMissingField}
	}
	return &env, nil
}

func decodeStr(dec *msgpack.Decoder, field string) (string, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return "", &SchemaError{Field: field, Err: err}
	}
	if !isStr(c) {
		return "", &SchemaError{Field: field, Err: fmt.Errorf("%w: expected string", ErrFieldType)}
	}
	s, err := dec.DecodeString()
	if err != nil {
		return "", &SchemaError{Field: field, Err: err}
	}
	return s, nil
}

func decodeBin(dec *msgpack.Decoder, field string) ([]byte, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, &SchemaError{Field: field, Err: err}
	}
	if !isBin(c) {
		return nil, &SchemaError{Field: field, Err: fmt.Errorf("%w: expected binary", ErrFieldType)}
	}
	b, err := dec.DecodeBytes()
	if err != nil {
		return nil, &SchemaError{Field: field, Err: err}
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

// skipEntry discards one key/value pair.
func skipEntry(dec *msgpack.Decoder) error {
	if err := dec.Skip(); err != nil {
		return err
	}
	return dec.Skip()
}

func isMap(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func isStr(c byte) bool {
	return msgpcode.IsFixedString(c) || c == msgpcode.Str8 || c == msgpcode.Str16 || c == msgpcode.Str32
}

func isBin(c byte) bool {
	return c == msgpcode.Bin8 || c == msgpcode.Bin16 || c == msgpcode.Bin32
}
