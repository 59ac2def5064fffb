package gibberish

// HeaderSize is the fixed prefix of every frame: salt then nonce.
const HeaderSize = SaltSize + NonceSize

// Frame is the on-disk layout of a gibberish file:
//
//	salt[32] || nonce[24] || ciphertext[...]
//
// There is no magic number or version byte. Both widths are fixed by the
// choice of scrypt and secretbox.
type Frame struct {
	Salt       [SaltSize]byte
	Nonce      [NonceSize]byte
	Ciphertext []byte
}

// Bytes serializes the frame.
func (f *Frame) Bytes() []byte {
	out := make([]byte, HeaderSize+len(f.Ciphertext))
	copy(out, f.Salt[:])
	copy(out[SaltSize:], f.Nonce[:])
	copy(out[HeaderSize:], f.Ciphertext)
	return out
}

// ParseFrame splits data into salt, nonce and ciphertext. Input shorter than
// HeaderSize returns ErrMalformedFrame.
func ParseFrame(data []byte) (*Frame, error) {
	if len(data) < HeaderSize {
		return nil, ErrMalformedFrame
	}

	f := &Frame{Ciphertext: make([]byte, len(data)-HeaderSize)}
	copy(f.Salt[:], data[:SaltSize])
	copy(f.Nonce[:], data[SaltSize:HeaderSize])
	copy(f.Ciphertext, data[HeaderSize:])
	return f, nil
}
