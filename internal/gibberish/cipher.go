package gibberish

import (
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// NonceSize is the width of the nonce that follows the salt in a frame.
	NonceSize = 24
	// Overhead is the number of bytes Seal adds to the plaintext.
	Overhead = secretbox.Overhead
)

// NewNonce draws a fresh nonce from r, which should be a CSPRNG.
func NewNonce(r io.Reader) (*[NonceSize]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return &nonce, nil
}

// NewSalt draws a fresh salt from r, which should be a CSPRNG.
func NewSalt(r io.Reader) (*[SaltSize]byte, error) {
	var salt [SaltSize]byte
	if _, err := io.ReadFull(r, salt[:]); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return &salt, nil
}

// Seal encrypts and authenticates plaintext. The result is the Poly1305 tag
// followed by the XSalsa20 ciphertext.
func Seal(plaintext []byte, nonce *[NonceSize]byte, key *[KeySize]byte) []byte {
	return secretbox.Seal(nil, plaintext, nonce, key)
}

// Open verifies and decrypts a box produced by Seal. A wrong key and a
// modified box are indistinguishable; both return ErrAuthentication.
func Open(box []byte, nonce *[NonceSize]byte, key *[KeySize]byte) ([]byte, error) {
	plaintext, ok := secretbox.Open(nil, box, nonce, key)
	if !ok {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}
