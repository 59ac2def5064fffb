package gibberish

import (
	"fmt"
	"runtime"

	"golang.org/x/crypto/scrypt"
)

const (
	// SaltSize is the width of the salt at the start of every frame.
	SaltSize = 32
	// KeySize is the length of the derived secretbox key.
	KeySize = 32

	// scrypt parameters equivalent to libsodium's scryptsalsa208sha256
	// OPSLIMIT_INTERACTIVE / MEMLIMIT_INTERACTIVE. Changing them makes
	// existing files unreadable.
	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1
)

// DeriveKey turns a passphrase and salt into a secretbox key. The same inputs
// always produce the same key. A failure of the hash is returned as a
// *KeyDerivationError and must abort the invocation.
func DeriveKey(passphrase, salt []byte) (*[KeySize]byte, error) {
	if len(salt) != SaltSize {
		return nil, &KeyDerivationError{Err: fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))}
	}

	derived, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, &KeyDerivationError{Err: err}
	}
	defer zeroBytes(derived)

	var key [KeySize]byte
	copy(key[:], derived)
	return &key, nil
}

// zeroBytes overwrites b with zeros.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// wipeKey zeroes a derived key once it has been used.
func wipeKey(key *[KeySize]byte) {
	if key != nil {
		zeroBytes(key[:])
	}
}
