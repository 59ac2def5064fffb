package gibberish

import (
	"bytes"
	"fmt"
	"io"
)

// DefaultExtension is the target extension when the user does not pick one.
const DefaultExtension = "gibberish"

// EncodeRequest describes one encode invocation.
type EncodeRequest struct {
	// Input is the name of the plaintext file in the store.
	Input string
	// Extension replaces the input's extension on the output file. It is
	// also the passphrase when Passphrase is nil.
	Extension string
	// Passphrase is the passphrase source; nil means use Extension.
	Passphrase PassphraseSource
	// AllowOverwrite skips the confirmation when the output exists.
	AllowOverwrite bool
}

// DecodeRequest describes one decode invocation.
type DecodeRequest struct {
	// Input is the name of the gibberish file in the store.
	Input string
	// Passphrase is the passphrase source; nil means use the input's own
	// extension.
	Passphrase PassphraseSource
	// AllowOverwrite skips the confirmation when the output exists.
	AllowOverwrite bool
}

// Result reports where output went. Written is false when the user declined
// to overwrite an existing file.
type Result struct {
	Input   string
	Target  string
	Written bool
}

// Service runs the encode and decode pipelines against a Store.
type Service struct {
	store  Store
	writer *OutputWriter
	logger Logger
	random io.Reader
}

// NewService creates a Service. random is the source of salts and nonces and
// must be a CSPRNG (crypto/rand.Reader) outside of tests.
func NewService(store Store, confirmer Confirmer, logger Logger, random io.Reader) *Service {
	return &Service{
		store:  store,
		writer: NewOutputWriter(store, confirmer, logger),
		logger: logger,
		random: random,
	}
}

// Encode turns req.Input into gibberish named {base}.{req.Extension}.
func (s *Service) Encode(req EncodeRequest) (*Result, error) {
	content, err := s.read(req.Input)
	if err != nil {
		return nil, err
	}

	base, origExt := SplitName(req.Input)
	target := JoinName(base, req.Extension)

	source := req.Passphrase
	if source == nil {
		source = FixedPassphrase(req.Extension)
	}
	passphrase, err := source.Passphrase()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("encoding", "input", req.Input, "size", len(content), "interactive", req.Passphrase != nil)

	data, err := EncodeEnvelope(&Envelope{Extension: origExt, Content: content}, passphrase, s.random)
	if err != nil {
		return nil, err
	}

	written, err := s.writer.Write(target, data, req.AllowOverwrite)
	if err != nil {
		return nil, err
	}
	if written {
		s.logger.Info("gibberish written", "input", req.Input, "target", target)
	}

	return &Result{Input: req.Input, Target: target, Written: written}, nil
}

// Decode restores the file hidden in req.Input as {base}.{original extension}.
func (s *Service) Decode(req DecodeRequest) (*Result, error) {
	data, err := s.read(req.Input)
	if err != nil {
		return nil, err
	}

	frame, err := ParseFrame(data)
	if err != nil {
		return nil, err
	}

	base, inputExt := SplitName(req.Input)

	source := req.Passphrase
	if source == nil {
		source = FixedPassphrase(inputExt)
	}
	passphrase, err := source.Passphrase()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("decoding", "input", req.Input, "size", len(data), "interactive", req.Passphrase != nil)

	env, err := openFrame(frame, passphrase)
	if err != nil {
		s.logger.Warn("decode failed", "input", req.Input, "error", err)
		return nil, err
	}

	target := JoinName(base, env.Extension)
	written, err := s.writer.Write(target, env.Content, req.AllowOverwrite)
	if err != nil {
		return nil, err
	}
	if written {
		s.logger.Info("gibberish decoded", "input", req.Input, "target", target)
	}

	return &Result{Input: req.Input, Target: target, Written: written}, nil
}

// read loads a whole input file into memory.
func (s *Service) read(name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.store.Get(name, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeEnvelope seals env under passphrase with a fresh salt and nonce drawn
// from random, and returns the framed bytes.
func EncodeEnvelope(env *Envelope, passphrase string, random io.Reader) ([]byte, error) {
	salt, err := NewSalt(random)
	if err != nil {
		return nil, err
	}
	nonce, err := NewNonce(random)
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey([]byte(passphrase), salt[:])
	if err != nil {
		return nil, err
	}
	defer wipeKey(key)

	plaintext, err := MarshalEnvelope(env)
	if err != nil {
		return nil, err
	}

	frame := &Frame{Salt: *salt, Nonce: *nonce, Ciphertext: Seal(plaintext, nonce, key)}
	return frame.Bytes(), nil
}

// DecodeEnvelope parses framed bytes and opens them with passphrase.
func DecodeEnvelope(data []byte, passphrase string) (*Envelope, error) {
	frame, err := ParseFrame(data)
	if err != nil {
		return nil, err
	}
	return openFrame(frame, passphrase)
}

func openFrame(frame *Frame, passphrase string) (*Envelope, error) {
	key, err := DeriveKey([]byte(passphrase), frame.Salt[:])
	if err != nil {
		return nil, err
	}
	defer wipeKey(key)

	plaintext, err := Open(frame.Ciphertext, &frame.Nonce, key)
	if err != nil {
		return nil, err
	}

	env, err := UnmarshalEnvelope(plaintext)
	if err != nil {
		return nil, fmt.Errorf("reading envelope: %w", err)
	}
	return env, nil
}
