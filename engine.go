package fieldcipher

import (
	"crypto/cipher"
	"fmt"

	"github.com/hengadev/fieldcipher/internal/blockcipher"
)

// Engine owns one cipher context: the resolved algorithm, the normalized
// key, the transform direction, the padding scheme and the IV policy.
//
// An Engine is a value to be owned, not shared: it processes transforms
// sequentially and holds no per-call scratch state — the IV travels as an
// explicit parameter. Recovery from a failed transform is destroy-and-
// rebuild via NewEngine, never partial mutation, so no prior key or IV
// state can leak into the replacement.
type Engine struct {
	spec     *blockcipher.Spec
	block    cipher.Block
	mode     Mode
	staticIV []byte
	randomIV bool
	padding  bool
	closed   bool
}

// NewEngine resolves the configured algorithm, validates the transform
// direction, normalizes the key and resolves the IV policy. Failures wrap
// ErrInvalidConfiguration and are fatal at startup.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spec, err := blockcipher.Resolve(cfg.Algorithm)
	if err != nil {
		return nil, NewInvalidAlgorithmError(cfg.Algorithm, err)
	}

	block, err := spec.NewBlock(cfg.normalizedKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	e := &Engine{
		spec:    spec,
		block:   block,
		mode:    cfg.Mode,
		padding: cfg.paddingEnabled(),
	}

	// Random-IV mode wins over a static IV; the static value is ignored
	// entirely and each Transform call supplies its own vector.
	switch {
	case cfg.RandomIV():
		e.randomIV = true
		if cfg.IVRandomLength != block.BlockSize() {
			return nil, fmt.Errorf("%w: iv_random_length must equal the %d-byte block size of %q, got %d",
				ErrInvalidConfiguration, block.BlockSize(), spec.Name, cfg.IVRandomLength)
		}
	case cfg.IV != "":
		e.staticIV = []byte(cfg.IV)
		if len(e.staticIV) != block.BlockSize() {
			return nil, fmt.Errorf("%w: iv must be %d bytes for %q, got %d",
				ErrInvalidConfiguration, block.BlockSize(), spec.Name, len(e.staticIV))
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, ErrMissingIV)
	}

	return e, nil
}

// Algorithm returns the normalized algorithm name the engine runs.
func (e *Engine) Algorithm() string {
	return e.spec.Name
}

// BlockSize returns the block size of the underlying cipher in bytes.
func (e *Engine) BlockSize() int {
	return e.block.BlockSize()
}

// Reset discards the cipher context. The engine is unusable afterwards;
// callers rebuild with NewEngine rather than reviving the old value.
func (e *Engine) Reset() {
	e.block = nil
	e.staticIV = nil
	e.closed = true
}

// Transform runs the full cipher over data in the configured direction and
// returns the result. In random-IV mode the per-call iv is used; otherwise
// the static IV from the configuration. Encryption applies block padding
// before ciphering, decryption strips it after; with padding disabled an
// input that is not a multiple of the block size fails with a cipher error.
func (e *Engine) Transform(data, iv []byte) ([]byte, error) {
	if e.closed || e.block == nil {
		return nil, ErrEngineReset
	}

	effectiveIV := e.staticIV
	if e.randomIV {
		effectiveIV = iv
	}

	if e.mode == ModeEncrypt {
		return e.encrypt(data, effectiveIV)
	}
	return e.decrypt(data, effectiveIV)
}

func (e *Engine) encrypt(plaintext, iv []byte) ([]byte, error) {
	if e.spec.Mode.Padded() {
		blockSize := e.block.BlockSize()
		if e.padding {
			plaintext = blockcipher.PKCS7Pad(plaintext, blockSize)
		} else if len(plaintext)%blockSize != 0 {
			return nil, fmt.Errorf("%w: input length %d is not a multiple of the %d-byte block size and padding is disabled",
				ErrCipherFailed, len(plaintext), blockSize)
		}
	}

	apply, err := e.spec.NewEncrypter(e.block, iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCipherFailed, err)
	}

	out := make([]byte, len(plaintext))
	apply(out, plaintext)
	return out, nil
}

func (e *Engine) decrypt(ciphertext, iv []byte) ([]byte, error) {
	if e.spec.Mode.Padded() && len(ciphertext)%e.block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the %d-byte block size",
			ErrCipherFailed, len(ciphertext), e.block.BlockSize())
	}

	apply, err := e.spec.NewDecrypter(e.block, iv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCipherFailed, err)
	}

	out := make([]byte, len(ciphertext))
	apply(out, ciphertext)

	if e.spec.Mode.Padded() && e.padding {
		unpadded, err := blockcipher.PKCS7Unpad(out, e.block.BlockSize())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCipherFailed, err)
		}
		out = unpadded
	}
	return out, nil
}
