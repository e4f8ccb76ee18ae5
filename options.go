package fieldcipher

import (
	"fmt"
	"strings"
)

// Option represents a configuration option for building a Config in code.
type Option func(*Config) error

// NewConfig builds a Config from defaults plus the given options and
// validates the result.
func NewConfig(options ...Option) (*Config, error) {
	cfg := DefaultConfig()
	for i, opt := range options {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("option %d failed: %w", i, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithAlgorithm sets the cipher algorithm name, e.g. "aes-256-cbc".
func WithAlgorithm(algorithm string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(algorithm) == "" {
			return fmt.Errorf("algorithm cannot be empty")
		}
		c.Algorithm = algorithm
		return nil
	}
}

// WithMode sets the transform direction.
func WithMode(mode Mode) Option {
	return func(c *Config) error {
		if mode != ModeEncrypt && mode != ModeDecrypt {
			return NewInvalidModeError(mode)
		}
		c.Mode = mode
		return nil
	}
}

// WithKey sets the symmetric key material.
func WithKey(key string) Option {
	return func(c *Config) error {
		if key == "" {
			return fmt.Errorf("key cannot be empty")
		}
		c.Key = key
		return nil
	}
}

// WithKeySize sets the key length in bytes the key is normalized to.
func WithKeySize(size int) Option {
	return func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("key size must be positive, got %d", size)
		}
		c.KeySize = size
		return nil
	}
}

// WithKeyPad sets the byte used to right-pad a short key.
func WithKeyPad(pad byte) Option {
	return func(c *Config) error {
		c.KeyPad = pad
		return nil
	}
}

// WithCipherPadding overrides the block padding scheme.
func WithCipherPadding(padding string) Option {
	return func(c *Config) error {
		switch padding {
		case PaddingPKCS7, PaddingPKCS5, PaddingNone, "0":
			c.CipherPadding = padding
			return nil
		default:
			return fmt.Errorf("unsupported padding scheme %q", padding)
		}
	}
}

// WithStaticIV sets a fixed initialization vector.
//
// Deprecated: prefer WithRandomIV. A static IV makes identical plaintexts
// produce identical ciphertexts.
func WithStaticIV(iv string) Option {
	return func(c *Config) error {
		if iv == "" {
			return fmt.Errorf("iv cannot be empty")
		}
		c.IV = iv
		return nil
	}
}

// WithRandomIV enables random-IV mode with the given IV length in bytes.
func WithRandomIV(length int) Option {
	return func(c *Config) error {
		if length <= 0 {
			return fmt.Errorf("iv_random_length must be positive, got %d", length)
		}
		c.IVRandomLength = length
		return nil
	}
}

// WithExcludeFields sets the field names never transformed.
func WithExcludeFields(fields ...string) Option {
	return func(c *Config) error {
		c.ExcludeFields = fields
		return nil
	}
}

// WithBase64 toggles base64 encoding of ciphertext.
func WithBase64(enabled bool) Option {
	return func(c *Config) error {
		c.Base64 = &enabled
		return nil
	}
}
