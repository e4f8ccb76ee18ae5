package fieldcipher

import (
	"fmt"

	"github.com/hengadev/errsx"
)

// Config holds the configuration for an Engine and Transformer pair.
//
// This struct contains only data, no cipher state. Configuration can be
// loaded from any source (environment variables, YAML files, code) and
// passed explicitly to NewTransformer. Validate applies defaults and must be
// called (NewEngine and NewTransformer call it) before use; the config is
// treated as immutable afterwards.
//
// Required fields:
//   - Algorithm: cipher algorithm name resolvable by the engine,
//     e.g. "aes-256-cbc", "aes-128-cfb", "blowfish-cbc"
//   - Mode: transform direction, ModeEncrypt or ModeDecrypt
//   - Key: symmetric key material, normalized to KeySize bytes
//
// Exactly one IV policy must be configured: either IVRandomLength (a fresh
// IV per encryption, prepended to the ciphertext) or IV (a fixed vector,
// weaker, kept for compatibility). IVRandomLength takes precedence when
// both are set.
type Config struct {
	// Algorithm is the cipher algorithm name, OpenSSL style.
	Algorithm string

	// Mode is the transform direction: "encrypt" or "decrypt".
	Mode Mode

	// Key is the symmetric key material. When its length differs from
	// KeySize it is truncated to KeySize and then right-padded with KeyPad.
	// A key longer than KeySize is therefore silently truncated.
	Key string

	// KeySize is the key length in bytes the key is normalized to.
	// Default: 16.
	KeySize int

	// KeyPad is the byte used to right-pad a short key. Default: NUL.
	KeyPad byte

	// CipherPadding overrides the block padding scheme: "pkcs7" (default),
	// "pkcs5" (alias), or "none". With padding disabled, encrypt input must
	// be a multiple of the cipher block size. Ignored by stream modes.
	CipherPadding string

	// IV is a fixed initialization vector reused for every operation.
	//
	// Deprecated: prefer IVRandomLength. A static IV makes identical
	// plaintexts produce identical ciphertexts.
	IV string

	// IVRandomLength enables random-IV mode: each encryption generates this
	// many random bytes, uses them as the IV, and prepends them to the
	// ciphertext so the decrypt side can recover them. Takes precedence
	// over IV. Random-IV mode also enables compression framing of the
	// plaintext before ciphering.
	IVRandomLength int

	// ExcludeFields lists field names that are never transformed.
	ExcludeFields []string

	// Base64 toggles text-safe base64 encoding of ciphertext (strict
	// standard alphabet). Default: true.
	Base64 *bool
}

// DefaultConfig returns a Config with all optional fields at their defaults.
// Algorithm, Mode and Key remain to be filled in.
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		KeySize:       DefaultKeySize,
		KeyPad:        DefaultKeyPad,
		CipherPadding: PaddingPKCS7,
		Base64:        &enabled,
	}
}

// UseBase64 reports whether ciphertext is base64-encoded, applying the
// default when the field was never set.
func (c *Config) UseBase64() bool {
	return c.Base64 == nil || *c.Base64
}

// RandomIV reports whether the config selects random-IV mode.
func (c *Config) RandomIV() bool {
	return c.IVRandomLength > 0
}

// Validate checks that the configuration is usable and applies defaults to
// optional fields. Returns an error wrapping ErrInvalidConfiguration when a
// required field is missing or malformed.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	if c.Algorithm == "" {
		errs.Set("algorithm", fmt.Errorf("algorithm is required"))
	}

	if c.Mode != ModeEncrypt && c.Mode != ModeDecrypt {
		errs.Set("mode", NewInvalidModeError(c.Mode))
	}

	if c.Key == "" {
		errs.Set("key", fmt.Errorf("key is required"))
	}

	if c.KeySize < 0 {
		errs.Set("key_size", fmt.Errorf("key_size cannot be negative, got %d", c.KeySize))
	} else if c.KeySize == 0 {
		c.KeySize = DefaultKeySize
	}

	if c.IVRandomLength < 0 {
		errs.Set("iv_random_length", fmt.Errorf("iv_random_length cannot be negative, got %d", c.IVRandomLength))
	}

	if c.IVRandomLength == 0 && c.IV == "" {
		errs.Set("iv", ErrMissingIV)
	}

	switch c.CipherPadding {
	case "":
		c.CipherPadding = PaddingPKCS7
	case PaddingPKCS7, PaddingPKCS5, PaddingNone, "0":
	default:
		errs.Set("cipher_padding", fmt.Errorf("unsupported padding scheme %q", c.CipherPadding))
	}

	if c.Base64 == nil {
		enabled := true
		c.Base64 = &enabled
	}

	if err := errs.AsError(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// normalizedKey returns the key truncated to KeySize and right-padded with
// KeyPad. Truncation always runs when lengths differ; padding is a no-op
// once the key is at length.
func (c *Config) normalizedKey() []byte {
	key := []byte(c.Key)
	if len(key) != c.KeySize {
		if len(key) > c.KeySize {
			key = key[:c.KeySize]
		}
		for len(key) < c.KeySize {
			key = append(key, c.KeyPad)
		}
	}
	return key
}

// paddingEnabled reports whether PKCS#7 block padding is active.
func (c *Config) paddingEnabled() bool {
	return c.CipherPadding != PaddingNone && c.CipherPadding != "0"
}

// excluded reports whether the named field is on the exclusion list.
func (c *Config) excluded(name string) bool {
	for _, f := range c.ExcludeFields {
		if f == name {
			return true
		}
	}
	return false
}
