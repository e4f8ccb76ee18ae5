// Package blockcipher resolves OpenSSL-style algorithm names into block
// cipher constructors and chaining modes.
package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"fmt"
	"strings"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"
	"golang.org/x/crypto/twofish"
)

// ChainMode identifies the block chaining mode encoded in an algorithm name.
type ChainMode int

const (
	ModeCBC ChainMode = iota
	ModeCFB
	ModeOFB
	ModeCTR
)

// String returns the lowercase mode suffix as it appears in algorithm names.
func (m ChainMode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeCFB:
		return "cfb"
	case ModeOFB:
		return "ofb"
	case ModeCTR:
		return "ctr"
	default:
		return "unknown"
	}
}

// Padded reports whether the mode operates on whole blocks and therefore
// requires block padding. Stream modes encrypt byte-by-byte.
func (m ChainMode) Padded() bool {
	return m == ModeCBC
}

// Spec describes a resolved algorithm: how to build the underlying block
// cipher from a key and which chaining mode to run it in.
type Spec struct {
	// Name is the normalized algorithm name, e.g. "aes-128-cbc".
	Name string

	// Mode is the chaining mode parsed from the name suffix.
	Mode ChainMode

	// KeyLength is the key length in bytes the name demands, or 0 when the
	// family accepts variable-length keys (blowfish, cast5).
	KeyLength int

	newBlock func(key []byte) (cipher.Block, error)
}

// NewBlock constructs the block cipher for the given key material.
func (s *Spec) NewBlock(key []byte) (cipher.Block, error) {
	if s.KeyLength > 0 && len(key) != s.KeyLength {
		return nil, fmt.Errorf("algorithm %q requires a %d-byte key, got %d bytes",
			s.Name, s.KeyLength, len(key))
	}
	return s.newBlock(key)
}

// family maps an algorithm family prefix to its block constructor and the
// fixed key length it requires (0 for variable-length families).
type family struct {
	newBlock  func(key []byte) (cipher.Block, error)
	keyLength int
}

var families = map[string]family{
	"aes":      {newBlock: aes.NewCipher},
	"des":      {newBlock: des.NewCipher, keyLength: 8},
	"des-ede3": {newBlock: des.NewTripleDESCipher, keyLength: 24},
	"blowfish": {newBlock: newBlowfish},
	"cast5":    {newBlock: newCAST5},
	"twofish":  {newBlock: newTwofish},
}

func newBlowfish(key []byte) (cipher.Block, error) {
	c, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newCAST5(key []byte) (cipher.Block, error) {
	c, err := cast5.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newTwofish(key []byte) (cipher.Block, error) {
	c, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var chainModes = map[string]ChainMode{
	"cbc": ModeCBC,
	"cfb": ModeCFB,
	"ofb": ModeOFB,
	"ctr": ModeCTR,
}

// Resolve parses an OpenSSL-style algorithm name such as "aes-128-cbc",
// "aes-256-cfb", "des-ede3-cbc" or "blowfish-cbc" into a Spec. Names are
// case-insensitive. The mode suffix is mandatory.
func Resolve(name string) (*Spec, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, fmt.Errorf("algorithm name is empty")
	}

	idx := strings.LastIndex(normalized, "-")
	if idx <= 0 || idx == len(normalized)-1 {
		return nil, fmt.Errorf("unsupported algorithm %q: expected <family>[-<bits>]-<mode>", name)
	}

	mode, ok := chainModes[normalized[idx+1:]]
	if !ok {
		return nil, fmt.Errorf("unsupported chaining mode %q in algorithm %q", normalized[idx+1:], name)
	}

	base := normalized[:idx]
	spec := &Spec{Name: normalized, Mode: mode}

	// The family may carry a key size segment, e.g. "aes-128".
	if fam, ok := families[base]; ok {
		spec.newBlock = fam.newBlock
		spec.KeyLength = fam.keyLength
		return spec, nil
	}
	if sizeIdx := strings.LastIndex(base, "-"); sizeIdx > 0 {
		famName, bits := base[:sizeIdx], base[sizeIdx+1:]
		if fam, ok := families[famName]; ok {
			keyLen, ok := keyBits(bits)
			if !ok {
				return nil, fmt.Errorf("unsupported key size %q in algorithm %q", bits, name)
			}
			spec.newBlock = fam.newBlock
			spec.KeyLength = keyLen
			return spec, nil
		}
	}

	return nil, fmt.Errorf("unsupported cipher family in algorithm %q", name)
}

func keyBits(s string) (int, bool) {
	switch s {
	case "128":
		return 16, true
	case "192":
		return 24, true
	case "256":
		return 32, true
	default:
		return 0, false
	}
}

// NewEncrypter returns a function applying the spec's chaining mode in the
// encrypt direction over src. CBC requires src to be block-aligned; padding
// is the caller's responsibility.
func (s *Spec) NewEncrypter(block cipher.Block, iv []byte) (func(dst, src []byte), error) {
	if err := s.checkIV(block, iv); err != nil {
		return nil, err
	}
	switch s.Mode {
	case ModeCBC:
		mode := cipher.NewCBCEncrypter(block, iv)
		return mode.CryptBlocks, nil
	case ModeCFB:
		stream := cipher.NewCFBEncrypter(block, iv)
		return stream.XORKeyStream, nil
	case ModeOFB:
		stream := cipher.NewOFB(block, iv)
		return stream.XORKeyStream, nil
	case ModeCTR:
		stream := cipher.NewCTR(block, iv)
		return stream.XORKeyStream, nil
	}
	return nil, fmt.Errorf("unsupported chaining mode %v", s.Mode)
}

// NewDecrypter returns a function applying the spec's chaining mode in the
// decrypt direction over src.
func (s *Spec) NewDecrypter(block cipher.Block, iv []byte) (func(dst, src []byte), error) {
	if err := s.checkIV(block, iv); err != nil {
		return nil, err
	}
	switch s.Mode {
	case ModeCBC:
		mode := cipher.NewCBCDecrypter(block, iv)
		return mode.CryptBlocks, nil
	case ModeCFB:
		stream := cipher.NewCFBDecrypter(block, iv)
		return stream.XORKeyStream, nil
	case ModeOFB:
		stream := cipher.NewOFB(block, iv)
		return stream.XORKeyStream, nil
	case ModeCTR:
		stream := cipher.NewCTR(block, iv)
		return stream.XORKeyStream, nil
	}
	return nil, fmt.Errorf("unsupported chaining mode %v", s.Mode)
}

func (s *Spec) checkIV(block cipher.Block, iv []byte) error {
	if len(iv) != block.BlockSize() {
		return fmt.Errorf("algorithm %q requires a %d-byte IV, got %d bytes",
			s.Name, block.BlockSize(), len(iv))
	}
	return nil
}
