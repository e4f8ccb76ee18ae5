package fieldcipher

// This file provides test utilities for use in examples and external testing.

import "github.com/hengadev/fieldcipher/internal/monitoring"

// TestKey and TestIV are the fixed credentials used by NewTestConfig.
const (
	TestKey = "0123456789abcdef"
	TestIV  = "1234567890123456"
)

// NewTestConfig returns a valid AES-128-CBC configuration with a fixed key
// and static IV, suitable for deterministic tests and examples.
func NewTestConfig(mode Mode) *Config {
	cfg := DefaultConfig()
	cfg.Algorithm = "aes-128-cbc"
	cfg.Mode = mode
	cfg.Key = TestKey
	cfg.IV = TestIV
	return cfg
}

// NewTestTransformer builds a Transformer from NewTestConfig with logging
// silenced, for use in tests that exercise the record pipeline.
func NewTestTransformer(mode Mode, opts ...TransformerOption) (*Transformer, error) {
	opts = append([]TransformerOption{WithLogger(monitoring.NewNopLogger())}, opts...)
	return NewTransformer(NewTestConfig(mode), opts...)
}
