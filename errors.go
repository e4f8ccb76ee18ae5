package fieldcipher

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidAlgorithm     = errors.New("unresolvable cipher algorithm")
	ErrInvalidMode          = errors.New("invalid cipher mode")
	ErrMissingIV            = errors.New("either iv or iv_random_length must be configured")

	// Transform errors
	ErrDecodeFailed   = errors.New("failed to decode input")
	ErrCipherFailed   = errors.New("cipher operation failed")
	ErrEncodingFailed = errors.New("output is not valid UTF-8")

	// Engine errors
	ErrEngineReset = errors.New("cipher engine has been reset")
)

func NewInvalidModeError(mode Mode) error {
	return fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidMode, mode, ModeEncrypt, ModeDecrypt)
}

func NewInvalidAlgorithmError(algorithm string, cause error) error {
	return fmt.Errorf("%w: %q: %v", ErrInvalidAlgorithm, algorithm, cause)
}

func NewDecodeError(fieldName string, cause error) error {
	return fmt.Errorf("%w: field '%s': %v", ErrDecodeFailed, fieldName, cause)
}

func NewCipherError(fieldName string, cause error) error {
	return fmt.Errorf("%w: field '%s': %v", ErrCipherFailed, fieldName, cause)
}

func NewEncodingError(fieldName string) error {
	return fmt.Errorf("%w: field '%s'", ErrEncodingFailed, fieldName)
}

// IsConfigurationError returns true if the error represents a configuration
// problem that is fatal at initialization.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrInvalidAlgorithm) ||
		errors.Is(err, ErrInvalidMode) ||
		errors.Is(err, ErrMissingIV)
}

// IsDecodeError returns true if the error represents malformed base64 or
// compressed input.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecodeFailed)
}

// IsCipherError returns true if the error represents a block-alignment or
// padding violation, typically caused by a wrong key or IV.
func IsCipherError(err error) bool {
	return errors.Is(err, ErrCipherFailed) || errors.Is(err, ErrEngineReset)
}

// IsEncodingError returns true if the error represents non-UTF-8 decrypt output.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrEncodingFailed)
}

// IsOperationError returns true if the error represents any recoverable
// per-record transform failure, as opposed to a configuration error.
func IsOperationError(err error) bool {
	return IsDecodeError(err) || IsCipherError(err) || IsEncodingError(err)
}
