package fieldcipher

// Mode selects the transform direction.
type Mode string

const (
	// ModeEncrypt configures the engine to encrypt selected fields.
	ModeEncrypt Mode = "encrypt"

	// ModeDecrypt configures the engine to decrypt selected fields.
	ModeDecrypt Mode = "decrypt"
)

// Key handling defaults
const (
	// DefaultKeySize is the key length in bytes the configured key is
	// normalized to when KeySize is left unset.
	DefaultKeySize = 16

	// DefaultKeyPad is the byte used to right-pad keys shorter than KeySize.
	DefaultKeyPad byte = 0x00
)

// Block padding scheme identifiers accepted in Config.CipherPadding.
const (
	// PaddingPKCS7 enables PKCS#7 block padding (the default).
	PaddingPKCS7 = "pkcs7"

	// PaddingPKCS5 is accepted as an alias for PKCS#7.
	PaddingPKCS5 = "pkcs5"

	// PaddingNone disables block padding; input must then be block-aligned.
	PaddingNone = "none"
)

// Environment variable names read by LoadConfigFromEnvironment.
const (
	// EnvAlgorithm is the environment variable for the cipher algorithm name.
	// Example: "aes-256-cbc"
	EnvAlgorithm = "FIELDCIPHER_ALGORITHM"

	// EnvMode is the environment variable for the transform direction
	// ("encrypt" or "decrypt").
	EnvMode = "FIELDCIPHER_MODE"

	// EnvKey is the environment variable for the symmetric key material.
	EnvKey = "FIELDCIPHER_KEY"

	// EnvKeySize is the environment variable for the normalized key length
	// in bytes. Default: 16.
	EnvKeySize = "FIELDCIPHER_KEY_SIZE"

	// EnvKeyPad is the environment variable for the single key padding
	// character. Default: NUL.
	EnvKeyPad = "FIELDCIPHER_KEY_PAD"

	// EnvIV is the environment variable for a fixed initialization vector.
	// Deprecated in favor of EnvIVRandomLength.
	EnvIV = "FIELDCIPHER_IV"

	// EnvIVRandomLength is the environment variable for the per-call random
	// IV length in bytes. Takes precedence over EnvIV.
	EnvIVRandomLength = "FIELDCIPHER_IV_RANDOM_LENGTH"

	// EnvCipherPadding is the environment variable for the block padding
	// scheme override ("pkcs7", "pkcs5", "none").
	EnvCipherPadding = "FIELDCIPHER_CIPHER_PADDING"

	// EnvExcludeFields is the environment variable for the comma-separated
	// list of field names never transformed.
	EnvExcludeFields = "FIELDCIPHER_EXCLUDE_FIELDS"

	// EnvBase64 is the environment variable toggling base64 text-safe
	// encoding of ciphertext ("true"/"false"). Default: true.
	EnvBase64 = "FIELDCIPHER_BASE64"
)
