package fieldcipher

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromEnvironment loads configuration from FIELDCIPHER_* environment
// variables and returns a validated Config. A .env file in the working
// directory is loaded first when present, following the 12-factor approach.
//
// Required environment variables:
//   - FIELDCIPHER_ALGORITHM: cipher algorithm name (e.g. "aes-256-cbc")
//   - FIELDCIPHER_MODE: "encrypt" or "decrypt"
//   - FIELDCIPHER_KEY: symmetric key material
//
// One of FIELDCIPHER_IV or FIELDCIPHER_IV_RANDOM_LENGTH is also required.
// Optional variables (defaults applied when unset): FIELDCIPHER_KEY_SIZE,
// FIELDCIPHER_KEY_PAD, FIELDCIPHER_CIPHER_PADDING, FIELDCIPHER_EXCLUDE_FIELDS
// (comma-separated), FIELDCIPHER_BASE64.
func LoadConfigFromEnvironment() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.Algorithm = os.Getenv(EnvAlgorithm)
	cfg.Mode = Mode(os.Getenv(EnvMode))
	cfg.Key = os.Getenv(EnvKey)
	cfg.IV = os.Getenv(EnvIV)

	if v := os.Getenv(EnvKeySize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfiguration, EnvKeySize, v)
		}
		cfg.KeySize = size
	}

	if v := os.Getenv(EnvKeyPad); v != "" {
		if len(v) != 1 {
			return nil, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidConfiguration, EnvKeyPad, v)
		}
		cfg.KeyPad = v[0]
	}

	if v := os.Getenv(EnvIVRandomLength); v != "" {
		length, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfiguration, EnvIVRandomLength, v)
		}
		cfg.IVRandomLength = length
	}

	if v := os.Getenv(EnvCipherPadding); v != "" {
		cfg.CipherPadding = v
	}

	if v := os.Getenv(EnvExcludeFields); v != "" {
		for _, field := range strings.Split(v, ",") {
			if field = strings.TrimSpace(field); field != "" {
				cfg.ExcludeFields = append(cfg.ExcludeFields, field)
			}
		}
	}

	if v := os.Getenv(EnvBase64); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidConfiguration, EnvBase64, v)
		}
		cfg.Base64 = &enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromFile loads configuration from a YAML file and returns a
// validated Config. Fields absent from the file keep their defaults.
//
// Example file:
//
//	algorithm: aes-256-cbc
//	mode: encrypt
//	key: "0123456789abcdef0123456789abcdef"
//	key_size: 32
//	iv_random_length: 16
//	exclude_fields: [host, timestamp]
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	// key_pad is a single character in the file, not a byte value.
	var file struct {
		Algorithm      string   `yaml:"algorithm"`
		Mode           string   `yaml:"mode"`
		Key            string   `yaml:"key"`
		KeySize        int      `yaml:"key_size"`
		KeyPad         string   `yaml:"key_pad"`
		CipherPadding  string   `yaml:"cipher_padding"`
		IV             string   `yaml:"iv"`
		IVRandomLength int      `yaml:"iv_random_length"`
		ExcludeFields  []string `yaml:"exclude_fields"`
		Base64         *bool    `yaml:"base64"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %q: %v", ErrInvalidConfiguration, path, err)
	}

	cfg := DefaultConfig()
	cfg.Algorithm = file.Algorithm
	cfg.Mode = Mode(file.Mode)
	cfg.Key = file.Key
	cfg.IV = file.IV
	cfg.IVRandomLength = file.IVRandomLength
	cfg.ExcludeFields = file.ExcludeFields
	if file.KeySize != 0 {
		cfg.KeySize = file.KeySize
	}
	if file.KeyPad != "" {
		if len(file.KeyPad) != 1 {
			return nil, fmt.Errorf("%w: key_pad must be a single character, got %q", ErrInvalidConfiguration, file.KeyPad)
		}
		cfg.KeyPad = file.KeyPad[0]
	}
	if file.CipherPadding != "" {
		cfg.CipherPadding = file.CipherPadding
	}
	if file.Base64 != nil {
		cfg.Base64 = file.Base64
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
