package blockcipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve tests algorithm name parsing
func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		algorithm  string
		wantMode   ChainMode
		wantKeyLen int
		wantErr    string
	}{
		{name: "aes-128-cbc", algorithm: "aes-128-cbc", wantMode: ModeCBC, wantKeyLen: 16},
		{name: "aes-192-cfb", algorithm: "aes-192-cfb", wantMode: ModeCFB, wantKeyLen: 24},
		{name: "aes-256-ctr", algorithm: "aes-256-ctr", wantMode: ModeCTR, wantKeyLen: 32},
		{name: "uppercase normalized", algorithm: "AES-128-CBC", wantMode: ModeCBC, wantKeyLen: 16},
		{name: "aes without bits", algorithm: "aes-cbc", wantMode: ModeCBC, wantKeyLen: 0},
		{name: "des", algorithm: "des-cbc", wantMode: ModeCBC, wantKeyLen: 8},
		{name: "triple des", algorithm: "des-ede3-cbc", wantMode: ModeCBC, wantKeyLen: 24},
		{name: "blowfish", algorithm: "blowfish-cbc", wantMode: ModeCBC, wantKeyLen: 0},
		{name: "cast5 ofb", algorithm: "cast5-ofb", wantMode: ModeOFB, wantKeyLen: 0},
		{name: "twofish", algorithm: "twofish-cbc", wantMode: ModeCBC, wantKeyLen: 0},
		{name: "empty", algorithm: "", wantErr: "empty"},
		{name: "no mode suffix", algorithm: "aes", wantErr: "expected <family>"},
		{name: "unknown mode", algorithm: "aes-128-gcm", wantErr: "unsupported chaining mode"},
		{name: "unknown family", algorithm: "rot13-cbc", wantErr: "unsupported cipher family"},
		{name: "bad key size", algorithm: "aes-137-cbc", wantErr: "unsupported key size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Resolve(tt.algorithm)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, spec.Mode)
			assert.Equal(t, tt.wantKeyLen, spec.KeyLength)
		})
	}
}

// TestSpecKeyLengthEnforcement tests that size-qualified names reject other keys
func TestSpecKeyLengthEnforcement(t *testing.T) {
	spec, err := Resolve("aes-128-cbc")
	require.NoError(t, err)

	_, err = spec.NewBlock(make([]byte, 32))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a 16-byte key")

	block, err := spec.NewBlock(make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, 16, block.BlockSize())
}

// TestModeRoundTrip tests each chaining mode end to end
func TestModeRoundTrip(t *testing.T) {
	algorithms := []string{
		"aes-128-cbc", "aes-128-cfb", "aes-128-ofb", "aes-128-ctr",
		"blowfish-cbc", "des-cbc", "twofish-cbc",
	}

	for _, name := range algorithms {
		t.Run(name, func(t *testing.T) {
			spec, err := Resolve(name)
			require.NoError(t, err)

			keyLen := spec.KeyLength
			if keyLen == 0 {
				keyLen = 16
			}
			key := bytes.Repeat([]byte{0x42}, keyLen)
			block, err := spec.NewBlock(key)
			require.NoError(t, err)

			iv := bytes.Repeat([]byte{0x24}, block.BlockSize())
			plaintext := []byte("field cipher mode round trip data...")
			if spec.Mode.Padded() {
				plaintext = PKCS7Pad(plaintext, block.BlockSize())
			}

			encrypt, err := spec.NewEncrypter(block, iv)
			require.NoError(t, err)
			ciphertext := make([]byte, len(plaintext))
			encrypt(ciphertext, plaintext)
			assert.NotEqual(t, plaintext, ciphertext)

			decrypt, err := spec.NewDecrypter(block, iv)
			require.NoError(t, err)
			recovered := make([]byte, len(ciphertext))
			decrypt(recovered, ciphertext)
			assert.Equal(t, plaintext, recovered)
		})
	}
}

// TestIVLengthCheck tests IV validation against the block size
func TestIVLengthCheck(t *testing.T) {
	spec, err := Resolve("aes-128-cbc")
	require.NoError(t, err)
	block, err := spec.NewBlock(make([]byte, 16))
	require.NoError(t, err)

	_, err = spec.NewEncrypter(block, []byte("short"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a 16-byte IV")
}
