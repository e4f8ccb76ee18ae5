package blockcipher

import (
	"bytes"
	"fmt"
)

// PKCS7Pad appends PKCS#7 padding so len(result) is a multiple of blockSize.
// Input already at a block boundary gains a full padding block, matching
// OpenSSL behavior.
func PKCS7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// PKCS7Unpad strips PKCS#7 padding applied by PKCS7Pad. It fails when the
// trailing bytes do not form valid padding, which is the usual symptom of a
// wrong key or IV on decrypt.
func PKCS7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("padded data length %d is not a multiple of block size %d", len(data), blockSize)
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, fmt.Errorf("invalid padding length %d", padLen)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent padding bytes")
		}
	}
	return data[:len(data)-padLen], nil
}
