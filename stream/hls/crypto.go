package hls

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nabetama/nhk-radio-player/logging"
)

// KeySize is the AES-128 key and IV length in bytes.
const KeySize = 16

// DecryptSegment decrypts AES-128-CBC segment data. ivHex, when non-empty,
// is a hex string with an optional 0x/0X prefix that must decode to exactly
// 16 bytes. When ivHex is empty the IV is derived from seqNo: 8 zero bytes
// followed by the big-endian sequence number, per the HLS convention.
func DecryptSegment(data, key []byte, ivHex string, seqNo uint64) ([]byte, error) {
	if len(key) != KeySize {
		return nil, NewStreamErrorWithFields("", ErrCodeKeyInvalid,
			fmt.Sprintf("invalid key length: expected %d, got %d", KeySize, len(key)), nil,
			logging.Fields{"key_length": len(key)})
	}

	iv, err := segmentIV(ivHex, seqNo)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, NewStreamError("", ErrCodeDecryption, "failed to create cipher", err)
	}

	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, NewStreamErrorWithFields("", ErrCodeDecryption,
			"ciphertext is not a whole number of blocks", nil,
			logging.Fields{"length": len(data)})
	}

	plaintext := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, data)

	return stripPKCS7(plaintext)
}

// segmentIV returns the 16-byte IV for a segment, parsing ivHex when
// present and deriving from seqNo otherwise.
func segmentIV(ivHex string, seqNo uint64) ([]byte, error) {
	if ivHex == "" {
		iv := make([]byte, KeySize)
		binary.BigEndian.PutUint64(iv[8:], seqNo)
		return iv, nil
	}

	trimmed := strings.TrimPrefix(strings.TrimPrefix(ivHex, "0x"), "0X")
	iv, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, NewStreamError("", ErrCodeDecryption, "invalid IV hex", err)
	}
	if len(iv) != KeySize {
		return nil, NewStreamErrorWithFields("", ErrCodeDecryption,
			fmt.Sprintf("invalid IV length: expected %d, got %d", KeySize, len(iv)), nil,
			logging.Fields{"iv_length": len(iv)})
	}
	return iv, nil
}

// stripPKCS7 validates and removes PKCS7 padding.
func stripPKCS7(plaintext []byte) ([]byte, error) {
	n := int(plaintext[len(plaintext)-1])
	if n == 0 || n > aes.BlockSize || n > len(plaintext) {
		return nil, NewStreamError("", ErrCodeDecryption, "invalid padding", nil)
	}
	for _, b := range plaintext[len(plaintext)-n:] {
		if int(b) != n {
			return nil, NewStreamError("", ErrCodeDecryption, "invalid padding", nil)
		}
	}
	return plaintext[:len(plaintext)-n], nil
}
