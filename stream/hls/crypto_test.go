package hls

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encryptReference is the inverse of DecryptSegment for test use: PKCS7 pad
// then AES-128-CBC encrypt.
func encryptReference(t *testing.T, plaintext, key, iv []byte) []byte {
	t.Helper()

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append(append([]byte{}, plaintext...), bytes.Repeat([]byte{byte(padLen)}, padLen)...)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext
}

func TestDecryptSegmentRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := []byte("fedcba9876543210")
	plaintexts := [][]byte{
		[]byte("hello, radio"),
		bytes.Repeat([]byte{0xAB}, aes.BlockSize), // exactly one block before padding
		{},
	}

	for _, plaintext := range plaintexts {
		ciphertext := encryptReference(t, plaintext, key, iv)

		got, err := DecryptSegment(ciphertext, key, "0x66656463626139383736353433323130", 0)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestDecryptSegmentDerivedIV(t *testing.T) {
	key := []byte("0123456789abcdef")

	for _, seqNo := range []uint64{0, 1, 255, 1 << 40, ^uint64(0)} {
		// The derived IV is 8 zero bytes plus the big-endian sequence number.
		iv := make([]byte, 16)
		binary.BigEndian.PutUint64(iv[8:], seqNo)

		plaintext := []byte("derived iv payload")
		ciphertext := encryptReference(t, plaintext, key, iv)

		got, err := DecryptSegment(ciphertext, key, "", seqNo)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestDecryptSegmentIVPrefixes(t *testing.T) {
	key := []byte("0123456789abcdef")
	iv := bytes.Repeat([]byte{0x11}, 16)
	ciphertext := encryptReference(t, []byte("x"), key, iv)

	for _, ivHex := range []string{
		"11111111111111111111111111111111",
		"0x11111111111111111111111111111111",
		"0X11111111111111111111111111111111",
	} {
		got, err := DecryptSegment(ciphertext, key, ivHex, 99)
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), got)
	}
}

func TestDecryptSegmentBadKeyLength(t *testing.T) {
	data := make([]byte, aes.BlockSize)

	for _, n := range []int{0, 8, 15, 17, 32} {
		_, err := DecryptSegment(data, make([]byte, n), "", 0)

		require.Error(t, err)
		var streamErr *StreamError
		require.ErrorAs(t, err, &streamErr)
		assert.Equal(t, ErrCodeKeyInvalid, streamErr.Code)
	}
}

func TestDecryptSegmentBadIVLength(t *testing.T) {
	key := []byte("0123456789abcdef")
	data := make([]byte, aes.BlockSize)

	for _, n := range []int{0, 8, 15, 17, 32} {
		ivHex := "0x" + strings.Repeat("00", n)

		_, err := DecryptSegment(data, key, ivHex, 0)

		require.Error(t, err)
		var streamErr *StreamError
		require.ErrorAs(t, err, &streamErr)
		assert.Equal(t, ErrCodeDecryption, streamErr.Code)
	}
}

func TestDecryptSegmentCorruptCiphertext(t *testing.T) {
	key := []byte("0123456789abcdef")

	t.Run("not block aligned", func(t *testing.T) {
		_, err := DecryptSegment(make([]byte, 17), key, "", 0)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecryptSegment(nil, key, "", 0)
		assert.Error(t, err)
	})

	t.Run("truncated ciphertext", func(t *testing.T) {
		// A plaintext block ending in 0x00 encrypts to a ciphertext whose
		// first block, taken alone, decrypts to an invalid pad byte.
		iv := make([]byte, 16)
		plaintext := append(bytes.Repeat([]byte{0x01}, 15), 0x00)
		ciphertext := encryptReference(t, plaintext, key, iv)

		_, err := DecryptSegment(ciphertext[:16], key, "0x"+"00000000000000000000000000000000", 0)
		assert.Error(t, err)
	})
}
