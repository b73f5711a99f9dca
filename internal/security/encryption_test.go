package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurity_AESEncryption(t *testing.T) {
	t.Run("success - text is encrypted and decrypted", func(t *testing.T) {
		// arrange
		key, err := GenerateRandomKey(32)
		require.NoError(t, err)
		enc, err := NewAESEncrypter([]byte(key))
		require.NoError(t, err)
		expectedText := "this is some text"

		// act
		encrypted, err := enc.EncryptAES(expectedText)
		require.NoError(t, err)
		decrypted, err := enc.DecryptAES(encrypted)

		// assert
		assert.NoError(t, err)
		assert.NotEqual(t, expectedText, encrypted)
		assert.Equal(t, expectedText, string(decrypted))
	})
	t.Run("failure - wrong key", func(t *testing.T) {
		enc, err := NewAESEncrypter([]byte("0123456789abcdef0123456789abcdef"))
		require.NoError(t, err)
		other, err := NewAESEncrypter([]byte("fedcba9876543210fedcba9876543210"))
		require.NoError(t, err)
		encrypted, err := enc.EncryptAES("secret")
		require.NoError(t, err)

		_, err = other.DecryptAES(encrypted)

		assert.Error(t, err)
	})
	t.Run("failure - invalid key length", func(t *testing.T) {
		enc, err := NewAESEncrypter([]byte("short"))

		assert.Nil(t, enc)
		assert.Error(t, err)
	})
	t.Run("failure - malformed ciphertext", func(t *testing.T) {
		enc, err := NewAESEncrypter([]byte("0123456789abcdef"))
		require.NoError(t, err)

		_, err = enc.DecryptAES("zz")
		assert.Error(t, err)
		_, err = enc.DecryptAES("00")
		assert.Error(t, err)
	})
}

func TestSecurity_LoadOrCreateHashKey(t *testing.T) {
	t.Run("success - configured key is used", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		key, err := LoadOrCreateHashKey("configured", path)

		assert.NoError(t, err)
		assert.Equal(t, []byte("configured"), key)
		assert.NoFileExists(t, path)
	})
	t.Run("success - key is generated and written", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")

		key, err := LoadOrCreateHashKey("", path)

		require.NoError(t, err)
		assert.Len(t, key, 32)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "PROVIDERCI_HASH_KEY="+string(key)+"\n", string(content))
	})
}
