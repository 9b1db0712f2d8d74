package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/saulo-duarte/taskflow/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		t.Setenv("CRYPTO_KEY", "short_key")

		defer func() {
			if r := recover(); r == nil {
				t.Errorf("InitCrypto should panic with a short key")
			}
		}()

		config.InitCrypto()
	})

	t.Run("ValidKey", func(t *testing.T) {
		t.Setenv("CRYPTO_KEY", testKey)
		config.InitCrypto()
	})
}

func TestEncryptDecrypt(t *testing.T) {
	os.Setenv("CRYPTO_KEY", testKey)
	config.InitCrypto()

	t.Run("SimpleText", func(t *testing.T) {
		plaintext := "secret flash payload"

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != plaintext {
			t.Errorf("decrypted text %q does not match original %q", decrypted, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("encryption is not randomized, ciphertexts should differ")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != "" {
			t.Errorf("expected empty plaintext, got %q", decrypted)
		}
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := config.Decrypt("YWJj")
		if !errors.Is(err, config.ErrCiphertextTooShort) {
			t.Errorf("expected ErrCiphertextTooShort, got %v", err)
		}
	})

	t.Run("Tampered", func(t *testing.T) {
		ciphertext, _ := config.Encrypt("payload")
		b := []byte(ciphertext)
		if b[len(b)-1] == 'A' {
			b[len(b)-1] = 'B'
		} else {
			b[len(b)-1] = 'A'
		}
		if _, err := config.Decrypt(string(b)); err == nil {
			t.Errorf("expected tampered ciphertext to fail")
		}
	})
}
