package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Encryption errors.
var (
	ErrPassphraseTooWeak  = errors.New("backup: passphrase too weak (minimum 8 characters)")
	ErrPassphraseRequired = errors.New("backup: backup is encrypted, a passphrase is required")
	ErrDecryptionFailed   = errors.New("backup: decryption failed - wrong passphrase or corrupted data")
)

// Cipher names recorded in the backup header.
const (
	CipherAESGCM   = "aes-gcm"
	CipherChaCha20 = "chacha20-poly1305"
)

const (
	// MinPassphraseLength is the minimum passphrase length.
	MinPassphraseLength = 8

	// SaltLength is the salt length used in key derivation.
	SaltLength = 16

	argon2Time    = 3
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
)

// ValidatePassphrase checks that passphrase is usable for encryption.
// An empty passphrase means no encryption and is valid.
func ValidatePassphrase(passphrase []byte) error {
	if len(passphrase) > 0 && len(passphrase) < MinPassphraseLength {
		return ErrPassphraseTooWeak
	}
	return nil
}

// deriveKey derives a 32-byte key from passphrase using Argon2id.
func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

func newSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("backup: generate salt: %w", err)
	}
	return salt, nil
}

// newAEAD creates the named cipher over key.
func newAEAD(name string, key []byte) (cipher.AEAD, error) {
	switch name {
	case CipherAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case CipherChaCha20:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("backup: unsupported cipher %q", name)
	}
}

// seal encrypts plaintext, prepending the random nonce.
func seal(aead cipher.AEAD, plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// open decrypts ciphertext produced by seal.
func open(aead cipher.AEAD, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrDecryptionFailed
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, additionalData)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plain, nil
}

// zero wipes key material.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
