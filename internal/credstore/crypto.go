package credstore

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed layout: magic | salt | nonce | ciphertext.
var sealMagic = []byte("SOJUS1\x00")

const (
	saltSize      = 16
	argonTime     = 1
	argonMemoryKB = 64 * 1024
	argonThreads  = 2
)

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, argonTime, argonMemoryKB, argonThreads, chacha20poly1305.KeySize)
}

func sealed(data []byte) bool {
	return bytes.HasPrefix(data, sealMagic)
}

func seal(passphrase, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 0, len(sealMagic)+saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	// The header is authenticated as associated data.
	return aead.Seal(out, nonce, plaintext, out[:len(sealMagic)+saltSize]), nil
}

func unseal(passphrase, data []byte) ([]byte, error) {
	header := len(sealMagic) + saltSize
	if len(data) < header+chacha20poly1305.NonceSizeX {
		return nil, errBadFormat
	}
	salt := data[len(sealMagic):header]
	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	nonce := data[header : header+aead.NonceSize()]
	plaintext, err := aead.Open(nil, nonce, data[header+aead.NonceSize():], data[:header])
	if err != nil {
		return nil, errBadPassphrase
	}
	return plaintext, nil
}
