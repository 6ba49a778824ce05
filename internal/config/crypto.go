// internal/config/crypto.go
package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"github.com/nhath/ezchat/internal/applog"
)

const masterKeyName = "__master_key__"

var errShortCipherText = errors.New("ciphertext too short")

// GetMasterKey retrieves or generates the profile encryption key
func GetMasterKey() ([]byte, error) {
	ks, err := Secrets()
	if err != nil {
		return nil, err
	}

	keyHex, err := ks.Get(masterKeyName)
	if err == nil {
		return hex.DecodeString(keyHex)
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := ks.Set(masterKeyName, hex.EncodeToString(key)); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt seals plainText with AES-GCM and hex-encodes nonce+ciphertext
func Encrypt(plainText string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	return hex.EncodeToString(gcm.Seal(nonce, nonce, []byte(plainText), nil)), nil
}

// Decrypt reverses Encrypt
func Decrypt(cipherTextHex string, key []byte) (string, error) {
	cipherText, err := hex.DecodeString(cipherTextHex)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errShortCipherText
	}

	plainText, err := gcm.Open(nil, cipherText[:nonceSize], cipherText[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(plainText), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// sealProfiles encrypts in-memory passwords before saving.
// Without a keyring plaintext passwords are never written.
func (c *Config) sealProfiles() {
	if !c.hasPasswords() {
		return
	}
	key, err := GetMasterKey()
	if err != nil {
		applog.Error("master key unavailable, new profile passwords not saved: %v", err)
		return
	}
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.Password == "" {
			continue
		}
		sealed, err := Encrypt(p.Password, key)
		if err != nil {
			applog.Error("seal profile %s: %v", p.Name, err)
			continue
		}
		p.EncryptedPassword = sealed
	}
}

// openProfiles decrypts sealed passwords after loading
func (c *Config) openProfiles() {
	sealed := false
	for _, p := range c.Profiles {
		if p.EncryptedPassword != "" {
			sealed = true
			break
		}
	}
	if !sealed {
		return
	}
	key, err := GetMasterKey()
	if err != nil {
		applog.Error("master key unavailable: %v", err)
		return
	}
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.EncryptedPassword == "" {
			continue
		}
		plain, err := Decrypt(p.EncryptedPassword, key)
		if err != nil {
			applog.Error("open profile %s: %v", p.Name, err)
			continue
		}
		p.Password = plain
	}
}

func (c *Config) hasPasswords() bool {
	for _, p := range c.Profiles {
		if p.Password != "" || p.EncryptedPassword != "" {
			return true
		}
	}
	return false
}
