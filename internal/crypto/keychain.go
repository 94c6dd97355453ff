package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

const (
	secretSize = 32
	saltSize   = 16

	// Argon2id parameters per the OWASP (2024) recommendation.
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32 // 256 bits
)

// keychain is the private implementation of [Keychain].
type keychain struct {
	sealKey []byte
}

// deviceKeyFile is the on-disk representation of the device key material.
// Neither field is secret-derived: both are raw CSPRNG output, stored with
// 0600 permissions.
type deviceKeyFile struct {
	Secret string `json:"secret"`
	Salt   string `json:"salt"`
}

// NewKeychain loads the device key material from keyPath, creating it on
// first use, and derives the sealing key from it.
func NewKeychain(keyPath string) (Keychain, error) {
	secret, salt, err := loadOrCreateDeviceKey(keyPath)
	if err != nil {
		return nil, fmt.Errorf("device key: %w", err)
	}

	return &keychain{sealKey: deriveSealKey(secret, salt)}, nil
}

// NewEphemeralKeychain derives the sealing key from throwaway random
// material that lives only in process memory. Pairs with the memory store
// driver and tests.
func NewEphemeralKeychain() (Keychain, error) {
	secret := make([]byte, secretSize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, fmt.Errorf("generate ephemeral secret: %w", err)
	}
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate ephemeral salt: %w", err)
	}

	return &keychain{sealKey: deriveSealKey(secret, salt)}, nil
}

// deriveSealKey stretches the raw device secret into the sealing key. The
// "seal" context string keeps this key independent from any other key later
// derived from the same secret.
func deriveSealKey(secret, salt []byte) []byte {
	input := make([]byte, 0, len(secret)+4)
	input = append(input, secret...)
	input = append(input, []byte("seal")...)

	return argon2.IDKey(input, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func loadOrCreateDeviceKey(keyPath string) (secret, salt []byte, err error) {
	raw, err := os.ReadFile(keyPath)
	if err == nil {
		var kf deviceKeyFile
		if err := json.Unmarshal(raw, &kf); err != nil {
			return nil, nil, fmt.Errorf("decode key file: %w", err)
		}
		secret, err = base64.StdEncoding.DecodeString(kf.Secret)
		if err != nil {
			return nil, nil, fmt.Errorf("decode key secret: %w", err)
		}
		salt, err = base64.StdEncoding.DecodeString(kf.Salt)
		if err != nil {
			return nil, nil, fmt.Errorf("decode key salt: %w", err)
		}
		if len(secret) != secretSize || len(salt) != saltSize {
			return nil, nil, errors.New("malformed key file")
		}
		return secret, salt, nil
	}
	if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("read key file: %w", err)
	}

	secret = make([]byte, secretSize)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, nil, fmt.Errorf("generate secret: %w", err)
	}
	salt = make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	kf := deviceKeyFile{
		Secret: base64.StdEncoding.EncodeToString(secret),
		Salt:   base64.StdEncoding.EncodeToString(salt),
	}
	payload, err := json.Marshal(kf)
	if err != nil {
		return nil, nil, fmt.Errorf("encode key file: %w", err)
	}

	if dir := filepath.Dir(keyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create key dir: %w", err)
		}
	}
	if err := os.WriteFile(keyPath, payload, 0o600); err != nil {
		return nil, nil, fmt.Errorf("write key file: %w", err)
	}

	return secret, salt, nil
}

// Seal implements [Keychain]. It encrypts plain with AES-256-GCM under the
// sealing key. A random 12-byte nonce is prepended to the ciphertext so
// that Open can locate it: blob = nonce ‖ ciphertext.
func (k *keychain) Seal(plain []byte) (string, error) {
	gcm, err := k.newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...)), nil
}

// Open implements [Keychain]. It reverses [keychain.Seal]. The blob must be
// at least as long as the GCM nonce (12 bytes). Returns an error if the
// blob is too short, the device key is wrong, or the ciphertext is
// corrupted (authentication-tag mismatch).
func (k *keychain) Open(sealed string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("decode sealed blob: %w", err)
	}

	gcm, err := k.newGCM()
	if err != nil {
		return nil, err
	}

	if len(blob) < gcm.NonceSize() {
		return nil, errors.New("sealed blob too short")
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("open sealed blob: %w", err)
	}

	return plain, nil
}

func (k *keychain) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(k.sealKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
