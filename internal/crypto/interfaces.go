package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// Keychain seals small secrets for at-rest storage on the device. The seal
// is bound to a device-local key file: copying the database to another
// machine without that file renders sealed values unreadable.
//
// Scheme:
//
//	secret, salt = loadOrCreateDeviceKey(path)   (random, persisted 0600)
//	sealKey      = Argon2id(secret ‖ "seal", salt)
//	blob         = base64(nonce ‖ AES-256-GCM(sealKey, plain))
type Keychain interface {
	// Seal encrypts plain and returns a compact blob safe to persist.
	Seal(plain []byte) (string, error)

	// Open reverses Seal. Returns an error if the blob was sealed under a
	// different device key or has been tampered with.
	Open(sealed string) ([]byte, error)
}
