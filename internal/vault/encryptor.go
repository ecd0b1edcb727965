package vault

import "io"

// Encryptor handles at-rest encryption of uploaded files.
// Encryption uses the public key only — no user intervention required.
// Decryption requires a passphrase to unlock the private key, producing a
// Decryptor for the session.
type Encryptor interface {
	// Setup performs one-time key generation. Generates a key pair, stores
	// the public key in plaintext, and encrypts the private key with the
	// provided passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	// Uses the public key only — no passphrase required.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase and returns a
	// Decryptor valid for the duration of the session. Returns an error if
	// the passphrase is incorrect.
	Unlock(passphrase string) (Decryptor, error)

	// IsConfigured returns true if the key pair exists at configured paths.
	IsConfigured() bool
}

// Decryptor holds an unlocked private key in memory for the duration of a
// retrieve session. The unlocked key is never written to disk.
type Decryptor interface {
	// Decrypt decrypts data read from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}
