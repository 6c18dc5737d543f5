package backup

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/splinterlabs/splinter/internal/secmem"
)

// scryptWorkFactor is the log2 scrypt cost used for archive passphrases.
// 18 is the age default.
//
//nolint:gochecknoglobals // Tests lower the cost to keep encryption fast
var scryptWorkFactor = 18

// SetScryptWorkFactor overrides the scrypt cost parameter (log2 N).
func SetScryptWorkFactor(logN int) {
	scryptWorkFactor = logN
}

// Encrypt encrypts plaintext using age with a passphrase-based recipient.
func Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	recipient.SetWorkFactor(scryptWorkFactor)

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext using age with a passphrase-based identity.
func Decrypt(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, fmt.Errorf("initializing decryption: %w", err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}

	return plaintext, nil
}

// DecryptSecure decrypts ciphertext into locked memory. The caller owns
// the returned buffer and must Destroy it after use.
func DecryptSecure(ciphertext []byte, passphrase string) (*secmem.SecureBytes, error) {
	plaintext, err := Decrypt(ciphertext, passphrase)
	if err != nil {
		return nil, err
	}

	sb, err := secmem.SecureBytesFromSlice(plaintext)
	if err != nil {
		return nil, err
	}
	secmem.ZeroBytes(plaintext)

	return sb, nil
}
