// Package contracts defines the interface contracts for the Splinter MVP.
// These are design artifacts - not compiled code.
// Actual implementations go in internal/backup/
package contracts

import (
	"time"
)

// ArchiveService defines the interface for encrypted share archives.
// An archive bundles every share line from a split into one
// passphrase-protected file.
type ArchiveService interface {
	// Create encrypts the share lines and writes a timestamped
	// .splinter archive. Returns the archive and its path.
	Create(name string, shares []string, threshold int, passphrase []byte) (*ShareArchive, string, error)

	// Verify checks archive structure and checksum without the
	// passphrase.
	Verify(path string) (*ArchiveManifest, error)

	// VerifyWithDecryption additionally proves the passphrase decrypts
	// the payload, without returning the shares.
	VerifyWithDecryption(path string, passphrase []byte) (*ArchiveManifest, error)

	// Restore decrypts an archive and returns the share lines exactly
	// as split printed them.
	Restore(path string, passphrase []byte) ([]string, error)

	// List returns the archive filenames under the archive directory,
	// sorted by name. Filenames embed the creation timestamp, so lexical
	// order is creation order.
	List() ([]string, error)
}

// ShareArchive is the complete archive file structure, serialized as JSON
// with a .splinter extension.
type ShareArchive struct {
	// Version is the archive format version.
	Version int `json:"version"`

	// Manifest is the unencrypted metadata.
	Manifest ArchiveManifest `json:"manifest"`

	// EncryptedData is the age-encrypted share payload.
	EncryptedData []byte `json:"encrypted_data"`

	// Checksum is SHA256 of EncryptedData.
	Checksum string `json:"checksum"`
}

// ArchiveManifest contains archive metadata, readable without the
// passphrase. It deliberately excludes anything derived from the secret.
type ArchiveManifest struct {
	// Name labels the archived seed.
	Name string `json:"name"`

	// CreatedAt is the archive creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Threshold is the number of shares needed to reconstruct the seed.
	Threshold int `json:"threshold"`

	// ShareCount is the number of shares in the archive.
	ShareCount int `json:"share_count"`

	// WordsPerShare is 12 or 24.
	WordsPerShare int `json:"words_per_share"`

	// EncryptionMethod describes the encryption used.
	EncryptionMethod string `json:"encryption_method"`
}

// Archive-related errors.
var (
	ErrArchiveNotFound  = Error{Code: "ARCHIVE_NOT_FOUND", Message: "share archive not found"}
	ErrArchiveCorrupted = Error{Code: "ARCHIVE_CORRUPTED", Message: "share archive is corrupted - checksum mismatch"}
	ErrArchiveInvalid   = Error{Code: "INVALID_ARCHIVE", Message: "share archive format is invalid"}
	ErrDecryptionFailed = Error{Code: "DECRYPTION_FAILED", Message: "decryption failed - wrong passphrase or corrupted file"}
)
