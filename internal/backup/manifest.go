// Package backup provides encrypted share archives. An archive bundles
// every share line from a split into one passphrase-protected file, for
// users who want a single artifact to store instead of n separate slips
// of paper.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

// ArchiveVersion is the current archive format version.
const ArchiveVersion = 1

// Archive represents a complete share archive.
type Archive struct {
	// Version is the archive format version.
	Version int `json:"version"`

	// Manifest contains archive metadata, readable without the passphrase.
	Manifest Manifest `json:"manifest"`

	// EncryptedData is the age-encrypted share payload.
	EncryptedData []byte `json:"encrypted_data"`

	// Checksum is the SHA256 hash of EncryptedData.
	Checksum string `json:"checksum"`
}

// Manifest contains metadata about the archive.
type Manifest struct {
	// Name labels the archived seed.
	Name string `json:"name"`

	// CreatedAt is when the archive was created.
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

// ShareData is the decrypted payload within an archive.
type ShareData struct {
	// Shares holds the share lines exactly as split printed them.
	Shares []string `json:"shares"`
}

// NewManifest creates a manifest for a set of share lines.
func NewManifest(name string, threshold int, shares []string) Manifest {
	wordsPerShare := 0
	if len(shares) > 0 {
		// A share line is "<index> <words>"
		wordsPerShare = len(strings.Fields(shares[0])) - 1
	}

	return Manifest{
		Name:             name,
		CreatedAt:        time.Now().UTC(),
		Threshold:        threshold,
		ShareCount:       len(shares),
		WordsPerShare:    wordsPerShare,
		EncryptionMethod: "age",
	}
}

// NewArchive creates an archive with the given manifest and encrypted data.
func NewArchive(manifest Manifest, encryptedData []byte) *Archive {
	return &Archive{
		Version:       ArchiveVersion,
		Manifest:      manifest,
		EncryptedData: encryptedData,
		Checksum:      CalculateChecksum(encryptedData),
	}
}

// CalculateChecksum computes the SHA256 checksum of data.
func CalculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// VerifyChecksum verifies that data matches the expected checksum.
func VerifyChecksum(data []byte, expected string) error {
	actual := CalculateChecksum(data)
	if actual != expected {
		return splinterr.WithDetails(splinterr.ErrArchiveCorrupted, map[string]string{
			"expected": expected,
			"actual":   actual,
		})
	}
	return nil
}

// Validate checks the archive for consistency.
func (a *Archive) Validate() error {
	if a.Version != ArchiveVersion {
		return splinterr.WithDetails(splinterr.ErrArchiveInvalid, map[string]string{
			"version": strconv.Itoa(a.Version),
		})
	}

	if a.Manifest.Threshold < 1 || a.Manifest.Threshold > a.Manifest.ShareCount {
		return splinterr.WithDetails(splinterr.ErrArchiveInvalid, map[string]string{
			"reason": "manifest threshold is inconsistent with share count",
		})
	}

	if len(a.EncryptedData) == 0 {
		return splinterr.WithDetails(splinterr.ErrArchiveInvalid, map[string]string{
			"reason": "no encrypted data",
		})
	}

	return VerifyChecksum(a.EncryptedData, a.Checksum)
}
