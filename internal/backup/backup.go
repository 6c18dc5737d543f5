package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/splinterlabs/splinter/internal/fileutil"
	"github.com/splinterlabs/splinter/internal/secmem"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

const (
	// ArchiveExtension is the file extension for share archives.
	ArchiveExtension = ".splinter"

	// ArchiveDirPermissions is the permission mode for the archive directory.
	ArchiveDirPermissions = 0o750

	// ArchiveFilePermissions is the permission mode for archive files.
	ArchiveFilePermissions = 0o600
)

// Service provides share archive operations.
type Service struct {
	archiveDir string
}

// NewService creates a new archive service rooted at archiveDir.
func NewService(archiveDir string) *Service {
	return &Service{archiveDir: archiveDir}
}

// Create encrypts the share lines under the passphrase and writes them
// to a new archive file. The passphrase should be zeroed by the caller
// after this call returns.
func (s *Service) Create(name string, shares []string, threshold int, passphrase []byte) (*Archive, string, error) {
	if len(shares) == 0 {
		return nil, "", splinterr.WithDetails(splinterr.ErrInvalidInput, map[string]string{
			"reason": "no shares to archive",
		})
	}

	payload, err := json.Marshal(ShareData{Shares: shares})
	if err != nil {
		return nil, "", fmt.Errorf("serializing shares: %w", err)
	}
	defer secmem.ZeroBytes(payload)

	encryptedData, err := Encrypt(payload, string(passphrase))
	if err != nil {
		return nil, "", fmt.Errorf("encrypting shares: %w", err)
	}

	archive := NewArchive(NewManifest(name, threshold, shares), encryptedData)

	archivePath, err := s.writeArchive(archive)
	if err != nil {
		return nil, "", fmt.Errorf("writing archive: %w", err)
	}

	return archive, archivePath, nil
}

// Verify verifies an archive file's integrity without decrypting.
func (s *Service) Verify(archivePath string) (*Manifest, error) {
	archive, err := s.readArchive(archivePath)
	if err != nil {
		return nil, err
	}

	if err := archive.Validate(); err != nil {
		return nil, err
	}

	return &archive.Manifest, nil
}

// VerifyWithDecryption verifies an archive and tests decryption.
// The passphrase should be zeroed by the caller after this call returns.
func (s *Service) VerifyWithDecryption(archivePath string, passphrase []byte) (*Manifest, error) {
	archive, err := s.readArchive(archivePath)
	if err != nil {
		return nil, err
	}

	if validationErr := archive.Validate(); validationErr != nil {
		return nil, validationErr
	}

	sb, err := DecryptSecure(archive.EncryptedData, string(passphrase))
	if err != nil {
		return nil, splinterr.ErrDecryptionFailed
	}
	sb.Destroy()

	return &archive.Manifest, nil
}

// Restore decrypts an archive and returns its share lines.
// The passphrase should be zeroed by the caller after this call returns.
func (s *Service) Restore(archivePath string, passphrase []byte) ([]string, error) {
	archive, err := s.readArchive(archivePath)
	if err != nil {
		return nil, err
	}

	if validationErr := archive.Validate(); validationErr != nil {
		return nil, validationErr
	}

	sb, err := DecryptSecure(archive.EncryptedData, string(passphrase))
	if err != nil {
		return nil, splinterr.ErrDecryptionFailed
	}
	defer sb.Destroy()

	var data ShareData
	if err := json.Unmarshal(sb.Bytes(), &data); err != nil {
		return nil, splinterr.WithDetails(splinterr.ErrArchiveInvalid, map[string]string{
			"reason": "payload is not a share list",
		})
	}

	return data.Shares, nil
}

// List returns all archive files in the archive directory.
func (s *Service) List() ([]string, error) {
	if err := os.MkdirAll(s.archiveDir, ArchiveDirPermissions); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	entries, err := os.ReadDir(s.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ArchiveExtension {
			archives = append(archives, entry.Name())
		}
	}

	return archives, nil
}

// ArchivePath returns the path to an archive file inside the archive directory.
func (s *Service) ArchivePath(filename string) string {
	return filepath.Join(s.archiveDir, filename)
}

// writeArchive writes an archive into the archive directory.
func (s *Service) writeArchive(archive *Archive) (string, error) {
	if err := os.MkdirAll(s.archiveDir, ArchiveDirPermissions); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02-150405")
	filename := fmt.Sprintf("%s-%s%s", archive.Manifest.Name, timestamp, ArchiveExtension)
	archivePath := filepath.Join(s.archiveDir, filename)

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing archive: %w", err)
	}

	if err := fileutil.WriteAtomic(archivePath, data, ArchiveFilePermissions); err != nil {
		return "", fmt.Errorf("writing archive file: %w", err)
	}

	return archivePath, nil
}

// readArchive reads an archive from a file. The path may point anywhere,
// not just inside the archive directory.
func (s *Service) readArchive(path string) (*Archive, error) {
	// #nosec G304 -- path is from user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, splinterr.WithDetails(splinterr.ErrArchiveNotFound, map[string]string{
				"path": path,
			})
		}
		return nil, fmt.Errorf("reading archive file: %w", err)
	}

	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, splinterr.WithDetails(splinterr.ErrArchiveInvalid, map[string]string{
			"reason": "file is not a share archive",
		})
	}

	return &archive, nil
}
