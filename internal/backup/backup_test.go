package backup_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splinterlabs/splinter/internal/backup"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

func TestMain(m *testing.M) {
	backup.SetScryptWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

// testShares returns a plausible 2-of-3 share set.
func testShares() []string {
	return []string{
		"1 legal winner thank year wave sausage worth useful legal winner thank yellow",
		"2 letter advice cage absurd amount doctor acoustic avoid letter advice cage above",
		"3 zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo",
	}
}

// --- manifest.go tests ---

func TestNewManifest(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	manifest := backup.NewManifest("seed", 2, testShares())
	after := time.Now().UTC()

	assert.Equal(t, "seed", manifest.Name)
	assert.Equal(t, 2, manifest.Threshold)
	assert.Equal(t, 3, manifest.ShareCount)
	assert.Equal(t, 12, manifest.WordsPerShare)
	assert.Equal(t, "age", manifest.EncryptionMethod)
	assert.True(t, manifest.CreatedAt.Equal(manifest.CreatedAt.UTC()), "CreatedAt should be UTC")
	assert.True(t, !manifest.CreatedAt.Before(before) && !manifest.CreatedAt.After(after),
		"CreatedAt should be between before and after")
}

func TestCalculateChecksum(t *testing.T) {
	t.Parallel()

	t.Run("deterministic output", func(t *testing.T) {
		t.Parallel()
		data := []byte("test data for checksum")
		checksum1 := backup.CalculateChecksum(data)
		checksum2 := backup.CalculateChecksum(data)
		assert.Equal(t, checksum1, checksum2)
		assert.Len(t, checksum1, 64) // SHA256 hex is 64 chars
	})

	t.Run("different data different checksum", func(t *testing.T) {
		t.Parallel()
		checksum1 := backup.CalculateChecksum([]byte("data one"))
		checksum2 := backup.CalculateChecksum([]byte("data two"))
		assert.NotEqual(t, checksum1, checksum2)
	})
}

func TestVerifyChecksum(t *testing.T) {
	t.Parallel()

	t.Run("matching checksum passes", func(t *testing.T) {
		t.Parallel()
		data := []byte("verify me")
		checksum := backup.CalculateChecksum(data)
		err := backup.VerifyChecksum(data, checksum)
		assert.NoError(t, err)
	})

	t.Run("mismatched checksum returns error", func(t *testing.T) {
		t.Parallel()
		data := []byte("original data")
		wrongChecksum := backup.CalculateChecksum([]byte("different data"))
		err := backup.VerifyChecksum(data, wrongChecksum)
		assert.ErrorIs(t, err, splinterr.ErrArchiveCorrupted)
	})
}

func TestNewArchive(t *testing.T) {
	t.Parallel()

	manifest := backup.NewManifest("seed", 2, testShares())
	encryptedData := []byte("encrypted-content")

	a := backup.NewArchive(manifest, encryptedData)

	assert.Equal(t, backup.ArchiveVersion, a.Version)
	assert.Equal(t, manifest, a.Manifest)
	assert.Equal(t, encryptedData, a.EncryptedData)
	assert.Equal(t, backup.CalculateChecksum(encryptedData), a.Checksum)
}

func TestArchive_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid archive passes", func(t *testing.T) {
		t.Parallel()
		a := backup.NewArchive(backup.NewManifest("seed", 2, testShares()), []byte("data"))
		assert.NoError(t, a.Validate())
	})

	t.Run("wrong version fails", func(t *testing.T) {
		t.Parallel()
		a := backup.NewArchive(backup.NewManifest("seed", 2, testShares()), []byte("data"))
		a.Version = 999
		err := a.Validate()
		require.ErrorIs(t, err, splinterr.ErrArchiveInvalid)
		assert.Contains(t, err.Error(), "999")
	})

	t.Run("threshold above share count fails", func(t *testing.T) {
		t.Parallel()
		a := backup.NewArchive(backup.NewManifest("seed", 5, testShares()), []byte("data"))
		err := a.Validate()
		assert.ErrorIs(t, err, splinterr.ErrArchiveInvalid)
	})

	t.Run("empty data fails", func(t *testing.T) {
		t.Parallel()
		a := backup.NewArchive(backup.NewManifest("seed", 2, testShares()), []byte{})
		err := a.Validate()
		require.ErrorIs(t, err, splinterr.ErrArchiveInvalid)
		assert.Contains(t, err.Error(), "no encrypted data")
	})

	t.Run("bad checksum fails", func(t *testing.T) {
		t.Parallel()
		a := backup.NewArchive(backup.NewManifest("seed", 2, testShares()), []byte("data"))
		a.Checksum = "wrong-checksum"
		err := a.Validate()
		assert.ErrorIs(t, err, splinterr.ErrArchiveCorrupted)
	})
}

// --- crypt.go tests ---

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	plaintext := []byte("1 legal winner thank year")
	ciphertext, err := backup.Encrypt(plaintext, "correct horse")
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "legal winner")

	decrypted, err := backup.Decrypt(ciphertext, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecrypt_WrongPassphrase(t *testing.T) {
	t.Parallel()

	ciphertext, err := backup.Encrypt([]byte("payload"), "right")
	require.NoError(t, err)

	_, err = backup.Decrypt(ciphertext, "wrong")
	assert.Error(t, err)
}

func TestDecryptSecure(t *testing.T) {
	t.Parallel()

	plaintext := []byte("1 legal winner thank year")
	ciphertext, err := backup.Encrypt(plaintext, "correct horse")
	require.NoError(t, err)

	sb, err := backup.DecryptSecure(ciphertext, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, plaintext, sb.Bytes())

	sb.Destroy()
	assert.Nil(t, sb.Bytes())

	_, err = backup.DecryptSecure(ciphertext, "wrong")
	assert.Error(t, err)
}

// --- backup.go Service tests ---

func TestService_CreateAndRestore(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	shares := testShares()
	passphrase := []byte("test-passphrase-123") // gitleaks:allow

	a, archivePath, err := svc.Create("seed", shares, 2, passphrase)
	require.NoError(t, err)
	assert.NotNil(t, a)
	assert.NotEmpty(t, archivePath)
	assert.Equal(t, "seed", a.Manifest.Name)
	assert.Equal(t, backup.ArchiveVersion, a.Version)
	assert.NotEmpty(t, a.EncryptedData)
	assert.Equal(t, backup.CalculateChecksum(a.EncryptedData), a.Checksum)

	// Verify file was created with correct permissions
	info, err := os.Stat(archivePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// The share words never appear in the serialized archive
	raw, err := os.ReadFile(archivePath) // #nosec G304 -- test temp file
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "legal winner")

	// Restore returns the exact share lines
	restored, err := svc.Restore(archivePath, passphrase)
	require.NoError(t, err)
	assert.Equal(t, shares, restored)
}

func TestService_Create_NoShares(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(t.TempDir())
	_, _, err := svc.Create("seed", nil, 2, []byte("pw"))
	assert.ErrorIs(t, err, splinterr.ErrInvalidInput)
}

func TestService_Create_WriteFailure(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(filepath.Join(tmpDir, "archives"))

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "archives"), 0o750))
	require.NoError(t, os.Chmod(filepath.Join(tmpDir, "archives"), 0o500)) //nolint:gosec // G302: Test uses intentionally restrictive perms
	defer func() {
		_ = os.Chmod(filepath.Join(tmpDir, "archives"), 0o700) //nolint:gosec // G302: Restoring perms in test cleanup
	}()

	_, _, err := svc.Create("seed", testShares(), 2, []byte("pw"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing archive")
}

func TestService_Verify(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(t.TempDir())
	_, archivePath, err := svc.Create("seed", testShares(), 2, []byte("pw"))
	require.NoError(t, err)

	manifest, err := svc.Verify(archivePath)
	require.NoError(t, err)
	assert.Equal(t, "seed", manifest.Name)
	assert.Equal(t, 2, manifest.Threshold)
	assert.Equal(t, 3, manifest.ShareCount)
	assert.Equal(t, 12, manifest.WordsPerShare)
}

func TestService_Verify_NotFound(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(t.TempDir())
	_, err := svc.Verify(filepath.Join(t.TempDir(), "missing.splinter"))
	assert.ErrorIs(t, err, splinterr.ErrArchiveNotFound)
}

func TestService_Verify_NotAnArchive(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "garbage.splinter")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	svc := backup.NewService(tmpDir)
	_, err := svc.Verify(path)
	assert.ErrorIs(t, err, splinterr.ErrArchiveInvalid)
}

func TestService_Verify_TamperedData(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	_, archivePath, err := svc.Create("seed", testShares(), 2, []byte("pw"))
	require.NoError(t, err)

	// Flip a byte inside the encrypted payload, keeping valid JSON
	raw, err := os.ReadFile(archivePath) // #nosec G304 -- test temp file
	require.NoError(t, err)

	var a backup.Archive
	require.NoError(t, json.Unmarshal(raw, &a))
	a.EncryptedData[0] ^= 0xff
	tampered, err := json.Marshal(&a)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(archivePath, tampered, 0o600))

	_, err = svc.Verify(archivePath)
	assert.ErrorIs(t, err, splinterr.ErrArchiveCorrupted)
}

func TestService_VerifyWithDecryption(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(t.TempDir())
	passphrase := []byte("test-passphrase-123") // gitleaks:allow
	_, archivePath, err := svc.Create("seed", testShares(), 2, passphrase)
	require.NoError(t, err)

	manifest, err := svc.VerifyWithDecryption(archivePath, passphrase)
	require.NoError(t, err)
	assert.Equal(t, "seed", manifest.Name)

	_, err = svc.VerifyWithDecryption(archivePath, []byte("wrong"))
	assert.ErrorIs(t, err, splinterr.ErrDecryptionFailed)
}

func TestService_Restore_WrongPassphrase(t *testing.T) {
	t.Parallel()

	svc := backup.NewService(t.TempDir())
	_, archivePath, err := svc.Create("seed", testShares(), 2, []byte("right"))
	require.NoError(t, err)

	_, err = svc.Restore(archivePath, []byte("wrong"))
	require.ErrorIs(t, err, splinterr.ErrDecryptionFailed)
	assert.Equal(t, splinterr.ExitAuth, splinterr.ExitCode(err))
}

func TestService_List(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)

	// Empty directory lists nothing
	archives, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, archives)

	_, _, err = svc.Create("seed", testShares(), 2, []byte("pw"))
	require.NoError(t, err)

	// Non-archive files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0o600))

	archives, err = svc.List()
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, backup.ArchiveExtension, filepath.Ext(archives[0]))
	assert.Equal(t, filepath.Join(tmpDir, archives[0]), svc.ArchivePath(archives[0]))
}
