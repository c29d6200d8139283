package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/dcx-tools/dcx/internal/domain"
)

const (
	// CatalogSchemaVersion defines the current schema version for catalog
	// metadata files.
	CatalogSchemaVersion = "1.0.0"
	// CatalogFilePermissions defines the permissions for catalog files.
	CatalogFilePermissions = 0644
	// CatalogDirPermissions defines the permissions for the catalog directory.
	CatalogDirPermissions = 0755
	// LockTimeout defines the maximum time to wait for a lock.
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts.
	LockRetryInterval = 100 * time.Millisecond
)

// catalogMetadata wraps a catalog entry with integrity information.
type catalogMetadata struct {
	SchemaVersion string              `json:"schema_version"`
	Checksum      string              `json:"checksum"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Entry         *domain.CatalogEntry `json:"entry"`
}

// fileCatalogRepository implements CatalogRepository on a directory of
// contract documents plus checksum-stamped metadata files.
type fileCatalogRepository struct {
	fs         afero.Fs
	catalogDir string
}

// NewFileCatalogRepository creates a new file-based catalog repository.
func NewFileCatalogRepository(fs afero.Fs, catalogDir string) CatalogRepository {
	if catalogDir == "" {
		catalogDir = ".dcx-catalog"
	}
	return &fileCatalogRepository{
		fs:         fs,
		catalogDir: catalogDir,
	}
}

// Save persists the contract document and its metadata with proper locking.
func (r *fileCatalogRepository) Save(ctx context.Context, entry *domain.CatalogEntry, contract []byte) error {
	if entry == nil || entry.Key == "" {
		return fmt.Errorf("catalog entry has no key")
	}
	if err := r.ensureCatalogDir(); err != nil {
		return fmt.Errorf("failed to ensure catalog directory: %w", err)
	}
	unlock, err := r.acquireLock(ctx, entry.Key, false)
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.writeAtomic(r.contractFilename(entry.Key), contract); err != nil {
		return fmt.Errorf("failed to write contract document: %w", err)
	}
	metadata := catalogMetadata{
		SchemaVersion: CatalogSchemaVersion,
		Checksum:      checksum(contract),
		UpdatedAt:     time.Now(),
		Entry:         entry,
	}
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog metadata: %w", err)
	}
	if err := r.writeAtomic(r.metadataFilename(entry.Key), data); err != nil {
		return fmt.Errorf("failed to write catalog metadata: %w", err)
	}
	return nil
}

// Load retrieves a catalog entry and its contract document, verifying the
// stored checksum.
func (r *fileCatalogRepository) Load(ctx context.Context, key string) (*domain.CatalogEntry, []byte, error) {
	// Check first: the lock file lives in the catalog directory, which may
	// not exist yet.
	exists, err := afero.Exists(r.fs, r.metadataFilename(key))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat catalog metadata: %w", err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("contract %s not found in catalog", key)
	}
	unlock, err := r.acquireLock(ctx, key, true)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()
	metaData, err := afero.ReadFile(r.fs, r.metadataFilename(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("contract %s not found in catalog", key)
		}
		return nil, nil, fmt.Errorf("failed to read catalog metadata: %w", err)
	}
	var metadata catalogMetadata
	if err := json.Unmarshal(metaData, &metadata); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal catalog metadata: %w", err)
	}
	if metadata.SchemaVersion != CatalogSchemaVersion {
		return nil, nil, fmt.Errorf("incompatible catalog schema version: expected %s, got %s",
			CatalogSchemaVersion, metadata.SchemaVersion)
	}
	contract, err := afero.ReadFile(r.fs, r.contractFilename(key))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read contract document: %w", err)
	}
	if checksum(contract) != metadata.Checksum {
		return nil, nil, fmt.Errorf("contract checksum mismatch: catalog entry %s may be corrupted", key)
	}
	return metadata.Entry, contract, nil
}

// List returns all catalog entries sorted by key.
func (r *fileCatalogRepository) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	exists, err := afero.DirExists(r.fs, r.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog directory: %w", err)
	}
	if !exists {
		return nil, nil
	}
	infos, err := afero.ReadDir(r.fs, r.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	var entries []domain.CatalogEntry
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".meta.json") {
			continue
		}
		data, err := afero.ReadFile(r.fs, filepath.Join(r.catalogDir, info.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", info.Name(), err)
		}
		var metadata catalogMetadata
		if err := json.Unmarshal(data, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", info.Name(), err)
		}
		if metadata.Entry != nil {
			entries = append(entries, *metadata.Entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Delete removes a catalog entry and its contract document.
func (r *fileCatalogRepository) Delete(ctx context.Context, key string) error {
	exists, err := afero.Exists(r.fs, r.metadataFilename(key))
	if err != nil {
		return fmt.Errorf("failed to stat catalog metadata: %w", err)
	}
	if !exists {
		return nil
	}
	unlock, err := r.acquireLock(ctx, key, false)
	if err != nil {
		return err
	}
	defer unlock()
	for _, filename := range []string{r.contractFilename(key), r.metadataFilename(key)} {
		if err := r.fs.Remove(filename); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", filename, err)
		}
	}
	return nil
}

// Exists reports whether a catalog entry exists.
func (r *fileCatalogRepository) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return afero.Exists(r.fs, r.metadataFilename(key))
}

// acquireLock takes the entry's file lock, shared for reads. The returned
// function releases it.
func (r *fileCatalogRepository) acquireLock(ctx context.Context, key string, shared bool) (func(), error) {
	lock := flock.New(r.lockFilename(key))
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	var locked bool
	var err error
	if shared {
		locked, err = lock.TryRLockContext(lockCtx, LockRetryInterval)
	} else {
		locked, err = lock.TryLockContext(lockCtx, LockRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire catalog lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire catalog lock within timeout")
	}
	return func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock catalog file: %v\n", unlockErr)
		}
	}, nil
}

// writeAtomic writes data through a temp file and renames it into place.
func (r *fileCatalogRepository) writeAtomic(filename string, data []byte) error {
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, CatalogFilePermissions); err != nil {
		return err
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return err
	}
	return nil
}

func (r *fileCatalogRepository) ensureCatalogDir() error {
	return r.fs.MkdirAll(r.catalogDir, CatalogDirPermissions)
}

func (r *fileCatalogRepository) contractFilename(key string) string {
	return filepath.Join(r.catalogDir, key+".yaml")
}

func (r *fileCatalogRepository) metadataFilename(key string) string {
	return filepath.Join(r.catalogDir, key+".meta.json")
}

func (r *fileCatalogRepository) lockFilename(key string) string {
	return filepath.Join(r.catalogDir, key+".lock")
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CatalogKey derives a catalog key from a contract title: lower-cased, with
// runs of non-alphanumerics collapsed to single dashes.
func CatalogKey(title string) string {
	var sb strings.Builder
	lastDash := true
	for _, ch := range strings.ToLower(title) {
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9':
			sb.WriteRune(ch)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
