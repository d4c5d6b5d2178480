package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/releasecut/releasecut/internal/domain"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// JournalSchemaVersion defines the current schema version for journal files
	JournalSchemaVersion = "1.0.0"
	// JournalFilePermissions defines the permissions for journal files
	JournalFilePermissions = 0600
	// JournalDirPermissions defines the permissions for the journal directory
	JournalDirPermissions = 0700
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// JournalRepository persists per-run release journals.
type JournalRepository interface {
	Save(ctx context.Context, journal *domain.ReleaseJournal) error
	Load(ctx context.Context, sessionID string) (*domain.ReleaseJournal, error)
	LoadLatest(ctx context.Context) (*domain.ReleaseJournal, error)
	// LockRun takes the checkout-wide run lock. Concurrent runs against one
	// working tree are unsupported and get serialized here.
	LockRun(ctx context.Context) (func() error, error)
}

// JournalMetadata contains metadata about the journal file
type JournalMetadata struct {
	SchemaVersion string    `json:"schema_version"`
	Checksum      string    `json:"checksum"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// journalWrapper wraps the journal with metadata
type journalWrapper struct {
	Metadata JournalMetadata        `json:"metadata"`
	Journal  *domain.ReleaseJournal `json:"journal"`
}

// JSONJournalRepository implements JournalRepository using JSON file storage
type JSONJournalRepository struct {
	fs         afero.Fs
	journalDir string
	mu         sync.RWMutex
}

// NewJSONJournalRepository creates a new JSON-based journal repository
func NewJSONJournalRepository(fs afero.Fs, journalDir string) *JSONJournalRepository {
	if journalDir == "" {
		journalDir = ".releasecut"
	}
	return &JSONJournalRepository{
		fs:         fs,
		journalDir: journalDir,
	}
}

// Save persists the journal to a JSON file with proper locking
func (r *JSONJournalRepository) Save(ctx context.Context, journal *domain.ReleaseJournal) error {
	if err := r.ensureJournalDir(); err != nil {
		return fmt.Errorf("failed to ensure journal directory: %w", err)
	}
	filename := r.journalFilename(journal.SessionID)
	lock := flock.New(r.lockFilename(journal.SessionID))
	if err := acquireLock(ctx, lock, (*flock.Flock).TryLock); err != nil {
		return fmt.Errorf("failed to acquire journal lock: %w", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock journal file: %v\n", unlockErr)
		}
	}()
	wrapper := journalWrapper{
		Metadata: JournalMetadata{
			SchemaVersion: JournalSchemaVersion,
			CreatedAt:     journal.StartedAt,
			UpdatedAt:     time.Now(),
		},
		Journal: journal,
	}
	journalData, err := json.Marshal(journal)
	if err != nil {
		return fmt.Errorf("failed to marshal journal for checksum: %w", err)
	}
	wrapper.Metadata.Checksum = checksum(journalData)
	data, err := json.MarshalIndent(wrapper, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal wrapper: %w", err)
	}
	// Write atomically using temp file
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, JournalFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp journal file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename journal file: %w", err)
	}
	if err := r.updateLatestLink(filename); err != nil {
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// Load retrieves a specific journal by session ID with validation
func (r *JSONJournalRepository) Load(ctx context.Context, sessionID string) (*domain.ReleaseJournal, error) {
	filename := r.journalFilename(sessionID)
	lock := flock.New(r.lockFilename(sessionID))
	if err := acquireLock(ctx, lock, (*flock.Flock).TryRLock); err != nil {
		return nil, fmt.Errorf("failed to acquire shared journal lock: %w", err)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock journal file: %v\n", unlockErr)
		}
	}()
	data, err := afero.ReadFile(r.fs, filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("journal not found for session %s", sessionID)
		}
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}
	var wrapper journalWrapper
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal wrapper: %w", err)
	}
	if wrapper.Metadata.SchemaVersion != JournalSchemaVersion {
		return nil, fmt.Errorf("incompatible schema version: expected %s, got %s",
			JournalSchemaVersion, wrapper.Metadata.SchemaVersion)
	}
	journalData, err := json.Marshal(wrapper.Journal)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal journal for checksum validation: %w", err)
	}
	if wrapper.Metadata.Checksum != checksum(journalData) {
		return nil, fmt.Errorf("journal checksum mismatch: data may be corrupted")
	}
	return wrapper.Journal, nil
}

// LoadLatest retrieves the most recent journal
func (r *JSONJournalRepository) LoadLatest(ctx context.Context) (*domain.ReleaseJournal, error) {
	r.mu.RLock()
	data, err := afero.ReadFile(r.fs, r.latestLink())
	r.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no journal found")
		}
		return nil, fmt.Errorf("failed to read latest link: %w", err)
	}
	sessionID := r.extractSessionID(string(data))
	if sessionID == "" {
		return nil, fmt.Errorf("invalid latest link target: %s", string(data))
	}
	return r.Load(ctx, sessionID)
}

// LockRun acquires the exclusive per-checkout run lock and returns the
// release function. One release pipeline per working tree at a time.
func (r *JSONJournalRepository) LockRun(ctx context.Context) (func() error, error) {
	if err := r.ensureJournalDir(); err != nil {
		return nil, fmt.Errorf("failed to ensure journal directory: %w", err)
	}
	lock := flock.New(filepath.Join(r.journalDir, "run.lock"))
	if err := acquireLock(ctx, lock, (*flock.Flock).TryLock); err != nil {
		return nil, fmt.Errorf("another release run holds the lock: %w", err)
	}
	return lock.Unlock, nil
}

// acquireLock retries the non-blocking lock attempt with constant backoff
// until it succeeds or the timeout elapses.
func acquireLock(ctx context.Context, lock *flock.Flock, try func(*flock.Flock) (bool, error)) error {
	backoff := retry.WithMaxDuration(LockTimeout, retry.NewConstant(LockRetryInterval))
	return retry.Do(ctx, backoff, func(_ context.Context) error {
		locked, err := try(lock)
		if err != nil {
			return err
		}
		if !locked {
			return retry.RetryableError(fmt.Errorf("lock %s is held", lock.Path()))
		}
		return nil
	})
}

// checksum calculates the SHA-256 checksum of data
func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ensureJournalDir creates the journal directory if it doesn't exist
func (r *JSONJournalRepository) ensureJournalDir() error {
	return r.fs.MkdirAll(r.journalDir, JournalDirPermissions)
}

// journalFilename returns the filename for a given session ID
func (r *JSONJournalRepository) journalFilename(sessionID string) string {
	return filepath.Join(r.journalDir, fmt.Sprintf("journal-%s.json", sessionID))
}

// lockFilename returns the lock filename for a given session ID
func (r *JSONJournalRepository) lockFilename(sessionID string) string {
	return filepath.Join(r.journalDir, fmt.Sprintf(".journal-%s.lock", sessionID))
}

// latestLink returns the path to the latest journal link
func (r *JSONJournalRepository) latestLink() string {
	return filepath.Join(r.journalDir, "latest.txt")
}

// updateLatestLink updates the link pointing to the latest journal
func (r *JSONJournalRepository) updateLatestLink(target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link := r.latestLink()
	tempLink := link + ".tmp"
	if err := afero.WriteFile(r.fs, tempLink, []byte(target), JournalFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp latest link: %w", err)
	}
	if err := r.fs.Rename(tempLink, link); err != nil {
		if removeErr := r.fs.Remove(tempLink); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp link: %v\n", removeErr)
		}
		return fmt.Errorf("failed to update latest link: %w", err)
	}
	return nil
}

// extractSessionID extracts the session ID from a journal filename
func (r *JSONJournalRepository) extractSessionID(filename string) string {
	base := filepath.Base(filename)
	const prefix, suffix = "journal-", ".json"
	if len(base) > len(prefix)+len(suffix) && base[:len(prefix)] == prefix && base[len(base)-len(suffix):] == suffix {
		return base[len(prefix) : len(base)-len(suffix)]
	}
	return ""
}
