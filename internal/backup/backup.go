package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/dayly/internal/calendar"
	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/logger"
	"github.com/julianstephens/dayly/internal/storage"
)

const snapshotVersion = 1

// ErrInvalidSnapshot is returned when a backup file cannot be read back
var ErrInvalidSnapshot = errors.New("backup file is corrupted or invalid")

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Snapshot is the on-disk backup format: every stored blob, verbatim
type Snapshot struct {
	Version    int               `json:"version"`
	AppVersion string            `json:"app_version"`
	CreatedAt  time.Time         `json:"created_at"`
	Blobs      map[string]string `json:"blobs"`
}

// Manager handles backup operations
type Manager struct {
	store     storage.Provider
	backupDir string
	clock     calendar.Clock
	keep      int
}

// NewManager creates a backup manager writing into <configDir>/backups.
func NewManager(store storage.Provider, configDir string, clock calendar.Clock) *Manager {
	return &Manager{
		store:     store,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		clock:     clock,
		keep:      constants.MaxBackups,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup snapshots every blob and rotates old backups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation keeps a pre-restore snapshot from evicting the file being restored
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	snap, err := m.snapshot()
	if err != nil {
		return "", err
	}

	backupPath, err := m.nextPath()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Backup created", "path", backupPath, "blobs", len(snap.Blobs))

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

func (m *Manager) snapshot() (Snapshot, error) {
	keys, err := m.store.Keys()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list stored keys: %w", err)
	}

	snap := Snapshot{
		Version:    snapshotVersion,
		AppVersion: constants.Version,
		CreatedAt:  m.clock.Now(),
		Blobs:      make(map[string]string, len(keys)),
	}
	for _, key := range keys {
		value, err := m.store.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", key, err)
		}
		snap.Blobs[key] = string(value)
	}
	return snap, nil
}

// nextPath picks a filename with minute precision, falling back to seconds
// and then a counter when that name is taken.
func (m *Manager) nextPath() (string, error) {
	now := m.clock.Now()
	timestamp := now.Format("20060102-1504")
	backupPath := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return backupPath, nil
	}

	timestamp = now.Format("20060102-150405")
	backupPath = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return backupPath, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, constants.BackupFileSuffix)
		backupPath = filepath.Join(m.backupDir, name)
	}
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		timestamp, ok := parseBackupName(name)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseBackupName extracts the timestamp from dayly-YYYYMMDD-HHMM[SS][-N].json
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// Drop a trailing counter
	if parts := strings.Split(stamp, "-"); len(parts) == 3 && isDigits(parts[2]) {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= m.keep {
		return nil
	}

	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// ReadBackup loads and verifies a backup file.
func ReadBackup(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("backup file does not exist: %s", path)
		}
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version < 1 || snap.Version > snapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported snapshot version %d", ErrInvalidSnapshot, snap.Version)
	}
	if snap.Blobs == nil {
		return Snapshot{}, fmt.Errorf("%w: no blobs", ErrInvalidSnapshot)
	}
	return snap, nil
}

// RestoreBackup writes every blob from the backup back into the store after
// snapshotting the current contents. Returns the pre-restore backup path.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	snap, err := ReadBackup(backupPath)
	if err != nil {
		return "", err
	}

	current, err := m.createBackup(true)
	if err != nil {
		return "", fmt.Errorf("failed to backup current data before restore: %w", err)
	}

	keys := make([]string, 0, len(snap.Blobs))
	for key := range snap.Blobs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := m.store.Set(key, []byte(snap.Blobs[key])); err != nil {
			return current, fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}
	logger.Info("Backup restored", "path", backupPath, "blobs", len(keys), "previous", current)

	return current, nil
}
