package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
)

// Mirror keys
const (
	KeyCredential = "access_token"
	KeyIdentity   = "user"
)

// FileName is the name of the session file inside the state directory
const FileName = "session.json"

// Mirror is the durable key-value cache behind a session. Values are
// stored as opaque strings; the store parses them defensively.
type Mirror interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// batchMirror is implemented by mirrors that can write several keys in one
// step, so credential and identity never land on disk separately.
type batchMirror interface {
	SetAll(values map[string]string) error
	RemoveAll(keys ...string) error
}

// MemoryMirror keeps the session in process memory only.
type MemoryMirror struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryMirror creates an empty in-memory mirror
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{values: make(map[string]string)}
}

// Get returns the value stored under key
func (m *MemoryMirror) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key
func (m *MemoryMirror) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (m *MemoryMirror) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys
func (m *MemoryMirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// FileMirror stores the session as a JSON object in a single file.
// Every write replaces the file atomically.
type FileMirror struct {
	path string
	mu   sync.Mutex
}

// NewFileMirror creates a mirror backed by <dir>/session.json. The directory
// is created on first write.
func NewFileMirror(dir string) *FileMirror {
	return &FileMirror{path: filepath.Join(dir, FileName)}
}

// Path returns the session file location
func (m *FileMirror) Path() string {
	return m.path
}

// Get returns the value stored under key
func (m *FileMirror) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, err := m.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key
func (m *FileMirror) Set(key, value string) error {
	return m.SetAll(map[string]string{key: value})
}

// SetAll stores every key of values in one write
func (m *FileMirror) SetAll(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.load()
	if err != nil {
		// an unreadable cache is replaced rather than repaired
		current = make(map[string]string)
	}
	for k, v := range values {
		current[k] = v
	}
	return m.save(current)
}

// Remove deletes key
func (m *FileMirror) Remove(key string) error {
	return m.RemoveAll(key)
}

// RemoveAll deletes keys in one write. The file is deleted once empty.
func (m *FileMirror) RemoveAll(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.load()
	if err != nil {
		current = make(map[string]string)
	}
	for _, k := range keys {
		delete(current, k)
	}

	if len(current) == 0 {
		if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return terrors.NewFileWriteError(m.path, err)
		}
		return nil
	}
	return m.save(current)
}

func (m *FileMirror) load() (map[string]string, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, terrors.Wrap(terrors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", m.path), err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("session file %s is corrupt: %w", m.path, err)
	}
	return values, nil
}

func (m *FileMirror) save(values map[string]string) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return terrors.Wrap(terrors.ErrCodeDirectoryFailed, fmt.Sprintf("failed to create %s", dir), err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return terrors.NewFileWriteError(m.path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return terrors.NewFileWriteError(m.path, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return terrors.NewFileWriteError(m.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return terrors.NewFileWriteError(m.path, err)
	}
	if err := tmp.Close(); err != nil {
		return terrors.NewFileWriteError(m.path, err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		return terrors.NewFileWriteError(m.path, err)
	}
	return nil
}

// mirrorCache owns the invalidation contract of the durable mirror:
// overwritten on login and refresh, cleared on logout, parsed defensively
// on restore.
type mirrorCache struct {
	m Mirror
}

// load returns the stored credential and identity. Both are returned only
// when both are present and the identity parses; otherwise err explains
// what was wrong and the caller stays anonymous.
func (c mirrorCache) load() (string, *domain.User, error) {
	credential, okCred, err := c.m.Get(KeyCredential)
	if err != nil {
		return "", nil, err
	}
	raw, okUser, err := c.m.Get(KeyIdentity)
	if err != nil {
		return "", nil, err
	}
	if !okCred || !okUser || credential == "" || raw == "" {
		return "", nil, nil
	}

	var user *domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, fmt.Errorf("failed to parse stored user: %w", err)
	}
	if user == nil {
		return "", nil, errors.New("stored user is null")
	}
	return credential, user, nil
}

func (c mirrorCache) save(credential string, user *domain.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if b, ok := c.m.(batchMirror); ok {
		return b.SetAll(map[string]string{
			KeyCredential: credential,
			KeyIdentity:   string(blob),
		})
	}
	if err := c.m.Set(KeyIdentity, string(blob)); err != nil {
		return err
	}
	return c.m.Set(KeyCredential, credential)
}

func (c mirrorCache) saveIdentity(user *domain.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return c.m.Set(KeyIdentity, string(blob))
}

func (c mirrorCache) clear() error {
	if b, ok := c.m.(batchMirror); ok {
		return b.RemoveAll(KeyCredential, KeyIdentity)
	}
	// credential first: a lone identity never restores a session
	if err := c.m.Remove(KeyCredential); err != nil {
		return err
	}
	return c.m.Remove(KeyIdentity)
}
