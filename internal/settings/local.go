package settings

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// LocalValues is the device-local copy of the settings.
type LocalValues struct {
	NotificationEmail string `yaml:"notification_email"`
	LogoURL           string `yaml:"logo_url"`
	EmailAPIKey       string `yaml:"email_api_key"`
	PendingRemoteSync bool   `yaml:"pending_remote_sync"`
}

// Local is the local-device tier.
type Local interface {
	Read() (LocalValues, error)
	Write(LocalValues) error
}

// FileLocal keeps the local tier in a YAML file.
type FileLocal struct {
	path string
	mu   sync.Mutex
}

func NewFileLocal(path string) *FileLocal {
	return &FileLocal{path: path}
}

// Read returns zero values when the file does not exist yet.
func (f *FileLocal) Read() (LocalValues, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var values LocalValues
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return values, err
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return LocalValues{}, err
	}
	return values, nil
}

// Write replaces the file atomically.
func (f *FileLocal) Write(values LocalValues) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// MemoryLocal is an in-process Local.
type MemoryLocal struct {
	mu     sync.Mutex
	values LocalValues
	err    error
}

func (m *MemoryLocal) Read() (LocalValues, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values, nil
}

func (m *MemoryLocal) Write(values LocalValues) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values = values
	return nil
}

// FailWrites makes subsequent writes return err; nil clears it.
func (m *MemoryLocal) FailWrites(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
