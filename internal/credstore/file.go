package credstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps the credential record in a single file that is replaced
// atomically on every write. With a passphrase the record is encrypted.
type FileStore struct {
	path       string
	passphrase []byte
	logger     *zap.Logger
	mu         sync.Mutex
}

// NewFileStore returns a store writing to path. An empty passphrase stores
// plain JSON.
func NewFileStore(path, passphrase string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	var secret []byte
	if passphrase != "" {
		secret = []byte(passphrase)
	}
	return &FileStore{path: path, passphrase: secret, logger: logger}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(ctx context.Context, creds Credentials) error {
	if err := requireComplete(creds); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storeErr("save", err)
	}

	data, err := json.Marshal(normalize(creds))
	if err != nil {
		return storeErr("save", err)
	}
	if s.passphrase != nil {
		data, err = seal(s.passphrase, data)
		if err != nil {
			return storeErr("save", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeAtomic(s.path, data); err != nil {
		return storeErr("save", err)
	}
	s.logger.Debug("credentials saved", zap.String("path", s.path), zap.Bool("encrypted", s.passphrase != nil))
	return nil
}

func (s *FileStore) Load(ctx context.Context) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, storeErr("load", err)
	}

	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, storeErr("load", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Credentials{}, nil
	}

	if sealed(data) {
		if s.passphrase == nil {
			return Credentials{}, storeErr("load", errBadPassphrase)
		}
		data, err = unseal(s.passphrase, data)
		if err != nil {
			return Credentials{}, storeErr("load", err)
		}
	} else if s.passphrase != nil {
		s.logger.Warn("credential file is not encrypted", zap.String("path", s.path))
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, storeErr("load", fmt.Errorf("%w: %v", errBadFormat, err))
	}
	return normalize(creds), nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return storeErr("clear", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return storeErr("clear", err)
	}
	syncDir(filepath.Dir(s.path))
	return nil
}

// writeAtomic writes data to a temporary sibling, syncs it and renames it
// over path, so readers see either the old or the new record.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}

	file, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary credential file: %w", err)
	}
	temporaryPath := file.Name()

	if err := file.Chmod(0o600); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("restricting temporary credential file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary credential file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary credential file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary credential file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming credential file into place: %w", err)
	}

	syncDir(dir)
	return nil
}

func syncDir(dir string) {
	parent, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = parent.Sync()
	_ = parent.Close()
}
