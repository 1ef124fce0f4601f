package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// FileStore persists tokens to a JSON file so that a restarted bridge can reuse them.
type FileStore struct {
	mu     sync.Mutex
	path   string
	memory *memoryStore
}

// NewFileStore creates a Store backed by the file at path. A missing file is not an error.
func NewFileStore(path string) (*FileStore, error) {
	ret := &FileStore{path: path, memory: newMemoryStore()}
	if err := ret.load(); err != nil {
		return nil, fmt.Errorf("failed to load token cache %v: %w", path, err)
	}
	return ret, nil
}

func (f *FileStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	return f.memory.LookupToken(key)
}

func (f *FileStore) AddToken(key TokenKey, token *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.memory.AddToken(key, token)
	return f.save()
}

func (f *FileStore) DeleteToken(key TokenKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.memory.DeleteToken(key)
	return f.save()
}

type fileSnapshot struct {
	Tokens map[string]*oauth2.Token `json:"tokens"`
}

func keyString(k TokenKey) string { return k.Issuer + "|" + k.Scopes }

func (f *FileStore) save() error {
	snap := fileSnapshot{Tokens: map[string]*oauth2.Token{}}
	for k, v := range f.memory.tokens.Snapshot() {
		snap.Tokens[keyString(k)] = v
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return err
	}
	for k, v := range snap.Tokens {
		issuer, scopes, ok := strings.Cut(k, "|")
		if !ok || v == nil {
			continue
		}
		f.memory.tokens.Put(TokenKey{Issuer: issuer, Scopes: scopes}, v)
	}
	return nil
}
