package store

import (
	"github.com/geosp/mcp-bridge/internal/collection"
	"golang.org/x/oauth2"
)

// TokenKey identifies a token by the issuing endpoint and requested scopes.
type TokenKey struct {
	Issuer string
	Scopes string
}

// Store is a pluggable persistence layer for OAuth2 tokens.
type Store interface {
	AddToken(key TokenKey, token *oauth2.Token) error
	LookupToken(key TokenKey) (*oauth2.Token, bool)
	DeleteToken(key TokenKey) error
}

type memoryStore struct {
	tokens *collection.SyncMap[TokenKey, *oauth2.Token]
}

func (m *memoryStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	return m.tokens.Get(key)
}

func (m *memoryStore) AddToken(key TokenKey, token *oauth2.Token) error {
	m.tokens.Put(key, token)
	return nil
}

func (m *memoryStore) DeleteToken(key TokenKey) error {
	m.tokens.Delete(key)
	return nil
}

// NewMemoryStore creates a store that keeps tokens for the process lifetime.
func NewMemoryStore() Store {
	return newMemoryStore()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tokens: collection.NewSyncMap[TokenKey, *oauth2.Token]()}
}
