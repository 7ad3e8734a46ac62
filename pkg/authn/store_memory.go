package authn

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of CredentialStorage and
// OAuthStorage, suitable for tests and single-process deployments.
type MemoryStore struct {
	mu         sync.RWMutex
	identities map[uuid.UUID]*Identity
	byEmail    map[string]uuid.UUID
	hashes     map[uuid.UUID][]byte
	links      map[oauthKey]uuid.UUID
}

type oauthKey struct {
	provider       string
	providerUserID string
}

var (
	_ CredentialStorage = (*MemoryStore)(nil)
	_ OAuthStorage      = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities: make(map[uuid.UUID]*Identity),
		byEmail:    make(map[string]uuid.UUID),
		hashes:     make(map[uuid.UUID][]byte),
		links:      make(map[oauthKey]uuid.UUID),
	}
}

func (s *MemoryStore) CreateIdentity(_ context.Context, identity *Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(identity.Email)
	if _, exists := s.byEmail[key]; exists {
		return ErrEmailTaken
	}

	cp := *identity
	s.identities[identity.ID] = &cp
	s.byEmail[key] = identity.ID
	return nil
}

func (s *MemoryStore) GetIdentityByID(_ context.Context, id uuid.UUID) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[id]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	cp := *identity
	return &cp, nil
}

func (s *MemoryStore) GetIdentityByEmail(_ context.Context, email string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	cp := *s.identities[id]
	return &cp, nil
}

func (s *MemoryStore) DeleteIdentity(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[id]
	if !ok {
		return ErrIdentityNotFound
	}

	delete(s.byEmail, strings.ToLower(identity.Email))
	delete(s.identities, id)
	delete(s.hashes, id)
	for key, linked := range s.links {
		if linked == id {
			delete(s.links, key)
		}
	}
	return nil
}

func (s *MemoryStore) StorePasswordHash(_ context.Context, identityID uuid.UUID, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[identityID]; !ok {
		return ErrIdentityNotFound
	}
	cp := make([]byte, len(hash))
	copy(cp, hash)
	s.hashes[identityID] = cp
	return nil
}

func (s *MemoryStore) GetPasswordHash(_ context.Context, identityID uuid.UUID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hash, ok := s.hashes[identityID]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	cp := make([]byte, len(hash))
	copy(cp, hash)
	return cp, nil
}

func (s *MemoryStore) StoreOAuthLink(_ context.Context, identityID uuid.UUID, provider, providerUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.identities[identityID]; !ok {
		return ErrIdentityNotFound
	}
	s.links[oauthKey{provider, providerUserID}] = identityID
	return nil
}

func (s *MemoryStore) GetIdentityByOAuth(_ context.Context, provider, providerUserID string) (*Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.links[oauthKey{provider, providerUserID}]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	cp := *s.identities[id]
	return &cp, nil
}

func (s *MemoryStore) RemoveOAuthLink(_ context.Context, identityID uuid.UUID, provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, linked := range s.links {
		if linked == identityID && key.provider == provider {
			delete(s.links, key)
			return nil
		}
	}
	return ErrNoProviderLink
}

// MemoryStateStore is an in-memory StateStore with lazy expiry.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

var _ StateStore = (*MemoryStateStore)(nil)

// NewMemoryStateStore creates an empty in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]time.Time)}
}

func (s *MemoryStateStore) StoreState(_ context.Context, state string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = expiresAt
	return nil
}

func (s *MemoryStateStore) ConsumeState(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.states[state]
	if !ok {
		return ErrStateNotFound
	}
	delete(s.states, state)
	if time.Now().After(expiresAt) {
		return ErrStateNotFound
	}
	return nil
}
