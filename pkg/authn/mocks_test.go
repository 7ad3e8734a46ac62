package authn

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStorage is a mock implementation of CredentialStorage.
type MockCredentialStorage struct {
	mock.Mock
}

func (m *MockCredentialStorage) CreateIdentity(ctx context.Context, identity *Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockCredentialStorage) GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockCredentialStorage) GetIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockCredentialStorage) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCredentialStorage) StorePasswordHash(ctx context.Context, identityID uuid.UUID, hash []byte) error {
	args := m.Called(ctx, identityID, hash)
	return args.Error(0)
}

func (m *MockCredentialStorage) GetPasswordHash(ctx context.Context, identityID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockOAuthStorage is a mock implementation of OAuthStorage.
type MockOAuthStorage struct {
	mock.Mock
}

func (m *MockOAuthStorage) CreateIdentity(ctx context.Context, identity *Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockOAuthStorage) GetIdentityByID(ctx context.Context, id uuid.UUID) (*Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockOAuthStorage) GetIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockOAuthStorage) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOAuthStorage) StoreOAuthLink(ctx context.Context, identityID uuid.UUID, provider, providerUserID string) error {
	args := m.Called(ctx, identityID, provider, providerUserID)
	return args.Error(0)
}

func (m *MockOAuthStorage) GetIdentityByOAuth(ctx context.Context, provider, providerUserID string) (*Identity, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockOAuthStorage) RemoveOAuthLink(ctx context.Context, identityID uuid.UUID, provider string) error {
	args := m.Called(ctx, identityID, provider)
	return args.Error(0)
}

// MockStateStore is a mock implementation of StateStore.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) StoreState(ctx context.Context, state string, expiresAt time.Time) error {
	args := m.Called(ctx, state, expiresAt)
	return args.Error(0)
}

func (m *MockStateStore) ConsumeState(ctx context.Context, state string) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockProviderAdapter is a mock implementation of ProviderAdapter.
type MockProviderAdapter struct {
	mock.Mock
}

func (m *MockProviderAdapter) ProviderID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProviderAdapter) AuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockProviderAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(ProviderProfile), args.Error(1)
}
