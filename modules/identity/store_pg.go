package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artikahq/authkit/pkg/authn"
	"github.com/artikahq/authkit/pkg/pg"
)

// PgStore persists identities, password hashes, and provider links in
// PostgreSQL. It implements authn.CredentialStorage and authn.OAuthStorage.
type PgStore struct {
	pool *pgxpool.Pool
}

var (
	_ authn.CredentialStorage = (*PgStore)(nil)
	_ authn.OAuthStorage      = (*PgStore)(nil)
)

// NewPgStore creates an identity store over a pgx connection pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) CreateIdentity(ctx context.Context, identity *authn.Identity) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO identities (id, email, first_name, last_name, auth_method, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		identity.ID, identity.Email, identity.FirstName, identity.LastName,
		identity.AuthMethod, identity.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return authn.ErrEmailTaken
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (s *PgStore) GetIdentityByID(ctx context.Context, id uuid.UUID) (*authn.Identity, error) {
	return s.scanIdentity(ctx,
		`SELECT id, email, first_name, last_name, auth_method, created_at
		 FROM identities WHERE id = $1`, id)
}

func (s *PgStore) GetIdentityByEmail(ctx context.Context, email string) (*authn.Identity, error) {
	return s.scanIdentity(ctx,
		`SELECT id, email, first_name, last_name, auth_method, created_at
		 FROM identities WHERE lower(email) = lower($1)`, email)
}

func (s *PgStore) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authn.ErrIdentityNotFound
	}
	return nil
}

func (s *PgStore) StorePasswordHash(ctx context.Context, identityID uuid.UUID, hash []byte) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE identities SET password_hash = $2 WHERE id = $1`, identityID, hash)
	if err != nil {
		return fmt.Errorf("store password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authn.ErrIdentityNotFound
	}
	return nil
}

func (s *PgStore) GetPasswordHash(ctx context.Context, identityID uuid.UUID) ([]byte, error) {
	var hash []byte
	err := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM identities WHERE id = $1`, identityID).Scan(&hash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, authn.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("get password hash: %w", err)
	}
	// A null hash marks an account provisioned through OAuth; for the
	// credential flow it is the same as no identity.
	if hash == nil {
		return nil, authn.ErrIdentityNotFound
	}
	return hash, nil
}

func (s *PgStore) StoreOAuthLink(ctx context.Context, identityID uuid.UUID, provider, providerUserID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO oauth_links (provider, provider_user_id, identity_id)
		 VALUES ($1, $2, $3)`,
		provider, providerUserID, identityID,
	)
	if err != nil {
		return fmt.Errorf("store oauth link: %w", err)
	}
	return nil
}

func (s *PgStore) GetIdentityByOAuth(ctx context.Context, provider, providerUserID string) (*authn.Identity, error) {
	return s.scanIdentity(ctx,
		`SELECT i.id, i.email, i.first_name, i.last_name, i.auth_method, i.created_at
		 FROM identities i
		 JOIN oauth_links l ON l.identity_id = i.id
		 WHERE l.provider = $1 AND l.provider_user_id = $2`,
		provider, providerUserID)
}

func (s *PgStore) RemoveOAuthLink(ctx context.Context, identityID uuid.UUID, provider string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM oauth_links WHERE identity_id = $1 AND provider = $2`,
		identityID, provider)
	if err != nil {
		return fmt.Errorf("remove oauth link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return authn.ErrNoProviderLink
	}
	return nil
}

func (s *PgStore) scanIdentity(ctx context.Context, query string, args ...any) (*authn.Identity, error) {
	var identity authn.Identity
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&identity.ID, &identity.Email, &identity.FirstName, &identity.LastName,
		&identity.AuthMethod, &identity.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, authn.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("query identity: %w", err)
	}
	return &identity, nil
}
