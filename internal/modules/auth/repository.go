package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

// Repository persists users, credentials and token revocations.
type Repository interface {
	CreateUser(ctx context.Context, user *User, passwordHash string) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetCredentials(ctx context.Context, email string) (*credentials, error)
	RevokeToken(ctx context.Context, jti string) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type kvRepository struct {
	store kvstore.Store
}

// NewKVRepository creates a key-value backed user repository.
func NewKVRepository(store kvstore.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) CreateUser(ctx context.Context, user *User, passwordHash string) error {
	cred, err := json.Marshal(&credentials{UserID: user.ID, PasswordHash: passwordHash})
	if err != nil {
		return err
	}
	profile, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, "user-cred:"+user.Email, cred); err != nil {
		return err
	}
	return r.store.Set(ctx, "user:"+user.ID, profile)
}

func (r *kvRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	raw, err := r.store.Get(ctx, "user:"+id)
	if err != nil {
		return nil, err
	}
	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *kvRepository) GetCredentials(ctx context.Context, email string) (*credentials, error) {
	raw, err := r.store.Get(ctx, "user-cred:"+email)
	if err != nil {
		return nil, err
	}
	cred := &credentials{}
	if err := json.Unmarshal(raw, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

func (r *kvRepository) RevokeToken(ctx context.Context, jti string) error {
	doc, err := json.Marshal(map[string]string{"revokedAt": time.Now().UTC().Format(time.RFC3339)})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, "revoked-token:"+jti, doc)
}

func (r *kvRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.store.Get(ctx, "revoked-token:"+jti)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
