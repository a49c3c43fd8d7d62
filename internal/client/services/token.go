package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/zalando/go-keyring"
)

// TokenStore keeps the session token.
type TokenStore interface {
	Token(ctx context.Context) (token string, ok bool, err error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// adapterTokenStore keeps the token under models.KeyUserToken.
type adapterTokenStore struct {
	store storage.Adapter
}

func NewAdapterTokenStore(store storage.Adapter) TokenStore {
	return &adapterTokenStore{store: store}
}

func (s *adapterTokenStore) Token(ctx context.Context) (string, bool, error) {
	return s.store.Get(ctx, models.KeyUserToken)
}

func (s *adapterTokenStore) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, models.KeyUserToken, token)
}

func (s *adapterTokenStore) ClearToken(ctx context.Context) error {
	return s.store.Remove(ctx, models.KeyUserToken)
}

const keyringService = "eldercare"

// KeyringTokenStore keeps the token in the OS keyring instead of the
// adapter, for installs that opt into it.
type KeyringTokenStore struct {
	user string
}

// NewKeyringTokenStore stores the token under the given keyring account.
func NewKeyringTokenStore(user string) *KeyringTokenStore {
	return &KeyringTokenStore{user: user}
}

// Account is the keyring account the token is stored under.
func (s *KeyringTokenStore) Account() string { return s.user }

func (s *KeyringTokenStore) Token(ctx context.Context) (string, bool, error) {
	token, err := keyring.Get(keyringService, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("keyring get: %w", err)
	}
	return token, true, nil
}

func (s *KeyringTokenStore) SetToken(ctx context.Context, token string) error {
	if err := keyring.Set(keyringService, s.user, token); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (s *KeyringTokenStore) ClearToken(ctx context.Context) error {
	err := keyring.Delete(keyringService, s.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
