package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
	"github.com/dmitrijs2005/eldercare/internal/common"
	"github.com/dmitrijs2005/eldercare/internal/logging"
)

// Route is the first screen shown at startup.
type Route string

const (
	RouteWelcome Route = "welcome"
	RouteLogin   Route = "login"
	RouteMain    Route = "main"
)

const (
	// DemoToken is the placeholder session token; there is no real auth.
	DemoToken = "demo_token"
	DemoEmail = "demo@eldercare.com"
)

type SessionService struct {
	store  storage.Adapter
	tokens TokenStore
	log    logging.Logger
}

// NewSessionService uses tokens for the session token; nil keeps it in the
// adapter under models.KeyUserToken.
func NewSessionService(store storage.Adapter, tokens TokenStore, log logging.Logger) *SessionService {
	if tokens == nil {
		tokens = NewAdapterTokenStore(store)
	}
	return &SessionService{store: store, tokens: tokens, log: log}
}

// InitialRoute picks the start screen from the launch flag and the token.
// Any storage problem sends the user to the welcome screen.
func (s *SessionService) InitialRoute(ctx context.Context) Route {
	_, launched, err := s.store.Get(ctx, models.KeyHasLaunched)
	if err != nil {
		s.log.Warn(ctx, "reading launch flag failed", "err", err)
		return RouteWelcome
	}
	_, hasToken, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading session token failed", "err", err)
		return RouteWelcome
	}

	switch {
	case launched && hasToken:
		return RouteMain
	case launched:
		return RouteLogin
	default:
		return RouteWelcome
	}
}

func (s *SessionService) CompleteWelcome(ctx context.Context) error {
	if err := s.store.Set(ctx, models.KeyHasLaunched, "true"); err != nil {
		return fmt.Errorf("save launch flag: %w", err)
	}
	return nil
}

// Login accepts any non-empty credentials and stores the placeholder token.
func (s *SessionService) Login(ctx context.Context, email string, password []byte) error {
	if common.Blank(email) || len(password) == 0 {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	return s.startSession(ctx, email)
}

func (s *SessionService) DemoLogin(ctx context.Context) error {
	return s.startSession(ctx, DemoEmail)
}

func (s *SessionService) startSession(ctx context.Context, email string) error {
	if err := s.tokens.SetToken(ctx, DemoToken); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	if err := s.store.Set(ctx, models.KeyUserEmail, email); err != nil {
		return fmt.Errorf("save user email: %w", err)
	}
	s.log.Info(ctx, "logged in", "email", email)
	return nil
}

// Logout drops the session token. The email stays for the next login prompt.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// CurrentUser returns the email of the logged-in user, ok is false when no
// session is active.
func (s *SessionService) CurrentUser(ctx context.Context) (email string, ok bool, err error) {
	_, hasToken, err := s.tokens.Token(ctx)
	if err != nil || !hasToken {
		return "", false, err
	}
	email, _, err = s.store.Get(ctx, models.KeyUserEmail)
	if err != nil {
		return "", false, err
	}
	return email, true, nil
}
