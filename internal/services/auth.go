package services

import (
	"context"
	"fmt"
	"strings"
	"vendepass-client/internal/domain"
	"vendepass-client/internal/ports"
)

// Auth runs login, logout and the current-user lookup against the backend
// and keeps the SessionStore in step.
type Auth struct {
	backend  ports.AuthBackend
	sessions *SessionStore
	notify   *Dispatcher
}

func NewAuth(b ports.AuthBackend, sessions *SessionStore, notify *Dispatcher) *Auth {
	return &Auth{backend: b, sessions: sessions, notify: notify}
}

// Login checks that both fields are present, then stores the returned token.
// Failures are reported through the dispatcher using the login messages.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		err := &ValidationError{Message: MsgMissingLogin}
		a.notify.Error(err)
		return err
	}

	session, err := a.backend.Login(ctx, username, password)
	if err != nil {
		a.notify.LoginError(err)
		return fmt.Errorf("login: %w", err)
	}

	a.sessions.Set(session)
	return nil
}

// Logout ends the session server-side and always clears it locally, even
// when the server call fails.
func (a *Auth) Logout(ctx context.Context) error {
	session := a.sessions.Current()
	defer a.sessions.Clear()

	if !session.Valid() {
		return nil
	}

	if err := a.backend.Logout(ctx, session); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser fetches the signed-in user's profile and caches it in the
// session store.
func (a *Auth) CurrentUser(ctx context.Context) (domain.User, error) {
	u, err := a.backend.CurrentUser(ctx, a.sessions.Current())
	if err != nil {
		a.notify.Error(err)
		return domain.User{}, fmt.Errorf("current user: %w", err)
	}

	a.sessions.SetUser(u)
	return u, nil
}
