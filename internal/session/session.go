// Package session holds the application context shared by every screen and
// command: the loading flag, the bearer token and the logged-in user.
package session

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rshade/dealerdesk/internal/api"
	"github.com/rshade/dealerdesk/internal/logging"
)

// Login validation errors.
var (
	ErrInvalidEmail     = errors.New("please enter a valid e-mail address")
	ErrPasswordRequired = errors.New("password is required")
	ErrNotLoggedIn      = errors.New("not logged in: run 'dealerdesk login'")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Authenticator exchanges credentials for a token. *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (string, error)
}

// AppContext is safe for concurrent use; bubbletea commands read it from
// their own goroutines.
type AppContext struct {
	mu       sync.RWMutex
	loading  bool
	state    State
	store    *Store
	onLogin  []func(State)
	onLogout []func()
	now      func() time.Time
}

// New creates an AppContext, restoring any saved session from store. store
// may be nil for an in-memory session.
func New(store *Store) (*AppContext, error) {
	a := &AppContext{store: store, now: time.Now}
	if store == nil {
		return a, nil
	}
	st, err := store.Load()
	if err != nil {
		return a, err
	}
	a.state = st
	return a, nil
}

// IsLoading reports whether a blocking request is in flight.
func (a *AppContext) IsLoading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// SetIsLoading sets the loading flag.
func (a *AppContext) SetIsLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

// Token implements api.TokenSource.
func (a *AppContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Token
}

// State returns the current login.
func (a *AppContext) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// IsAuthenticated reports whether a token is held.
func (a *AppContext) IsAuthenticated() bool { return a.Token() != "" }

// RequireAuth returns ErrNotLoggedIn when no token is held.
func (a *AppContext) RequireAuth() error {
	if !a.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

// OnLogin registers fn to run after a successful login.
func (a *AppContext) OnLogin(fn func(State)) {
	a.mu.Lock()
	a.onLogin = append(a.onLogin, fn)
	a.mu.Unlock()
}

// OnLogout registers fn to run after the session ends.
func (a *AppContext) OnLogout(fn func()) {
	a.mu.Lock()
	a.onLogout = append(a.onLogout, fn)
	a.mu.Unlock()
}

// ValidateCredentials checks the e-mail shape and that a password is given.
func ValidateCredentials(username, password string) error {
	if !emailPattern.MatchString(strings.TrimSpace(username)) {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Login validates the credentials, authenticates against the backend and
// persists the token. The loading flag is held for the duration of the call.
func (a *AppContext) Login(ctx context.Context, auth Authenticator, username, password string) error {
	username = strings.TrimSpace(username)
	if err := ValidateCredentials(username, password); err != nil {
		return err
	}

	a.SetIsLoading(true)
	defer a.SetIsLoading(false)

	token, err := auth.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}

	st := State{Token: token, Username: username, LoggedInAt: a.now().UTC()}
	if c, ok := auth.(interface{ BaseURL() string }); ok {
		st.BaseURL = c.BaseURL()
	}

	a.mu.Lock()
	a.state = st
	hooks := append([]func(State){}, a.onLogin...)
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.Save(st); err != nil {
			return err
		}
	}
	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "session").
		Str("username", username).
		Msg("logged in")
	for _, fn := range hooks {
		fn(st)
	}
	return nil
}

// Logout forgets the token and removes the session file.
func (a *AppContext) Logout() error {
	a.mu.Lock()
	had := a.state.Token != ""
	a.state = State{}
	hooks := append([]func(){}, a.onLogout...)
	a.mu.Unlock()

	var err error
	if a.store != nil {
		err = a.store.Clear()
	}
	if had {
		for _, fn := range hooks {
			fn()
		}
	}
	return err
}

// Unauthorized implements api.TokenSource: a rejected token ends the session.
func (a *AppContext) Unauthorized(ctx context.Context) {
	if err := a.Logout(); err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "session").
			Str("operation", "unauthorized").
			Err(err).
			Msg("session ended but the session file could not be removed")
	}
}
