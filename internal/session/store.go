// Package session holds the client's authentication state: the bearer
// credential and the identity it belongs to, kept in memory and mirrored
// to durable storage so a restart does not require a new login.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/log"
	"github.com/felixgeelhaar/tourney/internal/platform"
)

// Authenticator exchanges credentials and looks up identities.
// *platform.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.Token, error)
	WhoAmI(ctx context.Context, credential string) (*domain.User, error)
}

var _ Authenticator = (*platform.Client)(nil)

// Status is derived from the presence of credential and identity
type Status string

// Session statuses
const (
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// Snapshot is a consistent read of the session
type Snapshot struct {
	Identity  *domain.User
	Status    Status
	Pending   bool
	LastError string
}

// Authenticated reports whether the snapshot holds a credential and identity
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// Role returns the identity's role, or "" when anonymous
func (s Snapshot) Role() domain.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// State returns the authentication status and role together
func (s Snapshot) State() (bool, domain.Role) {
	return s.Authenticated(), s.Role()
}

func (s Snapshot) IsAdmin() bool     { return s.Role() == domain.RoleAdmin }
func (s Snapshot) IsOrganizer() bool { return s.Role() == domain.RoleOrganizer }
func (s Snapshot) IsCoach() bool     { return s.Role() == domain.RoleCoach }
func (s Snapshot) IsPlayer() bool    { return s.Role() == domain.RolePlayer }
func (s Snapshot) IsViewer() bool    { return s.Role() == domain.RoleViewer }

// ErrEmptyCredential is returned when a login response carries no token
var ErrEmptyCredential = errors.New("login response carried no access token")

// Store owns the session state.
//
// Login, FetchCurrentUser and Logout are serialized: a second call waits
// for the first to settle. Readers never wait on an operation; they see
// the state as it was before the operation started until it completes.
// Subscribers are called once the operation has released the store, so
// they may call its operations themselves.
type Store struct {
	auth    Authenticator
	cache   mirrorCache
	baseURL string
	logger  *log.Logger

	opMu sync.Mutex

	mu         sync.RWMutex
	credential string
	identity   *domain.User
	pending    int
	lastError  string

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
	queued  []Snapshot
}

// Option configures a Store
type Option func(*Store)

// WithMirror sets the durable mirror. The default is an in-memory mirror.
func WithMirror(m Mirror) Option {
	return func(s *Store) {
		if m != nil {
			s.cache = mirrorCache{m: m}
		}
	}
}

// WithBackendURL sets the address quoted in network failure messages
func WithBackendURL(u string) Option {
	return func(s *Store) {
		s.baseURL = u
	}
}

// WithLogger sets the store logger
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store and restores any session found in the mirror
func New(auth Authenticator, opts ...Option) *Store {
	s := &Store{
		auth:    auth,
		cache:   mirrorCache{m: NewMemoryMirror()},
		baseURL: platform.DefaultBaseURL,
		logger:  log.DefaultLogger(),
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session")
	s.Restore()
	return s
}

// Restore reloads the session from the mirror, replacing the in-memory
// state. A missing or unreadable mirror leaves the session anonymous.
func (s *Store) Restore() {
	s.opMu.Lock()
	defer s.release()

	credential, user, err := s.cache.load()
	if err != nil {
		s.logger.WithError(err).Warn("ignoring stored session")
	}

	s.mu.Lock()
	if user != nil {
		s.credential, s.identity = credential, user
	} else {
		s.credential, s.identity = "", nil
	}
	s.mu.Unlock()

	if user != nil {
		s.logger.Debug("session restored", "user_id", user.ID, "role", user.Role, "credential", log.Fingerprint(credential))
	}
	s.notify()
}

// Login exchanges email and password for a session. On failure the
// previous session is left as it was, LastError holds a readable message
// and the authenticator's error is returned unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	s.opMu.Lock()
	defer s.release()

	s.begin()
	defer s.end()

	tok, err := s.auth.Login(ctx, email, password)
	if err == nil && tok.AccessToken == "" {
		err = ErrEmptyCredential
	}
	if err != nil {
		f := ClassifyLogin(err, s.baseURL)
		s.logger.Info("login failed", "kind", f.Kind.String(), "status", platform.StatusCode(err))
		s.fail(f.Message)
		return nil, err
	}

	user := tok.User
	if err := s.cache.save(tok.AccessToken, &user); err != nil {
		s.logger.WithError(err).Warn("failed to persist session")
		s.fail(ClassifyLogin(err, s.baseURL).Message)
		return nil, err
	}

	s.mu.Lock()
	s.credential, s.identity = tok.AccessToken, user.Clone()
	s.mu.Unlock()

	s.logger.Info("logged in", "user_id", user.ID, "role", user.Role, "credential", log.Fingerprint(tok.AccessToken))
	return tok, nil
}

// Logout clears the session and the mirror. The in-memory session is
// always cleared; the returned error reports a mirror failure only.
func (s *Store) Logout() error {
	s.opMu.Lock()
	defer s.release()
	return s.clear()
}

func (s *Store) clear() error {
	s.mu.Lock()
	had := s.credential != ""
	s.credential, s.identity = "", nil
	s.mu.Unlock()

	err := s.cache.clear()
	if err != nil {
		s.logger.WithError(err).Warn("failed to clear stored session")
	}
	if had {
		s.logger.Info("logged out")
	}
	s.notify()
	return err
}

// FetchCurrentUser refreshes the identity with the current credential. A
// rejected lookup tears the whole session down before the error is
// returned.
func (s *Store) FetchCurrentUser(ctx context.Context) (*domain.User, error) {
	s.opMu.Lock()
	defer s.release()

	s.begin()
	defer s.end()

	credential := s.Credential()
	if credential == "" {
		err := terrors.NewNotAuthenticatedError()
		s.fail(msgFetchUserFailed)
		_ = s.clear()
		return nil, err
	}

	user, err := s.auth.WhoAmI(ctx, credential)
	if err != nil {
		f := ClassifyLookup(err, s.baseURL)
		s.logger.Info("identity lookup failed", "kind", f.Kind.String(), "status", platform.StatusCode(err))
		s.fail(f.Message)
		_ = s.clear()
		return nil, err
	}

	if err := s.cache.saveIdentity(user); err != nil {
		s.logger.WithError(err).Warn("failed to persist user")
		s.fail(err.Error())
		return nil, err
	}

	s.mu.Lock()
	// a concurrent Logout cannot run while opMu is held, so the credential
	// read above is still current
	s.identity = user.Clone()
	s.mu.Unlock()
	return user, nil
}

// Snapshot returns a consistent view of the session
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:    StatusAnonymous,
		Pending:   s.pending > 0,
		LastError: s.lastError,
	}
	if s.credential != "" && s.identity != nil {
		snap.Identity = s.identity.Clone()
		snap.Status = StatusAuthenticated
	}
	return snap
}

// Authenticated reports whether a session is established
func (s *Store) Authenticated() bool {
	return s.Snapshot().Authenticated()
}

// Role returns the session role, or "" when anonymous
func (s *Store) Role() domain.Role {
	return s.Snapshot().Role()
}

// State returns the authentication status and role from one snapshot
func (s *Store) State() (bool, domain.Role) {
	return s.Snapshot().State()
}

// Credential returns the bearer credential, or "" when anonymous
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change, after the operation has
// released the store. The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.pending++
	s.lastError = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) end() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
	s.notify()
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	s.notify()
}

// notify queues the current state for subscribers. The queue is
// delivered by release once opMu is no longer held.
func (s *Store) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	if len(s.subs) > 0 {
		s.queued = append(s.queued, snap)
	}
	s.subMu.Unlock()
}

func (s *Store) release() {
	s.opMu.Unlock()

	s.subMu.Lock()
	queued := s.queued
	s.queued = nil
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, snap := range queued {
		for _, fn := range fns {
			fn(snap)
		}
	}
}

// CredentialExpiry returns the exp claim of a JWT credential. The token
// is not verified; the result is for display only and never affects the
// session status.
func CredentialExpiry(credential string) (time.Time, bool) {
	if credential == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
