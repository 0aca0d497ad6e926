package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/exitcode"
	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/session"
)

var testUsers = map[string]domain.User{
	"admin@example.com":  {ID: 1, Email: "admin@example.com", Username: "admin", Role: domain.RoleAdmin},
	"viewer@example.com": {ID: 2, Email: "viewer@example.com", Username: "viewer", Role: domain.RoleViewer},
}

type testEnv struct {
	t        *testing.T
	srv      *httptest.Server
	stateDir string
	lastURL  string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestEnv isolates config lookup and starts a fake tournament API
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, key := range []string{"TOURNEY_API_URL", "TOURNEY_OUTPUT", "TOURNEY_LOG_LEVEL", "TOURNEY_STATE_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env := &testEnv{t: t, stateDir: filepath.Join(dir, "session")}
	authed := func(r *http.Request) (domain.User, bool) {
		u, ok := testUsers[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer tok-")]
		return u, ok
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req platform.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		u, ok := testUsers[req.Email]
		if !ok || req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, domain.Token{AccessToken: "tok-" + u.Email, TokenType: "bearer", User: u})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		u, ok := authed(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, http.StatusOK, u)
	})
	mux.HandleFunc("GET /admin/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.User{testUsers["admin@example.com"]})
	})
	mux.HandleFunc("GET /matches", func(w http.ResponseWriter, r *http.Request) {
		env.lastURL = r.URL.String()
		writeJSON(w, http.StatusOK, []domain.Match{{ID: 7, Status: domain.MatchLive}})
	})
	mux.HandleFunc("GET /matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Match{ID: 7, Status: domain.MatchScheduled})
	})
	mux.HandleFunc("GET /matches/{id}/score", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Score not found"})
	})
	mux.HandleFunc("GET /notifications/unread/count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.UnreadCount{UnreadCount: 4})
	})

	env.srv = httptest.NewServer(mux)
	t.Cleanup(env.srv.Close)
	return env
}

// run executes the CLI against the fake API and returns stdout
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--api-url", e.srv.URL,
		"--state-dir", e.stateDir,
		"--api-retries", "0",
		"--log-level", "error",
	}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) login(email string) {
	e.t.Helper()
	_, err := e.run("secret\n", "auth", "login", "--email", email, "--password-stdin")
	require.NoError(e.t, err)
}

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCmd()
	want := []string{
		"auth", "route", "matches", "tournaments", "notifications", "users", "institutions",
		"teams", "players", "venues", "sports", "schedules", "stats", "config", "ui", "version",
	}
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}

	for _, flag := range []string{"config", "api-url", "api-timeout", "api-retries", "log-level", "log-format", "state-dir", "output", "plain", "ephemeral"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestAuthLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("secret\n", "auth", "login", "--email", "admin@example.com", "--password-stdin")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as admin (admin)")
	assert.Contains(t, out, "Dashboard: /admin")
	assert.FileExists(t, filepath.Join(env.stateDir, session.FileName))

	out, err = env.run("", "auth", "status", "-o", "json")
	require.NoError(t, err)
	var st authStatus
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.True(t, st.Authenticated)
	assert.Equal(t, "admin@example.com", st.User.Email)
	assert.Nil(t, st.ExpiresAt, "test credentials are not JWTs")

	out, err = env.run("", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "admin <admin@example.com>")

	out, err = env.run("", "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out admin@example.com")
	assert.NoFileExists(t, filepath.Join(env.stateDir, session.FileName))

	out, err = env.run("", "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = env.run("", "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestAuthLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("wrong\n", "auth", "login", "--email", "admin@example.com", "--password-stdin")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeInvalidCredentials))
	assert.Contains(t, err.Error(), "Incorrect email or password")
	assert.Equal(t, exitcode.AuthError, exitcode.DetermineExitCode(err))
	assert.NoFileExists(t, filepath.Join(env.stateDir, session.FileName))
}

func TestAuthLoginNeedsInputWithoutTerminal(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "auth", "login", "--email", "admin@example.com")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeLoginFailed))
}

func TestAuthLoginUnreachableBackend(t *testing.T) {
	env := newTestEnv(t)
	env.srv.Close()

	_, err := env.run("secret\n", "auth", "login", "--email", "admin@example.com", "--password-stdin")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeAPIUnavailable))
	assert.Equal(t, exitcode.NetworkError, exitcode.DetermineExitCode(err))
}

func TestEphemeralSessionNotSaved(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("secret\n", "--ephemeral", "auth", "login", "--email", "admin@example.com", "--password-stdin")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(env.stateDir, session.FileName))
}

func TestProtectedCommandNeedsSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "users", "list")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeNotAuthenticated))
	assert.Equal(t, exitcode.AuthError, exitcode.DetermineExitCode(err))
}

func TestProtectedCommandChecksRole(t *testing.T) {
	env := newTestEnv(t)
	env.login("viewer@example.com")

	_, err := env.run("", "users", "list")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeForbidden))
	assert.Contains(t, err.Error(), `role "viewer" may not access /admin/users`)

	env.login("admin@example.com")
	out, err := env.run("", "users", "list", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@example.com")
}

func TestMatchesListPublic(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "matches", "list", "--status", "LIVE", "--sport", "3", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, env.lastURL, "status=live")
	assert.Contains(t, env.lastURL, "sport_id=3")

	var matches []domain.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, int64(7), matches[0].ID)
}

func TestMatchesListRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "matches", "list", "--status", "finished")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid status "finished"`)
}

func TestMatchesGetWithoutScore(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "matches", "get", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Match 7")
	assert.NotContains(t, out, "Score:")

	_, err = env.run("", "matches", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid match id")
}

func TestMatchesSetScoreNeedsCoach(t *testing.T) {
	env := newTestEnv(t)
	env.login("viewer@example.com")

	_, err := env.run("", "matches", "set-score", "7", "--home", "1")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeForbidden))
	assert.Contains(t, err.Error(), "/coach/matches/7/live-score")
}

func TestNotificationsCount(t *testing.T) {
	env := newTestEnv(t)
	env.login("viewer@example.com")

	out, err := env.run("", "notifications", "count")
	require.NoError(t, err)
	assert.Equal(t, "4 unread\n", out)
}

func TestRouteCheck(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "route", "check", "/admin/users", "-o", "json")
	require.NoError(t, err)

	var res routeCheck
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Redirected)
	assert.Equal(t, "auth_required", res.Reason)
	assert.Equal(t, "login", res.FinalName)
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fusers", res.Final)
	assert.Len(t, res.Steps, 2)

	_, err = env.run("", "route", "check", "/nowhere")
	require.Error(t, err)
	assert.Equal(t, exitcode.NotFound, exitcode.DetermineExitCode(err))
}

func TestRouteListShowsAccess(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "route", "list", "-o", "json")
	require.NoError(t, err)

	var rows []routeRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	access := map[string]string{}
	for _, r := range rows {
		access[r.Name] = r.Access
	}
	assert.Equal(t, "allowed", access["home"])
	assert.Equal(t, "allowed", access["viewer-matches"])
	assert.Equal(t, "auth_required -> login", access["admin-users"])
}

func TestConfigInitAndShow(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "tourney.yaml")

	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"config", "init", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Wrote "+path)
	assert.FileExists(t, path)

	root = NewRootCmd()
	root.SetArgs([]string{"config", "init", "--config", path})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, exitcode.ConfigError, exitcode.DetermineExitCode(err))

	out, err := env.run("", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# Configuration file: "+path)
	assert.Contains(t, out, "url: "+env.srv.URL)
}

func TestVersionJSON(t *testing.T) {
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "-o", "json"})
	require.NoError(t, root.Execute())

	var info map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}
