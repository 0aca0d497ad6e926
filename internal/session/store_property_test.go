package session

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

type op int

const (
	opLoginOK op = iota
	opLoginBad
	opLogout
	opFetch
	opRevoke
	opRestart
)

// TestStore_CredentialIffIdentity drives random operation sequences and
// checks that credential and identity are always present together, in
// memory and in the mirror.
func TestStore_CredentialIffIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		auth := newFakeAuth()
		auth.addUser(1, "admin@x.io", domain.RoleAdmin)
		auth.addUser(2, "player@x.io", domain.RolePlayer)
		mirror := NewMemoryMirror()
		s := New(auth, WithMirror(mirror), WithLogger(quietLogger()))
		ctx := context.Background()

		ops := rapid.SliceOfN(rapid.SampledFrom([]op{opLoginOK, opLoginBad, opLogout, opFetch, opRevoke, opRestart}), 1, 30).Draw(t, "ops")
		email := rapid.SampledFrom([]string{"admin@x.io", "player@x.io"})

		for _, o := range ops {
			switch o {
			case opLoginOK:
				_, _ = s.Login(ctx, email.Draw(t, "email"), "secret")
			case opLoginBad:
				_, _ = s.Login(ctx, email.Draw(t, "email"), "nope")
			case opLogout:
				_ = s.Logout()
			case opFetch:
				_, _ = s.FetchCurrentUser(ctx)
			case opRevoke:
				auth.revokeAll()
			case opRestart:
				s = New(auth, WithMirror(mirror), WithLogger(quietLogger()))
			}

			s.mu.RLock()
			credSet, idSet := s.credential != "", s.identity != nil
			s.mu.RUnlock()
			if credSet != idSet {
				t.Fatalf("after %v: credential set=%v, identity set=%v", o, credSet, idSet)
			}

			_, mc, _ := mirror.Get(KeyCredential)
			_, mi, _ := mirror.Get(KeyIdentity)
			if mc != mi {
				t.Fatalf("after %v: mirror credential=%v, identity=%v", o, mc, mi)
			}

			snap := s.Snapshot()
			if snap.Pending {
				t.Fatalf("after %v: pending outlived the operation", o)
			}
			if snap.Authenticated() != credSet {
				t.Fatalf("after %v: status %s disagrees with state", o, snap.Status)
			}
		}
	})
}

// TestLogout_IdempotentProperty checks that any number of logouts after any
// state leaves the same anonymous snapshot.
func TestLogout_IdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		auth := newFakeAuth()
		auth.addUser(1, "a@x.io", domain.RoleCoach)
		s := New(auth, WithLogger(quietLogger()))
		if rapid.Bool().Draw(t, "logged_in") {
			_, _ = s.Login(context.Background(), "a@x.io", "secret")
		}

		n := rapid.IntRange(1, 5).Draw(t, "logouts")
		_ = s.Logout()
		first := s.Snapshot()
		for i := 1; i < n; i++ {
			_ = s.Logout()
		}
		if got := s.Snapshot(); got != first {
			t.Fatalf("snapshot changed after repeated logout: %+v != %+v", got, first)
		}
		if first.Status != StatusAnonymous {
			t.Fatalf("expected anonymous, got %s", first.Status)
		}
	})
}
