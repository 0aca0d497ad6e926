package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/session"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the signed-in session",
		Long: `Manage the signed-in session.

The session credential and user are saved together in the state
directory and restored on the next run. Use --ephemeral to keep a
session in memory for a single command.

Examples:
  tourney auth login --email coach@example.com
  tourney auth status
  tourney auth whoami
  tourney auth logout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in with email and password.

Missing values are prompted for when stdin is a terminal. For scripts,
pipe the password with --password-stdin.

Examples:
  tourney auth login --email admin@example.com
  echo "$PASSWORD" | tourney auth login --email admin@example.com --password-stdin`,
		RunE: runAuthLogin,
	}
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prefer --password-stdin)")
	loginCmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	authCmd.AddCommand(
		loginCmd,
		&cobra.Command{
			Use:   "logout",
			Short: "Sign out and remove the saved session",
			RunE:  runAuthLogout,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the saved session",
			RunE:  runAuthStatus,
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Refresh and show the signed-in user from the server",
			RunE:  runAuthWhoAmI,
		},
	)
	return authCmd
}

type loginResult struct {
	User      domain.User `json:"user" yaml:"user"`
	Dashboard string      `json:"dashboard" yaml:"dashboard"`
}

func (r loginResult) String() string {
	return fmt.Sprintf("Signed in as %s (%s)\nDashboard: %s", r.User.DisplayName(), r.User.Role, r.Dashboard)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	creds := ux.Credentials{}
	creds.Email, _ = cmd.Flags().GetString("email")
	creds.Password, _ = cmd.Flags().GetString("password")
	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return terrors.Wrap(terrors.ErrCodeFileReadFailed, "failed to read password from stdin", err)
		}
		creds.Password = strings.TrimRight(line, "\r\n")
	}

	creds, err = ux.PromptCredentials(creds)
	if errors.Is(err, ux.ErrNotInteractive) {
		return terrors.New(terrors.ErrCodeLoginFailed, "email and password are required").
			WithSuggestion("Pass --email and pipe the password with --password-stdin")
	}
	if err != nil {
		return err
	}

	tok, err := cc.Session.Login(cmd.Context(), creds.Email, creds.Password)
	if err != nil {
		return loginError(err, cc.Config.API.URL)
	}

	href, err := cc.Navigator.Table().Href(router.DashboardFor(tok.User.Role), nil, nil)
	if err != nil {
		return err
	}
	return cc.Render(loginResult{User: tok.User, Dashboard: href})
}

// loginError maps a failed login onto a coded error carrying the same
// message the session recorded
func loginError(err error, baseURL string) error {
	f := session.ClassifyLogin(err, baseURL)
	switch f.Kind {
	case session.FailureNetworkUnavailable:
		return terrors.NewAPIUnavailableError(baseURL, err)
	case session.FailureInvalidCredentials:
		return terrors.Wrap(terrors.ErrCodeInvalidCredentials, f.Message, err).
			WithSuggestion("Check the email and password and try again")
	default:
		return terrors.Wrap(terrors.ErrCodeLoginFailed, f.Message, err)
	}
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	snap := cc.Session.Snapshot()
	if !snap.Authenticated() {
		cc.Printf("Not logged in.\n")
		return nil
	}
	if err := cc.Session.Logout(); err != nil {
		return terrors.Wrap(terrors.ErrCodeFileWriteFailed, "signed out, but the saved session could not be removed", err)
	}
	cc.Printf("Signed out %s.\n", snap.Identity.Email)
	return nil
}

type authStatus struct {
	Authenticated bool         `json:"authenticated" yaml:"authenticated"`
	User          *domain.User `json:"user,omitempty" yaml:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Expired       bool         `json:"expired" yaml:"expired"`
	Storage       string       `json:"storage" yaml:"storage"`
}

func (s authStatus) String() string {
	if !s.Authenticated {
		return "Not logged in.\nStorage: " + s.Storage
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Logged in as %s <%s>\nRole: %s\n", s.User.DisplayName(), s.User.Email, s.User.Role)
	switch {
	case s.ExpiresAt == nil:
		b.WriteString("Expires: unknown\n")
	case s.Expired:
		fmt.Fprintf(&b, "Expired: %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
	default:
		fmt.Fprintf(&b, "Expires: %s\n", s.ExpiresAt.Local().Format(time.RFC1123))
	}
	b.WriteString("Storage: " + s.Storage)
	return b.String()
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	st := authStatus{Storage: "memory"}
	if !cc.Ephemeral {
		st.Storage = session.NewFileMirror(cc.Config.State.Dir).Path()
	}
	snap := cc.Session.Snapshot()
	if snap.Authenticated() {
		st.Authenticated = true
		st.User = snap.Identity
		if exp, ok := session.CredentialExpiry(cc.Session.Credential()); ok {
			st.ExpiresAt = &exp
			st.Expired = time.Now().After(exp)
		}
	}
	return cc.Render(st)
}

type whoAmI struct {
	domain.User `yaml:",inline"`
}

func (w whoAmI) String() string {
	return fmt.Sprintf("%s <%s>\nRole: %s\nID: %d", w.DisplayName(), w.Email, w.Role, w.ID)
}

func runAuthWhoAmI(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Require(router.NameDashboard, nil); err != nil {
		return err
	}

	u, err := cc.Session.FetchCurrentUser(cmd.Context())
	if err != nil {
		f := session.ClassifyLookup(err, cc.Config.API.URL)
		switch f.Kind {
		case session.FailureNetworkUnavailable:
			return terrors.NewAPIUnavailableError(cc.Config.API.URL, err)
		case session.FailureInvalidCredentials:
			return terrors.Wrap(terrors.ErrCodeSessionRejected, f.Message, err).
				WithSuggestion("The saved session was cleared; run 'tourney auth login'")
		default:
			return terrors.Wrap(terrors.ErrCodeAPIRejected, f.Message, err)
		}
	}
	return cc.Render(whoAmI{User: *u})
}
