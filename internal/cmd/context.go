package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/config"
	terrors "github.com/felixgeelhaar/tourney/internal/errors"
	"github.com/felixgeelhaar/tourney/internal/log"
	"github.com/felixgeelhaar/tourney/internal/platform"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/session"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

// CommandContext holds the configuration and collaborators of one command
// execution. Commands build it in RunE:
//
//	func runCommand(cmd *cobra.Command, args []string) error {
//		cc, err := NewCommandContext(cmd)
//		if err != nil {
//			return err
//		}
//		// use cc.Client, cc.Session, cc.Render
//	}
type CommandContext struct {
	Config    config.Loaded
	Logger    *log.Logger
	Client    *platform.Client
	Session   *session.Store
	Navigator *router.Navigator
	Ephemeral bool

	out io.Writer
}

// NewCommandContext loads configuration from file, environment and flags,
// then wires the API client and the session store together
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	ephemeral, err := cmd.Flags().GetBool("ephemeral")
	if err != nil {
		return nil, err
	}

	loaded, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	logger := log.New(cfg.Logger())
	log.SetDefaultLogger(logger)

	client := platform.NewClient(cfg.API.URL,
		platform.WithTimeout(cfg.API.Timeout),
		platform.WithRetries(cfg.API.Retries),
		platform.WithLogger(logger))

	var mirror session.Mirror
	if ephemeral {
		mirror = session.NewMemoryMirror()
	} else {
		mirror = session.NewFileMirror(cfg.State.Dir)
	}
	store := session.New(client,
		session.WithMirror(mirror),
		session.WithBackendURL(cfg.API.URL),
		session.WithLogger(logger))
	client.SetTokenSource(store)

	logger.Debug("command context ready",
		"command", cmd.CommandPath(),
		"config_file", loaded.File,
		"api_url", cfg.API.URL,
		"ephemeral", ephemeral)

	return &CommandContext{
		Config:    *loaded,
		Logger:    logger,
		Client:    client,
		Session:   store,
		Navigator: router.NewNavigator(router.Default(), store, router.WithNavigatorLogger(logger)),
		Ephemeral: ephemeral,
		out:       cmd.OutOrStdout(),
	}, nil
}

// Out is where command output goes
func (c *CommandContext) Out() io.Writer {
	return c.out
}

// Printf writes formatted text output
func (c *CommandContext) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Render writes data in the configured output format
func (c *CommandContext) Render(data any) error {
	f, err := ux.NewFormatter(c.Config.Output, &ux.FormatterOptions{
		Writer:  c.out,
		NoColor: c.Config.Plain,
	})
	if err != nil {
		return err
	}
	return f.Format(data)
}

// Require runs the named route through the guard for the current session.
// A command may only proceed when the guard lets the navigation through
// unchanged.
func (c *CommandContext) Require(name string, params map[string]string) error {
	res, err := c.Navigator.NavigateTo(name, params)
	if err != nil {
		return err
	}
	if !res.Redirected() {
		return nil
	}
	switch res.Reason() {
	case router.ReasonAuthRequired:
		return terrors.NewNotAuthenticatedError()
	case router.ReasonRoleForbidden:
		return terrors.NewForbiddenError(res.Requested().FullPath, string(c.Session.Role()))
	default:
		return nil
	}
}

// Fail wraps a backend error with recovery suggestions
func (c *CommandContext) Fail(err error, action string) error {
	return ux.FormatError(err, action, c.Config.API.URL)
}
