package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/notify"
	"github.com/felixgeelhaar/tourney/internal/tui"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [path]",
		Short: "Open the interactive client",
		Long: `Open the interactive client.

The optional path is the first screen to open, for example /viewer/matches
or /admin/users. Screens that need a session send you to the sign-in form
first and continue to the screen once you are signed in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	if !ux.IsInteractive() {
		return ux.ErrNotInteractive
	}
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	start := "/"
	if len(args) == 1 {
		start = args[0]
	}

	notices := notify.New()
	defer notices.Close()

	cc.Logger.Debug("starting interactive client", "start", start)

	return tui.Run(cmd.Context(), tui.Deps{
		Session:   cc.Session,
		Client:    cc.Client,
		Navigator: cc.Navigator,
		Notices:   notices,
		Logger:    cc.Logger,
		Plain:     cc.Config.Plain,
		Timeout:   cc.Config.API.Timeout,
	}, start)
}
