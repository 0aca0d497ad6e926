package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		Long: `Show or create the configuration file.

Settings are read from, in increasing priority: built-in defaults, the
config file, TOURNEY_* environment variables (TOURNEY_API_URL,
TOURNEY_LOG_LEVEL, ...) and command-line flags.

Examples:
  tourney config show
  tourney config init
  TOURNEY_API_URL=https://api.example.com tourney config show -o json`,
		RunE: helpRunE,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration",
			RunE:  runConfigShow,
		},
		initCmd,
		&cobra.Command{
			Use:   "path",
			Short: "Print the default config file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), config.DefaultFile())
				return nil
			},
		},
	)
	return configCmd
}

type effectiveConfig struct {
	config.Loaded
}

func (e effectiveConfig) String() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString("# Configuration file: " + e.File + "\n")
	} else {
		b.WriteString("# No configuration file; built-in defaults\n")
	}
	data, err := config.Marshal(e.Config)
	if err != nil {
		return b.String() + "# " + err.Error()
	}
	b.Write(data)
	return strings.TrimRight(b.String(), "\n")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if cc.Config.Output == config.OutputText {
		return cc.Render(effectiveConfig{cc.Config})
	}
	return cc.Render(cc.Config.Config)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultFile()
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := config.WriteDefault(path, force); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote "+path)
	return nil
}
