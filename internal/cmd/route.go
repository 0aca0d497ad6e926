package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newRouteCmd() *cobra.Command {
	routeCmd := &cobra.Command{
		Use:   "route",
		Short: "Inspect screens and their access rules",
		Long: `Inspect the client's screens and the rules that guard them.

Examples:
  tourney route list
  tourney route check /admin/users`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	routeCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every screen with its rules and your access",
			RunE:  runRouteList,
		},
		&cobra.Command{
			Use:   "check <path>",
			Short: "Show where navigating to a path ends for the current session",
			Args:  cobra.ExactArgs(1),
			RunE:  runRouteCheck,
		},
	)
	return routeCmd
}

type routeRow struct {
	Name   string            `json:"name" yaml:"name"`
	Path   string            `json:"path" yaml:"path"`
	Meta   router.Descriptor `json:"meta" yaml:"meta"`
	Access string            `json:"access" yaml:"access"`
}

func roleList(roles []domain.Role) string {
	if len(roles) == 0 {
		return "any"
	}
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

func access(d router.Decision) string {
	if d.Allowed() {
		return "allowed"
	}
	return fmt.Sprintf("%s -> %s", d.Reason, d.Target.Name)
}

func runRouteList(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	table := cc.Navigator.Table()
	t := ux.Table{Head: []string{"NAME", "PATH", "AUTH", "ROLES", "ACCESS"}}
	var rows []routeRow
	for _, e := range table.Entries() {
		loc, err := table.Resolve(e.Pattern)
		acc := "needs params"
		if err == nil {
			acc = access(router.Guard(loc, cc.Session))
		}
		auth := "no"
		switch {
		case e.Meta.RedirectIfAuthenticated:
			auth = "guests only"
		case e.Meta.RequiresAuth:
			auth = "yes"
		}
		rows = append(rows, routeRow{Name: e.Name, Path: e.Pattern, Meta: e.Meta, Access: acc})
		t.Body = append(t.Body, []string{e.Name, e.Pattern, auth, roleList(e.Meta.RequiresRole), acc})
	}
	t.Records = rows
	return cc.Render(t)
}

type routeStep struct {
	Path     string `json:"path" yaml:"path"`
	Name     string `json:"name" yaml:"name"`
	Decision string `json:"decision" yaml:"decision"`
}

type routeCheck struct {
	Requested  string      `json:"requested" yaml:"requested"`
	Final      string      `json:"final" yaml:"final"`
	FinalName  string      `json:"final_name" yaml:"final_name"`
	Redirected bool        `json:"redirected" yaml:"redirected"`
	Reason     string      `json:"reason,omitempty" yaml:"reason,omitempty"`
	Steps      []routeStep `json:"steps" yaml:"steps"`
}

func (c routeCheck) String() string {
	var b strings.Builder
	for i, s := range c.Steps {
		fmt.Fprintf(&b, "%d. %s (%s): %s\n", i+1, s.Path, s.Name, s.Decision)
	}
	if c.Redirected {
		fmt.Fprintf(&b, "Redirected to %s (%s)", c.Final, c.Reason)
	} else {
		fmt.Fprintf(&b, "Allowed: %s", c.Final)
	}
	return b.String()
}

func runRouteCheck(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	res, err := cc.Navigator.Navigate(args[0])
	if err != nil {
		return err
	}

	out := routeCheck{
		Requested:  res.Requested().FullPath,
		Final:      res.Location.FullPath,
		FinalName:  res.Location.Name,
		Redirected: res.Redirected(),
		Reason:     string(res.Reason()),
	}
	for _, s := range res.Steps {
		out.Steps = append(out.Steps, routeStep{Path: s.To.FullPath, Name: s.To.Name, Decision: access(s.Decision)})
	}
	return cc.Render(out)
}
