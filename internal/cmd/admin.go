package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newUsersCmd() *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersDelete,
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")

	usersCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List user accounts",
			RunE:  runUsersList,
		},
		deleteCmd,
	)
	return usersCmd
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Require("admin-users", nil); err != nil {
		return err
	}
	users, err := cc.Client.ListUsers(cmd.Context())
	if err != nil {
		return cc.Fail(err, "listing users")
	}
	return cc.Render(ux.UsersTable(users))
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0], "user")
	if err != nil {
		return err
	}
	if err := cc.Require("admin-users", nil); err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := ux.Confirm(fmt.Sprintf("Delete user %d?", id), false)
		if err != nil {
			return err
		}
		if !ok {
			cc.Printf("Aborted.\n")
			return nil
		}
	}
	if err := cc.Client.DeleteUser(cmd.Context(), id); err != nil {
		return cc.Fail(err, "deleting user")
	}
	cc.Printf("Deleted user %d.\n", id)
	return nil
}

func newInstitutionsCmd() *cobra.Command {
	institutionsCmd := &cobra.Command{
		Use:   "institutions",
		Short: "Browse institutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	institutionsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every institution (admin)",
			RunE:  runInstitutionsList,
		},
		&cobra.Command{
			Use:   "get [institution-id]",
			Short: "Show one institution; without an id, your own",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runInstitutionsGet,
		},
	)
	return institutionsCmd
}

func runInstitutionsList(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Require("admin-institutions", nil); err != nil {
		return err
	}
	insts, err := cc.Client.ListInstitutions(cmd.Context())
	if err != nil {
		return cc.Fail(err, "listing institutions")
	}
	return cc.Render(ux.InstitutionsTable(insts))
}

func runInstitutionsGet(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	var inst *domain.Institution
	if len(args) == 0 {
		if err := cc.Require("organizer-institution", nil); err != nil {
			return err
		}
		inst, err = cc.Client.GetMyInstitution(cmd.Context())
	} else {
		id, perr := parseID(args[0], "institution")
		if perr != nil {
			return perr
		}
		if err := cc.Require("admin-institutions", nil); err != nil {
			return err
		}
		inst, err = cc.Client.GetInstitution(cmd.Context(), id)
	}
	if err != nil {
		return cc.Fail(err, "fetching institution")
	}
	return cc.Render(ux.InstitutionsTable([]domain.Institution{*inst}))
}
