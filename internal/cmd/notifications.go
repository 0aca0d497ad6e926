package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tourney/internal/domain"
	"github.com/felixgeelhaar/tourney/internal/router"
	"github.com/felixgeelhaar/tourney/internal/ux"
)

func newNotificationsCmd() *cobra.Command {
	notificationsCmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "Read your notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE:  runNotificationsList,
	}
	listCmd.Flags().Bool("unread", false, "only unread notifications")
	listCmd.Flags().Bool("read", false, "only read notifications")
	listCmd.MarkFlagsMutuallyExclusive("unread", "read")

	notificationsCmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "read <notification-id>",
			Short: "Mark a notification as read",
			Args:  cobra.ExactArgs(1),
			RunE:  runNotificationsRead,
		},
		&cobra.Command{
			Use:   "count",
			Short: "Show the number of unread notifications",
			RunE:  runNotificationsCount,
		},
	)
	return notificationsCmd
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Require(router.NameDashboard, nil); err != nil {
		return err
	}

	var isRead *bool
	if unread, _ := cmd.Flags().GetBool("unread"); unread {
		f := false
		isRead = &f
	}
	if read, _ := cmd.Flags().GetBool("read"); read {
		t := true
		isRead = &t
	}

	ns, err := cc.Client.ListNotifications(cmd.Context(), isRead)
	if err != nil {
		return cc.Fail(err, "listing notifications")
	}
	return cc.Render(ux.NotificationsTable(ns))
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	id, err := parseID(args[0], "notification")
	if err != nil {
		return err
	}
	if err := cc.Require(router.NameDashboard, nil); err != nil {
		return err
	}

	n, err := cc.Client.MarkNotificationRead(cmd.Context(), id)
	if err != nil {
		return cc.Fail(err, "marking notification read")
	}
	return cc.Render(ux.NotificationsTable([]domain.Notification{*n}))
}

type unreadCount domain.UnreadCount

func (u unreadCount) String() string {
	return fmt.Sprintf("%d unread", u.UnreadCount)
}

func runNotificationsCount(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Require(router.NameDashboard, nil); err != nil {
		return err
	}
	n, err := cc.Client.GetUnreadCount(cmd.Context())
	if err != nil {
		return cc.Fail(err, "counting notifications")
	}
	return cc.Render(unreadCount(*n))
}
