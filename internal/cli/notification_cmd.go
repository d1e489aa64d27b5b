package cli

import (
	"context"
	"fmt"

	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newNotificationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif"},
		Short:   "Read approval-workflow notifications",
	}

	cmd.AddCommand(
		newNotificationListCmd(app),
		newNotificationReadCmd(app),
		newNotificationReadAllCmd(app),
	)

	return cmd
}

func newNotificationListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			items, err := app.Notifications.List(ctx, user.ID, limit)
			if err != nil {
				return err
			}
			unread, err := app.Notifications.UnreadCount(ctx, user.ID)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("No notifications.")
				return nil
			}

			headers := []string{"ID", "", "TITLE", "MESSAGE", "WHEN"}
			rows := make([][]string, 0, len(items))
			for _, n := range items {
				marker := " "
				if !n.Read {
					marker = formatter.StyleHeader.Render("*")
				}
				rows = append(rows, []string{
					formatter.TruncID(n.ID),
					marker,
					n.Title,
					formatter.Dim(n.Message),
					formatter.HumanTimestamp(n.CreatedAt),
				})
			}

			title := fmt.Sprintf("Notifications (%d unread)", unread)
			fmt.Print(formatter.RenderBox(title, formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum notifications to show")

	return cmd
}

func newNotificationReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			if err := app.Notifications.MarkRead(ctx, args[0], user.ID); err != nil {
				return err
			}
			fmt.Println("Marked read.")
			return nil
		},
	}
}

func newNotificationReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark all notifications as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			if err := app.Notifications.MarkAllRead(ctx, user.ID); err != nil {
				return err
			}
			fmt.Println("All notifications marked read.")
			return nil
		},
	}
}
