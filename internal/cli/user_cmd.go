package cli

import (
	"context"
	"fmt"

	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
		newUserDefaultsCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add <email> <name>",
		Short: "Provision a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			requester, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			u := &domain.User{
				Email: args[0],
				Name:  args[1],
				Role:  domain.UserRole(role),
			}
			if err := app.Users.Provision(ctx, requester.ID, u); err != nil {
				return err
			}

			fmt.Printf("Provisioned %s <%s> as %s (%s)\n", u.Name, u.Email, u.Role, formatter.TruncID(u.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "User role (admin or employee)")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			requester, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			users, err := app.Users.List(ctx, requester.ID)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					formatter.TruncID(u.ID),
					u.Name,
					u.Email,
					string(u.Role),
					string(u.Status),
				})
			}

			fmt.Print(formatter.RenderBox("Users", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newUserDefaultsCmd(app *App) *cobra.Command {
	var projectID, taskID string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Set the acting user's default project and task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if projectID != "" {
				user.DefaultProject = &projectID
			}
			if taskID != "" {
				user.DefaultTask = &taskID
			}
			if err := app.Users.Update(ctx, user.ID, user); err != nil {
				return err
			}

			fmt.Println("Defaults updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Default project ID")
	cmd.Flags().StringVar(&taskID, "task", "", "Default task ID")

	return cmd
}
