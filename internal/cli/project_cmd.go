package cli

import (
	"context"
	"fmt"

	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their tasks",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectArchiveCmd(app),
		newTaskAddCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			p := &domain.Project{Name: args[0], Description: description}
			if err := app.Projects.Create(ctx, user.ID, p); err != nil {
				return err
			}

			fmt.Printf("Created project %s (%s)\n", p.Name, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Project description")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			headers := []string{"ID", "NAME", "STATUS", "DESCRIPTION"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					formatter.TruncID(p.ID),
					p.Name,
					p.Status,
					formatter.Dim(p.Description),
				})
			}

			fmt.Print(formatter.RenderBox("Projects", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <project-id>",
		Short: "Archive a project so no new time can be logged against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			p, err := app.Projects.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			p.Status = "archived"
			if err := app.Projects.Update(ctx, user.ID, p); err != nil {
				return err
			}

			fmt.Printf("Archived %s\n", p.Name)
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "task-add <project-id> <name>",
		Short: "Create a task within a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			t := &domain.Task{ProjectID: args[0], Name: args[1], Description: description}
			if err := app.Projects.CreateTask(ctx, user.ID, t); err != nil {
				return err
			}

			fmt.Printf("Created task %s (%s)\n", t.Name, formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Task description")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List tasks in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Projects.ListTasks(context.Background(), args[0])
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			headers := []string{"ID", "NAME", "STATUS", "DESCRIPTION"}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{
					formatter.TruncID(t.ID),
					t.Name,
					t.Status,
					formatter.Dim(t.Description),
				})
			}

			fmt.Print(formatter.RenderBox("Tasks", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
