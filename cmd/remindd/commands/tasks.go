package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/store"
)

func parseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

// saveResult prints the task and turns a persistence failure into an error,
// since a one-shot command has no later chance to save.
func saveResult(cmd *cobra.Command, verb string, t model.Task, err error) error {
	if err != nil && !errors.Is(err, store.ErrPersistence) {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, t)
	return err
}

func NewAddCmd(configPath *string) *cobra.Command {
	var at, frequency string
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a daily task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			t, err := app.Store.Create(cmd.Context(), model.TaskInput{
				Name:      strings.Join(args, " "),
				Time:      at,
				Frequency: frequency,
			})
			return saveResult(cmd, "added", t, err)
		},
	}
	cmd.Flags().StringVarP(&at, "time", "t", "", "time of day as HH:MM")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "free-form frequency label, e.g. daily")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func NewListCmd(configPath *string) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseFilterMode(filter)
			if err != nil {
				return fmt.Errorf("%w: %q", err, filter)
			}
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			tasks := model.Project(app.Store.List(), mode)
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "no tasks found")
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, pending, completed or favorites")
	return cmd
}

func NewEditCmd(configPath *string) *cobra.Command {
	var name, at, frequency string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task's name, time or frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			current, ok := app.Store.Get(id)
			if !ok {
				return fmt.Errorf("%w: %d", store.ErrNotFound, id)
			}
			in := current.Input()
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("time") {
				in.Time = at
			}
			if cmd.Flags().Changed("frequency") {
				in.Frequency = frequency
			}
			t, err := app.Store.Update(cmd.Context(), id, in)
			return saveResult(cmd, "updated", t, err)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new task name")
	cmd.Flags().StringVarP(&at, "time", "t", "", "new time of day as HH:MM")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "new frequency label")
	return cmd
}

func NewDoneCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			t, err := app.Store.ToggleCompleted(cmd.Context(), id)
			verb := "reopened"
			if t.Completed {
				verb = "completed"
			}
			return saveResult(cmd, verb, t, err)
		},
	}
}

func NewFavCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fav ID",
		Short: "Toggle a task's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			t, err := app.Store.ToggleFavorite(cmd.Context(), id)
			verb := "unstarred"
			if t.Favorite {
				verb = "starred"
			}
			return saveResult(cmd, verb, t, err)
		},
	}
}

func NewRemoveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete", "del"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := openLoadedApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer app.Close()

			t, ok := app.Store.Get(id)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no task #%d\n", id)
				return nil
			}
			if err := app.Store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", t)
			return nil
		},
	}
}
