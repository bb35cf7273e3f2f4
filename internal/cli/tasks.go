package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/controller"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/views"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openForCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			text := strings.Join(args, " ")
			if err := model.CheckLength(text); err != nil {
				return err
			}
			task, err := s.ctl.Add(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", views.ShortID(task.ID), views.SanitizeTerminal(task.Text))
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}
			// The controller renders the list once while opening.
			s, err := app.openForCommand(cmd,
				controller.WithFilter(f),
				controller.WithRenderer(views.NewTextRenderer(cmd.OutOrStdout())),
			)
			if err != nil {
				return err
			}
			return s.Close()
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "Which tasks to show (all|pending|completed)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed or pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openForCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveID(s.ctl, args[0])
			if err != nil {
				return err
			}
			if _, err := s.ctl.Toggle(cmd.Context(), id); err != nil {
				return err
			}
			state := "pending"
			if task, ok := findTask(s.ctl, id); ok && task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", views.ShortID(id), state)
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openForCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveID(s.ctl, args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if _, err := model.NormalizeText(text); err != nil {
				return err
			}
			if err := model.CheckLength(text); err != nil {
				return err
			}
			if err := s.ctl.BeginEdit(id); err != nil {
				return err
			}
			if err := s.ctl.CommitEdit(cmd.Context(), id, text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "edited %s\n", views.ShortID(id))
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openForCommand(cmd, controller.WithConfirmer(confirmerFor(cmd, yes)))
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveID(s.ctl, args[0])
			if err != nil {
				return err
			}
			before := len(s.ctl.Tasks())
			if err := s.ctl.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if len(s.ctl.Tasks()) == before {
				fmt.Fprintln(cmd.OutOrStdout(), "kept")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", views.ShortID(id))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newClearCompletedCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task after confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openForCommand(cmd, controller.WithConfirmer(confirmerFor(cmd, yes)))
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.ctl.Statistics().ClearEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "no completed tasks")
				return nil
			}
			removed, err := s.ctl.ClearCompleted(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", views.CountLabel(removed, "task", "tasks"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openForCommand(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st := s.ctl.Statistics()
			fmt.Fprintf(cmd.OutOrStdout(), "%s · %s · %d pending\n",
				views.CountLabel(st.Total, "task", "tasks"),
				views.CountLabel(st.Completed, "completed", "completed"),
				st.Pending(),
			)
			stamped, ok := s.backend.(storage.Stamped)
			if !ok {
				return nil
			}
			saved, err := stamped.UpdatedAt(cmd.Context(), controller.StorageKey)
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "last saved %s\n", saved.Local().Format(time.DateTime))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved list so the next run starts fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmerFor(cmd, yes).Ask("Delete every saved task?") {
				fmt.Fprintln(cmd.OutOrStdout(), "kept")
				return nil
			}
			backend, err := storage.Open(app.cfg.StorageOptions())
			if err != nil {
				return fmt.Errorf("open %s store: %w", app.cfg.Store, err)
			}
			defer backend.Close()

			err = backend.Delete(cmd.Context(), controller.StorageKey)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), "nothing saved")
			case err != nil:
				return err
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "reset")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmerFor(cmd *cobra.Command, yes bool) controller.Confirmer {
	if yes {
		return controller.AlwaysConfirm
	}
	return newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// resolveID maps a full id or a unique id prefix to a task id.
func resolveID(ctl *controller.Controller, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("task id is required")
	}
	var matches []string
	for _, t := range ctl.Tasks() {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", notFoundError{ref: ref}
	case 1:
		return matches[0], nil
	default:
		return "", ambiguousIDError{ref: ref, matches: matches}
	}
}

func findTask(ctl *controller.Controller, id string) (model.Task, bool) {
	for _, t := range ctl.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
