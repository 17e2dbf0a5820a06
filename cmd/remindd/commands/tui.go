package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/update"
)

func NewTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(cmd.Context(), *configPath)
		},
	}
}

// RunTUI runs the Bubble Tea program with the alarm scheduler in the
// background. Logs go to a file so they never mix with the screen.
func RunTUI(ctx context.Context, configPath string) error {
	app, err := openApp(ctx, configPath, true)
	if err != nil {
		return err
	}
	defer app.Close()

	toast := notify.NewToast(app.Config.Notify.ToastDuration, nil)
	gate := app.newGate(toast, os.Stderr)
	sched := app.newScheduler(app.Store, gate)
	sched.Start()
	defer sched.Stop()

	m := update.NewModel(update.Deps{
		Store:        app.Store,
		Scheduler:    sched,
		Gate:         gate,
		Toast:        toast,
		Logger:       app.Logger.Named("tui"),
		AutoActivate: app.Config.Notify.AutoActivate,
		LoadErr:      app.LoadErr,
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("remindd tui failed: %w", err)
	}
	return nil
}
