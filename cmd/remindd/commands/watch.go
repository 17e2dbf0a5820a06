package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/store"
)

// reloadingSource re-reads the snapshot before every scan so edits made by
// another remindd process are picked up.
type reloadingSource struct {
	ctx   context.Context
	store *store.Store
	log   *zap.Logger
}

func (r reloadingSource) List() []model.Task {
	if err := r.store.Load(r.ctx); err != nil {
		r.log.Warn("reload before alarm scan failed", zap.Error(err))
	}
	return r.store.List()
}

func NewWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the alarm scheduler without the TUI and print alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := openApp(ctx, *configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			if app.LoadErr != nil {
				stderrWarn("could not read saved tasks: %v", app.LoadErr)
			}

			out := cmd.OutOrStdout()
			gate := app.newGate(notify.WriterDisplay{W: out}, os.Stdout)
			// Starting watch is the user's go-ahead for sound.
			if err := gate.Activate(); err != nil {
				stderrWarn("sound alerts disabled: %v", err)
			}

			src := reloadingSource{ctx: ctx, store: app.Store, log: app.Logger}
			sched := app.newScheduler(src, gate)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for ev := range sched.C() {
					if ev.AudioErr != nil {
						app.Logger.Debug("alarm fired without sound", zap.Int64("task_id", ev.TaskID), zap.Error(ev.AudioErr))
					}
				}
			}()

			fmt.Fprintf(out, "watching %d task(s), checking every %s (ctrl+c to stop)\n", app.Store.Len(), sched.Interval())
			sched.Run(ctx)
			<-done
			return nil
		},
	}
}
