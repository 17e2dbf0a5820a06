package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sandeepkv93/remindd/internal/alarm"
	"github.com/sandeepkv93/remindd/internal/config"
	"github.com/sandeepkv93/remindd/internal/logging"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/store"
)

// App bundles the collaborators every subcommand needs.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Backend storage.Backend
	Store   *store.Store
	// LoadErr is set when the snapshot could not be read. The store is
	// then empty but usable.
	LoadErr error
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefaultFile()
	}
	return config.Load(path)
}

// openApp loads config, builds the logger, opens the backend and loads the
// task store. With logToFile the logger writes to <data_dir>/remindd.log
// unless a log file is configured.
func openApp(ctx context.Context, configPath string, logToFile bool) (*App, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logCfg := cfg.Log
	if logToFile && logCfg.File == "" {
		logCfg.File = filepath.Join(cfg.DataDir, "remindd.log")
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	backend, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.Storage.Driver,
		DataDir:     cfg.DataDir,
		RedisURL:    cfg.Storage.RedisURL,
		RedisPrefix: cfg.Storage.RedisPrefix,
	})
	if err != nil {
		logging.Sync(logger)
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	logger.Debug("storage opened", zap.String("driver", cfg.Storage.Driver), zap.String("data_dir", cfg.DataDir))

	st := store.New(backend, store.WithLogger(logger.Named("store")), store.WithKey(cfg.Storage.Key))
	app := &App{Config: cfg, Logger: logger, Backend: backend, Store: st}
	app.LoadErr = st.Load(ctx)
	return app, nil
}

// openLoadedApp is openApp for one-shot commands, which refuse to run on
// top of an unreadable snapshot so they never overwrite it.
func openLoadedApp(ctx context.Context, configPath string) (*App, error) {
	app, err := openApp(ctx, configPath, false)
	if err != nil {
		return nil, err
	}
	if app.LoadErr != nil {
		app.Close()
		return nil, app.LoadErr
	}
	return app, nil
}

func (a *App) Close() {
	if err := a.Backend.Close(); err != nil {
		a.Logger.Warn("failed to close storage", zap.Error(err))
	}
	logging.Sync(a.Logger)
}

func (a *App) newGate(display notify.Display, bell io.Writer) *notify.Gate {
	if a.Config.Notify.Desktop {
		display = notify.MultiDisplay{display, notify.DesktopDisplay{Log: a.Logger}}
	}
	player := notify.ExecPlayer{
		SoundFile: a.Config.Notify.SoundFile,
		Fallback:  notify.BellPlayer{W: bell},
		Log:       a.Logger.Named("audio"),
	}
	return notify.NewGate(player, display)
}

func (a *App) newScheduler(src alarm.TaskSource, ch notify.Channel) *alarm.Scheduler {
	return alarm.New(src, ch,
		alarm.WithInterval(a.Config.Scheduler.Interval),
		alarm.WithBuffer(a.Config.Scheduler.Buffer),
		alarm.WithLogger(a.Logger.Named("alarm")),
	)
}

func stderrWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
