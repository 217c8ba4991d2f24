package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/activity"
	"github.com/pocketledger/pocketledger/internal/categorize"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/kv"
	"github.com/pocketledger/pocketledger/internal/logger"
	"github.com/pocketledger/pocketledger/internal/snapshot"
	"github.com/pocketledger/pocketledger/internal/store"
)

// Environment variables read by the CLI. main loads them from .env first.
const (
	EnvHome     = "POCKETLEDGER_HOME"
	EnvLogLevel = "POCKETLEDGER_LOG_LEVEL"
)

// app is everything a command needs once a data directory is open.
type app struct {
	dir         string
	cfg         *config.Config
	log         zerolog.Logger
	kv          kv.Store
	store       *store.Store
	categorizer *categorize.Categorizer
}

// dataDir resolves the --dir flag, falling back to POCKETLEDGER_HOME and then
// the working directory.
func dataDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = os.Getenv(EnvHome)
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// openApp loads the config in the command's data directory and opens the store.
func openApp(cmd *cobra.Command, opts ...store.Option) (*app, error) {
	dir, err := dataDir(cmd)
	if err != nil {
		return nil, err
	}
	return openAppIn(cmd, dir, opts...)
}

func openAppIn(cmd *cobra.Command, dir string, opts ...store.Option) (*app, error) {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a pocketledger directory (run `pocketledger init` first)", dir)
		}
		return nil, err
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: logger.Format(cfg.Log.Format),
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	ctx := logger.WithContext(cmd.Context(), log)
	cmd.SetContext(ctx)

	categorizer, err := loadCategorizer(dir, cfg)
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(dir, cfg.Storage)
	if err != nil {
		return nil, err
	}

	opts = append([]store.Option{
		store.WithLogger(log),
		store.WithRecorder(activity.NewLog(dir)),
	}, opts...)
	s, err := store.Open(ctx, snapshot.NewPersister(backend, cfg.Storage.Namespace), opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &app{
		dir:         dir,
		cfg:         cfg,
		log:         log,
		kv:          backend,
		store:       s,
		categorizer: categorizer,
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

func openBackend(dir string, sc config.StorageConfig) (kv.Store, error) {
	path := config.Resolve(dir, sc.Path)
	switch sc.Backend {
	case config.BackendFile:
		s, err := kv.NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := kv.NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}

// loadCategorizer reads the configured rules file. A missing file means the
// built-in rules.
func loadCategorizer(dir string, cfg *config.Config) (*categorize.Categorizer, error) {
	if strings.TrimSpace(cfg.RulesFile) == "" {
		return categorize.Default(), nil
	}
	c, err := categorize.Load(config.Resolve(dir, cfg.RulesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return categorize.Default(), nil
	}
	return c, err
}

// withApp opens the app, runs fn and closes it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}
