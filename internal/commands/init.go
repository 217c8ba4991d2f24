package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/categorize"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/gitops"
	"github.com/pocketledger/pocketledger/internal/id"
	"github.com/pocketledger/pocketledger/internal/store"
)

func newInitCommand() *cobra.Command {
	var backend string
	var demo bool
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new pocketledger data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dataDir(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if dir, err = filepath.Abs(args[0]); err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
			}
			return runInit(cmd, dir, backend, demo, withGit)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendFile, "storage backend (file, sqlite or memory)")
	cmd.Flags().BoolVar(&demo, "demo", false, "seed the store with demo accounts and transactions")
	cmd.Flags().BoolVar(&withGit, "git", false, "keep a git history of the data directory")

	return cmd
}

func runInit(cmd *cobra.Command, dir, backend string, demo, withGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Storage.Backend = backend
	if backend == config.BackendSQLite {
		cfg.Storage.Path = filepath.Join("storage", "pocketledger.db")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create directory structure.
	dirs := []string{
		"rules",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := categorize.Save(config.Resolve(dir, cfg.RulesFile), categorize.DefaultRulesFile()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	var opts []store.Option
	if demo {
		opts = append(opts, store.WithSeed(store.DemoState(time.Now().UTC(), id.UUIDGenerator{})))
	}
	a, err := openAppIn(cmd, dir, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	if withGit {
		if err := gitops.Init(cmd.Context(), dir); err != nil {
			return err
		}
		if _, err := gitops.CommitAll(cmd.Context(), dir, "init: pocketledger data directory"); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized pocketledger data directory at %s (%s storage, %s, %s)\n",
		dir, backend, plural(len(a.store.Accounts()), "account"), plural(len(a.store.Transactions()), "transaction"))
	return nil
}
