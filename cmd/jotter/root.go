package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/internal/config"
	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/dispatch"
)

var (
	verbose bool
	cfgFile string

	v   = config.New()
	cfg = config.DefaultConfig()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jotter",
	Short: "A title-keyed note store kept in a single JSON or YAML document",
	Long: `Jotter keeps short notes, each identified by a unique title.
The whole collection lives in one human-readable document (notes.json by default)
that is rewritten atomically on every change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	d := config.DefaultConfig()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: jotter.yaml in ., the project root or $XDG_CONFIG_HOME/jotter)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringP("file", "f", d.File, "Notes document (.json, .yaml or .yml)")
	flags.String("backend", d.Backend, "Storage backend: document or stamped")
	flags.String("notes-dir", d.NotesDir, "Directory of the stamped backend")
	flags.Bool("read-only", d.ReadOnly, "Reject every change to the notes")
	flags.Bool("lock", d.Lock, "Guard changes with a lock file shared by all writers")
	flags.Duration("lock-timeout", d.LockTimeout, "How long to wait for the lock")

	if err := bindFlags(v, flags); err != nil {
		panic(err)
	}
}

// bindFlags lets explicitly set flags override the config file and environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		config.KeyFile:        "file",
		config.KeyBackend:     "backend",
		config.KeyNotesDir:    "notes-dir",
		config.KeyReadOnly:    "read-only",
		config.KeyLock:        "lock",
		config.KeyLockTimeout: "lock-timeout",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// openService builds the note service from the resolved configuration.
func openService(extra ...platform.Option) (*core.Service, error) {
	opts := append(cfg.Options(), jotter.WithLogger(slog.Default()))
	opts = append(opts, extra...)
	return jotter.New(cfg.Location(), opts...)
}

// openDispatcher wraps openService for commands that print dispatcher results.
func openDispatcher() *dispatch.Dispatcher {
	svc, err := openService()
	if err != nil {
		fatal("Failed to open notes", describe(err))
	}
	return dispatch.New(svc, slog.Default())
}

// describe turns a store error into its user-facing text.
func describe(err error) error {
	return errors.New(dispatch.Render(err))
}

// report prints a dispatcher result and exits non-zero on failure.
func report(cmd *cobra.Command, res dispatch.Result) {
	if !res.OK {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Message)
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
}
