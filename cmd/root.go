// Package cmd implements the messbook CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/messbook/internal/config"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/pipeline"
	"github.com/theirongolddev/messbook/internal/records"
	"github.com/theirongolddev/messbook/internal/store"
	"github.com/theirongolddev/messbook/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagBackend string
	flagDSN     string
	flagFrom    string
	flagTo      string
	flagQuiet   bool
)

// appCfg is the loaded config with flag overrides applied.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "messbook",
	Short: "Shared household (mess) ledger",
	Long: "Track the members, bazar expenses, daily meal counts, debts, notices and chores of a mess,\n" +
		"and plan the monthly meal budget.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory for sqlite and bolt files (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: "+strings.Join(store.Backends, ", "))
	rootCmd.PersistentFlags().StringVar(&flagDSN, "dsn", "", "PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Start date (YYYY-MM-DD, inclusive)")
	rootCmd.PersistentFlags().StringVar(&flagTo, "to", "", "End date (YYYY-MM-DD, inclusive)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress hints and informational output")
}

// loadRuntime reads the config, applies flag overrides and installs the
// stderr logger. Flags beat env, env beats the file.
func loadRuntime(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagBackend != "" {
		cfg.General.Backend = strings.ToLower(flagBackend)
	}
	if flagDSN != "" {
		cfg.General.DSN = flagDSN
	}
	appCfg = cfg

	logging.Setup(cfg.General.LogLevel)
	return nil
}

// openService opens the configured store and wraps it in a mess.Service.
// The returned func closes the store.
func openService(ctx context.Context) (*mess.Service, func(), error) {
	backend := appCfg.General.Backend
	s, err := store.Open(ctx, store.Options{
		Backend: backend,
		DataDir: appCfg.DataDir(),
		DSN:     appCfg.General.DSN,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", backend, err)
	}
	slog.Debug("store opened", "backend", backend, "data_dir", appCfg.DataDir())

	svc := mess.New(records.NewBook(s),
		mess.WithLogger(slog.Default()),
		mess.WithMealsPerDay(appCfg.Budget.MealsPerDay),
	)
	closeFn := func() {
		if err := s.Close(); err != nil {
			slog.Warn("closing store", "err", err)
		}
	}
	return svc, closeFn, nil
}

// withService runs fn against an open service and closes the store after.
func withService(fn func(ctx context.Context, svc *mess.Service) error) error {
	ctx := context.Background()
	svc, closeFn, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, svc)
}

// inRange keeps records inside --from/--to. Without either flag every
// record is kept.
func inRange[T model.Dated](items []T) ([]T, error) {
	if flagFrom == "" && flagTo == "" {
		return items, nil
	}
	for _, d := range []string{flagFrom, flagTo} {
		if d != "" && !pipeline.ValidDate(d) {
			return nil, fmt.Errorf("range %q: %w", d, mess.ErrInvalidDate)
		}
	}
	to := flagTo
	if to == "" {
		to = "9999-12-31"
	}
	return pipeline.FilterByDateRange(items, flagFrom, to), nil
}

func rangeLabel() string {
	switch {
	case flagFrom == "" && flagTo == "":
		return "All time"
	case flagTo == "":
		return "Since " + flagFrom
	case flagFrom == "":
		return "Until " + flagTo
	default:
		return flagFrom + " to " + flagTo
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// hint prints a dim follow-up line unless --quiet.
func hint(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf("\n  "+format+"\n", args...)
}

func removed(ok bool, what string, id int64) {
	if ok {
		fmt.Printf("  Removed %s %d\n", what, id)
		return
	}
	fmt.Printf("  No %s with id %d\n", what, id)
}
