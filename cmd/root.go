// Package cmd implements the financex command-line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/config"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/store"
	"github.com/kerem6790/financeX/internal/tui/theme"
)

var (
	flagDataDir string
	flagQuiet   bool

	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "financex",
	Short: "Personal finance ledger and planning CLI",
	Long:  "Track debts, assets and credit cards, plan savings goals, and project net worth across paydays.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initRuntime)

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// initRuntime loads .env overrides and the config file, then applies the
// configured theme. Runs once before any command.
func initRuntime() {
	// A local .env can override FINANCEX_DATA_DIR / FINANCEX_ADDR.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
	}
	appConfig = cfg
	theme.SetActive(cfg.Appearance.Theme)
}

// currencySymbol returns the configured display symbol.
func currencySymbol() string {
	if appConfig.General.CurrencySymbol != "" {
		return appConfig.General.CurrencySymbol
	}
	return "₺"
}

// dbPath resolves the state database location from the --data-dir flag,
// env, or config.
func dbPath() string {
	dir := flagDataDir
	if dir == "" {
		dir = config.DataDir(appConfig)
	}
	return filepath.Join(dir, store.DBFileName)
}

// openStore opens the state database.
func openStore() (*store.Store, error) {
	return store.Open(dbPath())
}

// loadContext hydrates a derivation context from the persisted state.
// A missing state blob yields a fresh context with planning defaults.
func loadContext(st *store.Store) (*engine.Context, error) {
	ctx := engine.New()

	data, ok, err := st.LoadState()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := ctx.ApplyStateJSON(data); err != nil {
			return nil, fmt.Errorf("state blob: %w", err)
		}
	}
	return ctx, nil
}

// saveContext serializes the context back to the store.
func saveContext(st *store.Store, ctx *engine.Context) error {
	data, err := ctx.MarshalState()
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}
	return st.SaveState(data)
}

// withContext runs fn against a hydrated context and persists the result
// when fn reports a mutation.
func withContext(fn func(ctx *engine.Context) (mutated bool, err error)) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, err := loadContext(st)
	if err != nil {
		return err
	}

	mutated, err := fn(ctx)
	if err != nil {
		return err
	}
	if mutated {
		return saveContext(st, ctx)
	}
	return nil
}
