package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (keys: currency, theme, data-dir, daemon-addr, poll-ms, debounce-ms)",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	source := config.ConfigPath()
	if !config.Exists() {
		source += cli.Muted(" (defaults, not saved yet)")
	}

	fmt.Println()
	fmt.Printf("  Config: %s\n\n", source)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Settings",
		Headers: []string{"Key", "Value"},
		Rows: [][]string{
			{"currency", cfg.General.CurrencySymbol},
			{"theme", cfg.Appearance.Theme},
			{"data-dir", config.DataDir(cfg)},
			{"daemon-addr", config.DaemonAddr(cfg)},
			{"poll-ms", strconv.Itoa(cfg.Daemon.PollIntervalMs)},
			{"debounce-ms", strconv.Itoa(cfg.Autosave.DebounceMs)},
		},
	}))
	fmt.Printf("  State db: %s\n\n", dbPath())
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg := appConfig
	key, value := args[0], args[1]

	switch key {
	case "currency":
		cfg.General.CurrencySymbol = value
	case "theme":
		cfg.Appearance.Theme = value
	case "data-dir":
		cfg.General.DataDir = value
	case "daemon-addr":
		cfg.Daemon.Addr = value
	case "poll-ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("poll-ms wants a positive integer, got %q", value)
		}
		cfg.Daemon.PollIntervalMs = ms
	case "debounce-ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("debounce-ms wants a positive integer, got %q", value)
		}
		cfg.Autosave.DebounceMs = ms
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	appConfig = cfg
	fmt.Printf("  Set %s = %s\n", key, value)
	return nil
}
