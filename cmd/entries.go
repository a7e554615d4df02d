package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
	"github.com/kerem6790/financeX/internal/model"
	"github.com/kerem6790/financeX/internal/money"
)

var (
	flagEntryName  string
	flagEntryUnit  string
	flagEntryLimit string
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage ledger entries",
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all ledger entries",
	RunE:  runEntryList,
}

var entryAddCmd = &cobra.Command{
	Use:   "add <type> [amount]",
	Short: "Add an entry (type: cash, crypto, debt, creditCard, receivable)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEntryAdd,
}

var entrySetCmd = &cobra.Command{
	Use:   "set <id> [amount]",
	Short: "Update an entry's amount, name, unit or credit limit",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runEntrySet,
}

var entryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntryRm,
}

var entryMvCmd = &cobra.Command{
	Use:   "mv <id> <position>",
	Short: "Move an entry to a new position (0-based)",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntryMv,
}

func init() {
	entryAddCmd.Flags().StringVar(&flagEntryName, "name", "", "Entry name")
	entryAddCmd.Flags().StringVar(&flagEntryUnit, "unit", "", "Currency unit (try or usd)")
	entryAddCmd.Flags().StringVar(&flagEntryLimit, "limit", "", "Credit limit (credit cards)")

	entrySetCmd.Flags().StringVar(&flagEntryName, "name", "", "New entry name")
	entrySetCmd.Flags().StringVar(&flagEntryUnit, "unit", "", "New currency unit (try or usd)")
	entrySetCmd.Flags().StringVar(&flagEntryLimit, "limit", "", "New credit limit")

	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entrySetCmd)
	entryCmd.AddCommand(entryRmCmd)
	entryCmd.AddCommand(entryMvCmd)
	rootCmd.AddCommand(entryCmd)
}

func runEntryList(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		entries := ctx.Entries()
		if len(entries) == 0 {
			fmt.Println(cli.Muted("  No entries yet. Add one with `financex entry add cash 1000`."))
			return false, nil
		}

		sym := currencySymbol()
		rate := money.Parse(ctx.USDRate())

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			amount := e.Amount
			if e.Unit == model.UnitForeign {
				amount += " $"
				if rate > 0 {
					amount += cli.Muted(fmt.Sprintf(" (%s)", cli.FormatMoney(money.Parse(e.Amount)*rate, sym)))
				}
			}

			extra := ""
			if fac := engine.ResolveCredit(e, money.Parse(e.Amount)); fac != nil {
				extra = fmt.Sprintf("%s, owes %s", fac.Issuer, cli.FormatMoney(fac.Owed, sym))
			}

			rows = append(rows, []string{
				cli.ShortID(e.ID),
				entryDisplayName(e),
				string(e.Type),
				amount,
				extra,
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Ledger",
			Headers: []string{"ID", "Name", "Type", "Amount", "Credit"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func entryDisplayName(e model.Entry) string {
	if strings.TrimSpace(e.Name) != "" {
		return e.Name
	}
	return cli.Muted("(unnamed)")
}

func runEntryAdd(_ *cobra.Command, args []string) error {
	t := model.EntryType(args[0])
	if !t.Valid() {
		return fmt.Errorf("unknown entry type %q (want cash, crypto, debt, creditCard or receivable)", args[0])
	}

	return withContext(func(ctx *engine.Context) (bool, error) {
		id := ctx.AddEntry(t)

		if len(args) > 1 {
			ctx.UpdateEntry(id, engine.SetAmount{Amount: args[1]})
		}
		if flagEntryName != "" {
			ctx.UpdateEntry(id, engine.SetName{Name: flagEntryName})
		}
		if flagEntryUnit != "" {
			ctx.UpdateEntry(id, engine.SetUnit{Unit: model.Unit(flagEntryUnit)})
		}
		if flagEntryLimit != "" {
			ctx.UpdateEntry(id, engine.SetCreditLimit{Limit: flagEntryLimit})
		}

		fmt.Printf("  Added %s entry %s\n", t, cli.ShortID(id))
		return true, nil
	})
}

func runEntrySet(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		e, ok := findEntry(ctx, args[0])
		if !ok {
			return false, fmt.Errorf("no entry matches %q", args[0])
		}

		if len(args) > 1 {
			ctx.UpdateEntry(e.ID, engine.SetAmount{Amount: args[1]})
		}
		if flagEntryName != "" {
			ctx.UpdateEntry(e.ID, engine.SetName{Name: flagEntryName})
		}
		if flagEntryUnit != "" {
			ctx.UpdateEntry(e.ID, engine.SetUnit{Unit: model.Unit(flagEntryUnit)})
		}
		if flagEntryLimit != "" {
			ctx.UpdateEntry(e.ID, engine.SetCreditLimit{Limit: flagEntryLimit})
		}

		fmt.Printf("  Updated %s\n", cli.ShortID(e.ID))
		return true, nil
	})
}

func runEntryRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		e, ok := findEntry(ctx, args[0])
		if !ok {
			return false, fmt.Errorf("no entry matches %q", args[0])
		}
		ctx.RemoveEntry(e.ID)
		fmt.Printf("  Removed %s\n", cli.ShortID(e.ID))
		return true, nil
	})
}

func runEntryMv(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[1])
	}

	return withContext(func(ctx *engine.Context) (bool, error) {
		e, ok := findEntry(ctx, args[0])
		if !ok {
			return false, fmt.Errorf("no entry matches %q", args[0])
		}
		ctx.MoveEntry(e.ID, pos)
		fmt.Printf("  Moved %s to position %d\n", cli.ShortID(e.ID), pos)
		return true, nil
	})
}

// findEntry resolves a full or prefix entry id.
func findEntry(ctx *engine.Context, id string) (model.Entry, bool) {
	if e, ok := ctx.EntryByID(id); ok {
		return e, true
	}
	for _, e := range ctx.Entries() {
		if strings.HasPrefix(e.ID, id) {
			return e, true
		}
	}
	return model.Entry{}, false
}
