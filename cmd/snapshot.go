package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem6790/financeX/internal/cli"
	"github.com/kerem6790/financeX/internal/engine"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture and manage net-worth snapshots",
	RunE:  runSnapshotTake,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE:  runSnapshotList,
}

var snapshotRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a snapshot (undo with `snapshot undo`)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRm,
}

var snapshotUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the most recently deleted snapshot",
	RunE:  runSnapshotUndo,
}

func init() {
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRmCmd)
	snapshotCmd.AddCommand(snapshotUndoCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshotTake(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		snap := ctx.TakeSnapshot()
		fmt.Printf("  Snapshot %s: %s at %s\n",
			cli.ShortID(snap.ID),
			cli.FormatMoney(snap.Value, currencySymbol()),
			cli.FormatDateTime(snap.CapturedAt))
		return true, nil
	})
}

func runSnapshotList(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		snaps := ctx.Snapshots()
		if len(snaps) == 0 {
			fmt.Println(cli.Muted("  No snapshots. Take one with `financex snapshot`."))
			return false, nil
		}

		sym := currencySymbol()
		rows := make([][]string, 0, len(snaps))
		var prev float64
		for i, s := range snaps {
			delta := ""
			if i > 0 {
				delta = cli.FormatSignedMoney(s.Value-prev, sym)
			}
			prev = s.Value
			rows = append(rows, []string{
				cli.ShortID(s.ID),
				cli.FormatDateTime(s.CapturedAt),
				cli.FormatMoney(s.Value, sym),
				delta,
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Snapshots",
			Headers: []string{"ID", "Captured", "Net Worth", "Change"},
			Rows:    rows,
		}))
		return false, nil
	})
}

func runSnapshotRm(_ *cobra.Command, args []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		for _, s := range ctx.Snapshots() {
			if s.ID == args[0] || strings.HasPrefix(s.ID, args[0]) {
				ctx.DeleteSnapshot(s.ID)
				fmt.Printf("  Deleted %s (restore with `financex snapshot undo`)\n", cli.ShortID(s.ID))
				return true, nil
			}
		}
		return false, fmt.Errorf("no snapshot matches %q", args[0])
	})
}

func runSnapshotUndo(_ *cobra.Command, _ []string) error {
	return withContext(func(ctx *engine.Context) (bool, error) {
		before := len(ctx.Snapshots())
		ctx.RestoreSnapshot()
		if len(ctx.Snapshots()) == before {
			fmt.Println(cli.Muted("  Nothing to restore."))
			return false, nil
		}
		fmt.Println("  Restored the last deleted snapshot")
		return true, nil
	})
}
