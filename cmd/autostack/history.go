package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/autostack/internal/platform/tui"
	"github.com/vovakirdan/autostack/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
	flagDelete bool
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show stored batch runs",
	Long: `List batches saved with 'autostack batch --save', or show the rounds
of one batch.

Examples:
  autostack history
  autostack history --browse
  autostack history 2f1c9a4e-6f0b-4c1e-9d61-0e6b3a0d8f11
  autostack history 2f1c9a4e-6f0b-4c1e-9d61-0e6b3a0d8f11 --delete`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of batches to list")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive browser")
	historyCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the given batch")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()

	switch {
	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			fail("running browser: %v", err)
		}

	case len(args) == 1 && flagDelete:
		if err := store.DeleteBatch(args[0]); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Deleted %s\n", args[0])

	case len(args) == 1:
		showBatch(store, args[0])

	default:
		listBatches(store)
	}
}

func listBatches(store *storage.Store) {
	batches, err := store.RecentBatches(flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving batches: %v", err)
	}

	fmt.Println("Batch History")
	fmt.Println()

	if len(batches) == 0 {
		fmt.Println("No batches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'autostack batch --save' to store one.")
		return
	}

	fmt.Printf("  %-36s  %-16s  %-10s  %-4s  %6s  %6s  %7s\n", "ID", "Date", "Seed", "P", "Rounds", "Win%", "RTP")
	fmt.Printf("  %-36s  %-16s  %-10s  %-4s  %6s  %6s  %7s\n", "--", "----", "----", "-", "------", "----", "---")
	for _, b := range batches {
		fmt.Printf("  %-36s  %-16s  %-10d  %.2f  %6d  %6.1f  %7s\n",
			b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04"), b.Seed, b.Probability,
			b.Played, b.WinRate()*100, b.RTP.StringFixed(3))
	}

	if totals, err := store.AllTotals(); err == nil {
		fmt.Println()
		fmt.Printf("All time: %d batches, %d rounds, %d wins, RTP %s\n",
			totals.Batches, totals.Rounds, totals.Wins, totals.RTP().StringFixed(4))
	}
}

func showBatch(store *storage.Store, id string) {
	b, err := store.BatchByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		store.Close()
		fail("no batch %q", id)
	}
	if err != nil {
		store.Close()
		fail("retrieving batch: %v", err)
	}
	rounds, err := store.BatchRounds(id)
	if err != nil {
		store.Close()
		fail("retrieving rounds: %v", err)
	}

	fmt.Printf("Batch %s\n", b.ID)
	fmt.Printf("  seed %d  p %.2f  blocks %d  played %d/%d (%s)\n",
		b.Seed, b.Probability, b.Blocks, b.Played, b.Requested, b.StopReason)
	fmt.Printf("  bet %s  payout %s  rtp %s  balance %s -> %s\n",
		b.TotalBet.StringFixed(2), b.TotalPayout.StringFixed(2), b.RTP.StringFixed(4),
		b.StartBalance.StringFixed(2), b.FinalBalance.StringFixed(2))
	fmt.Println()

	fmt.Printf("  %-6s  %-9s  %-4s  %5s  %6s  %8s  %9s  %10s\n",
		"Round", "Outcome", "Lean", "Lines", "Blocks", "Bet", "Payout", "Balance")
	for _, r := range rounds {
		lean := "lose"
		if r.Winning {
			lean = "win"
		}
		fmt.Printf("  %-6d  %-9s  %-4s  %5d  %6d  %8s  %9s  %10s\n",
			r.Round, r.Outcome, lean, r.Lines, r.Blocks,
			r.Bet.StringFixed(2), r.Payout.StringFixed(2), r.Balance.StringFixed(2))
	}
}
