package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/autostack/internal/batch"
	"github.com/vovakirdan/autostack/internal/storage"
)

var (
	flagRounds  int
	flagProb    float64
	flagBlocks  int
	flagSave    bool
	flagRecords bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Play many rounds headlessly",
	Long: `Play rounds without animation and print a summary. The batch stops
early when the balance can no longer cover the bet. Ctrl+C stops it and
prints what was played so far.

Examples:
  autostack batch --rounds 1000
  autostack batch --rounds 500 --seed 42 --prob 0.3 --blocks 50
  autostack batch --rounds 10000 --save`,
	Args: cobra.NoArgs,
	Run:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&flagRounds, "rounds", 100, "Number of rounds to play")
	batchCmd.Flags().Float64Var(&flagProb, "prob", -1, "Target win probability (default: from config)")
	batchCmd.Flags().IntVar(&flagBlocks, "blocks", 0, "Blocks bought per round (default: from config)")
	batchCmd.Flags().BoolVar(&flagSave, "save", false, "Store the batch in the history database")
	batchCmd.Flags().BoolVar(&flagRecords, "records", false, "Print every round")
}

func runBatch(cmd *cobra.Command, _ []string) {
	opts, err := engineOptions()
	if err != nil {
		fail("%v", err)
	}

	seed, _ := seedFlag(cmd)
	p := batch.Params{
		Seed:        seed,
		Probability: opts.TargetProbability,
		Blocks:      flagBlocks,
		Rounds:      flagRounds,
	}
	if cmd.Flags().Changed("prob") {
		p.Probability = flagProb
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr)
	sum, err := batch.Run(ctx, opts, p, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		fail("%v", err)
	}

	if flagRecords {
		printRecords(sum)
	}
	printSummary(sum)

	if !flagSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening history database: %v", err)
	}
	defer store.Close()
	if err := store.SaveSummary(sum); err != nil {
		store.Close()
		fail("saving batch: %v", err)
	}
	fmt.Printf("\nSaved as %s\n", sum.ID)
}

func printSummary(sum batch.Summary) {
	p := sum.Params
	fmt.Printf("Batch %s\n", sum.ID)
	fmt.Println()
	fmt.Printf("  %-14s %d\n", "Seed", p.Seed)
	fmt.Printf("  %-14s %.2f\n", "Target p", p.Probability)
	fmt.Printf("  %-14s %d\n", "Blocks", p.Blocks)
	fmt.Printf("  %-14s %d / %d (%s)\n", "Rounds", sum.Played, p.Rounds, sum.StopReason)
	fmt.Printf("  %-14s %d (%.1f%%)\n", "Win-leaning", sum.Designated, sum.DesignatedRate()*100)
	fmt.Printf("  %-14s %d (%.1f%%)\n", "Wins", sum.Wins, sum.WinRate()*100)
	fmt.Printf("  %-14s %d\n", "Lines", sum.Lines)
	fmt.Printf("  %-14s %s\n", "Total bet", sum.TotalBet.StringFixed(2))
	fmt.Printf("  %-14s %s\n", "Total payout", sum.TotalPayout.StringFixed(2))
	fmt.Printf("  %-14s %s\n", "RTP", sum.RTP().StringFixed(4))
	fmt.Printf("  %-14s %s -> %s (%s)\n", "Balance",
		sum.StartBalance.StringFixed(2), sum.FinalBalance.StringFixed(2), sum.Net().StringFixed(2))
	fmt.Printf("  %-14s %s\n", "Elapsed", sum.Elapsed.Round(time.Millisecond))
}

func printRecords(sum batch.Summary) {
	fmt.Printf("  %-6s  %-9s  %-4s  %5s  %6s  %8s  %9s  %10s\n",
		"Round", "Outcome", "Lean", "Lines", "Blocks", "Bet", "Payout", "Balance")
	for _, r := range sum.Records {
		lean := "lose"
		if r.Winning {
			lean = "win"
		}
		fmt.Printf("  %-6d  %-9s  %-4s  %5d  %6d  %8s  %9s  %10s\n",
			r.Round, r.Outcome, lean, r.Lines, r.Blocks,
			r.Bet.StringFixed(2), r.Payout.StringFixed(2), r.Balance.StringFixed(2))
	}
	fmt.Println()
}
