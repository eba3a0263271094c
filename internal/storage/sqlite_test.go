package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/autostack/internal/batch"
	"github.com/vovakirdan/autostack/internal/round"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runBatch(t *testing.T, seed uint32, rounds int) batch.Summary {
	t.Helper()
	sum, err := batch.Run(context.Background(), round.DefaultOptions(),
		batch.Params{Seed: seed, Probability: 0.5, Rounds: rounds}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("batch.Run() failed: %v", err)
	}
	return sum
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadBatch(t *testing.T) {
	store := openTemp(t)
	sum := runBatch(t, 42, 6)

	if err := store.SaveSummary(sum); err != nil {
		t.Fatalf("SaveSummary() failed: %v", err)
	}

	got, err := store.BatchByID(sum.ID.String())
	if err != nil {
		t.Fatalf("BatchByID() failed: %v", err)
	}
	if got.Seed != 42 || got.Played != sum.Played || got.Wins != sum.Wins || got.Lines != sum.Lines {
		t.Errorf("BatchByID() = %+v, want summary %+v", got, sum)
	}
	if got.StopReason != batch.StopCompleted || got.Blocks != 30 || got.Requested != 6 {
		t.Errorf("params = %q/%d/%d", got.StopReason, got.Blocks, got.Requested)
	}
	if !got.TotalPayout.Equal(sum.TotalPayout) || !got.TotalBet.Equal(sum.TotalBet) {
		t.Errorf("totals = %v/%v, want %v/%v", got.TotalBet, got.TotalPayout, sum.TotalBet, sum.TotalPayout)
	}
	if !got.RTP.Equal(sum.RTP()) {
		t.Errorf("RTP = %v, want %v", got.RTP, sum.RTP())
	}

	rounds, err := store.BatchRounds(sum.ID.String())
	if err != nil {
		t.Fatalf("BatchRounds() failed: %v", err)
	}
	if len(rounds) != len(sum.Records) {
		t.Fatalf("BatchRounds() returned %d rounds, want %d", len(rounds), len(sum.Records))
	}
	for i, r := range rounds {
		want := sum.Records[i]
		if r.Round != want.Round || r.Lines != want.Lines || r.Won != want.Won || r.Winning != want.Winning {
			t.Errorf("round %d = %+v, want %+v", i, r, want)
		}
		if !r.Payout.Equal(want.Payout) {
			t.Errorf("round %d payout = %v, want %v", i, r.Payout, want.Payout)
		}
	}
}

func TestRecentBatchesAndTotals(t *testing.T) {
	store := openTemp(t)
	a := runBatch(t, 1, 3)
	b := runBatch(t, 2, 4)
	for _, s := range []batch.Summary{a, b} {
		if err := store.SaveSummary(s); err != nil {
			t.Fatalf("SaveSummary() failed: %v", err)
		}
	}

	recent, err := store.RecentBatches(10)
	if err != nil {
		t.Fatalf("RecentBatches() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentBatches() returned %d, want 2", len(recent))
	}
	if recent[0].ID != b.ID.String() {
		t.Errorf("newest batch = %s, want %s", recent[0].ID, b.ID)
	}

	limited, err := store.RecentBatches(1)
	if err != nil || len(limited) != 1 {
		t.Errorf("RecentBatches(1) = %d entries, %v", len(limited), err)
	}

	totals, err := store.AllTotals()
	if err != nil {
		t.Fatalf("AllTotals() failed: %v", err)
	}
	if totals.Batches != 2 || totals.Rounds != a.Played+b.Played {
		t.Errorf("totals = %+v", totals)
	}
	if want := a.TotalBet.Add(b.TotalBet); !totals.TotalBet.Equal(want) {
		t.Errorf("TotalBet = %v, want %v", totals.TotalBet, want)
	}
	if !totals.RTP().Equal(totals.TotalPayout.DivRound(totals.TotalBet, 6)) {
		t.Errorf("RTP() = %v", totals.RTP())
	}
}

func TestBatchNotFound(t *testing.T) {
	store := openTemp(t)
	if _, err := store.BatchByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BatchByID(missing) error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteBatch("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteBatch(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteBatch(t *testing.T) {
	store := openTemp(t)
	sum := runBatch(t, 3, 2)
	if err := store.SaveSummary(sum); err != nil {
		t.Fatalf("SaveSummary() failed: %v", err)
	}
	if err := store.DeleteBatch(sum.ID.String()); err != nil {
		t.Fatalf("DeleteBatch() failed: %v", err)
	}
	rounds, err := store.BatchRounds(sum.ID.String())
	if err != nil {
		t.Fatalf("BatchRounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("rounds left after delete: %d", len(rounds))
	}
	totals, _ := store.AllTotals()
	if totals.Batches != 0 || !totals.RTP().Equal(decimal.Zero) {
		t.Errorf("totals after delete = %+v", totals)
	}
}

func TestDuplicateBatchRejected(t *testing.T) {
	store := openTemp(t)
	sum := runBatch(t, 4, 1)
	if err := store.SaveSummary(sum); err != nil {
		t.Fatalf("SaveSummary() failed: %v", err)
	}
	if err := store.SaveSummary(sum); err == nil {
		t.Error("saving the same batch twice should fail")
	}
	rounds, _ := store.BatchRounds(sum.ID.String())
	if len(rounds) != 1 {
		t.Errorf("rounds = %d, want 1 (second save rolled back)", len(rounds))
	}
}
