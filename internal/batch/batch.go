// Package batch plays many rounds headlessly and summarizes the results.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/autostack/internal/round"
)

// Params selects what a batch plays.
type Params struct {
	Seed        uint32
	Probability float64
	Blocks      int
	Rounds      int
}

// Record is one finished round.
type Record struct {
	Round       int
	Outcome     string
	Bet         decimal.Decimal
	Payout      decimal.Decimal
	Balance     decimal.Decimal
	Lines       int
	Blocks      int
	ClearEvents int
	Winning     bool
	Won         bool
}

// Stop reasons.
const (
	StopCompleted = "completed"
	StopBalance   = "balance"
	StopCanceled  = "canceled"
)

// Summary is the outcome of a batch run.
type Summary struct {
	ID        uuid.UUID
	StartedAt time.Time
	Elapsed   time.Duration
	Params    Params

	Played     int
	StopReason string
	Designated int // rounds drawn as win-leaning
	Wins       int // rounds that reached the win threshold
	Lines      int

	StartBalance decimal.Decimal
	FinalBalance decimal.Decimal
	TotalBet     decimal.Decimal
	TotalPayout  decimal.Decimal

	Records []Record
}

// WinRate returns the fraction of played rounds that were wins.
func (s Summary) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Played)
}

// DesignatedRate returns the fraction of played rounds drawn as win-leaning.
func (s Summary) DesignatedRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Designated) / float64(s.Played)
}

// RTP returns total payout over total bet, or zero when nothing was bet.
func (s Summary) RTP() decimal.Decimal {
	if s.TotalBet.IsZero() {
		return decimal.Zero
	}
	return s.TotalPayout.DivRound(s.TotalBet, 6)
}

// Net returns the player's balance change over the batch.
func (s Summary) Net() decimal.Decimal {
	return s.FinalBalance.Sub(s.StartBalance)
}

// ErrNoRounds is returned when Params.Rounds is not positive.
var ErrNoRounds = errors.New("batch: rounds must be positive")

// Run plays p.Rounds rounds on a fresh engine built from opts. It stops
// early, without error, once the balance cannot cover the bet. When ctx is
// canceled it returns the partial summary together with ctx.Err().
func Run(ctx context.Context, opts round.Options, p Params, logger *log.Logger) (Summary, error) {
	if p.Rounds <= 0 {
		return Summary{}, ErrNoRounds
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts.TargetProbability = p.Probability
	e := round.New(opts, p.Seed, logger)
	if p.Blocks != 0 && !e.SetPurchasedBlocks(p.Blocks) {
		return Summary{}, fmt.Errorf("batch: block count %d not in %v", p.Blocks, opts.BlockOptions)
	}
	p.Blocks = e.PurchasedBlocks()
	p.Probability = e.Snapshot().Target

	sum := Summary{
		ID:           uuid.New(),
		StartedAt:    time.Now(),
		Params:       p,
		StopReason:   StopCompleted,
		StartBalance: decimal.NewFromFloat(e.Snapshot().Balance),
		TotalBet:     decimal.Zero,
		TotalPayout:  decimal.Zero,
		Records:      make([]Record, 0, p.Rounds),
	}
	e.Subscribe(round.ObserverFunc(func(ev round.Event) {
		end, ok := ev.(round.RoundEndedEvent)
		if !ok {
			return
		}
		sum.add(end.Result)
	}))

	logger.Info("batch started", "id", sum.ID, "seed", p.Seed, "p", p.Probability, "blocks", p.Blocks, "rounds", p.Rounds)

	var err error
	for i := 0; i < p.Rounds; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			sum.StopReason = StopCanceled
			err = ctxErr
			break
		}
		if e.Snapshot().Balance < e.Bet() {
			sum.StopReason = StopBalance
			break
		}
		e.PlayRound()
	}

	sum.FinalBalance = decimal.NewFromFloat(e.Snapshot().Balance)
	sum.Elapsed = time.Since(sum.StartedAt)
	logger.Info("batch finished",
		"id", sum.ID,
		"played", sum.Played,
		"stop", sum.StopReason,
		"win_rate", sum.WinRate(),
		"rtp", sum.RTP().String(),
		"elapsed", sum.Elapsed,
	)
	return sum, err
}

func (s *Summary) add(res round.RoundResult) {
	bet := decimal.NewFromFloat(res.Bet)
	payout := decimal.NewFromFloat(res.Payout)
	s.Records = append(s.Records, Record{
		Round:       res.Round,
		Outcome:     res.Outcome.String(),
		Bet:         bet,
		Payout:      payout,
		Balance:     decimal.NewFromFloat(res.Balance),
		Lines:       res.Lines,
		Blocks:      res.Blocks,
		ClearEvents: res.ClearEvents,
		Winning:     res.Winning,
		Won:         res.Won,
	})
	s.Played++
	s.Lines += res.Lines
	s.TotalBet = s.TotalBet.Add(bet)
	s.TotalPayout = s.TotalPayout.Add(payout)
	if res.Winning {
		s.Designated++
	}
	if res.Won {
		s.Wins++
	}
}
