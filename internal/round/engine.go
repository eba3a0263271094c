// Package round runs the round life cycle: bet, spawn, drop, lock, clear,
// payout, and the terminal report back to the bias controller.
package round

import (
	"math"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/autostack/internal/bias"
	"github.com/vovakirdan/autostack/internal/board"
	"github.com/vovakirdan/autostack/internal/rng"
	"github.com/vovakirdan/autostack/internal/search"
)

// Options configures an Engine.
type Options struct {
	StartingBalance   float64
	BlockPrice        float64
	BlockOptions      []int // purchasable piece counts
	DefaultBlocks     int
	WinLines          int // lines needed in one round to count as a win
	TargetProbability float64
	Payout            Payout
	Timing            Timing
	Bias              bias.Settings
}

// DefaultOptions returns the standard economy.
func DefaultOptions() Options {
	return Options{
		StartingBalance:   1000,
		BlockPrice:        1,
		BlockOptions:      []int{30, 50, 75},
		DefaultBlocks:     30,
		WinLines:          5,
		TargetProbability: 0.45,
		Payout:            DefaultPayout(),
		Timing:            DefaultTiming(),
		Bias:              bias.DefaultSettings(),
	}
}

// Engine owns the generator, the bias controller and the current round.
// It is not safe for concurrent use; one goroutine drives it.
type Engine struct {
	opts   Options
	logger *log.Logger

	seed uint32
	gen  *rng.Generator
	ctrl *bias.Controller

	state     State
	blocks    int
	speed     float64
	rounds    int
	last      RoundResult
	hasResult bool

	observers []Observer
}

// New creates an idle engine seeded with seed. A nil logger gets a default
// stderr logger.
func New(opts Options, seed uint32, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "autostack",
		})
	}
	opts = normalizeOptions(opts)

	e := &Engine{
		opts:   opts,
		logger: logger,
		blocks: opts.DefaultBlocks,
		speed:  1,
	}
	e.reseed(seed)
	e.state.Balance = opts.StartingBalance
	return e
}

func normalizeOptions(opts Options) Options {
	def := DefaultOptions()
	if len(opts.BlockOptions) == 0 {
		opts.BlockOptions = def.BlockOptions
	}
	opts.BlockOptions = slices.Clone(opts.BlockOptions)
	if !slices.Contains(opts.BlockOptions, opts.DefaultBlocks) {
		opts.DefaultBlocks = opts.BlockOptions[0]
	}
	if opts.WinLines <= 0 {
		opts.WinLines = def.WinLines
	}
	if opts.Timing.DropStep <= 0 {
		opts.Timing.DropStep = def.Timing.DropStep
	}
	if opts.Timing.ClearDuration <= 0 {
		opts.Timing.ClearDuration = def.Timing.ClearDuration
	}
	if opts.Timing.FlashPeriod <= 0 {
		opts.Timing.FlashPeriod = def.Timing.FlashPeriod
	}
	return opts
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options {
	opts := e.opts
	opts.BlockOptions = slices.Clone(e.opts.BlockOptions)
	return opts
}

// Subscribe registers an observer. Observers run synchronously, in
// registration order, inside the call that produced the event.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) publish(ev Event) {
	for _, o := range e.observers {
		o.OnEvent(ev)
	}
}

// SetSeed replaces the generator and controller with fresh ones seeded
// from v (clamped into the uint32 range). Any round in flight is discarded.
func (e *Engine) SetSeed(v int64) {
	e.reseed(rng.ClampSeed(v))
}

// Reseed is SetSeed with a seed drawn from the system entropy source.
func (e *Engine) Reseed() uint32 {
	seed := rng.RandomSeed()
	e.reseed(seed)
	return seed
}

func (e *Engine) reseed(seed uint32) {
	target := e.opts.TargetProbability
	if e.ctrl != nil {
		target = e.ctrl.TargetProbability()
	}
	if e.state.Phase == PhaseDropping || e.state.Phase == PhaseClearing {
		e.logger.Warn("round discarded by reseed", "bet", e.state.Bet, "played", e.state.PlayedBlocks)
	}

	e.seed = seed
	e.gen = rng.New(seed)
	e.ctrl = bias.NewController(e.gen, target, e.opts.Bias)
	e.speed = 1
	e.state = State{
		Phase:        PhaseIdle,
		Board:        board.Empty(),
		Balance:      e.state.Balance,
		BoughtBlocks: e.blocks,
	}
	e.logger.Debug("seeded", "seed", seed, "target", target)
}

// Seed returns the seed of the current generator.
func (e *Engine) Seed() uint32 {
	return e.seed
}

// SetTargetProbability sets the operator's target win probability. Values
// are clamped to [0, 1].
func (e *Engine) SetTargetProbability(p float64) {
	e.ctrl.SetTargetProbability(p)
}

// SetPurchasedBlocks selects the piece count for the next round. It is
// rejected mid-round and for counts outside the configured options.
func (e *Engine) SetPurchasedBlocks(n int) bool {
	if !e.state.Phase.CanStart() {
		e.logger.Warn("block count locked during a round", "phase", e.state.Phase)
		return false
	}
	if !slices.Contains(e.opts.BlockOptions, n) {
		e.logger.Warn("block count not offered", "blocks", n, "options", e.opts.BlockOptions)
		return false
	}
	e.blocks = n
	return true
}

// PurchasedBlocks returns the piece count the next round will buy.
func (e *Engine) PurchasedBlocks() int {
	return e.blocks
}

// SetDebug toggles debug logging.
func (e *Engine) SetDebug(on bool) {
	if on {
		e.logger.SetLevel(log.DebugLevel)
		return
	}
	e.logger.SetLevel(log.InfoLevel)
}

// SetSpeed sets the time multiplier applied by Update. Values below 1 are
// raised to 1. The speed falls back to 1 whenever a round ends.
func (e *Engine) SetSpeed(m float64) {
	if math.IsNaN(m) || m < 1 {
		m = 1
	}
	e.speed = m
}

// Speed returns the current time multiplier.
func (e *Engine) Speed() float64 {
	return e.speed
}

// Bet returns the cost of a round at the selected piece count.
func (e *Engine) Bet() float64 {
	return float64(e.blocks) * e.opts.BlockPrice
}

// LastResult returns the most recently finished round.
func (e *Engine) LastResult() (RoundResult, bool) {
	return e.last, e.hasResult
}

// StartRound opens a new round. It returns false, after logging a warning,
// when the phase does not allow a restart or the balance cannot cover the
// bet.
func (e *Engine) StartRound() bool {
	if !e.state.Phase.CanStart() {
		e.logger.Warn("round already running", "phase", e.state.Phase)
		return false
	}
	bet := e.Bet()
	if e.state.Balance < bet {
		e.logger.Warn("insufficient balance", "balance", e.state.Balance, "bet", bet)
		return false
	}

	cfg := e.ctrl.StartRound()
	e.rounds++
	s := State{
		Phase:        PhaseDropping,
		Board:        board.Empty(),
		Balance:      e.state.Balance - bet,
		BoughtBlocks: e.blocks,
		Bet:          bet,
		Bias:         cfg,
	}
	e.state = s

	e.logger.Debug("round opened",
		"round", e.rounds,
		"bet", bet,
		"blocks", e.blocks,
		"effective", cfg.Effective,
		"winning", cfg.Winning,
	)
	e.publish(RoundStartedEvent{
		Round:     e.rounds,
		Bet:       bet,
		Blocks:    e.blocks,
		Balance:   s.Balance,
		Winning:   cfg.Winning,
		Effective: cfg.Effective,
	})
	e.spawn()
	return true
}

// spawn draws the next piece and commits to one of its placements.
func (e *Engine) spawn() {
	s := e.state
	t := e.ctrl.PickPiece(s.Bias.Pieces)
	candidates := search.FindAllPlacements(s.Board, t, s.Bias.Heuristic)

	if len(candidates) == 0 {
		e.logger.Debug("lock out", "piece", t)
		e.finish(s, PhaseGameOver)
		return
	}

	p := e.ctrl.PickPlacement(candidates)
	piece := board.Spawn(t, p.Rotation, p.Col)
	if !board.IsValidPlacement(s.Board, piece) {
		e.logger.Debug("spawn blocked", "piece", t, "rotation", p.Rotation, "col", p.Col)
		e.finish(s, PhaseGameOver)
		return
	}
	s.Piece = piece
	s.HasPiece = true
	s.TargetRow = p.Row
	s.Phase = PhaseDropping
	s.dropTimer = 0
	e.state = s

	e.logger.Debug("piece",
		"n", s.PlayedBlocks+1,
		"type", t,
		"rotation", p.Rotation,
		"col", p.Col,
		"row", p.Row,
		"score", p.Score,
		"candidates", len(candidates),
	)
}

// step moves the falling piece one row and locks it on arrival.
func (e *Engine) step() {
	s := e.state
	if s.Piece.Row < s.TargetRow {
		s.Piece = s.Piece.Moved(1)
	}
	s.dropTimer = 0
	e.state = s
	if s.Piece.Row >= s.TargetRow {
		e.lock()
	}
}

func (e *Engine) lock() {
	s := e.state
	s.Board = board.LockPiece(s.Board, s.Piece)
	s.HasPiece = false
	s.PlayedBlocks++

	if board.IsTopOut(s.Board) {
		e.logger.Debug("top out", "played", s.PlayedBlocks)
		e.finish(s, PhaseGameOver)
		return
	}

	rows := board.FindCompleteRows(s.Board)
	if len(rows) == 0 {
		e.state = s
		if s.limitReached() {
			e.finish(s, PhaseFinished)
			return
		}
		e.spawn()
		return
	}

	k := s.ClearEvents
	amount := e.opts.Payout.Amount(s.Bet, k, len(rows))
	s.Balance += amount
	s.RoundLines += len(rows)
	s.RoundPayout += amount
	s.ClearEvents++
	s.ClearingRows = rows
	s.Phase = PhaseClearing
	s.clearTimer = 0
	s.finishAfterClear = s.limitReached()
	e.state = s

	e.logger.Debug("lines cleared", "event", k, "lines", len(rows), "payout", amount)
	e.publish(LinesClearedEvent{
		Round:       e.rounds,
		Rows:        slices.Clone(rows),
		ClearEvent:  k,
		Payout:      amount,
		RoundLines:  s.RoundLines,
		RoundPayout: s.RoundPayout,
		Balance:     s.Balance,
	})
}

// completeClear removes the cleared rows once the animation has run.
func (e *Engine) completeClear() {
	s := e.state
	s.Board = board.ClearRows(s.Board, s.ClearingRows)
	s.ClearingRows = nil
	s.clearTimer = 0
	s.Phase = PhaseDropping
	e.state = s

	if s.finishAfterClear {
		e.finish(s, PhaseFinished)
		return
	}
	e.spawn()
}

// finish ends the round, reporting it to the controller exactly once.
func (e *Engine) finish(s State, phase Phase) {
	s.Phase = phase
	s.HasPiece = false
	s.ClearingRows = nil
	s.dropTimer = 0
	s.clearTimer = 0
	s.finishAfterClear = false
	if s.reported {
		e.state = s
		return
	}
	e.ctrl.RecordRoundResult(s.Bet, s.RoundPayout)
	s.reported = true
	e.state = s
	e.speed = 1

	res := RoundResult{
		Round:       e.rounds,
		Outcome:     phase,
		Bet:         s.Bet,
		Payout:      s.RoundPayout,
		Balance:     s.Balance,
		Lines:       s.RoundLines,
		Blocks:      s.PlayedBlocks,
		ClearEvents: s.ClearEvents,
		Winning:     s.Bias.Winning,
		Won:         s.RoundLines >= e.opts.WinLines,
	}
	e.last, e.hasResult = res, true

	e.logger.Debug("round ended",
		"round", res.Round,
		"outcome", phase,
		"lines", res.Lines,
		"payout", res.Payout,
		"balance", res.Balance,
		"rtp", e.ctrl.RTP(),
	)
	e.publish(RoundEndedEvent{Result: res})
}

// Update advances the animation by dt, scaled by the speed multiplier.
// Leftover time carries across phase changes within the same call, so one
// large dt may play through several pieces.
func (e *Engine) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	budget := time.Duration(math.MaxInt64)
	if scaled := float64(dt) * e.speed; scaled < float64(math.MaxInt64) {
		budget = time.Duration(scaled)
	}
	for budget > 0 {
		s := e.state
		switch s.Phase {
		case PhaseDropping:
			need := e.opts.Timing.DropStep - s.dropTimer
			if budget < need {
				s.dropTimer += budget
				e.state = s
				return
			}
			budget -= need
			e.step()
		case PhaseClearing:
			need := e.opts.Timing.ClearDuration - s.clearTimer
			if budget < need {
				s.clearTimer += budget
				e.state = s
				return
			}
			budget -= need
			e.completeClear()
		default:
			return
		}
	}
}

// Resolve plays the current round to its end without timers. It makes the
// same generator draws in the same order as Update would.
func (e *Engine) Resolve() {
	for {
		switch e.state.Phase {
		case PhaseDropping:
			s := e.state
			s.Piece.Row = max(s.Piece.Row, s.TargetRow)
			e.state = s
			e.lock()
		case PhaseClearing:
			e.completeClear()
		default:
			return
		}
	}
}

// PlayRound starts a round and resolves it headlessly. The boolean is false
// when the round could not start.
func (e *Engine) PlayRound() (RoundResult, bool) {
	if !e.StartRound() {
		return RoundResult{}, false
	}
	e.Resolve()
	return e.last, true
}

// State returns the current round state value.
func (e *Engine) State() State {
	s := e.state
	s.ClearingRows = slices.Clone(s.ClearingRows)
	return s
}

// RTP returns the controller's lifetime return-to-player ratio.
func (e *Engine) RTP() float64 {
	return e.ctrl.RTP()
}
