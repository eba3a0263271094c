package core

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/autostack/internal/config"
	"github.com/vovakirdan/autostack/internal/round"
)

// Controls holds operator-side settings that the engine does not keep.
type Controls struct {
	Debug    bool
	MaxSpeed float64 // upper bound for ActionSpeedUp
	ProbStep float64 // target probability change per key press
}

// DefaultControls returns the standard operator settings.
func DefaultControls() Controls {
	return Controls{MaxSpeed: 64, ProbStep: 0.05}
}

// Apply performs the frame's actions on e in a fixed order and returns a
// status line describing the last one that had an effect, or "".
func (c *Controls) Apply(e *round.Engine, f InputFrame) string {
	var status string

	if f.Has(ActionReseed) {
		seed := e.Reseed()
		status = fmt.Sprintf("reseeded: %d", seed)
	}
	if f.Has(ActionDebug) {
		c.Debug = !c.Debug
		e.SetDebug(c.Debug)
		status = fmt.Sprintf("debug %s", onOff(c.Debug))
	}
	if f.Has(ActionBlocks) {
		opts := e.Options().BlockOptions
		i := slices.Index(opts, e.PurchasedBlocks())
		next := opts[(i+1)%len(opts)]
		if e.SetPurchasedBlocks(next) {
			status = fmt.Sprintf("next round buys %d blocks", next)
		} else {
			status = "blocks locked until the round ends"
		}
	}
	if f.Has(ActionProbDown) || f.Has(ActionProbUp) {
		p := e.Snapshot().Target
		if f.Has(ActionProbDown) {
			p = config.StepProbability(p, -c.ProbStep)
		}
		if f.Has(ActionProbUp) {
			p = config.StepProbability(p, c.ProbStep)
		}
		e.SetTargetProbability(p)
		status = fmt.Sprintf("target probability %.0f%%", p*100)
	}
	if f.Has(ActionSpeedUp) {
		e.SetSpeed(min(e.Speed()*2, c.MaxSpeed))
		status = fmt.Sprintf("speed %.0fx", e.Speed())
	}
	if f.Has(ActionSpeedDown) {
		e.SetSpeed(e.Speed() / 2)
		status = fmt.Sprintf("speed %.0fx", e.Speed())
	}
	if f.Has(ActionStart) {
		if e.StartRound() {
			status = fmt.Sprintf("round %d started", e.Snapshot().Round)
		} else if snap := e.Snapshot(); snap.Balance < e.Bet() {
			status = "insufficient balance"
		} else {
			status = "round already running"
		}
	}
	if f.Has(ActionSkip) {
		if e.Snapshot().Phase.CanStart() {
			status = "no round to skip"
		} else {
			e.Resolve()
			res, _ := e.LastResult()
			status = fmt.Sprintf("round %d resolved: %d lines, payout %.2f", res.Round, res.Lines, res.Payout)
		}
	}
	return status
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
