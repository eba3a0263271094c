package core

import (
	"strings"
	"testing"

	"github.com/vovakirdan/autostack/internal/round"
)

func frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionStart) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionStart)
	if !f.Has(ActionStart) || f.Has(ActionQuit) {
		t.Errorf("frame = %v", f.Actions)
	}
	f.Clear()
	if f.Has(ActionStart) {
		t.Error("Clear() left an action set")
	}
	if ActionReseed.String() != "Reseed" || Action(99).String() != "Unknown" {
		t.Error("Action.String() mismatch")
	}
}

func TestApplyStartAndSkip(t *testing.T) {
	e := testEngine(4)
	c := DefaultControls()

	if msg := c.Apply(e, frame(ActionSkip)); msg != "no round to skip" {
		t.Errorf("skip while idle = %q", msg)
	}
	if msg := c.Apply(e, frame(ActionStart)); msg != "round 1 started" {
		t.Errorf("start = %q", msg)
	}
	if msg := c.Apply(e, frame(ActionStart)); msg != "round already running" {
		t.Errorf("second start = %q", msg)
	}
	msg := c.Apply(e, frame(ActionSkip))
	if !strings.HasPrefix(msg, "round 1 resolved") {
		t.Errorf("skip = %q", msg)
	}
	if !e.Snapshot().Phase.Terminal() {
		t.Errorf("phase after skip = %v", e.Snapshot().Phase)
	}
}

func TestApplySpeed(t *testing.T) {
	e := testEngine(4)
	c := DefaultControls()
	for i := 0; i < 10; i++ {
		c.Apply(e, frame(ActionSpeedUp))
	}
	if e.Speed() != 64 {
		t.Errorf("Speed() = %v, want capped at 64", e.Speed())
	}
	for i := 0; i < 10; i++ {
		c.Apply(e, frame(ActionSpeedDown))
	}
	if e.Speed() != 1 {
		t.Errorf("Speed() = %v, want floor 1", e.Speed())
	}
}

func TestApplyBlocksCycle(t *testing.T) {
	e := testEngine(4)
	c := DefaultControls()
	want := []int{50, 75, 30}
	for _, n := range want {
		c.Apply(e, frame(ActionBlocks))
		if e.PurchasedBlocks() != n {
			t.Errorf("PurchasedBlocks() = %d, want %d", e.PurchasedBlocks(), n)
		}
	}

	e.StartRound()
	if msg := c.Apply(e, frame(ActionBlocks)); msg != "blocks locked until the round ends" {
		t.Errorf("mid-round cycle = %q", msg)
	}
}

func TestApplyProbability(t *testing.T) {
	e := testEngine(4)
	c := DefaultControls()
	c.Apply(e, frame(ActionProbUp))
	if got := e.Snapshot().Target; got != 0.5 {
		t.Errorf("Target = %v after one step up, want 0.5", got)
	}
	for i := 0; i < 30; i++ {
		c.Apply(e, frame(ActionProbDown))
	}
	if got := e.Snapshot().Target; got != 0 {
		t.Errorf("Target = %v, want clamped at 0", got)
	}
}

func TestApplyDebugAndReseed(t *testing.T) {
	e := testEngine(4)
	c := DefaultControls()
	if msg := c.Apply(e, frame(ActionDebug)); msg != "debug on" || !c.Debug {
		t.Errorf("debug toggle = %q, %v", msg, c.Debug)
	}
	c.Apply(e, frame(ActionDebug))
	if c.Debug {
		t.Error("second toggle should turn debug off")
	}

	e.PlayRound()
	msg := c.Apply(e, frame(ActionReseed))
	if !strings.HasPrefix(msg, "reseeded: ") {
		t.Errorf("reseed = %q", msg)
	}
	if e.RTP() != 0 {
		t.Errorf("RTP() = %v after reseed, want 0", e.RTP())
	}
	if e.Snapshot().Phase != round.PhaseIdle {
		t.Errorf("phase after reseed = %v", e.Snapshot().Phase)
	}
}
