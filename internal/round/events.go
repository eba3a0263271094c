package round

// Event is published synchronously to observers from inside the call that
// triggered it (StartRound, Update, Resolve or PlayRound).
type Event interface {
	roundEvent()
}

// RoundStartedEvent is published after the bet is debited and the round's
// bias has been drawn, before the first piece spawns.
type RoundStartedEvent struct {
	Round     int // 1-based round counter since the engine was created
	Bet       float64
	Blocks    int
	Balance   float64 // after the debit
	Winning   bool    // designated win-leaning round
	Effective float64 // win probability the designation was drawn against
}

func (RoundStartedEvent) roundEvent() {}

// LinesClearedEvent is published when a lock completes one or more rows.
type LinesClearedEvent struct {
	Round       int
	Rows        []int
	ClearEvent  int // zero-based index of this clear event within the round
	Payout      float64
	RoundLines  int
	RoundPayout float64
	Balance     float64
}

func (LinesClearedEvent) roundEvent() {}

// RoundEndedEvent is published once per round after its result has been
// reported to the bias controller.
type RoundEndedEvent struct {
	Result RoundResult
}

func (RoundEndedEvent) roundEvent() {}

// RoundResult summarizes a finished round.
type RoundResult struct {
	Round       int
	Outcome     Phase // GameOver or Finished
	Bet         float64
	Payout      float64
	Balance     float64
	Lines       int
	Blocks      int // pieces locked
	ClearEvents int
	Winning     bool // designated win-leaning round
	Won         bool // lines reached the win threshold
}

// Observer receives engine events.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// OnEvent calls f(ev).
func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}
