package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/autostack/internal/config"
	"github.com/vovakirdan/autostack/internal/core"
	"github.com/vovakirdan/autostack/internal/platform/tui"
	"github.com/vovakirdan/autostack/internal/round"
)

var flagFPS int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Watch rounds in the terminal",
	Long: `Open the animated viewer. Nothing happens until a round is started.

Controls:
  Space      - Start a round (debits the bet)
  Enter      - Resolve the running round instantly
  + / -      - Double / halve the animation speed
  B          - Cycle the number of blocks the next round buys
  [ / ]      - Lower / raise the target probability
  D          - Toggle debug logging and the debug panel
  S          - Reseed (forfeits a running round)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Logs are written to ~/.autostack/autostack.log while the viewer runs.

Examples:
  autostack play
  autostack play --seed 42
  autostack play --profile tight --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 60, "Viewer tick rate (frames per second)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	opts, err := engineOptions()
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logFile := openLogFile()
	if logFile != nil {
		defer logFile.Close()
	}
	var w io.Writer = io.Discard
	if logFile != nil {
		w = logFile
	}
	logger := newLogger(w)

	seed, hasSeed := seedFlag(cmd)
	engine := round.New(opts, seed, logger)
	logger.Info("viewer started", "seed", seed, "p", opts.TargetProbability, "balance", opts.StartingBalance)

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS
	cfg.Seed = int64(seed)
	cfg.HasSeed = hasSeed
	cfg.Debug = flagDebug

	if err := tui.Run(engine, cfg); err != nil {
		fail("running viewer: %v", err)
	}

	snap := engine.Snapshot()
	logger.Info("viewer closed", "rounds", snap.Round, "balance", snap.Balance, "rtp", snap.RTP)
}

// openLogFile opens the viewer log for appending, or returns nil.
func openLogFile() *os.File {
	dir := config.UserDir()
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "autostack.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil
	}
	return f
}
