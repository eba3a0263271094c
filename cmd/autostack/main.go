// autostack is an auto-playing falling-block machine with a stake and payout
// economy. Every round buys a number of pieces; the machine picks and places
// them itself, leaning each round toward a win or a loss.
//
// Usage:
//
//	autostack play              - Watch rounds in the terminal
//	autostack batch             - Play many rounds headlessly and summarize
//	autostack history [id]      - Show stored batch runs
//	autostack config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Custom config YAML
//	--profile <name>  - Target probability profile: generous, standard, tight, fixed
//	--seed <value>    - Generator seed for reproducible rounds
//	--db <path>       - History database (default: ~/.autostack/history.db)
//	--debug           - Debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/autostack/internal/config"
	"github.com/vovakirdan/autostack/internal/rng"
	"github.com/vovakirdan/autostack/internal/round"
	"github.com/vovakirdan/autostack/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagProfile string
	flagSeed    int64
	flagDBPath  string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "autostack",
	Short: "Autostack - a self-playing falling-block machine",
	Long: `Autostack plays falling-block rounds on its own. Each round buys a
number of pieces; lines cleared pay out with a multiplier that grows
with every clear in the round.

Available commands:
  play     - Watch rounds animate in the terminal
  batch    - Play many rounds headlessly and print a summary
  history  - Show stored batch runs
  config   - Print the effective configuration

Examples:
  autostack play
  autostack play --profile generous
  autostack batch --rounds 1000 --seed 42 --save
  autostack history
  autostack config --config ./my-autostack.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Probability profile: generous, standard, tight, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Generator seed (random when not set)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to history database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the config file and applies --profile.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	profile, err := config.ParseProfile(flagProfile)
	if err != nil {
		return cfg, err
	}
	config.ApplyProfile(&cfg, profile)
	return cfg, nil
}

// engineOptions loads the config and converts it for the engine.
func engineOptions() (round.Options, error) {
	cfg, err := loadConfig()
	if err != nil {
		return round.Options{}, err
	}
	return cfg.EngineOptions()
}

// seedFlag returns --seed when given and a fresh random seed otherwise.
func seedFlag(cmd *cobra.Command) (uint32, bool) {
	if cmd.Flags().Changed("seed") {
		return rng.ClampSeed(flagSeed), true
	}
	return rng.RandomSeed(), false
}

// newLogger returns a timestamped logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "autostack",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
