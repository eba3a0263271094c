package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/autostack/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration autostack would run with, after the config
search order and --profile are applied. Save the output to
~/.autostack/configs/autostack.yaml to customize it.

Examples:
  autostack config
  autostack config --profile tight
  autostack config --defaults > ~/.autostack/configs/autostack.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(data))
}
