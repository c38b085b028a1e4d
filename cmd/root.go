package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/pricebook-cli/internal/config"
	"github.com/KaramelBytes/pricebook-cli/internal/pricebook"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataDir string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "pricebook"})
)

var rootCmd = &cobra.Command{
	Use:   "pricebook",
	Short: "Browse, search, and import price lists",
	Long: `pricebook keeps a directory of price list datasets (CSV files, or Excel
workbooks converted to CSV), lists them, lays them out for reading, and filters
them by substring search.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pricebook/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "dataset directory (overrides config)")
}

func loadConfig() {
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that need config report it through newService
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("data-dir") && flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	logger.Debug("config loaded", "data_dir", cfg.DataDir)
}

func newService() (*pricebook.Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return pricebook.New(cfg, logger)
}
