package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/pricebook-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set pricebook configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		reg, err := cfg.RegistryPath()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "data_dir: %s\n", cfg.DataDir)
		fmt.Fprintf(out, "registry_file: %s\n", reg)
		fmt.Fprintf(out, "sniff_bytes: %d\n", cfg.SniffBytes)
		fmt.Fprintf(out, "span_threshold: %d\n", cfg.SpanThreshold)
		fmt.Fprintf(out, "span_width: %d\n", cfg.SpanWidth)
		fmt.Fprintf(out, "zoom: %d..%d step %d (default %d)\n", cfg.ZoomMin, cfg.ZoomMax, cfg.ZoomStep, cfg.ZoomDefault)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the stored config so --data-dir overrides are not saved.
		cfg, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		ints := map[string]*int{
			"sniff_bytes":    &cfg.SniffBytes,
			"span_threshold": &cfg.SpanThreshold,
			"span_width":     &cfg.SpanWidth,
			"zoom_min":       &cfg.ZoomMin,
			"zoom_max":       &cfg.ZoomMax,
			"zoom_step":      &cfg.ZoomStep,
			"zoom_default":   &cfg.ZoomDefault,
		}
		switch key {
		case "data_dir":
			cfg.DataDir = val
		case "registry_file":
			cfg.RegistryFile = val
		default:
			p, ok := ints[key]
			if !ok {
				return fmt.Errorf("unknown key: %s", key)
			}
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			*p = i
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
