package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/pricebook-cli/internal/tui"
	"github.com/KaramelBytes/pricebook-cli/internal/utils"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and search price lists interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(cfg.DataDir); err != nil {
			return err
		}
		zoom := tui.NewZoom(cfg.ZoomMin, cfg.ZoomMax, cfg.ZoomStep, cfg.ZoomDefault)
		b, err := tui.New(svc, zoom, logger)
		if err != nil {
			return err
		}
		return b.Run()
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
