package main

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Convert icons, then re-convert each *.svg as it changes",
	Long: `Watch converts every icon in the directory once, then keeps running and
re-renders any *.svg that is created or modified, printing the same status
line for each. Stop it with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := rasterConfig(args)
		ctx := cmd.Context()

		conv, finish := newConverter(ctx, cfg, cmd.OutOrStdout())
		defer finish()

		conv.Run(ctx, cfg.Dir)
		return conv.Watch(ctx, cfg.Dir)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
