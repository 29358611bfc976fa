package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"modcabinet/internal/cabinet"
	"modcabinet/internal/cache"
	"modcabinet/internal/gitrepo"
	"modcabinet/internal/logging"
)

func newRunCommand(configFlag *string) *cobra.Command {
	var offline bool
	var force bool
	var quiet bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the wiki from the mods checkout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			switch {
			case quiet:
				cfg.Logging.Level = "error"
			case verbose:
				cfg.Logging.Level = "debug"
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			store, err := cache.Open(cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runner, err := cabinet.New(cfg, store, logger)
			if err != nil {
				return err
			}
			summary, err := runner.Run(cmd.Context(), cabinet.Options{
				Offline: offline,
				Force:   force,
			})
			if err != nil {
				if gitrepo.IsMissing(err) {
					return fmt.Errorf("%w (clone the checkout or fix the configured path)", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Skipped {
				fmt.Fprintln(out, "No update found for the mods checkout; nothing to do (use --force to run anyway)")
				return nil
			}
			fmt.Fprintf(out, "Processed %d mods by %d authors; wrote %d pages, removed %d\n",
				summary.Mods, summary.Authors, summary.PagesWritten, summary.PagesDeleted)
			if summary.ErrorCount > 0 {
				fmt.Fprintln(out, colorize(out, ansiRed,
					fmt.Sprintf("%d errors were recorded; see the wiki status page", summary.ErrorCount)))
			} else if len(summary.Messages) > 0 {
				fmt.Fprintln(out, colorize(out, ansiYellow,
					fmt.Sprintf("%d warnings were recorded; see the wiki status page", len(summary.Messages))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip all git network operations")
	cmd.Flags().BoolVar(&force, "force", false, "Run even when the mods checkout has not changed")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Log errors only")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")

	return cmd
}
