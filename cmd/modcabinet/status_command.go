package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"modcabinet/internal/cache"
)

func newStatusCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cache contents and configured checkouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, colorize(out, ansiBold, "Checkouts"))
			fmt.Fprintf(out, "  Mods: %s\n", cfg.Mods.RepoDir)
			fmt.Fprintf(out, "  Wiki: %s\n", cfg.Wiki.CabinetDir)

			dbPath := cfg.DatabasePath()
			if _, err := os.Stat(dbPath); err != nil {
				fmt.Fprintf(out, "\nNo cache database at %s; run `modcabinet run` first\n", dbPath)
				return nil
			}
			store, err := cache.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, colorize(out, ansiBold, "Cache ("+dbPath+")"))
			rows := [][]string{
				{"Mods", strconv.Itoa(stats[cache.KindMod])},
				{"READMEs", strconv.Itoa(stats[cache.KindReadme])},
				{"Directory listings", strconv.Itoa(stats[cache.KindInfo])},
				{"Authors", strconv.Itoa(stats[cache.KindAuthor])},
			}
			fmt.Fprintln(out, renderTable([]string{"Kind", "Entries"}, rows))
			return nil
		},
	}
}
