package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inada-mfg/quote-cli/internal/format"
	"github.com/inada-mfg/quote-cli/internal/history"
)

var (
	historyStatus string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show uploads recorded on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.List(ctx, history.Filter{
			Status: historyStatus,
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("no uploads recorded")
			return nil
		}

		loc := cfg.Display.Locale
		var b strings.Builder
		fmt.Fprintf(&b, "%-24s %-14s %14s %-11s %-16s\n", "FILE", "QUOTE", "FINAL PRICE", "STATUS", "UPLOADED")
		for _, e := range entries {
			fmt.Fprintf(&b, "%-24s %-14s %14s %-11s %-16s\n",
				format.Truncate(e.FileName, 22),
				format.Truncate(e.QuoteID, 12),
				format.Currency(e.FinalPrice, e.Currency, loc),
				e.Status,
				format.RelativeTimeSince(e.CreatedAt, time.Now()),
			)
		}
		fmt.Print(b.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "filter by recorded status")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum rows to show")
	rootCmd.AddCommand(historyCmd)
}
