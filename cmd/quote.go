package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inada-mfg/quote-cli/internal/render"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <id>",
	Short: "Show the full detail view of one quotation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()

		q, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Print(render.Detail(q, renderOpts()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}
