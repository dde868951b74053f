package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inada-mfg/quote-cli/internal/render"
	"github.com/inada-mfg/quote-cli/internal/validate"
	"github.com/inada-mfg/quote-cli/pkg/quoteapi"
)

var (
	quotesPage   int
	quotesLimit  int
	quotesStatus string
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "List quotations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := validate.ListFilters{
			Page:   quotesPage,
			Limit:  quotesLimit,
			Status: quotesStatus,
		}
		if res := filters.Validate(); !res.Valid {
			return eris.New(res.Error)
		}

		svc := newService()

		page, err := svc.List(cmd.Context(), quoteapi.ListParams{
			Page:   quotesPage,
			Limit:  quotesLimit,
			Status: quotesStatus,
		})
		if err != nil {
			return err
		}

		if len(page.Quotes) == 0 {
			fmt.Println("no quotations found")
			return nil
		}

		fmt.Print(render.List(page.Quotes, page.Pagination, renderOpts()))
		return nil
	},
}

func init() {
	quotesCmd.Flags().IntVar(&quotesPage, "page", 1, "page number")
	quotesCmd.Flags().IntVar(&quotesLimit, "limit", 10, "page size, at most 100")
	quotesCmd.Flags().StringVar(&quotesStatus, "status", "", "filter by status")
	rootCmd.AddCommand(quotesCmd)
}
