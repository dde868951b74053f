package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inada-mfg/quote-cli/internal/format"
	"github.com/inada-mfg/quote-cli/internal/model"
	"github.com/inada-mfg/quote-cli/internal/validate"
)

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move a quotation to a new lifecycle status",
	Long:  "Updates a quotation's status (reviewed, approved, rejected, or finalized) and shows the refreshed quote.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, status := args[0], args[1]

		if res := validate.StatusUpdate(status); !res.Valid {
			return eris.New(res.Error)
		}

		svc := newService()

		result, err := svc.UpdateStatus(ctx, id, model.QuoteStatus(status))
		if err != nil {
			return err
		}

		if result.Message != "" {
			fmt.Println(result.Message)
		}

		// Refetch: the update invalidated this quote's cache entry, so
		// this read reflects the new status.
		q, err := svc.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", format.Truncate(q.ID, 12), format.QuoteStatusLabel(q.Status))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
