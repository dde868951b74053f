package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inada-mfg/quote-cli/internal/format"
	"github.com/inada-mfg/quote-cli/internal/history"
	"github.com/inada-mfg/quote-cli/internal/render"
	"github.com/inada-mfg/quote-cli/internal/upload"
)

var uploadDescription string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload one engineering drawing and generate a quotation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc := newService()

		st, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		file, err := upload.Stat(args[0])
		if err != nil {
			return err
		}
		file.Description = uploadDescription

		fmt.Printf("%s (%s)\n", file.Name, format.FileSize(file.Size))

		nav := upload.NavigatorFunc(func(ctx context.Context, quoteID string) error {
			q, err := svc.Get(ctx, quoteID)
			if err != nil {
				return eris.Wrapf(err, "load quote %s", quoteID)
			}

			if _, err := st.Record(ctx, history.Entry{
				FileName:   file.Name,
				QuoteID:    q.ID,
				FinalPrice: q.FinalPrice,
				Currency:   q.Currency,
				Status:     string(q.Status),
			}); err != nil {
				zap.L().Warn("record upload history failed", zap.Error(err))
			}

			fmt.Println()
			fmt.Print(render.Detail(q, renderOpts()))
			return nil
		})

		flow := upload.NewFlow(svc, nav)
		flow.Select(file)

		fmt.Println("uploading...")
		quoteID, err := flow.Submit(ctx)
		if err != nil {
			msg := flow.Message()
			if msg == "" {
				msg = serverErrorMessage(err)
			}
			fmt.Fprintf(os.Stderr, "upload error: %s\n", msg)
			return err
		}

		zap.L().Info("quotation generated", zap.String("quote_id", quoteID))
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadDescription, "description", "", "optional description attached to the drawing")
	rootCmd.AddCommand(uploadCmd)
}
