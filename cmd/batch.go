package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inada-mfg/quote-cli/internal/history"
	"github.com/inada-mfg/quote-cli/internal/render"
	"github.com/inada-mfg/quote-cli/internal/upload"
	"github.com/inada-mfg/quote-cli/internal/validate"
	"github.com/inada-mfg/quote-cli/pkg/quoteapi"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Upload up to ten drawings in one request",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		files := make([]upload.File, 0, len(args))
		infos := make([]validate.FileInfo, 0, len(args))
		for _, path := range args {
			f, err := upload.Stat(path)
			if err != nil {
				return err
			}
			files = append(files, f)
			infos = append(infos, validate.FileInfo{Name: f.Name, MIMEType: f.MIMEType, Size: f.Size})
		}

		// Validation failures never reach the network.
		if res := validate.Batch(infos); !res.Valid {
			fmt.Fprintf(os.Stderr, "batch error: %s\n", res.Error)
			return eris.New(res.Error)
		}

		svc := newService()

		st, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ups := make([]quoteapi.Upload, 0, len(files))
		handles := make([]*os.File, 0, len(files))
		defer func() {
			for _, h := range handles {
				h.Close()
			}
		}()
		for _, f := range files {
			h, err := os.Open(f.Path)
			if err != nil {
				return eris.Wrapf(err, "open %s", f.Path)
			}
			handles = append(handles, h)
			ups = append(ups, quoteapi.Upload{
				FileName:    f.Name,
				ContentType: f.MIMEType,
				Data:        h,
			})
		}

		fmt.Printf("uploading %d drawings...\n", len(ups))
		results, err := svc.UploadBatch(ctx, ups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "batch error: %s\n", serverErrorMessage(err))
			return err
		}

		for i, q := range results {
			name := ""
			if i < len(files) {
				name = files[i].Name
			}
			if _, err := st.Record(ctx, history.Entry{
				FileName:   name,
				QuoteID:    q.ID,
				FinalPrice: q.FinalPrice,
				Currency:   q.Currency,
				Status:     string(q.Status),
			}); err != nil {
				zap.L().Warn("record upload history failed", zap.Error(err))
			}
		}

		fmt.Println()
		fmt.Print(render.Table(results, renderOpts()))
		return nil
	},
}

// serverErrorMessage surfaces a server-reported message verbatim, with
// a generic fallback for transport failures.
func serverErrorMessage(err error) string {
	var apiErr *quoteapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "request failed, please try again"
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
