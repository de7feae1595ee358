package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsim/internal/domain/result"
)

type resultOutput struct {
	ID        string    `json:"id"`
	FileA     string    `json:"file_a"`
	FileB     string    `json:"file_b"`
	Score     float64   `json:"score"`
	Percent   string    `json:"percent"`
	CreatedAt time.Time `json:"created_at"`
}

func newResultsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "results [id]",
		Short: "List recent comparisons, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.checkService(cmd.Context(), true)
			if err != nil {
				return err
			}

			var recs []result.Record
			if len(args) == 1 {
				rec, err := svc.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				recs = []result.Record{rec}
			} else {
				recs, err = svc.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
			}

			if jsonOut {
				out := make([]resultOutput, len(recs))
				for i, r := range recs {
					out[i] = resultOutput{
						ID: r.ID, FileA: r.FileA, FileB: r.FileB,
						Score: r.Score, Percent: r.Percent(), CreatedAt: r.CreatedAt,
					}
				}
				return writeJSON(cmd, out)
			}

			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No comparisons recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResults(recs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of records to show (default storage.history_page_size)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print records as JSON")
	return cmd
}

func renderResults(recs []result.Record) string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.ID,
			r.FileA,
			r.FileB,
			r.Percent(),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		}
	}
	return renderTable(
		[]string{"ID", "File A", "File B", "Score", "Checked At"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
