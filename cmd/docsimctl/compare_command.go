package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/domain/document"
	logpkg "github.com/kailas-cloud/docsim/internal/logger"
)

type compareOutput struct {
	ID         string  `json:"id,omitempty"`
	FileA      string  `json:"file_a"`
	FileB      string  `json:"file_b"`
	Score      float64 `json:"score"`
	Percent    string  `json:"percent"`
	TokensA    int     `json:"tokens_a"`
	TokensB    int     `json:"tokens_b"`
	Vocabulary int     `json:"vocabulary"`
	Shared     int     `json:"shared"`
	Recorded   bool    `json:"recorded"`
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut bool
		record  bool
		details bool
	)

	cmd := &cobra.Command{
		Use:   "compare <fileA> <fileB>",
		Short: "Score the similarity of two .txt, .pdf or .docx files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := document.FromFile(args[0])
			if err != nil {
				return err
			}
			b, err := document.FromFile(args[1])
			if err != nil {
				return err
			}

			svc, err := ctx.checkService(cmd.Context(), record)
			if err != nil {
				return err
			}
			if record && !svc.HistoryEnabled() {
				return fmt.Errorf("--record: %w (storage.driver is none)", domain.ErrHistoryDisabled)
			}

			reqCtx := logpkg.ContextWithLogger(cmd.Context(), ctx.log())
			res, err := svc.Check(reqCtx, a, b)
			if err != nil {
				return err
			}

			out := compareOutput{
				FileA:      res.Record.FileA,
				FileB:      res.Record.FileB,
				Score:      res.Record.Score,
				Percent:    res.Report.Score.Percent(),
				TokensA:    res.Report.TokensA,
				TokensB:    res.Report.TokensB,
				Vocabulary: res.Report.Vocabulary,
				Shared:     res.Report.Shared,
				Recorded:   res.Persisted,
			}
			if res.Persisted {
				out.ID = res.Record.ID
			}
			if jsonOut {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Similarity Score: %s\n", out.Percent)
			if details {
				rows := [][]string{
					{out.FileA, strconv.Itoa(out.TokensA)},
					{out.FileB, strconv.Itoa(out.TokensB)},
				}
				fmt.Fprintln(w, renderTable([]string{"Document", "Tokens"}, rows, []columnAlignment{alignLeft, alignRight}))
				fmt.Fprintf(w, "Vocabulary: %d terms, %d shared\n", out.Vocabulary, out.Shared)
			}
			if record {
				if res.Persisted {
					fmt.Fprintf(w, "Recorded as %s\n", out.ID)
				} else {
					fmt.Fprintln(w, "Warning: result was not recorded")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&record, "record", false, "Save the result to the configured result store")
	cmd.Flags().BoolVar(&details, "details", false, "Show token and vocabulary statistics")
	return cmd
}
