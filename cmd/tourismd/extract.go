package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tourismd/internal/dataset"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var (
		inputs []string
		output string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Build an evaluation set from chat-log JSONL exports",
		Long: "Reads chat-log JSONL files ({\"messages\":[{\"role\",\"content\"}]}), keeps every\n" +
			"user message as a tourism question and writes question,is_tourism rows.",
		Example: "  tourismd extract --input part_1.jsonl --input part_2.jsonl --output questions.csv\n" +
			"  tourismd extract --input part_1.jsonl --output questions.xlsx",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(inputs) == 0 {
				return errors.New("extract requires at least one --input")
			}
			qs, st, err := dataset.ExtractFiles(inputs)
			if err != nil {
				return err
			}
			if err := dataset.Save(output, qs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d tourism questions from %d file(s) (%d line(s) skipped) -> %s\n",
				st.Questions, st.Files, st.Skipped, output)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "JSONL input file (repeatable or comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "tourism_questions_for_eval.csv", "Output file (.csv or .xlsx)")
	return cmd
}
