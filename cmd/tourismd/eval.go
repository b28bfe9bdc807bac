package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tourismd/internal/dataset"
	"tourismd/pkg/types"
)

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var (
		input     string
		labels    string
		maxErrors int
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score the configured model against an evaluation set",
		Example: "  tourismd eval --input questions.csv\n" +
			"  tourismd eval --input questions.xlsx --labels travel,other",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return errors.New("eval requires --input")
			}
			cand := splitCSV(labels)
			if len(cand) == 0 {
				cand = types.DefaultCandidateLabels
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			qs, err := dataset.Load(input)
			if err != nil {
				return err
			}
			mgr, cleanup, err := newManager(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()
			defer mgr.Close()

			rep, err := dataset.Evaluate(cmd.Context(), mgr, qs, cand)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep, maxErrors)
			if rep.Total > 0 && rep.Scored() == 0 {
				return fmt.Errorf("all %d predictions failed", rep.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Evaluation set (.csv or .xlsx)")
	cmd.Flags().StringVar(&labels, "labels", "", "Comma-separated candidate labels; the first is the tourism label")
	cmd.Flags().IntVar(&maxErrors, "show-errors", 5, "Failures to print")
	return cmd
}

func printReport(w io.Writer, rep dataset.Report, maxErrors int) {
	fmt.Fprintf(w, "total:           %d\n", rep.Total)
	fmt.Fprintf(w, "scored:          %d\n", rep.Scored())
	fmt.Fprintf(w, "correct:         %d\n", rep.Correct)
	fmt.Fprintf(w, "false positives: %d\n", rep.FalsePositives)
	fmt.Fprintf(w, "false negatives: %d\n", rep.FalseNegatives)
	fmt.Fprintf(w, "failures:        %d\n", len(rep.Failures))
	fmt.Fprintf(w, "accuracy:        %.4f\n", rep.Accuracy())
	for i, f := range rep.Failures {
		if i >= maxErrors {
			fmt.Fprintf(w, "... %d more\n", len(rep.Failures)-i)
			break
		}
		fmt.Fprintf(w, "error: %q: %v\n", f.Question, f.Err)
	}
}
