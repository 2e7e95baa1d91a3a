package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mangasync/internal/history"
)

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	var showErrors bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			reports, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintln(out, "no sync reports recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				rows = append(rows, []string{
					report.Timestamp.Local().Format(time.RFC3339),
					strconv.Itoa(report.TotalEntries),
					strconv.Itoa(report.SuccessfulUpdates),
					strconv.Itoa(report.FailedUpdates),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"WHEN", "TOTAL", "OK", "FAILED"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight}))

			if !showErrors {
				return nil
			}
			for _, report := range reports {
				for _, e := range report.Errors {
					fmt.Fprintf(out, "%s  %s (media %d): %s\n",
						report.Timestamp.Local().Format(time.RFC3339), e.Title, e.MediaID, e.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showErrors, "errors", false, "Also list per-entry errors")
	return cmd
}
