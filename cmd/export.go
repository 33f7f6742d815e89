package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fiber-inspector/internal/infrastructure/storage"
)

func newExportCmd(global *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored inspection results to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.setup(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			if c.Config.Storage.ResultsDir == "" {
				return fmt.Errorf("results dir is not configured")
			}

			records, err := c.Results.List(cmd.Context())
			if err != nil {
				return err
			}

			return withOutput(cmd, output, func(w io.Writer) error {
				return storage.WriteCSV(w, records)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newReportCmd(global *globalOptions) *cobra.Command {
	var (
		output string
		html   bool
	)

	cmd := &cobra.Command{
		Use:   "report <record-id>",
		Short: "Print a report for a stored inspection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := global.setup(cmd, nil)
			if err != nil {
				return err
			}
			defer c.Close()

			rec, err := c.Results.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return withOutput(cmd, output, func(w io.Writer) error {
				if html {
					return storage.WriteHTMLReport(w, rec, time.Now())
				}
				return storage.WriteReport(w, rec, time.Now())
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&html, "html", false, "Render the report as HTML")
	return cmd
}

// withOutput пишет в файл или, если путь пуст, в stdout команды
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
