package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docfill/internal/app"
	"github.com/benjaminschreck/go-docfill/internal/config"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		in     app.FormInput
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fill a template and convert it",
		Long: `Fill the selected template with the form values and the executor's
record, then convert it into the output directory. The output path is
printed on success.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.open(cmd, func(s *config.Settings) error {
				if outDir != "" {
					s.PDFDir = outDir
				}
				switch format {
				case "pdf":
				case "docx":
					s.Converter.Kind = config.ConverterCopy
				default:
					return fmt.Errorf("unknown format %q, want pdf or docx", format)
				}
				return nil
			})
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.settings.CheckPaths(); err != nil {
				return err
			}
			if err := sess.app.Load(); err != nil {
				return err
			}

			res, err := sess.app.Render(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&in.Template, "template", "t", "", "template label")
	f.StringVar(&in.Day, "day", "", "day of month")
	f.StringVar(&in.Month, "month", "", "month number or name")
	f.StringVar(&in.Year, "year", "", "year")
	f.StringVarP(&in.Executor, "executor", "e", "", "executor key (first column of the data file)")
	f.StringVarP(&in.Number, "number", "n", "", "document number")
	f.StringVarP(&in.Amount, "amount", "a", "", "amount in whole currency units")
	f.StringVar(&outDir, "out-dir", "", "output directory (default: pdf_dir from the settings)")
	f.StringVar(&format, "format", "pdf", "output format: pdf or docx")

	return cmd
}
