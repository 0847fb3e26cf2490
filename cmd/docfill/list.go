package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

func newFieldsCmd(root *rootOptions) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the replaceable fields",
		Long: `List the fields filled by the application and the fields taken from the
executors file. With --template, list the placeholders found in that
template and whether each one will be replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.open(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.app.Load(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if template == "" {
				appFields, recordFields := sess.app.ReplaceableFields()
				fmt.Fprintln(out, "FROM APPLICATION:")
				for _, name := range appFields {
					fmt.Fprintln(out, "  "+docfill.Token(name))
				}
				fmt.Fprintln(out, "FROM HEADERS:")
				for _, name := range recordFields {
					fmt.Fprintln(out, "  "+docfill.Token(name))
				}
				return nil
			}

			fields, err := sess.app.TemplateFields(template)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, f := range fields {
				status := "ok"
				if !f.Resolved {
					status = "no value"
				}
				fmt.Fprintf(tw, "[%s]\t%s\n", f.Name, status)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "template label")
	return cmd
}

func newExecutorsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "executors",
		Short: "List executors from the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.open(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.app.LoadExecutors(); err != nil {
				return err
			}
			store := sess.app.Executors()
			headers := store.Headers()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(headers, "\t"))
			for _, key := range store.Keys() {
				rec, _ := store.Get(key)
				values := make([]string, len(headers))
				for i, h := range headers {
					values[i], _ = rec.Get(h)
				}
				fmt.Fprintln(tw, strings.Join(values, "\t"))
			}
			return tw.Flush()
		},
	}
}

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List configured templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.open(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.app.LoadTemplates(); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LABEL\tFILE\tPREFIX")
			for _, t := range sess.app.Templates() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Label, t.Name, t.Prefix)
			}
			return tw.Flush()
		},
	}
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently rendered documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := root.open(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if !sess.history.Enabled() {
				return fmt.Errorf("history is disabled: set history_path in %s", sess.settings.Path())
			}

			entries, err := sess.history.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tTEMPLATE\tNUMBER\tDATE\tEXECUTOR\tAMOUNT\tOUTPUT")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					e.CreatedAt.Local().Format(time.DateTime), e.Template, e.Number, e.Date, e.Executor, e.Amount, e.Output)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show (0 for all)")
	return cmd
}
