// Package main provides the smartsheet command line tool.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/javajack/smartsheet"
	"github.com/spf13/cobra"
	"go.alis.build/alog"
)

var (
	token   string
	baseURL string
	verbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smartsheet",
		Short: "Read and check Smartsheet sheets against a typed schema",
		Long: `smartsheet loads a sheet, reconciles its columns with a YAML schema
and prints or exports the decoded rows.

The API token is read from --token or SMARTSHEET_API_TOKEN.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				alog.SetLevel(alog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("SMARTSHEET_API_TOKEN"), "API access token")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", envOr("SMARTSHEET_BASE_URL", smartsheet.DefaultBaseURL), "API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and skipped columns")

	rootCmd.AddCommand(newSheetsCmd(), newDescribeCmd(), newRowsCmd(), newExportCmd(), newFormatCmd())
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newClient() (*smartsheet.Client, error) {
	return smartsheet.New(token, smartsheet.WithBaseURL(baseURL))
}

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the sheets visible to the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			sheets, err := client.ListSheets(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sheets)
		},
	}
}

// sheetFlags are shared by the commands that load a sheet.
type sheetFlags struct {
	schemaPath string
	sheet      string
	strict     bool
}

func (f *sheetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schemaPath, "schema", "", "YAML schema file")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Sheet name")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on columns missing from either side")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("sheet")
}

func (f *sheetFlags) load(ctx context.Context) (*smartsheet.PreparedSheet, error) {
	schema, err := smartsheet.LoadSchemaFile(f.schemaPath)
	if err != nil {
		return nil, err
	}
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	var opts []smartsheet.LoadOption
	if f.strict {
		opts = append(opts, smartsheet.Strict())
	}
	return client.LoadSheet(ctx, f.sheet, schema, opts...)
}

func newDescribeCmd() *cobra.Command {
	var flags sheetFlags
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show how a sheet's columns line up with a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := smartsheet.LoadSchemaFile(flags.schemaPath)
			if err != nil {
				return err
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sheets, err := client.ListSheets(ctx)
			if err != nil {
				return err
			}
			for _, s := range sheets {
				if s.Name != flags.sheet {
					continue
				}
				sheet, err := client.API().GetSheet(ctx, s.ID)
				if err != nil {
					return err
				}
				out, err := smartsheet.Describe(sheet, schema, flags.strict)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				issues, err := smartsheet.Check(sheet.Columns, schema, flags.strict)
				if err != nil {
					return err
				}
				if smartsheet.HasErrors(issues) {
					return fmt.Errorf("sheet %q does not match schema %s", flags.sheet, flags.schemaPath)
				}
				return nil
			}
			return fmt.Errorf("%w: %q", smartsheet.ErrSheetNotFound, flags.sheet)
		},
	}
	flags.register(cmd)
	return cmd
}

// rowJSON is the printed form of a decoded row.
type rowJSON struct {
	ID        int64             `json:"id"`
	RowNumber int               `json:"rowNumber"`
	Values    smartsheet.Values `json:"values"`
	Formats   map[string]string `json:"formats,omitempty"`
}

func newRowsCmd() *cobra.Command {
	var (
		flags   sheetFlags
		where   string
		formats bool
	)
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print decoded rows as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := ps.Where(where)
			if err != nil {
				return err
			}
			out := make([]rowJSON, 0, len(rows))
			for _, r := range rows {
				rj := rowJSON{ID: r.ID, RowNumber: r.RowNumber, Values: r.Values}
				if formats {
					rj.Formats = make(map[string]string, len(r.Formats))
					for k, f := range r.Formats {
						rj.Formats[k] = f.String()
					}
				}
				out = append(out, rj)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&where, "where", "", `Filter expression, e.g. 'status == "Active"'`)
	cmd.Flags().BoolVar(&formats, "formats", false, "Include cell format strings")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		flags  sheetFlags
		where  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export decoded rows with their formats to an XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := flags.load(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := ps.Where(where)
			if err != nil {
				return err
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := smartsheet.WriteXLSX(out, ps.Sheet().Name, ps.Schema(), rows); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&where, "where", "", "Filter expression")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .xlsx path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Convert cell format strings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "decode FORMAT",
		Short: "Decode a 17-field format string into JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), smartsheet.ParseFormat(args[0]))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "encode JSON",
		Short: `Encode a JSON format record, e.g. '{"bold":true,"textColor":"RED_DARK"}'`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f smartsheet.Format
			if err := json.Unmarshal([]byte(args[0]), &f); err != nil {
				return fmt.Errorf("parse format: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.String())
			return nil
		},
	})
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
