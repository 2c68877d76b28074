package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flow-tools/cbm-insight/pkg/adapters"
	"github.com/flow-tools/cbm-insight/pkg/export"
	"github.com/flow-tools/cbm-insight/pkg/runtime/terminal"
	"github.com/flow-tools/cbm-insight/pkg/services/analysis"
	"github.com/flow-tools/cbm-insight/pkg/services/ingest"
)

type analyzeCmd struct {
	file    string
	from    string
	to      string
	groupBy string
	csvPath string
	pdfPath string
}

func main() {
	ac := &analyzeCmd{}
	rootCmd := &cobra.Command{
		Use:   "cbm",
		Short: "Analyze a CBM spreadsheet from the terminal",
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze inbound/outbound CBM flow in a spreadsheet",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.file, "file", "", "Path to the .xlsx or .xls file")
	cmd.Flags().StringVar(&ac.from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ac.to, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ac.groupBy, "group-by", "day", "Bucket period: day, week or month")
	cmd.Flags().StringVar(&ac.csvPath, "csv", "", "Also write the daily rows to this CSV file")
	cmd.Flags().StringVar(&ac.pdfPath, "pdf", "", "Also write the summary report to this PDF file")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	rootCmd.AddCommand(cmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (ac *analyzeCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	ctx := logger.WithContext(cmd.Context())

	from, err := adapters.ParseDate(ac.from)
	if err != nil {
		return fmt.Errorf("invalid --from date: %w", err)
	}
	to, err := adapters.ParseDate(ac.to)
	if err != nil {
		return fmt.Errorf("invalid --to date: %w", err)
	}
	period, err := analysis.ParsePeriod(ac.groupBy)
	if err != nil {
		return err
	}

	f, err := os.Open(ac.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", ac.file, err)
	}
	defer f.Close()

	ds, err := ingest.NewService().Parse(ctx, ac.file, f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", ac.file, err)
	}

	result, err := analysis.NewAnalyzer().Analyze(ctx, ds, from, to, period)
	if err != nil {
		return err
	}
	apiResult := adapters.MapAnalysisResultDomainToApi(result)

	if ac.csvPath != "" {
		if err := writeFile(ac.csvPath, func(w *os.File) error {
			return export.WriteCSV(w, apiResult)
		}); err != nil {
			return fmt.Errorf("csv export failed: %w", err)
		}
	}
	if ac.pdfPath != "" {
		if err := writeFile(ac.pdfPath, func(w *os.File) error {
			return export.WritePDF(w, apiResult)
		}); err != nil {
			return fmt.Errorf("pdf export failed: %w", err)
		}
	}

	reporter := terminal.NewReporter(os.Stdout)
	return reporter.Handle(terminal.ReportData{
		Filename: ac.file,
		From:     ac.from,
		To:       ac.to,
		GroupBy:  string(period),
		Result:   apiResult,
	})
}

func writeFile(path string, write func(*os.File) error) error {
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
