package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/flow-tools/cbm-insight/pkg/models/api"
)

type TableConfig struct {
	DateWidth int
	CBMWidth  int
	QtyWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth: 10,
		CBMWidth:  16,
		QtyWidth:  12,
	}
}

// ReportData is what the CLI hands to the reporter.
type ReportData struct {
	Filename string
	From     string
	To       string
	GroupBy  string
	Result   api.AnalysisResult
}

// Reporter renders an analysis as a formatted text report.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(data ReportData) error {
	funcMap := template.FuncMap{
		"formatRow": func(date, inCBM, outCBM, netCBM, inQty, outQty, netQty string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s | %*s | %*s | %*s |",
				c.config.DateWidth, date,
				c.config.CBMWidth, inCBM,
				c.config.CBMWidth, outCBM,
				c.config.CBMWidth, netCBM,
				c.config.QtyWidth, inQty,
				c.config.QtyWidth, outQty,
				c.config.QtyWidth, netQty)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.DateWidth+2),
				strings.Repeat("-", c.config.CBMWidth+2),
				strings.Repeat("-", c.config.CBMWidth+2),
				strings.Repeat("-", c.config.CBMWidth+2),
				strings.Repeat("-", c.config.QtyWidth+2),
				strings.Repeat("-", c.config.QtyWidth+2),
				strings.Repeat("-", c.config.QtyWidth+2))
		},
		"cbm": func(v float64) string { return fmt.Sprintf("%.6f", v) },
		"qty": func(v int64) string { return fmt.Sprintf("%d", v) },
	}

	tmpl := `
CBM Analysis Report: {{.Filename}}

Range: {{.From}} to {{.To}} ({{.GroupBy}} buckets)

=== Totals ===
Inbound CBM:        {{printf "%.6f" .Result.Totals.TotalInboundCBM}}
Outbound CBM (SI):  {{printf "%.6f" .Result.Totals.TotalOutboundCBMSI}}
Net Flow CBM:       {{printf "%.6f" .Result.Totals.TotalNetFlowCBM}}
Inbound Qty:        {{.Result.Totals.TotalInboundQty}}
Outbound Qty (SI):  {{.Result.Totals.TotalOutboundQtySI}}
Net Flow Qty:       {{.Result.Totals.TotalNetFlowQty}}

=== KPIs ===
{{with .Result.KPIs}}{{if .PeakInboundCBMDay.Date}}Peak Inbound CBM Day:       {{.PeakInboundCBMDay.Date}} ({{printf "%.6f" .PeakInboundCBMDay.Value}})
{{end}}{{if .PeakOutboundCBMDay.Date}}Peak Outbound CBM Day (SI): {{.PeakOutboundCBMDay.Date}} ({{printf "%.6f" .PeakOutboundCBMDay.Value}})
{{end}}{{if .PeakInboundQtyDay.Date}}Peak Inbound Qty Day:       {{.PeakInboundQtyDay.Date}} ({{printf "%.0f" .PeakInboundQtyDay.Value}})
{{end}}{{if .PeakOutboundQtyDay.Date}}Peak Outbound Qty Day (SI): {{.PeakOutboundQtyDay.Date}} ({{printf "%.0f" .PeakOutboundQtyDay.Value}})
{{end}}Avg Daily Net Flow CBM:     {{printf "%.6f" .AvgDailyNetFlowCBM}}
Avg Daily Net Flow Qty:     {{printf "%.0f" .AvgDailyNetFlowQty}}
{{end}}
{{separator}}
{{formatRow "Date" "Inbound CBM" "Outbound CBM" "Net Flow CBM" "Inbound Qty" "Outbound Qty" "Net Flow Qty"}}
{{separator}}
{{range .Result.Daily}}{{formatRow .Date (cbm .InboundCBM) (cbm .OutboundCBMSI) (cbm .NetFlowCBM) (qty .InboundQty) (qty .OutboundQtySI) (qty .NetFlowQty)}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}
