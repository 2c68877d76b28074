package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/flow-tools/cbm-insight/pkg/models/api"
)

// pdfDailyRowLimit keeps the daily table readable; the CSV export carries
// the complete series.
const pdfDailyRowLimit = 20

// WritePDF renders the summary report: totals, KPIs and the leading
// daily rows.
func WritePDF(w io.Writer, result api.AnalysisResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("CBM Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "CBM Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeSummary(pdf, result)
	pdf.Ln(8)
	writeDailyTable(pdf, result.Daily)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5,
		fmt.Sprintf("Generated on %s", time.Now().UTC().Format("2006-01-02 15:04:05")),
		"", 1, "L", false, 0, "")

	return pdf.Output(w)
}

func writeSummary(pdf *gofpdf.Fpdf, result api.AnalysisResult) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Total Inbound CBM", formatCBM(result.Totals.TotalInboundCBM)},
		{"Total Outbound CBM (SI)", formatCBM(result.Totals.TotalOutboundCBMSI)},
		{"Total Net Flow CBM", formatCBM(result.Totals.TotalNetFlowCBM)},
		{"Total Inbound Quantity", fmt.Sprintf("%d", result.Totals.TotalInboundQty)},
		{"Total Outbound Quantity (SI)", fmt.Sprintf("%d", result.Totals.TotalOutboundQtySI)},
		{"Total Net Flow Quantity", fmt.Sprintf("%d", result.Totals.TotalNetFlowQty)},
		{"Average Daily Net Flow CBM", formatCBM(result.KPIs.AvgDailyNetFlowCBM)},
		{"Average Daily Net Flow Quantity", fmt.Sprintf("%.0f", result.KPIs.AvgDailyNetFlowQty)},
	}
	rows = appendPeakRow(rows, "Peak Inbound CBM Day", result.KPIs.PeakInboundCBMDay, "%.6f CBM")
	rows = appendPeakRow(rows, "Peak Outbound CBM Day (SI)", result.KPIs.PeakOutboundCBMDay, "%.6f CBM")
	rows = appendPeakRow(rows, "Peak Inbound Quantity Day", result.KPIs.PeakInboundQtyDay, "%.0f units")
	rows = appendPeakRow(rows, "Peak Outbound Quantity Day (SI)", result.KPIs.PeakOutboundQtyDay, "%.0f units")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(90, 7, "Metric", "1", 0, "L", true, 0, "")
	pdf.CellFormat(90, 7, "Value", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(90, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, row[1], "1", 1, "L", false, 0, "")
	}
}

func appendPeakRow(rows [][2]string, label string, peak api.Peak, valueFormat string) [][2]string {
	if peak.Date == nil {
		return rows
	}
	value := fmt.Sprintf("%s (%s)", *peak.Date, fmt.Sprintf(valueFormat, peak.Value))
	return append(rows, [2]string{label, value})
}

func writeDailyTable(pdf *gofpdf.Fpdf, daily []api.Bucket) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Daily Data", "", 1, "L", false, 0, "")

	if len(daily) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, "No data in the selected range.", "", 1, "L", false, 0, "")
		return
	}

	headers := []string{"Date", "In CBM", "Out CBM (SI)", "Net CBM", "In Qty", "Out Qty (SI)", "Net Qty"}
	widths := []float64{26, 28, 28, 28, 22, 26, 22}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	limit := len(daily)
	if limit > pdfDailyRowLimit {
		limit = pdfDailyRowLimit
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range daily[:limit] {
		cells := []string{
			b.Date,
			formatCBM(b.InboundCBM),
			formatCBM(b.OutboundCBMSI),
			formatCBM(b.NetFlowCBM),
			fmt.Sprintf("%d", b.InboundQty),
			fmt.Sprintf("%d", b.OutboundQtySI),
			fmt.Sprintf("%d", b.NetFlowQty),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(daily) > pdfDailyRowLimit {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5,
			fmt.Sprintf("Showing first %d of %d rows. Download CSV for complete data.", pdfDailyRowLimit, len(daily)),
			"", 1, "L", false, 0, "")
	}
}
