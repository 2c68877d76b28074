package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/flow-tools/cbm-insight/pkg/models/api"
)

// csvHeader matches the analyze response field names exactly.
var csvHeader = []string{
	"date",
	"inbound_cbm",
	"outbound_cbm_si",
	"net_flow_cbm",
	"inbound_qty",
	"outbound_qty_si",
	"net_flow_qty",
}

// WriteCSV serializes the daily rows of an analysis as comma-separated
// values with a header row.
func WriteCSV(w io.Writer, result api.AnalysisResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, b := range result.Daily {
		row := []string{
			b.Date,
			formatCBM(b.InboundCBM),
			formatCBM(b.OutboundCBMSI),
			formatCBM(b.NetFlowCBM),
			fmt.Sprintf("%d", b.InboundQty),
			fmt.Sprintf("%d", b.OutboundQtySI),
			fmt.Sprintf("%d", b.NetFlowQty),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCBM(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
