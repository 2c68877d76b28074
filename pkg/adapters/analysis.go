package adapters

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flow-tools/cbm-insight/pkg/models/api"
	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// cbmPlaces is the rounding applied to volume figures at the API edge.
// Internally everything stays decimal-exact.
const cbmPlaces = 6

func MapAnalysisResultDomainToApi(result *domain.AnalysisResult) api.AnalysisResult {
	out := api.AnalysisResult{
		Daily:  make([]api.Bucket, 0, len(result.Buckets)),
		Totals: mapTotals(result.Totals),
		KPIs:   mapKPIs(result.KPIs),
	}
	for _, b := range result.Buckets {
		out.Daily = append(out.Daily, api.Bucket{
			Date:          b.Date.Format(dateLayout),
			InboundCBM:    roundCBM(b.InboundCBM),
			OutboundCBMSI: roundCBM(b.OutboundCBM),
			NetFlowCBM:    roundCBM(b.NetFlowCBM),
			InboundQty:    b.InboundQty,
			OutboundQtySI: b.OutboundQty,
			NetFlowQty:    b.NetFlowQty,
		})
	}
	return out
}

func mapTotals(t domain.Totals) api.Totals {
	return api.Totals{
		TotalInboundCBM:    roundCBM(t.InboundCBM),
		TotalOutboundCBMSI: roundCBM(t.OutboundCBM),
		TotalNetFlowCBM:    roundCBM(t.NetFlowCBM),
		TotalInboundQty:    t.InboundQty,
		TotalOutboundQtySI: t.OutboundQty,
		TotalNetFlowQty:    t.NetFlowQty,
	}
}

func mapKPIs(k domain.KPIs) api.KPIs {
	return api.KPIs{
		PeakInboundCBMDay:  mapPeak(k.PeakInboundCBM, cbmPlaces),
		PeakOutboundCBMDay: mapPeak(k.PeakOutboundCBM, cbmPlaces),
		PeakInboundQtyDay:  mapPeak(k.PeakInboundQty, 0),
		PeakOutboundQtyDay: mapPeak(k.PeakOutboundQty, 0),
		AvgDailyNetFlowCBM: roundCBM(k.AvgDailyNetCBM),
		AvgDailyNetFlowQty: round(k.AvgDailyNetQty, 0),
	}
}

// mapPeak keeps the source convention: a metric that never rose above
// zero reports a null date and zero value.
func mapPeak(p *domain.Peak, places int32) api.Peak {
	if p == nil {
		return api.Peak{Date: nil, Value: 0}
	}
	d := p.Date.Format(dateLayout)
	return api.Peak{Date: &d, Value: round(p.Value, places)}
}

func MapColumnMapDomainToApi(cm domain.ColumnMap) map[string]*api.ColumnMatch {
	out := make(map[string]*api.ColumnMatch, len(domain.Fields()))
	for _, f := range domain.Fields() {
		if match, ok := cm[f]; ok {
			out[string(f)] = &api.ColumnMatch{Header: match.Header, Score: match.Score, Exact: match.Exact}
		} else {
			out[string(f)] = nil
		}
	}
	return out
}

func MapDateRangeDomainToApi(r *domain.DateRange) api.DateRange {
	if r == nil {
		return api.DateRange{}
	}
	minDate := r.Min.Format(dateLayout)
	maxDate := r.Max.Format(dateLayout)
	return api.DateRange{MinDate: &minDate, MaxDate: &maxDate}
}

func MapDatasetDomainToApi(sessionID string, ds *domain.Dataset) api.UploadResponse {
	samples := make([]map[string]string, 0, len(ds.SampleRows))
	for _, row := range ds.SampleRows {
		samples = append(samples, row)
	}
	return api.UploadResponse{
		SessionID:     sessionID,
		Filename:      ds.Filename,
		Columns:       MapColumnMapDomainToApi(ds.Columns),
		TotalRows:     ds.RowsRead,
		ParsedRecords: len(ds.Records),
		DroppedRows:   ds.Dropped,
		DateRange:     MapDateRangeDomainToApi(ds.DateRange),
		SampleRows:    samples,
	}
}

// ParseDate reads the wire format of date_from/date_to.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func roundCBM(d decimal.Decimal) float64 {
	return round(d, cbmPlaces)
}

func round(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}
