package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
	"github.com/flow-tools/cbm-insight/pkg/services/cbm"
)

// Aggregate buckets records by period start inside [from, to] inclusive
// (calendar comparison, time-of-day ignored) and derives totals and KPIs.
// Buckets are sparse: only periods with at least one contributing record
// appear. An inverted or empty range yields an empty result, not an
// error. The function is pure; identical input produces identical output.
func Aggregate(records []domain.NormalizedRecord, from, to time.Time, period domain.Period) domain.AnalysisResult {
	from = dateOnly(from)
	to = dateOnly(to)

	buckets := map[time.Time]*domain.Bucket{}
	for _, rec := range records {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}

		key := periodStart(rec.Date, period)
		b, ok := buckets[key]
		if !ok {
			b = &domain.Bucket{Date: key}
			buckets[key] = b
		}

		volume := cbm.Resolve(rec.TotalCBM, rec.UnitCBM, rec.Quantity)
		var qty int64
		if rec.Quantity != nil {
			qty = *rec.Quantity
		}

		switch rec.Source {
		case domain.SourceSO:
			b.InboundCBM = b.InboundCBM.Add(volume)
			b.InboundQty += qty
		case domain.SourceSI:
			b.OutboundCBM = b.OutboundCBM.Add(volume)
			b.OutboundQty += qty
		}
	}

	result := domain.AnalysisResult{Buckets: make([]domain.Bucket, 0, len(buckets))}
	for _, b := range buckets {
		b.NetFlowCBM = b.InboundCBM.Sub(b.OutboundCBM)
		b.NetFlowQty = b.InboundQty - b.OutboundQty
		result.Buckets = append(result.Buckets, *b)
	}
	sort.Slice(result.Buckets, func(i, j int) bool {
		return result.Buckets[i].Date.Before(result.Buckets[j].Date)
	})

	result.Totals = sumTotals(result.Buckets)
	result.KPIs = deriveKPIs(result.Buckets)
	return result
}

func sumTotals(buckets []domain.Bucket) domain.Totals {
	var t domain.Totals
	for _, b := range buckets {
		t.InboundCBM = t.InboundCBM.Add(b.InboundCBM)
		t.OutboundCBM = t.OutboundCBM.Add(b.OutboundCBM)
		t.InboundQty += b.InboundQty
		t.OutboundQty += b.OutboundQty
	}
	t.NetFlowCBM = t.InboundCBM.Sub(t.OutboundCBM)
	t.NetFlowQty = t.InboundQty - t.OutboundQty
	return t
}

func deriveKPIs(buckets []domain.Bucket) domain.KPIs {
	k := domain.KPIs{}
	if len(buckets) == 0 {
		return k
	}

	k.PeakInboundCBM = peakOf(buckets, func(b domain.Bucket) decimal.Decimal { return b.InboundCBM })
	k.PeakOutboundCBM = peakOf(buckets, func(b domain.Bucket) decimal.Decimal { return b.OutboundCBM })
	k.PeakInboundQty = peakOf(buckets, func(b domain.Bucket) decimal.Decimal { return decimal.NewFromInt(b.InboundQty) })
	k.PeakOutboundQty = peakOf(buckets, func(b domain.Bucket) decimal.Decimal { return decimal.NewFromInt(b.OutboundQty) })

	n := decimal.NewFromInt(int64(len(buckets)))
	var netCBM decimal.Decimal
	var netQty int64
	for _, b := range buckets {
		netCBM = netCBM.Add(b.NetFlowCBM)
		netQty += b.NetFlowQty
	}
	k.AvgDailyNetCBM = netCBM.Div(n)
	k.AvgDailyNetQty = decimal.NewFromInt(netQty).Div(n)
	return k
}

// peakOf returns the bucket with the maximum metric value, earliest date
// on ties, or nil when the metric is zero across every bucket.
func peakOf(buckets []domain.Bucket, metric func(domain.Bucket) decimal.Decimal) *domain.Peak {
	var peak *domain.Peak
	for _, b := range buckets {
		v := metric(b)
		if peak == nil || v.GreaterThan(peak.Value) {
			peak = &domain.Peak{Date: b.Date, Value: v}
		}
	}
	if peak == nil || !peak.Value.IsPositive() {
		return nil
	}
	return peak
}

func periodStart(d time.Time, period domain.Period) time.Time {
	switch period {
	case domain.PeriodWeek:
		// ISO weeks start on Monday.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case domain.PeriodMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
