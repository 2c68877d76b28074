package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the bucketing granularity for an analysis.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Bucket is one aggregation unit keyed by the start date of its period.
// NetFlowCBM is always InboundCBM - OutboundCBM and NetFlowQty is
// InboundQty - OutboundQty. Outbound figures come exclusively from SI
// records.
type Bucket struct {
	Date        time.Time
	InboundCBM  decimal.Decimal
	OutboundCBM decimal.Decimal
	NetFlowCBM  decimal.Decimal
	InboundQty  int64
	OutboundQty int64
	NetFlowQty  int64
}

// Totals sums every bucket of an analysis.
type Totals struct {
	InboundCBM  decimal.Decimal
	OutboundCBM decimal.Decimal
	NetFlowCBM  decimal.Decimal
	InboundQty  int64
	OutboundQty int64
	NetFlowQty  int64
}

// Peak is the bucket holding the maximum value for one metric. Ties go to
// the earliest date.
type Peak struct {
	Date  time.Time
	Value decimal.Decimal
}

// KPIs are derived over the full bucket sequence. A nil peak means the
// metric was zero everywhere in the range. Averages are arithmetic means
// over the non-empty buckets, not over the requested span.
type KPIs struct {
	PeakInboundCBM  *Peak
	PeakOutboundCBM *Peak
	PeakInboundQty  *Peak
	PeakOutboundQty *Peak
	AvgDailyNetCBM  decimal.Decimal
	AvgDailyNetQty  decimal.Decimal
}

// AnalysisResult is the ordered bucket sequence plus derived figures.
// An empty input yields empty buckets and zero totals; that is a valid
// result, not an error.
type AnalysisResult struct {
	Buckets []Bucket
	Totals  Totals
	KPIs    KPIs
}
