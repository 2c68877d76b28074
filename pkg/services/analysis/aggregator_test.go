package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func rec(src domain.Source, date time.Time, totalCBM string, qty int64) domain.NormalizedRecord {
	r := domain.NormalizedRecord{Source: src, Date: date, Quantity: &qty}
	if totalCBM != "" {
		t := decimal.RequireFromString(totalCBM)
		r.TotalCBM = &t
	}
	return r
}

// salesRecords mirrors a typical wide sheet: three orders on one day,
// three invoices spread over the following days.
func salesRecords() []domain.NormalizedRecord {
	return []domain.NormalizedRecord{
		rec(domain.SourceSO, d(2025, time.September, 15), "22.005957", 8),
		rec(domain.SourceSO, d(2025, time.September, 15), "22.005957", 8),
		rec(domain.SourceSO, d(2025, time.September, 15), "22.005958", 8),
		rec(domain.SourceSI, d(2025, time.September, 16), "22.005957", 8),
		rec(domain.SourceSI, d(2025, time.September, 17), "22.005957", 8),
		rec(domain.SourceSI, d(2025, time.September, 18), "22.005958", 9),
	}
}

func TestAggregate_SingleDayInboundOnly(t *testing.T) {
	result := Aggregate(salesRecords(), d(2025, time.September, 15), d(2025, time.September, 15), domain.PeriodDay)

	require.Len(t, result.Buckets, 1)
	b := result.Buckets[0]
	assert.Equal(t, d(2025, time.September, 15), b.Date)
	assert.Equal(t, "66.017872", b.InboundCBM.String())
	assert.Equal(t, int64(24), b.InboundQty)
	assert.True(t, b.OutboundCBM.IsZero())
	assert.Zero(t, b.OutboundQty)
	assert.Equal(t, "66.017872", b.NetFlowCBM.String())
	assert.Equal(t, int64(24), b.NetFlowQty)

	require.NotNil(t, result.KPIs.PeakInboundCBM)
	assert.Equal(t, d(2025, time.September, 15), result.KPIs.PeakInboundCBM.Date)
	assert.Equal(t, "66.017872", result.KPIs.PeakInboundCBM.Value.String())
	assert.Nil(t, result.KPIs.PeakOutboundCBM, "no outbound volume in range")
	assert.Nil(t, result.KPIs.PeakOutboundQty)
}

func TestAggregate_FullWeekBalancesOut(t *testing.T) {
	result := Aggregate(salesRecords(), d(2025, time.September, 15), d(2025, time.September, 21), domain.PeriodDay)

	require.Len(t, result.Buckets, 4)

	assert.Equal(t, "66.017872", result.Totals.InboundCBM.String())
	assert.Equal(t, "66.017872", result.Totals.OutboundCBM.String())
	assert.True(t, result.Totals.NetFlowCBM.IsZero())
	assert.Equal(t, int64(24), result.Totals.InboundQty)
	assert.Equal(t, int64(25), result.Totals.OutboundQty)
	assert.Equal(t, int64(-1), result.Totals.NetFlowQty)

	require.NotNil(t, result.KPIs.PeakOutboundQty)
	assert.Equal(t, d(2025, time.September, 18), result.KPIs.PeakOutboundQty.Date)
}

func TestAggregate_NetFlowInvariantPerBucket(t *testing.T) {
	result := Aggregate(salesRecords(), d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)

	for _, b := range result.Buckets {
		assert.True(t, b.NetFlowCBM.Equal(b.InboundCBM.Sub(b.OutboundCBM)), "bucket %s", b.Date)
		assert.Equal(t, b.InboundQty-b.OutboundQty, b.NetFlowQty, "bucket %s", b.Date)
	}
	assert.True(t, result.Totals.NetFlowCBM.Equal(result.Totals.InboundCBM.Sub(result.Totals.OutboundCBM)))
}

func TestAggregate_BucketsAreSparseAndSorted(t *testing.T) {
	records := []domain.NormalizedRecord{
		rec(domain.SourceSO, d(2025, time.September, 20), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 1), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 10), "1", 1),
	}

	result := Aggregate(records, d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)

	require.Len(t, result.Buckets, 3, "days with no activity must not appear")
	assert.Equal(t, d(2025, time.September, 1), result.Buckets[0].Date)
	assert.Equal(t, d(2025, time.September, 10), result.Buckets[1].Date)
	assert.Equal(t, d(2025, time.September, 20), result.Buckets[2].Date)
}

func TestAggregate_RangeBoundariesInclusive(t *testing.T) {
	records := []domain.NormalizedRecord{
		rec(domain.SourceSO, d(2025, time.September, 14), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 15), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 18), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 19), "1", 1),
	}

	result := Aggregate(records, d(2025, time.September, 15), d(2025, time.September, 18), domain.PeriodDay)

	require.Len(t, result.Buckets, 2)
	assert.Equal(t, d(2025, time.September, 15), result.Buckets[0].Date)
	assert.Equal(t, d(2025, time.September, 18), result.Buckets[1].Date)
}

func TestAggregate_InvertedRangeIsEmpty(t *testing.T) {
	result := Aggregate(salesRecords(), d(2025, time.September, 30), d(2025, time.September, 1), domain.PeriodDay)

	assert.Empty(t, result.Buckets)
	assert.True(t, result.Totals.InboundCBM.IsZero())
	assert.Nil(t, result.KPIs.PeakInboundCBM)
	assert.True(t, result.KPIs.AvgDailyNetCBM.IsZero())
}

func TestAggregate_EmptyInput(t *testing.T) {
	result := Aggregate(nil, d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)

	assert.Empty(t, result.Buckets)
	assert.Nil(t, result.KPIs.PeakInboundQty)
}

func TestAggregate_PeakTieBreaksEarliest(t *testing.T) {
	records := []domain.NormalizedRecord{
		rec(domain.SourceSO, d(2025, time.September, 10), "5", 5),
		rec(domain.SourceSO, d(2025, time.September, 3), "5", 5),
	}

	result := Aggregate(records, d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)

	require.NotNil(t, result.KPIs.PeakInboundCBM)
	assert.Equal(t, d(2025, time.September, 3), result.KPIs.PeakInboundCBM.Date)
}

func TestAggregate_AveragesOverActiveBucketsOnly(t *testing.T) {
	records := []domain.NormalizedRecord{
		rec(domain.SourceSO, d(2025, time.September, 1), "10", 4),
		rec(domain.SourceSO, d(2025, time.September, 20), "20", 2),
	}

	// A month-long range but only two active days: the divisor is 2.
	result := Aggregate(records, d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)

	assert.Equal(t, "15", result.KPIs.AvgDailyNetCBM.String())
	assert.Equal(t, "3", result.KPIs.AvgDailyNetQty.String())
}

func TestAggregate_WeeklyGrouping(t *testing.T) {
	records := []domain.NormalizedRecord{
		// Monday, Wednesday and Sunday of the same ISO week.
		rec(domain.SourceSO, d(2025, time.September, 15), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 17), "2", 1),
		rec(domain.SourceSO, d(2025, time.September, 21), "3", 1),
		// The following Monday opens a new week.
		rec(domain.SourceSO, d(2025, time.September, 22), "4", 1),
	}

	result := Aggregate(records, d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodWeek)

	require.Len(t, result.Buckets, 2)
	assert.Equal(t, d(2025, time.September, 15), result.Buckets[0].Date)
	assert.Equal(t, "6", result.Buckets[0].InboundCBM.String())
	assert.Equal(t, d(2025, time.September, 22), result.Buckets[1].Date)
	assert.Equal(t, "4", result.Buckets[1].InboundCBM.String())
}

func TestAggregate_MonthlyGrouping(t *testing.T) {
	records := []domain.NormalizedRecord{
		rec(domain.SourceSO, d(2025, time.September, 3), "1", 1),
		rec(domain.SourceSO, d(2025, time.September, 28), "2", 1),
		rec(domain.SourceSI, d(2025, time.October, 5), "3", 1),
	}

	result := Aggregate(records, d(2025, time.September, 1), d(2025, time.October, 31), domain.PeriodMonth)

	require.Len(t, result.Buckets, 2)
	assert.Equal(t, d(2025, time.September, 1), result.Buckets[0].Date)
	assert.Equal(t, "3", result.Buckets[0].InboundCBM.String())
	assert.Equal(t, d(2025, time.October, 1), result.Buckets[1].Date)
	assert.Equal(t, "3", result.Buckets[1].OutboundCBM.String())
}

func TestAggregate_Idempotent(t *testing.T) {
	first := Aggregate(salesRecords(), d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)
	second := Aggregate(salesRecords(), d(2025, time.September, 1), d(2025, time.September, 30), domain.PeriodDay)

	assert.Equal(t, first, second)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodDay, p)

	p, err = ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodWeek, p)

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}
