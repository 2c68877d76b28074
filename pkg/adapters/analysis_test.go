package adapters

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

func TestMapAnalysisResultDomainToApi(t *testing.T) {
	date := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	result := &domain.AnalysisResult{
		Buckets: []domain.Bucket{{
			Date:        date,
			InboundCBM:  decimal.RequireFromString("22.0059574999"),
			OutboundCBM: decimal.RequireFromString("1.5"),
			NetFlowCBM:  decimal.RequireFromString("20.5059574999"),
			InboundQty:  8,
			OutboundQty: 3,
			NetFlowQty:  5,
		}},
		Totals: domain.Totals{
			InboundCBM:  decimal.RequireFromString("22.0059574999"),
			OutboundCBM: decimal.RequireFromString("1.5"),
			NetFlowCBM:  decimal.RequireFromString("20.5059574999"),
			InboundQty:  8,
			OutboundQty: 3,
			NetFlowQty:  5,
		},
		KPIs: domain.KPIs{
			PeakInboundCBM: &domain.Peak{Date: date, Value: decimal.RequireFromString("22.0059574999")},
			PeakInboundQty: &domain.Peak{Date: date, Value: decimal.NewFromInt(8)},
			AvgDailyNetCBM: decimal.RequireFromString("20.5059574999"),
			AvgDailyNetQty: decimal.RequireFromString("2.5"),
		},
	}

	out := MapAnalysisResultDomainToApi(result)

	require.Len(t, out.Daily, 1)
	b := out.Daily[0]
	assert.Equal(t, "2025-09-15", b.Date)
	assert.Equal(t, 22.005957, b.InboundCBM, "volumes are rounded to six places")
	assert.Equal(t, 1.5, b.OutboundCBMSI)
	assert.Equal(t, int64(8), b.InboundQty)

	require.NotNil(t, out.KPIs.PeakInboundCBMDay.Date)
	assert.Equal(t, "2025-09-15", *out.KPIs.PeakInboundCBMDay.Date)
	assert.Equal(t, 22.005957, out.KPIs.PeakInboundCBMDay.Value)
	assert.Equal(t, float64(8), out.KPIs.PeakInboundQtyDay.Value, "quantity peaks stay whole")

	// A metric that never rose above zero maps to a null date, zero value.
	assert.Nil(t, out.KPIs.PeakOutboundCBMDay.Date)
	assert.Zero(t, out.KPIs.PeakOutboundCBMDay.Value)

	assert.Equal(t, 20.505957, out.KPIs.AvgDailyNetFlowCBM)
	assert.Equal(t, float64(3), out.KPIs.AvgDailyNetFlowQty, "quantity average rounds to a whole number")
}

func TestMapColumnMapDomainToApi(t *testing.T) {
	cm := domain.ColumnMap{
		domain.FieldSODate: {Header: "SO Date", Score: 1, Exact: true},
		domain.FieldSOQty:  {Header: "Qtty", Score: 0.86},
	}

	out := MapColumnMapDomainToApi(cm)

	require.Len(t, out, len(domain.Fields()), "every canonical field appears")
	require.NotNil(t, out["so_date"])
	assert.True(t, out["so_date"].Exact)
	require.NotNil(t, out["so_qty"])
	assert.Equal(t, "Qtty", out["so_qty"].Header)
	assert.Nil(t, out["si_date"], "undetected fields are explicit nulls")
}

func TestMapDateRangeDomainToApi(t *testing.T) {
	out := MapDateRangeDomainToApi(nil)
	assert.Nil(t, out.MinDate)
	assert.Nil(t, out.MaxDate)

	out = MapDateRangeDomainToApi(&domain.DateRange{
		Min: time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC),
		Max: time.Date(2025, time.September, 18, 0, 0, 0, 0, time.UTC),
	})
	require.NotNil(t, out.MinDate)
	assert.Equal(t, "2025-09-15", *out.MinDate)
	require.NotNil(t, out.MaxDate)
	assert.Equal(t, "2025-09-18", *out.MaxDate)
}
