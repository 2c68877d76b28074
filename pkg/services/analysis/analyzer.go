package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/flow-tools/cbm-insight/pkg/models/domain"
)

// Analyzer runs the aggregation over a session's dataset. It holds no
// state of its own; every call is a pure function of (dataset, range,
// grouping), so repeated calls with the same arguments return identical
// results.
type Analyzer interface {
	Analyze(
		ctx context.Context,
		ds *domain.Dataset,
		from, to time.Time,
		period domain.Period,
	) (*domain.AnalysisResult, error)
}

type analyzer struct{}

func NewAnalyzer() Analyzer {
	return &analyzer{}
}

func (a *analyzer) Analyze(
	ctx context.Context,
	ds *domain.Dataset,
	from, to time.Time,
	period domain.Period,
) (*domain.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx)

	result := Aggregate(ds.Records, from, to, period)

	logger.Debug().
		Int("records", len(ds.Records)).
		Int("buckets", len(result.Buckets)).
		Str("period", string(period)).
		Msg("analysis complete")

	return &result, nil
}

// ParsePeriod maps the wire value of group_by to a period. An empty value
// defaults to daily buckets.
func ParsePeriod(s string) (domain.Period, error) {
	switch s {
	case "", string(domain.PeriodDay):
		return domain.PeriodDay, nil
	case string(domain.PeriodWeek):
		return domain.PeriodWeek, nil
	case string(domain.PeriodMonth):
		return domain.PeriodMonth, nil
	default:
		return "", fmt.Errorf("unsupported group_by value: %q", s)
	}
}
