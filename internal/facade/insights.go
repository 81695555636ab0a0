package facade

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MrJamesThe3rd/helios/internal/advisory"
	"github.com/MrJamesThe3rd/helios/internal/insights"
)

var (
	_ insights.Client = (*Insights)(nil)
	_ advisory.Client = (*FinancialInsights)(nil)
)

type Insights struct {
	*caller
}

func (i *Insights) NetworkStats(ctx context.Context) (insights.NetworkStats, error) {
	if err := i.call(ctx, OpInsightsNetworkStats); err != nil {
		return insights.NetworkStats{}, err
	}

	stats := networkStats
	stats.Regions = slices.Clone(networkStats.Regions)

	return stats, nil
}

// ChartData returns the series for period, or the default series when the
// period is unknown.
func (i *Insights) ChartData(ctx context.Context, period string) ([]insights.ChartPoint, error) {
	if err := i.call(ctx, OpInsightsChartData); err != nil {
		return nil, err
	}

	series, ok := chartSeries[period]
	if !ok {
		series = chartSeries[insights.DefaultPeriod]
	}

	return slices.Clone(series), nil
}

// FinancialInsights stands in for the statement analysis service. Its answer
// is a fenced JSON block inside an "answer" string, the way the upstream
// model replies.
type FinancialInsights struct {
	*caller
}

type answerEnvelope struct {
	Answer string `json:"answer"`
}

func (f *FinancialInsights) Analyze(ctx context.Context, st advisory.Statement) (json.RawMessage, error) {
	if err := f.call(ctx, OpFinancialInsights); err != nil {
		return nil, err
	}

	if err := advisory.Validate(st); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(answerEnvelope{Answer: "```json\n" + advisoryReport + "\n```"})
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}

	return raw, nil
}
