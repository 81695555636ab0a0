// Package insights loads network statistics and the performance chart.
package insights

import "context"

// DefaultPeriod is the chart period selected when the page opens.
const DefaultPeriod = "1W"

var Periods = []string{"1D", "1W", "1M", "3M", "1Y"}

type Region struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Utilization int    `json:"utilization"`
	Nodes       int    `json:"nodes"`
}

type NetworkStats struct {
	TotalThroughput float64  `json:"totalThroughput"`
	TotalNodes      int      `json:"totalNodes"`
	TotalRegions    int      `json:"totalRegions"`
	StakingAPY      float64  `json:"stakingApy"`
	APYChange       float64  `json:"apyChange"`
	NetworkLatency  float64  `json:"networkLatency"`
	Uptime          float64  `json:"uptime"`
	Regions         []Region `json:"regions"`
}

type ChartPoint struct {
	Name string  `json:"name"`
	UV   float64 `json:"uv"`
	PV   float64 `json:"pv"`
}

//go:generate mockgen -source=insights.go -destination=client_mock.go -package=insights
type Client interface {
	NetworkStats(ctx context.Context) (NetworkStats, error)
	ChartData(ctx context.Context, period string) ([]ChartPoint, error)
}
