// Package dashboard loads the overview screen: balance stats, staking
// positions and recent account activity.
package dashboard

import (
	"context"
	"time"
)

type Stats struct {
	TotalBalance  float64 `json:"totalBalance"`
	BalanceChange float64 `json:"balanceChange"`
	MonthlySpend  float64 `json:"monthlySpend"`
	Investments   float64 `json:"investments"`
	ActiveSIPs    int     `json:"activeSips"`
}

type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type StakingAsset struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	APY        string  `json:"apy"`
	TVL        string  `json:"tvl"`
	ChartColor string  `json:"chartColor"`
	Allocation int     `json:"allocation"`
	Data       []Point `json:"data"`
}

type ActivityType string

const (
	ActivityDeposit  ActivityType = "deposit"
	ActivityWithdraw ActivityType = "withdraw"
	ActivityStake    ActivityType = "stake"
	ActivityUnstake  ActivityType = "unstake"
	ActivityReward   ActivityType = "reward"
)

type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "completed"
	ActivityPending   ActivityStatus = "pending"
	ActivityFailed    ActivityStatus = "failed"
)

type Activity struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	Description string         `json:"description"`
	Amount      string         `json:"amount"`
	Asset       string         `json:"asset"`
	Timestamp   time.Time      `json:"timestamp"`
	Status      ActivityStatus `json:"status"`
}

//go:generate mockgen -source=dashboard.go -destination=client_mock.go -package=dashboard
type Client interface {
	Stats(ctx context.Context) (Stats, error)
	StakingAssets(ctx context.Context) ([]StakingAsset, error)
	Activities(ctx context.Context) ([]Activity, error)
}
