package facade

import (
	"context"
	"slices"

	"github.com/MrJamesThe3rd/helios/internal/dashboard"
	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

var (
	_ dashboard.Client   = (*Dashboard)(nil)
	_ transaction.Client = (*Dashboard)(nil)
)

// Dashboard serves the overview fixtures and the shared transaction ledger.
type Dashboard struct {
	*caller
	ledger *transaction.Ledger
}

func (d *Dashboard) Stats(ctx context.Context) (dashboard.Stats, error) {
	if err := d.call(ctx, OpDashboardStats); err != nil {
		return dashboard.Stats{}, err
	}

	return dashboardStats, nil
}

func (d *Dashboard) StakingAssets(ctx context.Context) ([]dashboard.StakingAsset, error) {
	if err := d.call(ctx, OpDashboardStakingAssets); err != nil {
		return nil, err
	}

	out := slices.Clone(stakingAssets)
	for i := range out {
		out[i].Data = slices.Clone(out[i].Data)
	}

	return out, nil
}

func (d *Dashboard) Activities(ctx context.Context) ([]dashboard.Activity, error) {
	if err := d.call(ctx, OpDashboardActivities); err != nil {
		return nil, err
	}

	return activities(d.now()), nil
}

func (d *Dashboard) Transactions(ctx context.Context) ([]transaction.Transaction, error) {
	if err := d.call(ctx, OpDashboardTransactions); err != nil {
		return nil, err
	}

	return d.ledger.List(), nil
}

// TransactionSummary totals the current ledger.
func (d *Dashboard) TransactionSummary(ctx context.Context) (transaction.Summary, error) {
	if err := d.call(ctx, OpDashboardSummary); err != nil {
		return transaction.Summary{}, err
	}

	return transaction.Summarize(d.ledger.List()), nil
}
