package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/helios/internal/transaction"
)

func TestPage_MountLoadsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := fixture()

	client := transaction.NewMockClient(ctrl)
	client.EXPECT().Transactions(gomock.Any()).Return(txs, nil).Times(1)
	client.EXPECT().TransactionSummary(gomock.Any()).Return(transaction.Summarize(txs), nil).Times(1)

	page := transaction.NewPage(client)
	require.True(t, page.State().IsLoading)

	page.Mount(context.Background())
	page.Mount(context.Background())

	got := page.State()
	assert.False(t, got.IsLoading)
	assert.Empty(t, got.Err)
	assert.Equal(t, txs, got.Transactions)
	assert.Equal(t, got.Summary.TotalIncome-got.Summary.TotalExpenses, got.Summary.NetBalance)
}

func TestPage_FailedRefreshKeepsData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := fixture()

	client := transaction.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Transactions(gomock.Any()).Return(txs, nil),
		client.EXPECT().Transactions(gomock.Any()).Return(nil, errors.New("gateway timeout")),
	)
	client.EXPECT().TransactionSummary(gomock.Any()).Return(transaction.Summarize(txs), nil).AnyTimes()

	page := transaction.NewPage(client)
	page.Mount(context.Background())
	page.Refresh(context.Background())

	got := page.State()
	assert.Equal(t, "gateway timeout", got.Err)
	assert.False(t, got.IsLoading)
	assert.Equal(t, txs, got.Transactions)
}

func TestPage_Filtered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := fixture()

	client := transaction.NewMockClient(ctrl)
	client.EXPECT().Transactions(gomock.Any()).Return(txs, nil).Times(2)
	client.EXPECT().TransactionSummary(gomock.Any()).Return(transaction.Summarize(txs), nil).Times(2)

	page := transaction.NewPage(client)
	page.Mount(context.Background())

	assert.Len(t, page.Filtered(), 7)
	assert.Len(t, page.Filtered(), 7)
	assert.Equal(t, 1, page.Recomputes())

	page.SetFilter(transaction.FilterExpense)
	assert.Equal(t, []string{"t1", "t2", "t5"}, ids(page.Filtered()))
	assert.Equal(t, 2, page.Recomputes())

	page.SetSearch("rent")
	assert.Equal(t, []string{"t5"}, ids(page.Filtered()))

	page.SetSearch("rent")
	page.Filtered()
	assert.Equal(t, 3, page.Recomputes())

	page.Refresh(context.Background())
	page.Filtered()
	assert.Equal(t, 4, page.Recomputes())
}

func TestPage_UnmountDropsLateResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	page := (*transaction.Page)(nil)

	client := transaction.NewMockClient(ctrl)
	client.EXPECT().Transactions(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]transaction.Transaction, error) {
		page.Unmount()
		<-ctx.Done()

		return fixture(), nil
	})
	client.EXPECT().TransactionSummary(gomock.Any()).Return(transaction.Summary{}, nil)

	page = transaction.NewPage(client)
	page.Mount(context.Background())

	got := page.State()
	assert.Empty(t, got.Transactions)
	assert.True(t, got.IsLoading)
}
