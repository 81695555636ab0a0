package insights_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/helios/internal/insights"
)

var (
	stats = insights.NetworkStats{
		TotalThroughput: 842.5,
		TotalNodes:      34,
		Regions:         []insights.Region{{ID: "r1", Name: "NA-East", Utilization: 60, Nodes: 12}},
	}
	weekly  = []insights.ChartPoint{{Name: "Mon", UV: 1, PV: 2}}
	monthly = []insights.ChartPoint{{Name: "Jan", UV: 4000, PV: 2400}}
)

func TestPage_Mount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := insights.NewMockClient(ctrl)
	client.EXPECT().NetworkStats(gomock.Any()).Return(stats, nil)
	client.EXPECT().ChartData(gomock.Any(), insights.DefaultPeriod).Return(weekly, nil)

	page := insights.NewPage(client)
	page.Mount(context.Background())
	page.Mount(context.Background())

	assert.Equal(t, insights.PageState{Stats: &stats, Chart: weekly, Period: insights.DefaultPeriod}, page.State())
}

func TestPage_SetPeriod(t *testing.T) {
	t.Run("BeforeLoadOnlySelects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := insights.NewMockClient(ctrl)
		client.EXPECT().NetworkStats(gomock.Any()).Return(stats, nil)
		client.EXPECT().ChartData(gomock.Any(), "1M").Return(monthly, nil)

		page := insights.NewPage(client)
		page.SetPeriod(context.Background(), "1M")
		page.Mount(context.Background())

		assert.Equal(t, monthly, page.State().Chart)
	})

	t.Run("AfterLoadRefetchesChartOnly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := insights.NewMockClient(ctrl)
		client.EXPECT().NetworkStats(gomock.Any()).Return(stats, nil).Times(1)
		client.EXPECT().ChartData(gomock.Any(), insights.DefaultPeriod).Return(weekly, nil)
		client.EXPECT().ChartData(gomock.Any(), "1M").Return(monthly, nil)

		page := insights.NewPage(client)
		page.Mount(context.Background())
		page.SetPeriod(context.Background(), "1M")
		page.SetPeriod(context.Background(), "1M")

		got := page.State()
		assert.Equal(t, "1M", got.Period)
		assert.Equal(t, monthly, got.Chart)
	})

	t.Run("ChartFailureKeepsSeries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := insights.NewMockClient(ctrl)
		client.EXPECT().NetworkStats(gomock.Any()).Return(stats, nil)
		client.EXPECT().ChartData(gomock.Any(), insights.DefaultPeriod).Return(weekly, nil)
		client.EXPECT().ChartData(gomock.Any(), "1Y").Return(nil, errors.New("no data"))

		page := insights.NewPage(client)
		page.Mount(context.Background())
		page.SetPeriod(context.Background(), "1Y")

		got := page.State()
		assert.Equal(t, weekly, got.Chart)
		assert.Equal(t, insights.DefaultPeriod, got.Period)
		assert.Equal(t, "no data", got.Err)
	})

	t.Run("NextSuccessClearsChartError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := insights.NewMockClient(ctrl)
		client.EXPECT().NetworkStats(gomock.Any()).Return(stats, nil)
		client.EXPECT().ChartData(gomock.Any(), insights.DefaultPeriod).Return(weekly, nil)
		client.EXPECT().ChartData(gomock.Any(), "1Y").Return(nil, errors.New("no data"))
		client.EXPECT().ChartData(gomock.Any(), "1M").Return(monthly, nil)

		page := insights.NewPage(client)
		page.Mount(context.Background())
		page.SetPeriod(context.Background(), "1Y")
		page.SetPeriod(context.Background(), "1M")

		got := page.State()
		assert.Equal(t, monthly, got.Chart)
		assert.Equal(t, "1M", got.Period)
		assert.Empty(t, got.Err)
	})

	t.Run("ChangedDuringFirstLoad", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var page *insights.Page

		client := insights.NewMockClient(ctrl)
		client.EXPECT().NetworkStats(gomock.Any()).DoAndReturn(func(ctx context.Context) (insights.NetworkStats, error) {
			page.SetPeriod(ctx, "1M")
			return stats, nil
		})
		client.EXPECT().ChartData(gomock.Any(), insights.DefaultPeriod).Return(weekly, nil)
		client.EXPECT().ChartData(gomock.Any(), "1M").Return(monthly, nil)

		page = insights.NewPage(client)
		page.Mount(context.Background())

		got := page.State()
		require.NotNil(t, got.Stats)
		assert.Equal(t, "1M", got.Period)
		assert.Equal(t, monthly, got.Chart)
		assert.Empty(t, got.Err)
	})
}

func TestPage_FailedRefreshKeepsData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := insights.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().NetworkStats(gomock.Any()).Return(stats, nil),
		client.EXPECT().NetworkStats(gomock.Any()).Return(insights.NetworkStats{}, errors.New("overloaded")),
	)
	client.EXPECT().ChartData(gomock.Any(), gomock.Any()).Return(weekly, nil).Times(2)

	page := insights.NewPage(client)
	page.Mount(context.Background())
	page.Refresh(context.Background())

	got := page.State()
	assert.Equal(t, "overloaded", got.Err)
	require.NotNil(t, got.Stats)
	assert.Equal(t, stats, *got.Stats)
	assert.Equal(t, weekly, got.Chart)
}
