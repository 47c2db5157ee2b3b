package calculator

import (
	"testing"

	"clientintel/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func Test_DeriveHoldings(t *testing.T) {
	t.Run("value and gain loss are exact", func(t *testing.T) {
		client := domain.Client{
			ID:                  "c1",
			TotalPortfolioValue: d("1000"),
		}
		holdings := []domain.Holding{{
			ID:              "h1",
			Units:           d("5814"),
			CurrentPrice:    d("38.65"),
			CostBase:        d("139706.86"),
			EstimatedIncome: d("14523.50"),
		}}

		out := DeriveHoldings(client, holdings)
		require.Len(t, out, 1)

		require.True(t, out[0].Value.Equal(d("224711.10")), out[0].Value.String())
		require.True(t, out[0].UnrealisedGainLoss.Equal(d("85004.24")), out[0].UnrealisedGainLoss.String())
		require.InDelta(t, 60.845, out[0].UnrealisedGainLossPercent, 0.01)
		require.InDelta(t, 6.463, out[0].EstimatedYield, 0.01)
	})

	t.Run("portfolio percents sum to 100 when total matches", func(t *testing.T) {
		holdings := []domain.Holding{
			{ID: "h1", Units: d("10"), CurrentPrice: d("50"), CostBase: d("400")},
			{ID: "h2", Units: d("4"), CurrentPrice: d("125"), CostBase: d("600")},
			{ID: "h3", Units: d("1"), CurrentPrice: d("1000"), CostBase: d("900")},
		}
		// 500 + 500 + 1000
		client := domain.Client{ID: "c1", TotalPortfolioValue: d("2000")}

		out := DeriveHoldings(client, holdings)
		sum := 0.0
		for _, h := range out {
			sum += h.PortfolioPercent
		}
		require.InDelta(t, 100, sum, 1e-9)
	})

	t.Run("zero denominators resolve to zero", func(t *testing.T) {
		client := domain.Client{ID: "c1", TotalPortfolioValue: decimal.Zero}
		holdings := []domain.Holding{{
			ID:           "h1",
			Units:        decimal.Zero,
			CurrentPrice: d("10"),
			CostBase:     decimal.Zero,
		}}

		out := DeriveHoldings(client, holdings)
		require.Len(t, out, 1)
		require.True(t, out[0].Value.IsZero())
		require.True(t, out[0].AvgUnitCost.IsZero())
		require.Equal(t, 0.0, out[0].UnrealisedGainLossPercent)
		require.Equal(t, 0.0, out[0].PortfolioPercent)
		require.Equal(t, 0.0, out[0].EstimatedYield)
	})
}

func Test_GroupByAssetClass(t *testing.T) {
	client := domain.Client{ID: "c1", TotalPortfolioValue: d("4000")}
	holdings := []domain.Holding{
		{ID: "h1", AssetClass: "Cash", Units: d("1"), CurrentPrice: d("1000"), CostBase: d("1000")},
		{ID: "h2", AssetClass: "Australian Equities", Units: d("10"), CurrentPrice: d("100"), CostBase: d("500")},
		{ID: "h3", AssetClass: "Australian Equities", Units: d("10"), CurrentPrice: d("100"), CostBase: d("1500")},
		{ID: "h4", AssetClass: "Commodities", Units: d("1"), CurrentPrice: d("1000"), CostBase: d("100")},
	}
	derived := DeriveHoldings(client, holdings)

	groups := GroupByAssetClass(derived)

	t.Run("canonical order, unknown classes omitted", func(t *testing.T) {
		require.Len(t, groups, 2)
		require.Equal(t, "Australian Equities", groups[0].AssetClass)
		require.Equal(t, "Cash", groups[1].AssetClass)
	})

	t.Run("subtotals are member sums", func(t *testing.T) {
		equities := groups[0]
		require.True(t, equities.TotalValue.Equal(d("2000")), equities.TotalValue.String())
		require.True(t, equities.TotalCostBase.Equal(d("2000")))
		require.True(t, equities.UnrealisedGainLoss.Equal(d("0")))
	})

	t.Run("group percent uses group cost base, not member average", func(t *testing.T) {
		// members are +100% and -33.3%; the group nets to 0% because
		// total gain/loss is zero over a 2000 cost base
		equities := groups[0]
		require.Equal(t, 0.0, equities.UnrealisedGainLossPercent)
	})

	t.Run("zero cost base group resolves to zero percent", func(t *testing.T) {
		c := domain.Client{ID: "c2", TotalPortfolioValue: d("100")}
		free := DeriveHoldings(c, []domain.Holding{
			{ID: "h5", AssetClass: "Cash", Units: d("1"), CurrentPrice: d("100"), CostBase: decimal.Zero},
		})
		out := GroupByAssetClass(free)
		require.Len(t, out, 1)
		require.Equal(t, 0.0, out[0].UnrealisedGainLossPercent)
	})
}

func Test_CalculateTotals(t *testing.T) {
	client := domain.Client{ID: "c1", TotalPortfolioValue: d("3000")}
	derived := DeriveHoldings(client, []domain.Holding{
		{ID: "h1", Units: d("1"), CurrentPrice: d("1500"), CostBase: d("1000"), EstimatedIncome: d("50")},
		{ID: "h2", Units: d("1"), CurrentPrice: d("800"), CostBase: d("1000"), EstimatedIncome: d("25")},
		{ID: "h3", Units: d("1"), CurrentPrice: d("700"), CostBase: d("700")},
	})

	totals := CalculateTotals(derived)
	require.True(t, totals.TotalGains.Equal(d("500")))
	require.True(t, totals.TotalLosses.Equal(d("200")))
	require.Equal(t, 1, totals.GainCount)
	require.Equal(t, 1, totals.LossCount)
	require.True(t, totals.TotalIncome.Equal(d("75")))
	require.InDelta(t, 11.11, totals.ReturnPercent, 0.01)
}

func Test_MaxDriftFromTarget(t *testing.T) {
	client := domain.Client{ID: "c1", TotalPortfolioValue: d("1000")}
	derived := DeriveHoldings(client, []domain.Holding{
		{ID: "h1", AssetClass: "Australian Equities", Units: d("1"), CurrentPrice: d("600"), CostBase: d("600")},
		{ID: "h2", AssetClass: "Cash", Units: d("1"), CurrentPrice: d("400"), CostBase: d("400")},
	})

	// 60% and 40% against a flat 25% target
	require.InDelta(t, 35, MaxDriftFromTarget(derived, 25), 1e-9)
	require.InDelta(t, 10, MaxDriftFromTarget(derived, 50), 1e-9)
	require.Equal(t, 0.0, MaxDriftFromTarget(nil, 25))
}
