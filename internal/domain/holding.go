package domain

import "github.com/shopspring/decimal"

type Holding struct {
	ID              string          `csv:"id" json:"id"`
	ClientID        string          `csv:"client_id" json:"clientID"`
	Name            string          `csv:"name" json:"name"`
	Code            string          `csv:"code" json:"code"`
	AssetClass      string          `csv:"asset_class" json:"assetClass"`
	Units           decimal.Decimal `csv:"units" json:"units"`
	CurrentPrice    decimal.Decimal `csv:"current_price" json:"currentPrice"`
	CostBase        decimal.Decimal `csv:"cost_base" json:"costBase"`
	EstimatedIncome decimal.Decimal `csv:"estimated_income" json:"estimatedIncome"`
}

// DerivedHolding is a Holding plus the values computed from it. It is
// recomputed on every read and never stored, so it cannot go stale when
// the underlying dataset changes.
type DerivedHolding struct {
	Holding

	Value                     decimal.Decimal `json:"value"`
	PortfolioPercent          float64         `json:"portfolioPercent"`
	AvgUnitCost               decimal.Decimal `json:"avgUnitCost"`
	UnrealisedGainLoss        decimal.Decimal `json:"unrealisedGainLoss"`
	UnrealisedGainLossPercent float64         `json:"unrealisedGainLossPercent"`
	EstimatedYield            float64         `json:"estimatedYield"`
}

// AssetClassGroup is one asset class's slice of a portfolio with its
// aggregates. Group gain/loss percent is group gain/loss over group cost
// base, not an average of member percentages.
type AssetClassGroup struct {
	AssetClass                string           `json:"assetClass"`
	Holdings                  []DerivedHolding `json:"holdings"`
	TotalValue                decimal.Decimal  `json:"totalValue"`
	TotalCostBase             decimal.Decimal  `json:"totalCostBase"`
	PortfolioPercent          float64          `json:"portfolioPercent"`
	UnrealisedGainLoss        decimal.Decimal  `json:"unrealisedGainLoss"`
	UnrealisedGainLossPercent float64          `json:"unrealisedGainLossPercent"`
}

// AssetClassOrder is the canonical display order for grouped views.
// Asset classes outside this list are omitted from grouped views rather
// than merged into an "Other" bucket.
var AssetClassOrder = []string{
	"Australian Equities",
	"Fixed Income",
	"Cash",
	"International Equities",
}
