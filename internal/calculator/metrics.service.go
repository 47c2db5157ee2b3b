// Package calculator derives per-holding and per-group values from raw
// holdings. Everything here is a pure function of the inputs - derived
// values are recomputed on every read and never cached across client
// changes.
package calculator

import (
	"clientintel/internal/domain"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DeriveHoldings computes the derived fields for each holding against the
// client's total portfolio value, preserving input order. Divisions with
// a zero denominator (zero units, zero cost base, zero value) resolve to
// zero rather than propagating an invalid number into rankings.
func DeriveHoldings(client domain.Client, holdings []domain.Holding) []domain.DerivedHolding {
	derived := make([]domain.DerivedHolding, 0, len(holdings))
	for _, h := range holdings {
		value := h.Units.Mul(h.CurrentPrice)
		gainLoss := value.Sub(h.CostBase)

		d := domain.DerivedHolding{
			Holding:            h,
			Value:              value,
			UnrealisedGainLoss: gainLoss,
		}

		if !client.TotalPortfolioValue.IsZero() {
			d.PortfolioPercent = value.Div(client.TotalPortfolioValue).InexactFloat64() * 100
		}
		if !h.Units.IsZero() {
			d.AvgUnitCost = h.CostBase.Div(h.Units)
		}
		if !h.CostBase.IsZero() {
			d.UnrealisedGainLossPercent = gainLoss.Div(h.CostBase).InexactFloat64() * 100
		}
		if !value.IsZero() {
			d.EstimatedYield = h.EstimatedIncome.Div(value).InexactFloat64() * 100
		}

		derived = append(derived, d)
	}
	return derived
}

// GroupByAssetClass buckets derived holdings into the canonical asset
// class order. Classes outside domain.AssetClassOrder are omitted, not
// merged into an "Other" bucket; classes with no holdings are skipped.
func GroupByAssetClass(holdings []domain.DerivedHolding) []domain.AssetClassGroup {
	groups := []domain.AssetClassGroup{}
	for _, assetClass := range domain.AssetClassOrder {
		var members []domain.DerivedHolding
		for _, h := range holdings {
			if h.AssetClass == assetClass {
				members = append(members, h)
			}
		}
		if len(members) == 0 {
			continue
		}

		group := domain.AssetClassGroup{
			AssetClass: assetClass,
			Holdings:   members,
		}
		for _, h := range members {
			group.TotalValue = group.TotalValue.Add(h.Value)
			group.TotalCostBase = group.TotalCostBase.Add(h.CostBase)
			group.UnrealisedGainLoss = group.UnrealisedGainLoss.Add(h.UnrealisedGainLoss)
			group.PortfolioPercent += h.PortfolioPercent
		}
		// group percent is group gain/loss over group cost base, which is
		// not the same as averaging member percentages
		if !group.TotalCostBase.IsZero() {
			group.UnrealisedGainLossPercent = group.UnrealisedGainLoss.Div(group.TotalCostBase).InexactFloat64() * 100
		}

		groups = append(groups, group)
	}
	return groups
}

// PortfolioTotals are the whole-of-portfolio aggregates the insight rules
// and search branches evaluate against.
type PortfolioTotals struct {
	TotalValue    decimal.Decimal
	TotalCostBase decimal.Decimal
	TotalGains    decimal.Decimal
	TotalLosses   decimal.Decimal // absolute value of summed losses
	GainCount     int
	LossCount     int
	TotalIncome   decimal.Decimal
	ReturnPercent float64 // gain/loss over cost base
}

func CalculateTotals(holdings []domain.DerivedHolding) PortfolioTotals {
	t := PortfolioTotals{}
	for _, h := range holdings {
		t.TotalValue = t.TotalValue.Add(h.Value)
		t.TotalCostBase = t.TotalCostBase.Add(h.CostBase)
		t.TotalIncome = t.TotalIncome.Add(h.EstimatedIncome)
		switch {
		case h.UnrealisedGainLoss.IsPositive():
			t.TotalGains = t.TotalGains.Add(h.UnrealisedGainLoss)
			t.GainCount++
		case h.UnrealisedGainLoss.IsNegative():
			t.TotalLosses = t.TotalLosses.Add(h.UnrealisedGainLoss.Abs())
			t.LossCount++
		}
	}
	if !t.TotalCostBase.IsZero() {
		t.ReturnPercent = t.TotalValue.Sub(t.TotalCostBase).Div(t.TotalCostBase).InexactFloat64() * 100
	}
	return t
}

// MaxDriftFromTarget returns the largest absolute deviation of any asset
// class's portfolio percentage from targetPercent. The flat per-class
// target is a deliberate approximation, not a real target-allocation
// model, which is why it is a parameter rather than a constant.
func MaxDriftFromTarget(holdings []domain.DerivedHolding, targetPercent float64) float64 {
	byClass := map[string]float64{}
	for _, h := range holdings {
		byClass[h.AssetClass] += h.PortfolioPercent
	}

	maxDrift := 0.0
	for _, percent := range byClass {
		drift := percent - targetPercent
		if drift < 0 {
			drift = -drift
		}
		if drift > maxDrift {
			maxDrift = drift
		}
	}
	return maxDrift
}
