package insights

import (
	"fmt"
	"sort"
	"strings"

	"clientintel/internal/calculator"
	"clientintel/internal/domain"
	"clientintel/internal/util"

	"github.com/shopspring/decimal"
)

// ruleContext is everything a rule can look at when it fires: the derived
// holdings, the client in view, and the aggregates precomputed once per
// evaluation.
type ruleContext struct {
	client    domain.Client
	holdings  []domain.DerivedHolding
	tab       domain.Tab
	mode      domain.ContextMode
	totals    calculator.PortfolioTotals
	groups    []domain.AssetClassGroup
	isPrivate bool

	topClass     domain.AssetClassGroup
	topPerformer *domain.DerivedHolding
	incomeCodes  []string
}

// Rule is one row of the catalogue. Condition is a goval expression over
// the metric variables built in buildVars; an empty condition always
// fires. Tabs scopes the rule; empty means every tab.
type Rule struct {
	Name      string
	Tabs      []domain.Tab
	Condition string
	Build     func(rc ruleContext) domain.Insight
}

func (r Rule) appliesTo(tab domain.Tab) bool {
	if len(r.Tabs) == 0 {
		return true
	}
	for _, t := range r.Tabs {
		if t == tab {
			return true
		}
	}
	return false
}

var portfolioTabs = []domain.Tab{domain.Tab_Portfolio, domain.Tab_Dashboard}

// Catalogue is evaluated top to bottom; matching rules' insights
// concatenate in this order before suppression filtering. Keeping the
// conditions as expression strings keeps the thresholds auditable in one
// place.
var Catalogue = []Rule{
	{
		Name:      "concentration",
		Tabs:      portfolioTabs,
		Condition: "maxClassPercent > 40.0",
		Build: func(rc ruleContext) domain.Insight {
			priority := domain.InsightPriority_Medium
			if rc.topClass.PortfolioPercent > 50 {
				priority = domain.InsightPriority_High
			}
			return domain.Insight{
				ID:       fmt.Sprintf("concentration-%s", rc.topClass.AssetClass),
				Icon:     "⚠️",
				Category: "Risk Alert",
				Title:    fmt.Sprintf("Concentration Alert: %.0f%% in %s", rc.topClass.PortfolioPercent, rc.topClass.AssetClass),
				Summary:  "Consider rebalancing to reduce concentration risk",
				Explanation: fmt.Sprintf(
					"A well-diversified portfolio typically has no single asset class exceeding 40%% of total value. %s currently represents %.1f%% of the portfolio. Consider redistributing to other asset classes to manage risk.",
					rc.topClass.AssetClass, rc.topClass.PortfolioPercent),
				Priority: priority,
			}
		},
	},
	{
		Name:      "top-performer",
		Tabs:      portfolioTabs,
		Condition: "topPerformerPercent > 15.0",
		Build: func(rc ruleContext) domain.Insight {
			h := rc.topPerformer
			return domain.Insight{
				ID:       fmt.Sprintf("top-performer-%s", h.ID),
				Icon:     "📈",
				Category: "Performance",
				Title:    fmt.Sprintf("Strong Performance: %s up %.1f%%", h.Code, h.UnrealisedGainLossPercent),
				Summary:  fmt.Sprintf("Unrealised gain of %s", util.FormatMoney(h.UnrealisedGainLoss)),
				Explanation: fmt.Sprintf(
					"%s has performed exceptionally well. Consider whether to take profits or hold for further growth based on your investment thesis.",
					h.Name),
				Priority: domain.InsightPriority_Low,
			}
		},
	},
	{
		Name:      "income-opportunity",
		Tabs:      portfolioTabs,
		Condition: "incomeHoldingCount > 0",
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:       "income-opportunity",
				Icon:     "💰",
				Category: "Income",
				Title:    fmt.Sprintf("Est. Annual Income: %s", util.FormatMoney(rc.totals.TotalIncome)),
				Summary:  fmt.Sprintf("%d holdings with yield above 4%%", len(rc.incomeCodes)),
				Explanation: fmt.Sprintf(
					"The portfolio generates an estimated %s annually. High-yielding holdings include %s.",
					util.FormatMoney(rc.totals.TotalIncome), strings.Join(firstN(rc.incomeCodes, 3), ", ")),
				Priority: domain.InsightPriority_Low,
			}
		},
	},
	{
		Name: "tip-grouping",
		Tabs: portfolioTabs,
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:          "tip-grouping",
				Icon:        "💡",
				Category:    "Tip",
				Title:       "Try grouping by Account",
				Summary:     "See holdings across different investment vehicles",
				Explanation: "Use the \"Group by\" dropdown above the holdings table to organize your view by Account or GICS sector instead of asset class.",
				Priority:    domain.InsightPriority_Low,
			}
		},
	},
	{
		Name:      "tax-harvest",
		Tabs:      []domain.Tab{domain.Tab_Gains},
		Condition: "totalLosses > 1000.0",
		Build: func(rc ruleContext) domain.Insight {
			priority := domain.InsightPriority_Medium
			if rc.totals.TotalLosses.GreaterThan(decimal.NewFromInt(10000)) {
				priority = domain.InsightPriority_High
			}
			return domain.Insight{
				ID:          "tax-harvest",
				Icon:        "💡",
				Category:    "Tax Planning",
				Title:       fmt.Sprintf("Tax Harvest Opportunity: %s in losses", util.FormatMoney(rc.totals.TotalLosses)),
				Summary:     fmt.Sprintf("%d holdings with unrealised losses available", rc.totals.LossCount),
				Explanation: "Realizing these losses could offset capital gains and reduce tax liability. Consider selling underperforming holdings before financial year end.",
				Priority:    priority,
			}
		},
	},
	{
		Name: "cgt-discount",
		Tabs: []domain.Tab{domain.Tab_Gains},
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:          "cgt-discount",
				Icon:        "📅",
				Category:    "Tax Planning",
				Title:       "CGT Discount Reminder",
				Summary:     "Holdings held 12+ months qualify for 50% discount",
				Explanation: "Australian tax residents receive a 50% discount on capital gains for assets held longer than 12 months. Review holding periods before selling.",
				Priority:    domain.InsightPriority_Low,
			}
		},
	},
	{
		Name:      "wash-sale",
		Tabs:      []domain.Tab{domain.Tab_Gains},
		Condition: "isPrivate",
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:          "wash-sale",
				Icon:        "🔄",
				Category:    "Compliance",
				Title:       "Wash Sale Monitoring",
				Summary:     "Track 30-day windows after selling positions",
				Explanation: "Repurchasing substantially similar securities within 30 days of a sale may trigger wash sale rules, disallowing the loss deduction.",
				Priority:    domain.InsightPriority_Medium,
			}
		},
	},
	{
		Name: "benchmark-compare",
		Tabs: []domain.Tab{domain.Tab_Performance},
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:          "benchmark-compare",
				Icon:        "📊",
				Category:    "Analysis",
				Title:       "Compare to Benchmark",
				Summary:     "See how performance stacks against ASX200",
				Explanation: "Comparing portfolio performance to relevant benchmarks helps assess whether active management is adding value.",
				Priority:    domain.InsightPriority_Low,
			}
		},
	},
	{
		Name:      "performance-highlight",
		Tabs:      []domain.Tab{domain.Tab_Performance},
		Condition: "portfolioReturnPercent > 10.0",
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:       "performance-highlight",
				Icon:     "🎯",
				Category: "Performance",
				Title:    fmt.Sprintf("Portfolio Return: %.1f%%", portfolioReturnPercent(rc)),
				Summary:  "Outperforming typical market returns",
				Priority: domain.InsightPriority_Low,
			}
		},
	},
	{
		Name: "transaction-export",
		Tabs: []domain.Tab{domain.Tab_Transactions},
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				ID:          "transaction-export",
				Icon:        "📋",
				Category:    "Tip",
				Title:       "Export for Tax Records",
				Summary:     "Download transactions for EOFY reporting",
				Explanation: "Use the export function to generate transaction records suitable for tax return preparation.",
				Priority:    domain.InsightPriority_Low,
			}
		},
	},
	{
		Name: "review-due",
		Build: func(rc ruleContext) domain.Insight {
			return domain.Insight{
				// keyed by client id so each client's reminder suppresses
				// independently
				ID:          fmt.Sprintf("review-due-%s", rc.client.ID),
				Icon:        "📞",
				Category:    "Action",
				Title:       "Quarterly Review Due",
				Summary:     fmt.Sprintf("Schedule review with %s", rc.client.FirstName()),
				Explanation: "Regular portfolio reviews help ensure investment strategy remains aligned with client goals and risk tolerance.",
				Priority:    domain.InsightPriority_Medium,
			}
		},
	},
	{
		Name:      "projection",
		Condition: "isPrivate",
		Build: func(rc ruleContext) domain.Insight {
			// simple linear projection at an assumed 8% growth rate
			projected := rc.client.TotalPortfolioValue.Mul(decimal.NewFromFloat(1.08))
			return domain.Insight{
				ID:          "projection",
				Icon:        "📈",
				Category:    "Projection",
				Title:       fmt.Sprintf("12-Month Projection: %s", util.FormatMillions(projected)),
				Summary:     "Based on current trajectory and market conditions",
				Explanation: "This projection assumes continuation of current market trends and no major changes to the portfolio composition.",
				Priority:    domain.InsightPriority_Low,
			}
		},
	},
}

func newRuleContext(holdings []domain.DerivedHolding, client domain.Client, tab domain.Tab, mode domain.ContextMode) ruleContext {
	rc := ruleContext{
		client:    client,
		holdings:  holdings,
		tab:       tab,
		mode:      mode,
		totals:    calculator.CalculateTotals(holdings),
		groups:    calculator.GroupByAssetClass(holdings),
		isPrivate: mode == domain.ContextMode_Private || client.Type == domain.ClientType_Private,
	}

	for _, g := range rc.groups {
		if g.PortfolioPercent > rc.topClass.PortfolioPercent {
			rc.topClass = g
		}
	}

	if len(holdings) > 0 {
		sorted := make([]domain.DerivedHolding, len(holdings))
		copy(sorted, holdings)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UnrealisedGainLossPercent > sorted[j].UnrealisedGainLossPercent
		})
		top := sorted[0]
		rc.topPerformer = &top
	}

	for _, h := range holdings {
		if h.EstimatedYield > 4 {
			rc.incomeCodes = append(rc.incomeCodes, h.Code)
		}
	}

	return rc
}

// buildVars flattens the rule context into the variable map the goval
// conditions evaluate against.
func buildVars(rc ruleContext) map[string]interface{} {
	topPerformerPercent := 0.0
	if rc.topPerformer != nil {
		topPerformerPercent = rc.topPerformer.UnrealisedGainLossPercent
	}
	totalLosses, _ := rc.totals.TotalLosses.Float64()

	return map[string]interface{}{
		"maxClassPercent":        rc.topClass.PortfolioPercent,
		"topPerformerPercent":    topPerformerPercent,
		"incomeHoldingCount":     len(rc.incomeCodes),
		"totalLosses":            totalLosses,
		"portfolioReturnPercent": portfolioReturnPercent(rc),
		"isPrivate":              rc.isPrivate,
	}
}

// portfolioReturnPercent compares the client's stated portfolio value to
// the total cost base of the holdings in view.
func portfolioReturnPercent(rc ruleContext) float64 {
	if rc.totals.TotalCostBase.IsZero() {
		return 0
	}
	return rc.client.TotalPortfolioValue.Sub(rc.totals.TotalCostBase).
		Div(rc.totals.TotalCostBase).InexactFloat64() * 100
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
