package search

import (
	"strings"

	"clientintel/internal/domain"
)

// knowledgeBase is the static help catalogue behind the help intent.
// Each entry fires when any of its triggers appears in the query.
type kbEntry struct {
	triggers []string
	result   domain.SearchResult
}

var knowledgeBase = []kbEntry{
	{
		triggers: []string{"unrealised", "unrealized"},
		result: domain.SearchResult{
			ID:       "help-unrealised",
			Type:     domain.ResultType_Help,
			Title:    "Understanding Unrealised Gains/Losses",
			Subtitle: "The difference between current value and what you paid",
			Intent:   domain.Intent_Help,
			Action:   "Learn More",
			Insight: &domain.SearchInsight{
				Title:       "Unrealised Gains Explained",
				Description: "Unrealised gains or losses represent the change in value of holdings you still own. They only become \"realised\" when you sell.",
			},
		},
	},
	{
		triggers: []string{"cost base"},
		result: domain.SearchResult{
			ID:       "help-costbase",
			Type:     domain.ResultType_Help,
			Title:    "How Cost Base is Calculated",
			Subtitle: "Original purchase price plus acquisition costs",
			Intent:   domain.Intent_Help,
			Action:   "Learn More",
		},
	},
}

// ColumnTooltips backs the explanatory hover text the presentation layer
// shows on holdings table columns.
var ColumnTooltips = map[string]string{
	"Cost Base":                  "Your original investment amount including brokerage and other acquisition costs.",
	"Avg Unit Cost":              "The average price paid per unit based on your cost base.",
	"Unrealised Gain/Loss ($)":   "The difference between current value and your cost base. Not yet realized as profit or loss.",
	"Unrealised Gain/Loss (%)":   "Current performance compared to your purchase price, expressed as a percentage.",
	"Est. Income":                "Projected annual income from dividends, distributions, or interest payments.",
	"Est. Yield":                 "Expected annual return as a percentage of the current investment value.",
	"Port%":                      "The percentage this holding represents of your total portfolio value.",
	"Value (AUD)":                "Current market value calculated as units multiplied by current price.",
}

// helpResults returns the matching knowledge-base cards followed by the
// generic open-help-panel action, which is always appended.
func helpResults(q string) []domain.SearchResult {
	results := []domain.SearchResult{}
	for _, entry := range knowledgeBase {
		for _, trigger := range entry.triggers {
			if strings.Contains(q, trigger) {
				results = append(results, entry.result)
				break
			}
		}
	}

	results = append(results, domain.SearchResult{
		ID:       "help-panel",
		Type:     domain.ResultType_Actions,
		Title:    "Open Help Panel",
		Subtitle: "View tutorials, guides, and support",
		Intent:   domain.Intent_Help,
		Action:   "Open",
	})
	return results
}
