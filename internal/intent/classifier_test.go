package intent

import (
	"testing"

	"clientintel/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testClients() []domain.Client {
	return []domain.Client{
		{ID: "c1", Name: "Sarah Chen", TotalPortfolioValue: decimal.NewFromInt(1)},
		{ID: "c2", Name: "Michael Thompson", TotalPortfolioValue: decimal.NewFromInt(1)},
		{ID: "c3", Name: "Emma Wilson", TotalPortfolioValue: decimal.NewFromInt(1)},
	}
}

func Test_Classify(t *testing.T) {
	classifier := NewClassifier(testClients())

	tests := []struct {
		query string
		want  []domain.Intent
	}{
		// one row per trigger phrase in the table
		{"clients with losses", []domain.Intent{domain.Intent_Filter}},
		{"anything negative today", []domain.Intent{domain.Intent_Filter}},
		{"what is down", []domain.Intent{domain.Intent_Filter, domain.Intent_Help}},
		{"who needs rebalancing", []domain.Intent{domain.Intent_Analysis}},
		{"portfolio drift", []domain.Intent{domain.Intent_Analysis}},
		{"current allocation", []domain.Intent{domain.Intent_Analysis}},
		{"show me tax harvest opportunities", []domain.Intent{domain.Intent_Tax}},
		{"harvest candidates", []domain.Intent{domain.Intent_Tax}},
		{"cgt position", []domain.Intent{domain.Intent_Tax}},
		{"best performers", []domain.Intent{domain.Intent_Performance}},
		{"total return", []domain.Intent{domain.Intent_Performance}},
		{"unrealised gains", []domain.Intent{domain.Intent_Performance}},
		{"explain cost base", []domain.Intent{domain.Intent_Help}},
		{"how to read this", []domain.Intent{domain.Intent_Help}},
		{"help", []domain.Intent{domain.Intent_Help}},
		{"quarterly report", []domain.Intent{domain.Intent_Report}},
		{"generate something", []domain.Intent{domain.Intent_Report}},
		{"export holdings", []domain.Intent{domain.Intent_Report}},
		// client name detection rides along with other intents
		{"sarah", []domain.Intent{domain.Intent_Client}},
		{"show me Michael's portfolio", []domain.Intent{domain.Intent_Client}},
		{"emma tax position", []domain.Intent{domain.Intent_Tax, domain.Intent_Client}},
		// overlapping triggers accumulate in table order
		{"tax loss harvesting", []domain.Intent{domain.Intent_Filter, domain.Intent_Tax}},
		{"rebalance and report", []domain.Intent{domain.Intent_Analysis, domain.Intent_Report}},
		// no match falls back to exactly {general}
		{"asdkjasd", []domain.Intent{domain.Intent_General}},
		{"", []domain.Intent{domain.Intent_General}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got := classifier.Classify(tc.query)
			require.Equal(t, "", cmp.Diff(tc.want, got))
		})
	}
}

func Test_Classify_CaseInsensitive(t *testing.T) {
	classifier := NewClassifier(testClients())
	require.Equal(t, "", cmp.Diff(
		classifier.Classify("TAX HARVEST for SARAH"),
		classifier.Classify("tax harvest for sarah"),
	))
}

func Test_Has(t *testing.T) {
	intents := []domain.Intent{domain.Intent_Tax, domain.Intent_Client}
	require.True(t, Has(intents, domain.Intent_Tax))
	require.False(t, Has(intents, domain.Intent_Filter))
}
