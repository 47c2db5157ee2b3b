package domain

// Tab identifies the dashboard tab currently in view. Insight rules are
// scoped to tabs; a tab change also clears session-dismissed insights.
type Tab string

const (
	Tab_Dashboard    Tab = "dashboard"
	Tab_Portfolio    Tab = "portfolio"
	Tab_Details      Tab = "details"
	Tab_Gains        Tab = "gains"
	Tab_Performance  Tab = "performance"
	Tab_Transactions Tab = "transactions"
	Tab_Reports      Tab = "reports"
)

type InsightPriority string

const (
	InsightPriority_High   InsightPriority = "high"
	InsightPriority_Medium InsightPriority = "medium"
	InsightPriority_Low    InsightPriority = "low"
)

// Insight is a rule-triggered advisory card. Its ID is deterministic from
// the triggering condition so suppression state stays stable across
// renders (the same concentration condition always yields the same id).
type Insight struct {
	ID          string          `json:"id"`
	Icon        string          `json:"icon"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary"`
	Explanation string          `json:"explanation,omitempty"`
	Priority    InsightPriority `json:"priority"`
}
