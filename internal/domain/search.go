package domain

type Intent string

const (
	Intent_Filter      Intent = "filter"
	Intent_Client      Intent = "client"
	Intent_Analysis    Intent = "analysis"
	Intent_Tax         Intent = "tax"
	Intent_Help        Intent = "help"
	Intent_Performance Intent = "performance"
	Intent_Report      Intent = "report"
	Intent_General     Intent = "general"
)

// SearchInsight is the synthesized summary attached to the header result
// of a filter-style query.
type SearchInsight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SearchResult struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Intent   Intent `json:"intent"`
	Action   string `json:"action,omitempty"`

	// At most one of these is set, depending on what satisfied the query.
	Client  *Client         `json:"client,omitempty"`
	Holding *DerivedHolding `json:"holding,omitempty"`

	Insight *SearchInsight `json:"insight,omitempty"`
}

// Result group display labels.
const (
	ResultType_Clients  = "Clients"
	ResultType_Holdings = "Holdings"
	ResultType_Insights = "Insights"
	ResultType_Help     = "Help"
	ResultType_Actions  = "Actions"
)
