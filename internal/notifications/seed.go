package notifications

import (
	"time"

	"clientintel/internal/domain"
)

// seedNotifications is the fixed feed the engine operates on, a stand-in
// for notifications that a full system would produce from backend events.
// The set is append-only and given; only presentation state (read,
// archived) is ever applied to it. Timestamps are relative to the
// provided anchor so the feed always reads as recent.
func seedNotifications(now time.Time) []domain.Notification {
	return []domain.Notification{
		{
			ID:           "critical-compliance-1",
			Priority:     domain.NotificationPriority_Critical,
			Title:        "Regulatory Compliance Due",
			Description:  "Annual compliance review due in 3 days for 2 clients",
			Timestamp:    now.Add(-2 * time.Hour),
			Category:     "compliance",
			ActionLabel:  "View Details",
			ActionType:   domain.NotificationAction_Navigate,
			ActionTarget: "reports",
			IsGrouped:    true,
			GroupCount:   2,
			GroupItems:   []string{"Sarah Chen", "Michael Roberts"},
		},
		{
			ID:           "critical-market-1",
			Priority:     domain.NotificationPriority_Critical,
			Title:        "Significant Market Movement",
			Description:  "ASX 200 down 3.2% - affecting 12 client portfolios",
			Timestamp:    now.Add(-4 * time.Hour),
			Category:     "market",
			ActionLabel:  "View Impact",
			ActionType:   domain.NotificationAction_Navigate,
			ActionTarget: "portfolio",
			IsGrouped:    true,
			GroupCount:   12,
		},
		{
			ID:          "important-reviews-1",
			Priority:    domain.NotificationPriority_Important,
			Title:       "Quarterly Reviews Due",
			Description: "5 clients need quarterly portfolio reviews",
			Timestamp:   now.Add(-24 * time.Hour),
			Category:    "review",
			ActionLabel: "Schedule Reviews",
			ActionType:  domain.NotificationAction_Schedule,
			IsGrouped:   true,
			GroupCount:  5,
			GroupItems:  []string{"John Smith", "Sarah Chen", "Michael Roberts", "Emma Wilson", "David Thompson"},
		},
		{
			ID:          "important-rebalance-1",
			Priority:    domain.NotificationPriority_Important,
			Title:       "Rebalancing Threshold Reached",
			Description: "3 portfolios have drifted >10% from target allocation",
			Timestamp:   now.Add(-6 * time.Hour),
			Category:    "rebalance",
			ActionLabel: "Generate Report",
			ActionType:  domain.NotificationAction_Generate,
			IsGrouped:   true,
			GroupCount:  3,
			GroupItems:  []string{"Sarah Chen", "Emma Wilson", "David Thompson"},
		},
		{
			ID:           "important-tax-1",
			Priority:     domain.NotificationPriority_Important,
			Title:        "Tax Opportunities Expiring",
			Description:  "3 tax loss harvesting opportunities closing this month",
			Timestamp:    now.Add(-12 * time.Hour),
			Category:     "tax",
			ActionLabel:  "View Opportunities",
			ActionType:   domain.NotificationAction_Navigate,
			ActionTarget: "gains",
			IsGrouped:    true,
			GroupCount:   3,
		},
		{
			ID:          "important-report-1",
			Priority:    domain.NotificationPriority_Important,
			Title:       "Report Requested",
			Description: "John Smith requested performance report 2 days ago",
			Timestamp:   now.Add(-48 * time.Hour),
			Category:    "report",
			ActionLabel: "Generate Report",
			ActionType:  domain.NotificationAction_Generate,
		},
		{
			ID:          "info-milestone-1",
			Priority:    domain.NotificationPriority_Info,
			Title:       "Performance Milestone",
			Description: "Sarah Chen's portfolio reached $5M milestone",
			Timestamp:   now.Add(-3 * 24 * time.Hour),
			Category:    "milestone",
			ActionLabel: "View Portfolio",
			ActionType:  domain.NotificationAction_View,
			GroupItems:  []string{"Sarah Chen"},
		},
		{
			ID:          "info-feature-1",
			Priority:    domain.NotificationPriority_Info,
			Title:       "New Feature Available",
			Description: "AI-powered tax optimization suggestions now available",
			Timestamp:   now.Add(-5 * 24 * time.Hour),
			Category:    "feature",
			ActionLabel: "Learn More",
			ActionType:  domain.NotificationAction_View,
		},
		{
			ID:          "info-market-1",
			Priority:    domain.NotificationPriority_Info,
			Title:       "Weekly Market Insights",
			Description: "Technology sector outperformed by 4.2% this week",
			Timestamp:   now.Add(-2 * 24 * time.Hour),
			Category:    "insights",
			ActionLabel: "Read More",
			ActionType:  domain.NotificationAction_View,
		},
		{
			ID:          "info-education-1",
			Priority:    domain.NotificationPriority_Info,
			Title:       "Educational Content",
			Description: "New guide: Understanding CGT discount rules",
			Timestamp:   now.Add(-7 * 24 * time.Hour),
			Category:    "education",
			ActionLabel: "View Guide",
			ActionType:  domain.NotificationAction_View,
		},
	}
}
