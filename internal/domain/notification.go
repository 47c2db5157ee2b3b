package domain

import "time"

type NotificationPriority string

const (
	NotificationPriority_Critical  NotificationPriority = "critical"
	NotificationPriority_Important NotificationPriority = "important"
	NotificationPriority_Info      NotificationPriority = "info"
)

// Rank orders priorities for feed sorting: critical first, info last.
func (p NotificationPriority) Rank() int {
	switch p {
	case NotificationPriority_Critical:
		return 0
	case NotificationPriority_Important:
		return 1
	default:
		return 2
	}
}

type NotificationActionType string

const (
	NotificationAction_Navigate NotificationActionType = "navigate"
	NotificationAction_Generate NotificationActionType = "generate"
	NotificationAction_Schedule NotificationActionType = "schedule"
	NotificationAction_View     NotificationActionType = "view"
)

type Notification struct {
	ID          string               `json:"id"`
	Priority    NotificationPriority `json:"priority"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Timestamp   time.Time            `json:"timestamp"`
	Category    string               `json:"category"`

	ActionLabel  string                 `json:"actionLabel,omitempty"`
	ActionType   NotificationActionType `json:"actionType,omitempty"`
	ActionTarget string                 `json:"actionTarget,omitempty"`

	IsGrouped  bool     `json:"isGrouped,omitempty"`
	GroupCount int      `json:"groupCount,omitempty"`
	GroupItems []string `json:"groupItems,omitempty"`

	Read     bool `json:"read"`
	Archived bool `json:"archived"`
}

// DailyDigest is the one-line rollup of outstanding items in the For You
// feed.
type DailyDigest struct {
	Critical  int    `json:"critical"`
	Important int    `json:"important"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}
