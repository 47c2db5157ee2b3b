package domain

import "time"

type ChatRole string

const (
	ChatRole_User      ChatRole = "user"
	ChatRole_Assistant ChatRole = "assistant"
)

type ChatAction struct {
	ID     string                 `json:"id"`
	Label  string                 `json:"label"`
	Type   NotificationActionType `json:"type"`
	Target string                 `json:"target,omitempty"`
}

type ChatMessage struct {
	ID        string       `json:"id"`
	Role      ChatRole     `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Actions   []ChatAction `json:"actions,omitempty"`
}
