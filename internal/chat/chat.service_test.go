package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"clientintel/internal/dataset"
	"clientintel/internal/domain"
	"clientintel/internal/session"

	"github.com/stretchr/testify/require"
)

func newTestChat(t *testing.T) *Service {
	t.Helper()
	ds, err := dataset.Load()
	require.NoError(t, err)
	svc := NewService(ds, session.New(ds.Clients()[0]))
	svc.ThinkingDelay = 0
	return svc
}

func Test_Send(t *testing.T) {
	t.Run("conversation starts with a welcome message", func(t *testing.T) {
		svc := newTestChat(t)
		messages := svc.Messages()
		require.Len(t, messages, 1)
		require.Equal(t, "welcome", messages[0].ID)
		require.Equal(t, domain.ChatRole_Assistant, messages[0].Role)
	})

	t.Run("appends user message and assistant response", func(t *testing.T) {
		svc := newTestChat(t)
		response, err := svc.Send(context.Background(), "how is the portfolio performing?")
		require.NoError(t, err)

		require.Equal(t, domain.ChatRole_Assistant, response.Role)
		require.Contains(t, response.Content, "John Smith's portfolio")
		require.NotEmpty(t, response.Actions)

		messages := svc.Messages()
		require.Len(t, messages, 3)
		require.Equal(t, domain.ChatRole_User, messages[1].Role)
		require.Equal(t, "how is the portfolio performing?", messages[1].Content)
		require.Equal(t, response.ID, messages[2].ID)
		require.False(t, svc.Pending())
	})

	t.Run("concurrent send is rejected", func(t *testing.T) {
		svc := newTestChat(t)
		svc.ThinkingDelay = 200 * time.Millisecond

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Send(context.Background(), "first")
			require.NoError(t, err)
		}()

		require.Eventually(t, func() bool { return svc.Pending() }, time.Second, 5*time.Millisecond)
		_, err := svc.Send(context.Background(), "second")
		require.ErrorIs(t, err, ErrResponsePending)

		wg.Wait()
		require.False(t, svc.Pending())
	})

	t.Run("cancelled context aborts the response", func(t *testing.T) {
		svc := newTestChat(t)
		svc.ThinkingDelay = time.Minute

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Send(ctx, "anything")
		require.ErrorIs(t, err, context.Canceled)
		require.False(t, svc.Pending())
	})
}

func Test_GenerateResponse_Branches(t *testing.T) {
	tests := []struct {
		name    string
		message string
		expect  string
	}{
		{"performance", "how is sarah doing", "portfolio"},
		{"tax", "show me tax harvest opportunities", "Tax harvesting opportunities"},
		{"reviews", "which reviews are due", "Client reviews due"},
		{"rebalancing", "who needs rebalancing", "Rebalancing analysis"},
		{"market", "what happened in the market", "market impact"},
		{"clients", "list my clients", "Client overview"},
		{"capabilities", "what can you do", "I can help you with"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestChat(t)
			response, err := svc.Send(context.Background(), tc.message)
			require.NoError(t, err)
			require.Contains(t, response.Content, tc.expect)
		})
	}

	t.Run("unmatched message echoes a truncated preview", func(t *testing.T) {
		svc := newTestChat(t)
		long := strings.Repeat("z", 80)
		response, err := svc.Send(context.Background(), long)
		require.NoError(t, err)
		require.Contains(t, response.Content, strings.Repeat("z", 50)+"...")
		require.NotContains(t, response.Content, strings.Repeat("z", 51))
	})
}

func Test_TaxResponse_RanksByLoss(t *testing.T) {
	svc := newTestChat(t)
	response, err := svc.Send(context.Background(), "tax harvesting")
	require.NoError(t, err)

	// biggest loss pool first, capped at three clients
	require.Contains(t, response.Content, "1. Sarah Chen - $80,000 loss potential (1 holding)")
	require.Contains(t, response.Content, "2. John Smith - $23,250 loss potential (1 holding)")
	require.Contains(t, response.Content, "3. Michael Roberts - $8,000 loss potential (1 holding)")
	require.Contains(t, response.Content, "Total potential offset: $111,250")
}

func Test_ClientOverview_RespectsContextMode(t *testing.T) {
	svc := newTestChat(t)
	svc.Session.SetContextMode(domain.ContextMode_Private)

	response, err := svc.Send(context.Background(), "list my clients")
	require.NoError(t, err)
	// only Sarah Chen is a private client
	require.Contains(t, response.Content, "You have 1 clients in your current view")
	require.Contains(t, response.Content, "Total AUM: $8.43M")
}

func Test_ChatExecuteAction(t *testing.T) {
	t.Run("navigate switches the session tab", func(t *testing.T) {
		svc := newTestChat(t)
		svc.ExecuteAction(domain.ChatAction{
			Label:  "View Gains & Losses",
			Type:   domain.NotificationAction_Navigate,
			Target: "gains",
		})
		require.Equal(t, domain.Tab_Gains, svc.Session.ActiveTab())
	})

	t.Run("generate appends a confirmation", func(t *testing.T) {
		svc := newTestChat(t)
		svc.ExecuteAction(domain.ChatAction{
			Label: "Performance Report",
			Type:  domain.NotificationAction_Generate,
		})
		messages := svc.Messages()
		last := messages[len(messages)-1]
		require.Equal(t, domain.ChatRole_Assistant, last.Role)
		require.Contains(t, last.Content, "generating the performance report")
	})

	t.Run("schedule appends a confirmation", func(t *testing.T) {
		svc := newTestChat(t)
		svc.ExecuteAction(domain.ChatAction{
			Label: "Schedule Reminders",
			Type:  domain.NotificationAction_Schedule,
		})
		messages := svc.Messages()
		require.Contains(t, messages[len(messages)-1].Content, "calendar")
	})
}
