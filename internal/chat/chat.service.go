// Package chat is the conversational surface over the same entity graph
// the search aggregator uses. Responses are canned branches keyed on
// query substrings with a simulated thinking delay - deliberately not a
// language model.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"clientintel/internal/calculator"
	"clientintel/internal/dataset"
	"clientintel/internal/domain"
	"clientintel/internal/session"
	"clientintel/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrResponsePending is returned when a send arrives while the previous
// response is still being generated. One in-flight response per
// conversation.
var ErrResponsePending = fmt.Errorf("a response is already being generated")

type Service struct {
	Dataset *dataset.Dataset
	Session *session.Session

	// ThinkingDelay simulates response latency; tests set it to zero.
	ThinkingDelay time.Duration

	mu       sync.Mutex
	messages []domain.ChatMessage
	pending  bool
}

func NewService(ds *dataset.Dataset, sess *session.Session) *Service {
	return &Service{
		Dataset:       ds,
		Session:       sess,
		ThinkingDelay: time.Second,
		messages: []domain.ChatMessage{{
			ID:        "welcome",
			Role:      domain.ChatRole_Assistant,
			Content:   "Hi! I'm your assistant. I can help you analyze portfolios, find tax opportunities, and manage client workflows. What would you like to know?",
			Timestamp: time.Now(),
		}},
	}
}

func (s *Service) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Send appends the user message, generates the assistant response after
// the thinking delay, and returns the response. A send while a response
// is pending is rejected.
func (s *Service) Send(ctx context.Context, content string) (domain.ChatMessage, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return domain.ChatMessage{}, ErrResponsePending
	}
	s.pending = true
	s.messages = append(s.messages, domain.ChatMessage{
		ID:        fmt.Sprintf("user-%s", uuid.New()),
		Role:      domain.ChatRole_User,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.mu.Unlock()

	select {
	case <-time.After(s.ThinkingDelay):
	case <-ctx.Done():
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		return domain.ChatMessage{}, ctx.Err()
	}

	text, actions := s.generateResponse(content)
	response := domain.ChatMessage{
		ID:        fmt.Sprintf("assistant-%s", uuid.New()),
		Role:      domain.ChatRole_Assistant,
		Content:   text,
		Timestamp: time.Now(),
		Actions:   actions,
	}

	s.mu.Lock()
	s.messages = append(s.messages, response)
	s.pending = false
	s.mu.Unlock()

	return response, nil
}

// ExecuteAction dispatches a suggested action: navigation goes through
// the session, generate/schedule append a confirmation message.
func (s *Service) ExecuteAction(action domain.ChatAction) {
	switch action.Type {
	case domain.NotificationAction_Navigate:
		if action.Target != "" {
			s.Session.SetActiveTab(domain.Tab(action.Target))
		}
	case domain.NotificationAction_Generate:
		s.appendAssistant(fmt.Sprintf("I'm generating the %s. This will be ready in a moment and will appear in your Reports tab.", strings.ToLower(action.Label)))
	case domain.NotificationAction_Schedule:
		s.appendAssistant("I've added reminders to your calendar. You'll receive notifications before each scheduled item.")
	default:
		zap.S().Infow("chat action executed", "action", action.Label)
	}
}

func (s *Service) appendAssistant(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, domain.ChatMessage{
		ID:        fmt.Sprintf("assistant-%s", uuid.New()),
		Role:      domain.ChatRole_Assistant,
		Content:   content,
		Timestamp: time.Now(),
	})
}

func (s *Service) generateResponse(message string) (string, []domain.ChatAction) {
	m := strings.ToLower(message)
	client := s.Session.SelectedClient()

	switch {
	case containsAny(m, "perform", "how is", "doing"):
		return s.performanceResponse(client)
	case containsAny(m, "tax", "harvest", "loss"):
		return s.taxResponse()
	case containsAny(m, "review", "due", "this month"):
		return s.reviewResponse(client)
	case containsAny(m, "rebalanc", "drift", "allocation"):
		return s.rebalanceResponse(client)
	case containsAny(m, "market", "today", "movement"):
		return s.marketResponse(client)
	case containsAny(m, "client", "who", "list"):
		return s.clientOverviewResponse(client)
	case containsAny(m, "help", "what can", "explain"):
		return capabilitiesResponse()
	}

	preview := message
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	return fmt.Sprintf(
			"I understand you're asking about %q.\n\nI can help with portfolio performance, tax harvesting opportunities, client review scheduling, market impact, and rebalancing recommendations. Could you rephrase your question?",
			preview),
		[]domain.ChatAction{
			{ID: "1", Label: "Show My Capabilities", Type: domain.NotificationAction_View},
			{ID: "2", Label: "View Dashboard", Type: domain.NotificationAction_Navigate, Target: "dashboard"},
		}
}

func (s *Service) performanceResponse(client domain.Client) (string, []domain.ChatAction) {
	holdings := calculator.DeriveHoldings(client, s.Dataset.HoldingsFor(client.ID))
	totals := calculator.CalculateTotals(holdings)

	gain := totals.TotalGains.Sub(totals.TotalLosses)
	gainPercent := 0.0
	if base := totals.TotalValue.Sub(gain); !base.IsZero() {
		gainPercent = gain.Div(base).InexactFloat64() * 100
	}

	sorted := make([]domain.DerivedHolding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnrealisedGainLossPercent > sorted[j].UnrealisedGainLossPercent
	})

	best, worst := "n/a", "n/a"
	if len(sorted) > 0 {
		best = fmt.Sprintf("%s (+%.1f%%)", sorted[0].Name, sorted[0].UnrealisedGainLossPercent)
		last := sorted[len(sorted)-1]
		worst = fmt.Sprintf("%s (%.1f%%)", last.Name, last.UnrealisedGainLossPercent)
	}

	content := fmt.Sprintf(
		"%s's portfolio:\n\n- Total value: %s (%+.1f%% unrealised)\n- Best performer: %s\n- Needs attention: %s\n- Overall unrealised gains: %s\n\nWould you like me to generate a detailed report or identify rebalancing opportunities?",
		client.Name, util.FormatMoney(totals.TotalValue), gainPercent, best, worst, util.FormatMoney(gain))

	return content, []domain.ChatAction{
		{ID: "1", Label: "Generate Performance Report", Type: domain.NotificationAction_Generate},
		{ID: "2", Label: "Show Rebalancing Opportunities", Type: domain.NotificationAction_Navigate, Target: "portfolio"},
		{ID: "3", Label: "View Sector Allocation", Type: domain.NotificationAction_View},
	}
}

func (s *Service) taxResponse() (string, []domain.ChatAction) {
	type opportunity struct {
		client    domain.Client
		totalLoss decimal.Decimal
		count     int
	}
	opportunities := []opportunity{}
	for _, client := range s.Dataset.Clients() {
		holdings := calculator.DeriveHoldings(client, s.Dataset.HoldingsFor(client.ID))
		o := opportunity{client: client}
		for _, h := range holdings {
			if h.UnrealisedGainLoss.IsNegative() {
				o.totalLoss = o.totalLoss.Add(h.UnrealisedGainLoss.Abs())
				o.count++
			}
		}
		if o.totalLoss.IsPositive() {
			opportunities = append(opportunities, o)
		}
	}
	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].totalLoss.GreaterThan(opportunities[j].totalLoss)
	})

	lines := []string{}
	totalPotential := decimal.Zero
	for i, o := range opportunities {
		if i == 3 {
			break
		}
		totalPotential = totalPotential.Add(o.totalLoss)
		plural := "holdings"
		if o.count == 1 {
			plural = "holding"
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %s loss potential (%d %s)", i+1, o.client.Name, util.FormatMoney(o.totalLoss), o.count, plural))
	}

	content := fmt.Sprintf(
		"Tax harvesting opportunities:\n\nI found %d clients with potential tax loss harvesting:\n\n%s\n\nTotal potential offset: %s\n\nShall I generate detailed tax reports for these clients?",
		len(opportunities), strings.Join(lines, "\n"), util.FormatMoney(totalPotential))

	return content, []domain.ChatAction{
		{ID: "1", Label: "Generate Tax Reports", Type: domain.NotificationAction_Generate},
		{ID: "2", Label: "View Gains & Losses", Type: domain.NotificationAction_Navigate, Target: "gains"},
		{ID: "3", Label: "Schedule Tax Review", Type: domain.NotificationAction_Schedule},
	}
}

func (s *Service) reviewResponse(client domain.Client) (string, []domain.ChatAction) {
	content := fmt.Sprintf(
		"Client reviews due:\n\nThis week:\n- Sarah Chen - quarterly review\n- %s - annual review\n\nLater this month: 3 more clients.\n\nI can schedule calendar reminders, prepare performance summaries, or draft meeting agendas.",
		client.Name)
	return content, []domain.ChatAction{
		{ID: "1", Label: "Schedule Reminders", Type: domain.NotificationAction_Schedule},
		{ID: "2", Label: "Prepare Summaries", Type: domain.NotificationAction_Generate},
		{ID: "3", Label: "Draft Agendas", Type: domain.NotificationAction_Generate},
	}
}

func (s *Service) rebalanceResponse(client domain.Client) (string, []domain.ChatAction) {
	content := fmt.Sprintf(
		"Rebalancing analysis:\n\n1. Sarah Chen - 15%% drift (overweight equities)\n2. Michael Roberts - 12%% drift (underweight fixed income)\n3. %s - 8%% drift (overweight cash)\n\nWould you like me to generate rebalancing recommendations?",
		client.Name)
	return content, []domain.ChatAction{
		{ID: "1", Label: "Generate Rebalancing Report", Type: domain.NotificationAction_Generate},
		{ID: "2", Label: "View All Allocations", Type: domain.NotificationAction_Navigate, Target: "portfolio"},
	}
}

func (s *Service) marketResponse(client domain.Client) (string, []domain.ChatAction) {
	content := fmt.Sprintf(
		"Today's market impact:\n\n- ASX 200: -1.2%%\n- S&P 500: +0.8%%\n- Tech sector: +2.1%%\n\n%s's portfolio: -0.3%% today. 3 clients have >2%% decline today - would you like me to draft proactive updates?",
		client.Name)
	return content, []domain.ChatAction{
		{ID: "1", Label: "Draft Client Updates", Type: domain.NotificationAction_Generate},
		{ID: "2", Label: "View Performance", Type: domain.NotificationAction_Navigate, Target: "performance"},
	}
}

func (s *Service) clientOverviewResponse(client domain.Client) (string, []domain.ChatAction) {
	mode := s.Session.ContextMode()
	count := 0
	totalAUM := decimal.Zero
	for _, c := range s.Dataset.Clients() {
		if mode == domain.ContextMode_All || domain.ContextMode(c.Type) == mode {
			count++
			totalAUM = totalAUM.Add(c.TotalPortfolioValue)
		}
	}

	content := fmt.Sprintf(
		"Client overview (%s):\n\nYou have %d clients in your current view.\n\nCurrently selected: %s (%s)\nTotal AUM: %s\n\nWhat would you like to know about your clients?",
		mode, count, client.Name, client.Type, util.FormatMillions(totalAUM))

	return content, []domain.ChatAction{
		{ID: "1", Label: "View Dashboard", Type: domain.NotificationAction_Navigate, Target: "dashboard"},
		{ID: "2", Label: "Show Client List", Type: domain.NotificationAction_View},
	}
}

func capabilitiesResponse() (string, []domain.ChatAction) {
	content := "I can help you with:\n\nPortfolio analysis - \"How is this portfolio performing?\", \"Who needs rebalancing?\"\nTax planning - \"Show tax harvest opportunities\"\nWorkflow - \"Which clients need reviews?\"\nMarket insights - \"How did today's market affect portfolios?\"\n\nJust ask naturally."
	return content, []domain.ChatAction{
		{ID: "1", Label: "Show Today's Priorities", Type: domain.NotificationAction_View},
		{ID: "2", Label: "View All Insights", Type: domain.NotificationAction_Navigate, Target: "dashboard"},
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
