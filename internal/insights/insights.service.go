// Package insights evaluates the advisory rule catalogue against the
// portfolio in view and manages the two suppression tiers: session
// dismissals, cleared on every tab change, and permanent never-show
// choices, persisted across sessions.
package insights

import (
	"fmt"
	"sync"

	"clientintel/internal/domain"
	"clientintel/internal/repository"
	"clientintel/internal/session"

	"github.com/maja42/goval"
	"go.uber.org/zap"
)

const (
	dismissedKey = "dash-dismissed-insights"
	neverShowKey = "dash-never-show-insights"
)

type Service struct {
	FlagRepository repository.FlagRepository

	mu        sync.Mutex
	dismissed map[string]bool
	neverShow map[string]bool
}

// NewService loads suppression state from the flag repository and hooks
// the session so a tab change resets the dismissed set.
func NewService(flagRepo repository.FlagRepository, sess *session.Session) *Service {
	s := &Service{
		FlagRepository: flagRepo,
		dismissed:      toSet(repository.ReadStringSlice(flagRepo, dismissedKey)),
		neverShow:      toSet(repository.ReadStringSlice(flagRepo, neverShowKey)),
	}
	if sess != nil {
		sess.OnTabChange(func(domain.Tab) {
			s.clearDismissed()
		})
	}
	return s
}

// Generate evaluates every catalogue rule scoped to the current tab, in
// catalogue order, then filters out suppressed ids. Rules whose condition
// does not hold are simply omitted; absence is not an error.
func (s *Service) Generate(holdings []domain.DerivedHolding, client domain.Client, tab domain.Tab, mode domain.ContextMode) ([]domain.Insight, error) {
	rc := newRuleContext(holdings, client, tab, mode)
	vars := buildVars(rc)
	eval := goval.NewEvaluator()

	generated := []domain.Insight{}
	for _, rule := range Catalogue {
		if !rule.appliesTo(tab) {
			continue
		}
		if rule.Condition != "" {
			out, err := eval.Evaluate(rule.Condition, vars, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate rule %s: %w", rule.Name, err)
			}
			fired, ok := out.(bool)
			if !ok {
				return nil, fmt.Errorf("rule %s condition is not boolean: %v", rule.Name, out)
			}
			if !fired {
				continue
			}
		}
		generated = append(generated, rule.Build(rc))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	visible := []domain.Insight{}
	for _, insight := range generated {
		if s.dismissed[insight.ID] || s.neverShow[insight.ID] {
			continue
		}
		visible = append(visible, insight)
	}
	return visible, nil
}

// Dismiss hides an insight for the rest of the session (until the next
// tab change). Unknown ids are no-ops.
func (s *Service) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[id] = true
	return repository.WriteStringSlice(s.FlagRepository, dismissedKey, keys(s.dismissed))
}

// NeverShowAgain hides an insight permanently.
func (s *Service) NeverShowAgain(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.neverShow[id] = true
	return repository.WriteStringSlice(s.FlagRepository, neverShowKey, keys(s.neverShow))
}

// MarkHelpful records positive feedback. It is deliberately not a
// suppression action - the insight keeps showing.
func (s *Service) MarkHelpful(id string) {
	zap.S().Infow("insight marked helpful", "id", id)
}

func (s *Service) clearDismissed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = map[string]bool{}
	if err := repository.WriteStringSlice(s.FlagRepository, dismissedKey, nil); err != nil {
		zap.S().Errorw("failed to clear dismissed insights", "error", err)
	}
}

func toSet(ids []string) map[string]bool {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
