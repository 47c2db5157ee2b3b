// Package search turns a classified query into a ranked, grouped,
// explained result list over the whole client book.
package search

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"clientintel/internal/calculator"
	"clientintel/internal/dataset"
	"clientintel/internal/domain"
	"clientintel/internal/intent"
	"clientintel/internal/repository"
	"clientintel/internal/session"
	"clientintel/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const (
	recentSearchesKey = "dash-recent-searches"
	maxRecentSearches = 5

	// holdings with an unrealised loss below this are tax-loss candidates
	taxLossFloorDollars = -500

	// flat per-class allocation target and the drift that flags a client
	// for rebalancing. The 25% equal-weight target is an approximation,
	// not a target-allocation model, so it stays configurable.
	defaultDriftTargetPercent = 25.0
	driftAlertPercent         = 10.0

	maxClientRows    = 3
	maxHoldingRows   = 3
	maxTopPerformers = 5
)

var SuggestedQueries = []string{
	"clients with losses over 10%",
	"who needs rebalancing?",
	"tax loss candidates",
	"explain unrealised gains",
	"show me top performers",
}

var percentPattern = regexp.MustCompile(`(\d+)`)

type Service struct {
	Dataset            *dataset.Dataset
	Classifier         *intent.Classifier
	FlagRepository     repository.FlagRepository
	Session            *session.Session
	DriftTargetPercent float64
}

func NewService(ds *dataset.Dataset, flagRepo repository.FlagRepository, sess *session.Session) *Service {
	return &Service{
		Dataset:            ds,
		Classifier:         intent.NewClassifier(ds.Clients()),
		FlagRepository:     flagRepo,
		Session:            sess,
		DriftTargetPercent: defaultDriftTargetPercent,
	}
}

type clientPortfolio struct {
	client   domain.Client
	holdings []domain.DerivedHolding
}

// Search runs every branch whose intent matched and concatenates the
// results in fixed priority order: filter, tax, analysis, help,
// performance, then direct client and holding matches, so synthesized
// insight rows always precede raw matches. An empty query returns an
// empty list.
func (s *Service) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	if err := s.addToRecent(query); err != nil {
		return nil, fmt.Errorf("failed to record recent search: %w", err)
	}

	intents := s.Classifier.Classify(query)
	q := strings.ToLower(query)

	book := make([]clientPortfolio, 0, len(s.Dataset.Clients()))
	for _, client := range s.Dataset.Clients() {
		book = append(book, clientPortfolio{
			client:   client,
			holdings: calculator.DeriveHoldings(client, s.Dataset.HoldingsFor(client.ID)),
		})
	}

	results := []domain.SearchResult{}

	if intent.Has(intents, domain.Intent_Filter) && (strings.Contains(q, "loss") || strings.Contains(q, "negative")) {
		results = append(results, s.lossFilterResults(q, book)...)
	}
	if intent.Has(intents, domain.Intent_Tax) {
		results = append(results, s.taxCandidateResults(book)...)
	}
	if intent.Has(intents, domain.Intent_Analysis) && strings.Contains(q, "rebalanc") {
		results = append(results, s.rebalanceResults(book)...)
	}
	if intent.Has(intents, domain.Intent_Help) {
		results = append(results, helpResults(q)...)
	}
	if intent.Has(intents, domain.Intent_Performance) && (strings.Contains(q, "top") || strings.Contains(q, "best")) {
		results = append(results, topPerformerResults(book)...)
	}

	results = append(results, s.directClientMatches(q, results)...)
	results = append(results, directHoldingMatches(q, book)...)

	return results, nil
}

// lossFilterResults keeps clients whose average loss percentage across
// losing holdings meets the threshold parsed from the query (first
// integer-like token, 0 when absent), ranked by total loss amount.
func (s *Service) lossFilterResults(q string, book []clientPortfolio) []domain.SearchResult {
	threshold := 0.0
	if m := percentPattern.FindString(q); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			threshold = v
		}
	}

	type clientLoss struct {
		client      domain.Client
		totalLoss   decimal.Decimal
		lossPercent float64
	}

	matches := []clientLoss{}
	for _, cp := range book {
		totalLoss := decimal.Zero
		lossPercents := []float64{}
		for _, h := range cp.holdings {
			if h.UnrealisedGainLossPercent < 0 {
				totalLoss = totalLoss.Add(h.UnrealisedGainLoss.Abs())
				lossPercents = append(lossPercents, h.UnrealisedGainLossPercent)
			}
		}

		lossPercent := 0.0
		if len(lossPercents) > 0 {
			mean, err := stats.Mean(lossPercents)
			if err == nil {
				lossPercent = -mean
			}
		}

		if lossPercent >= threshold {
			matches = append(matches, clientLoss{cp.client, totalLoss, lossPercent})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].totalLoss.GreaterThan(matches[j].totalLoss)
	})

	totalLosses := decimal.Zero
	for _, m := range matches {
		totalLosses = totalLosses.Add(m.totalLoss)
	}

	results := []domain.SearchResult{{
		ID:       "insight-losses",
		Type:     domain.ResultType_Insights,
		Title:    fmt.Sprintf("%d clients match", len(matches)),
		Subtitle: fmt.Sprintf("Total unrealised losses: %s", util.FormatMoney(totalLosses)),
		Intent:   domain.Intent_Filter,
		Action:   "Generate Tax Report",
		Insight: &domain.SearchInsight{
			Title:       fmt.Sprintf("Found %d clients with significant losses", len(matches)),
			Description: fmt.Sprintf("Combined unrealised losses of %s across these portfolios. Consider tax harvesting opportunities.", util.FormatMoney(totalLosses)),
		},
	}}

	for i, m := range matches {
		if i == maxClientRows {
			break
		}
		client := m.client
		results = append(results, domain.SearchResult{
			ID:       fmt.Sprintf("client-loss-%s", client.ID),
			Type:     domain.ResultType_Clients,
			Title:    client.Name,
			Subtitle: fmt.Sprintf("%.1f%% avg loss • %s unrealised", m.lossPercent, util.FormatMoney(m.totalLoss)),
			Intent:   domain.Intent_Client,
			Action:   "View Portfolio",
			Client:   &client,
		})
	}
	return results
}

// taxCandidateResults collects every holding across the book with a loss
// beyond the materiality floor, most negative first, then rolls them up
// per client.
func (s *Service) taxCandidateResults(book []clientPortfolio) []domain.SearchResult {
	floor := decimal.NewFromInt(taxLossFloorDollars)

	type candidate struct {
		client  domain.Client
		holding domain.DerivedHolding
	}
	candidates := []candidate{}
	for _, cp := range book {
		for _, h := range cp.holdings {
			if h.UnrealisedGainLoss.LessThan(floor) {
				candidates = append(candidates, candidate{cp.client, h})
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].holding.UnrealisedGainLoss.LessThan(candidates[j].holding.UnrealisedGainLoss)
	})

	totalLoss := decimal.Zero
	for _, c := range candidates {
		totalLoss = totalLoss.Add(c.holding.UnrealisedGainLoss.Abs())
	}

	results := []domain.SearchResult{{
		ID:       "tax-insight",
		Type:     domain.ResultType_Insights,
		Title:    fmt.Sprintf("%d tax loss candidates found", len(candidates)),
		Subtitle: fmt.Sprintf("Potential tax offset: %s", util.FormatMoney(totalLoss)),
		Intent:   domain.Intent_Tax,
		Insight: &domain.SearchInsight{
			Title:       "Tax Harvesting Opportunity",
			Description: fmt.Sprintf("%d holdings with unrealised losses that could offset capital gains.", len(candidates)),
		},
	}}

	// roll up per client in first-seen (most negative) order
	type rollup struct {
		client    domain.Client
		count     int
		totalLoss decimal.Decimal
	}
	order := []string{}
	byClient := map[string]*rollup{}
	for _, c := range candidates {
		r, ok := byClient[c.client.ID]
		if !ok {
			r = &rollup{client: c.client}
			byClient[c.client.ID] = r
			order = append(order, c.client.ID)
		}
		r.count++
		r.totalLoss = r.totalLoss.Add(c.holding.UnrealisedGainLoss.Abs())
	}

	for i, clientID := range order {
		if i == maxClientRows {
			break
		}
		r := byClient[clientID]
		client := r.client
		positions := "positions"
		if r.count == 1 {
			positions = "position"
		}
		results = append(results, domain.SearchResult{
			ID:       fmt.Sprintf("tax-%s", client.ID),
			Type:     domain.ResultType_Clients,
			Title:    client.Name,
			Subtitle: fmt.Sprintf("%d loss %s • %s", r.count, positions, util.FormatMoney(r.totalLoss)),
			Intent:   domain.Intent_Tax,
			Action:   "View Gains & Losses",
			Client:   &client,
		})
	}
	return results
}

// rebalanceResults flags clients whose worst asset-class drift from the
// flat target exceeds the alert threshold.
func (s *Service) rebalanceResults(book []clientPortfolio) []domain.SearchResult {
	type clientDrift struct {
		client domain.Client
		drift  float64
	}
	matches := []clientDrift{}
	for _, cp := range book {
		drift := calculator.MaxDriftFromTarget(cp.holdings, s.DriftTargetPercent)
		if drift > driftAlertPercent {
			matches = append(matches, clientDrift{cp.client, drift})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].drift > matches[j].drift
	})

	results := []domain.SearchResult{{
		ID:       "rebalance-insight",
		Type:     domain.ResultType_Insights,
		Title:    fmt.Sprintf("%d clients need rebalancing", len(matches)),
		Subtitle: "More than 10% drift from target allocation",
		Intent:   domain.Intent_Analysis,
		Action:   "Generate Rebalancing Report",
		Insight: &domain.SearchInsight{
			Title:       "Rebalancing Required",
			Description: fmt.Sprintf("%d portfolios have drifted significantly from target allocations.", len(matches)),
		},
	}}

	for i, m := range matches {
		if i == maxClientRows {
			break
		}
		client := m.client
		results = append(results, domain.SearchResult{
			ID:       fmt.Sprintf("rebalance-%s", client.ID),
			Type:     domain.ResultType_Clients,
			Title:    client.Name,
			Subtitle: fmt.Sprintf("%.0f%% max drift from target", m.drift),
			Intent:   domain.Intent_Analysis,
			Action:   "View Portfolio",
			Client:   &client,
		})
	}
	return results
}

func topPerformerResults(book []clientPortfolio) []domain.SearchResult {
	type performer struct {
		client  domain.Client
		holding domain.DerivedHolding
	}
	performers := []performer{}
	for _, cp := range book {
		for _, h := range cp.holdings {
			performers = append(performers, performer{cp.client, h})
		}
	}
	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].holding.UnrealisedGainLossPercent > performers[j].holding.UnrealisedGainLossPercent
	})

	results := []domain.SearchResult{}
	for i, p := range performers {
		if i == maxTopPerformers {
			break
		}
		holding := p.holding
		results = append(results, domain.SearchResult{
			ID:       fmt.Sprintf("top-%s", holding.ID),
			Type:     domain.ResultType_Holdings,
			Title:    fmt.Sprintf("%s (+%.1f%%)", holding.Code, holding.UnrealisedGainLossPercent),
			Subtitle: fmt.Sprintf("%s • %s gain", p.client.Name, util.FormatMoney(holding.UnrealisedGainLoss)),
			Intent:   domain.Intent_Performance,
			Action:   "View",
			Client:   &p.client,
			Holding:  &holding,
		})
	}
	return results
}

// directClientMatches appends name/email substring matches not already
// present in the synthesized rows, and only while the result list is
// still short.
func (s *Service) directClientMatches(q string, existing []domain.SearchResult) []domain.SearchResult {
	if len(existing) >= 5 {
		return nil
	}

	seen := map[string]bool{}
	for _, r := range existing {
		if r.Client != nil {
			seen[r.Client.ID] = true
		}
	}

	results := []domain.SearchResult{}
	for _, client := range s.Dataset.Clients() {
		if !strings.Contains(strings.ToLower(client.Name), q) &&
			!strings.Contains(strings.ToLower(client.Email), q) {
			continue
		}
		if seen[client.ID] {
			continue
		}
		client := client
		segment := "Retail"
		if client.Type == domain.ClientType_Private {
			segment = "Private"
		}
		results = append(results, domain.SearchResult{
			ID:       fmt.Sprintf("client-%s", client.ID),
			Type:     domain.ResultType_Clients,
			Title:    client.Name,
			Subtitle: fmt.Sprintf("%s • %s", segment, util.FormatMillions(client.TotalPortfolioValue)),
			Intent:   domain.Intent_Client,
			Action:   "View Portfolio",
			Client:   &client,
		})
	}
	return results
}

func directHoldingMatches(q string, book []clientPortfolio) []domain.SearchResult {
	results := []domain.SearchResult{}
	for _, cp := range book {
		for _, h := range cp.holdings {
			if !strings.Contains(strings.ToLower(h.Name), q) &&
				!strings.Contains(strings.ToLower(h.Code), q) {
				continue
			}
			holding := h
			client := cp.client
			results = append(results, domain.SearchResult{
				ID:       fmt.Sprintf("holding-%s", holding.ID),
				Type:     domain.ResultType_Holdings,
				Title:    holding.Code,
				Subtitle: fmt.Sprintf("%s • %s", holding.Name, client.Name),
				Intent:   domain.Intent_General,
				Action:   "View",
				Client:   &client,
				Holding:  &holding,
			})
			if len(results) == maxHoldingRows {
				return results
			}
		}
	}
	return results
}

// ExecuteResult carries out a chosen result's action through the session:
// the help-panel action opens help, a client payload selects the client
// and lands on the gains tab for tax results or the portfolio tab
// otherwise.
func (s *Service) ExecuteResult(result domain.SearchResult) {
	if result.Intent == domain.Intent_Help && result.ID == "help-panel" {
		s.Session.SetShowHelpPanel(true)
		return
	}

	if result.Client != nil {
		s.Session.SetSelectedClient(*result.Client)
		if result.Intent == domain.Intent_Tax || strings.Contains(result.Action, "Gains") {
			s.Session.SetActiveTab(domain.Tab_Gains)
		} else {
			s.Session.SetActiveTab(domain.Tab_Portfolio)
		}
	}
}

// RecentSearches returns the persisted MRU query list, most recent first.
func (s *Service) RecentSearches() []string {
	return repository.ReadStringSlice(s.FlagRepository, recentSearchesKey)
}

func (s *Service) addToRecent(query string) error {
	recent := repository.ReadStringSlice(s.FlagRepository, recentSearchesKey)
	updated := []string{query}
	for _, r := range recent {
		if r != query && len(updated) < maxRecentSearches {
			updated = append(updated, r)
		}
	}
	return repository.WriteStringSlice(s.FlagRepository, recentSearchesKey, updated)
}
