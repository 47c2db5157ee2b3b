// Package intent maps a free-text query to one or more semantic intents.
// This is deliberately a static, auditable trigger table - substring
// matching, not language understanding - so every trigger phrase can be
// enumerated and tested against its expected intent set.
package intent

import (
	"clientintel/internal/domain"
	"strings"
)

type triggerRule struct {
	intent   domain.Intent
	triggers []string
}

// TriggerTable is evaluated top to bottom; a query may match several
// rows. Order here fixes the order of the returned intent set.
var TriggerTable = []triggerRule{
	{domain.Intent_Filter, []string{"loss", "negative", "down"}},
	{domain.Intent_Analysis, []string{"rebalanc", "drift", "allocation"}},
	{domain.Intent_Tax, []string{"tax", "harvest", "cgt"}},
	{domain.Intent_Performance, []string{"perform", "return", "gain"}},
	{domain.Intent_Help, []string{"explain", "what is", "how to", "help"}},
	{domain.Intent_Report, []string{"report", "generate", "export"}},
}

type Classifier struct {
	clientFirstNames []string
}

func NewClassifier(clients []domain.Client) *Classifier {
	names := make([]string, 0, len(clients))
	for _, c := range clients {
		names = append(names, strings.ToLower(c.FirstName()))
	}
	return &Classifier{clientFirstNames: names}
}

// Classify returns the intents carried by the query. Intents are
// non-exclusive; the client intent is appended when the query contains
// the first name of any known client. An unmatched query returns exactly
// {general}.
func (c *Classifier) Classify(query string) []domain.Intent {
	q := strings.ToLower(query)
	intents := []domain.Intent{}

	for _, rule := range TriggerTable {
		for _, trigger := range rule.triggers {
			if strings.Contains(q, trigger) {
				intents = append(intents, rule.intent)
				break
			}
		}
	}

	for _, name := range c.clientFirstNames {
		if name != "" && strings.Contains(q, name) {
			intents = append(intents, domain.Intent_Client)
			break
		}
	}

	if len(intents) == 0 {
		return []domain.Intent{domain.Intent_General}
	}
	return intents
}

func Has(intents []domain.Intent, intent domain.Intent) bool {
	for _, i := range intents {
		if i == intent {
			return true
		}
	}
	return false
}
