// Package dataset holds the seeded book of clients and holdings. It
// stands in for the read-only reference data a production deployment
// would source from upstream systems.
package dataset

import (
	"clientintel/internal/domain"
	_ "embed"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed clients.csv
var clientsCSV []byte

//go:embed holdings.csv
var holdingsCSV []byte

type Dataset struct {
	clients          []domain.Client
	holdingsByClient map[string][]domain.Holding
}

func Load() (*Dataset, error) {
	var clients []domain.Client
	if err := gocsv.UnmarshalBytes(clientsCSV, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse clients csv: %w", err)
	}

	var holdings []domain.Holding
	if err := gocsv.UnmarshalBytes(holdingsCSV, &holdings); err != nil {
		return nil, fmt.Errorf("failed to parse holdings csv: %w", err)
	}

	byClient := map[string][]domain.Holding{}
	for _, h := range holdings {
		byClient[h.ClientID] = append(byClient[h.ClientID], h)
	}

	return &Dataset{
		clients:          clients,
		holdingsByClient: byClient,
	}, nil
}

// Clients returns the book in load order. Callers must not mutate the
// returned slice.
func (d *Dataset) Clients() []domain.Client {
	return d.clients
}

func (d *Dataset) ClientByID(id string) (domain.Client, bool) {
	for _, c := range d.clients {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}

func (d *Dataset) ClientByName(name string) (domain.Client, bool) {
	for _, c := range d.clients {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return domain.Client{}, false
}

func (d *Dataset) HoldingsFor(clientID string) []domain.Holding {
	return d.holdingsByClient[clientID]
}
