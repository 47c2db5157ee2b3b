package domain

import "github.com/shopspring/decimal"

type ClientType string

const (
	ClientType_Retail  ClientType = "retail"
	ClientType_Private ClientType = "private"
)

// ContextMode is the advisor's current viewing scope - a single client
// segment or the whole book.
type ContextMode string

const (
	ContextMode_Retail  ContextMode = "retail"
	ContextMode_Private ContextMode = "private"
	ContextMode_All     ContextMode = "all"
)

type Client struct {
	ID                  string          `csv:"id" json:"id"`
	Name                string          `csv:"name" json:"name"`
	Email               string          `csv:"email" json:"email"`
	Type                ClientType      `csv:"type" json:"type"`
	TotalPortfolioValue decimal.Decimal `csv:"total_portfolio_value" json:"totalPortfolioValue"`
}

// FirstName returns the leading token of the client's display name. The
// intent classifier matches queries against it.
func (c Client) FirstName() string {
	for i, r := range c.Name {
		if r == ' ' {
			return c.Name[:i]
		}
	}
	return c.Name
}
