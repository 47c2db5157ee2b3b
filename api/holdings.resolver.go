package api

import (
	"fmt"

	"clientintel/internal/calculator"
	"clientintel/internal/domain"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) listClients(c *gin.Context) {
	c.JSON(200, m.Dataset.Clients())
}

type clientHoldingsResponse struct {
	Client   domain.Client            `json:"client"`
	Holdings []domain.DerivedHolding  `json:"holdings"`
	Groups   []domain.AssetClassGroup `json:"groups,omitempty"`
}

// clientHoldings returns derived holdings; pass ?grouped=true for the
// canonical asset-class grouping.
func (m ApiHandler) clientHoldings(c *gin.Context) {
	clientID := c.Param("clientID")
	client, ok := m.Dataset.ClientByID(clientID)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("unknown client %s", clientID), c, 404)
		return
	}

	derived := calculator.DeriveHoldings(client, m.Dataset.HoldingsFor(clientID))
	out := clientHoldingsResponse{
		Client:   client,
		Holdings: derived,
	}
	if c.Query("grouped") == "true" {
		out.Groups = calculator.GroupByAssetClass(derived)
	}

	c.JSON(200, out)
}
