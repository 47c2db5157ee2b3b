package api

import (
	"fmt"

	"clientintel/internal/calculator"
	"clientintel/internal/domain"

	"github.com/gin-gonic/gin"
)

type generateInsightsRequest struct {
	ClientID    string `json:"clientID"`
	Tab         string `json:"tab"`
	ContextMode string `json:"contextMode"`
}

// generateInsights evaluates the rule catalogue for the requested view.
// Omitted fields fall back to the current session state.
func (m ApiHandler) generateInsights(c *gin.Context) {
	var requestBody generateInsightsRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	client := m.Session.SelectedClient()
	if requestBody.ClientID != "" {
		found, ok := m.Dataset.ClientByID(requestBody.ClientID)
		if !ok {
			returnErrorJsonCode(fmt.Errorf("unknown client %s", requestBody.ClientID), c, 404)
			return
		}
		client = found
	}

	tab := m.Session.ActiveTab()
	if requestBody.Tab != "" {
		tab = domain.Tab(requestBody.Tab)
	}
	mode := m.Session.ContextMode()
	if requestBody.ContextMode != "" {
		mode = domain.ContextMode(requestBody.ContextMode)
	}

	holdings := calculator.DeriveHoldings(client, m.Dataset.HoldingsFor(client.ID))
	out, err := m.InsightService.Generate(holdings, client, tab, mode)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, out)
}

type insightIdRequest struct {
	ID string `json:"id"`
}

func (m ApiHandler) dismissInsight(c *gin.Context) {
	var requestBody insightIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if err := m.InsightService.Dismiss(requestBody.ID); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

func (m ApiHandler) neverShowInsight(c *gin.Context) {
	var requestBody insightIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if err := m.InsightService.NeverShowAgain(requestBody.ID); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

func (m ApiHandler) markInsightHelpful(c *gin.Context) {
	var requestBody insightIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	m.InsightService.MarkHelpful(requestBody.ID)
	c.JSON(200, map[string]string{"message": "ok"})
}
