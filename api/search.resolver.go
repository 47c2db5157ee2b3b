package api

import (
	"clientintel/internal/domain"
	"clientintel/internal/search"

	"github.com/gin-gonic/gin"
)

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Query   string                `json:"query"`
	Intents []domain.Intent       `json:"intents"`
	Results []domain.SearchResult `json:"results"`
}

func (m ApiHandler) search(c *gin.Context) {
	var requestBody searchRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	results, err := m.SearchService.Search(c.Request.Context(), requestBody.Query)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, searchResponse{
		Query:   requestBody.Query,
		Intents: m.SearchService.Classifier.Classify(requestBody.Query),
		Results: results,
	})
}

type searchSuggestionsResponse struct {
	Suggested []string `json:"suggested"`
	Recent    []string `json:"recent"`
}

func (m ApiHandler) searchSuggestions(c *gin.Context) {
	recent := m.SearchService.RecentSearches()
	if recent == nil {
		recent = []string{}
	}
	c.JSON(200, searchSuggestionsResponse{
		Suggested: search.SuggestedQueries,
		Recent:    recent,
	})
}

func (m ApiHandler) executeSearchResult(c *gin.Context) {
	var result domain.SearchResult
	if err := c.ShouldBindJSON(&result); err != nil {
		returnErrorJson(err, c)
		return
	}

	m.SearchService.ExecuteResult(result)
	c.JSON(200, map[string]string{"message": "ok"})
}

type classifyIntentResponse struct {
	Query   string          `json:"query"`
	Intents []domain.Intent `json:"intents"`
}

func (m ApiHandler) classifyIntent(c *gin.Context) {
	query := c.Query("q")
	c.JSON(200, classifyIntentResponse{
		Query:   query,
		Intents: m.SearchService.Classifier.Classify(query),
	})
}
