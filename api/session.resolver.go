package api

import (
	"fmt"

	"clientintel/internal/domain"

	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	SelectedClient domain.Client      `json:"selectedClient"`
	ActiveTab      domain.Tab         `json:"activeTab"`
	ContextMode    domain.ContextMode `json:"contextMode"`
	ShowHelpPanel  bool               `json:"showHelpPanel"`
}

func (m ApiHandler) getSession(c *gin.Context) {
	c.JSON(200, sessionResponse{
		SelectedClient: m.Session.SelectedClient(),
		ActiveTab:      m.Session.ActiveTab(),
		ContextMode:    m.Session.ContextMode(),
		ShowHelpPanel:  m.Session.ShowHelpPanel(),
	})
}

type setTabRequest struct {
	Tab string `json:"tab"`
}

func (m ApiHandler) setActiveTab(c *gin.Context) {
	var requestBody setTabRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	m.Session.SetActiveTab(domain.Tab(requestBody.Tab))
	c.JSON(200, map[string]string{"message": "ok"})
}

type setClientRequest struct {
	ClientID string `json:"clientID"`
}

func (m ApiHandler) setSelectedClient(c *gin.Context) {
	var requestBody setClientRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	client, ok := m.Dataset.ClientByID(requestBody.ClientID)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("unknown client %s", requestBody.ClientID), c, 404)
		return
	}
	m.Session.SetSelectedClient(client)
	c.JSON(200, map[string]string{"message": "ok"})
}

type setContextModeRequest struct {
	Mode string `json:"mode"`
}

func (m ApiHandler) setContextMode(c *gin.Context) {
	var requestBody setContextModeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	m.Session.SetContextMode(domain.ContextMode(requestBody.Mode))
	c.JSON(200, map[string]string{"message": "ok"})
}
