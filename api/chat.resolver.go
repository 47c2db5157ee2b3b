package api

import (
	"errors"

	"clientintel/internal/chat"
	"clientintel/internal/domain"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) chatMessages(c *gin.Context) {
	c.JSON(200, m.ChatService.Messages())
}

type chatSendRequest struct {
	Message string `json:"message"`
}

func (m ApiHandler) chatSend(c *gin.Context) {
	var requestBody chatSendRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	response, err := m.ChatService.Send(c.Request.Context(), requestBody.Message)
	if errors.Is(err, chat.ErrResponsePending) {
		returnErrorJsonCode(err, c, 409)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, response)
}

func (m ApiHandler) chatAction(c *gin.Context) {
	var action domain.ChatAction
	if err := c.ShouldBindJSON(&action); err != nil {
		returnErrorJson(err, c)
		return
	}

	m.ChatService.ExecuteAction(action)
	c.JSON(200, map[string]string{"message": "ok"})
}
