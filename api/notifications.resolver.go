package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) notificationsForYou(c *gin.Context) {
	c.JSON(200, m.NotificationService.ForYou())
}

func (m ApiHandler) notificationsAll(c *gin.Context) {
	c.JSON(200, m.NotificationService.All())
}

func (m ApiHandler) notificationsArchived(c *gin.Context) {
	c.JSON(200, m.NotificationService.Archived())
}

func (m ApiHandler) notificationsUnreadCount(c *gin.Context) {
	c.JSON(200, map[string]int{"unreadCount": m.NotificationService.UnreadCount()})
}

func (m ApiHandler) notificationsDigest(c *gin.Context) {
	c.JSON(200, m.NotificationService.DailyDigest())
}

type notificationIdRequest struct {
	ID string `json:"id"`
}

func (m ApiHandler) markNotificationRead(c *gin.Context) {
	var requestBody notificationIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if err := m.NotificationService.MarkAsRead(requestBody.ID); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

func (m ApiHandler) markAllNotificationsRead(c *gin.Context) {
	if err := m.NotificationService.MarkAllAsRead(); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

func (m ApiHandler) archiveNotification(c *gin.Context) {
	var requestBody notificationIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if err := m.NotificationService.Archive(requestBody.ID); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

func (m ApiHandler) unarchiveNotification(c *gin.Context) {
	var requestBody notificationIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if err := m.NotificationService.Unarchive(requestBody.ID); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

type dismissCategoryRequest struct {
	Category string `json:"category"`
}

func (m ApiHandler) dismissNotificationCategory(c *gin.Context) {
	var requestBody dismissCategoryRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}
	if err := m.NotificationService.DismissCategory(requestBody.Category); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, map[string]string{"message": "ok"})
}

func (m ApiHandler) executeNotificationAction(c *gin.Context) {
	var requestBody notificationIdRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	for _, n := range append(m.NotificationService.All(), m.NotificationService.Archived()...) {
		if n.ID == requestBody.ID {
			if err := m.NotificationService.ExecuteAction(n); err != nil {
				returnErrorJson(err, c)
				return
			}
			c.JSON(200, map[string]string{"message": "ok"})
			return
		}
	}
	returnErrorJsonCode(fmt.Errorf("unknown notification %s", requestBody.ID), c, 404)
}
