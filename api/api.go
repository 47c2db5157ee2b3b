package api

import (
	"fmt"
	"time"

	"clientintel/internal/chat"
	"clientintel/internal/dataset"
	"clientintel/internal/insights"
	"clientintel/internal/notifications"
	"clientintel/internal/search"
	"clientintel/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Dataset             *dataset.Dataset
	Session             *session.Session
	SearchService       *search.Service
	InsightService      *insights.Service
	NotificationService *notifications.Service
	ChatService         *chat.Service
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to clientintel"})
	})

	router.POST("/search", m.search)
	router.GET("/search/suggestions", m.searchSuggestions)
	router.POST("/search/execute", m.executeSearchResult)
	router.GET("/intents", m.classifyIntent)

	router.GET("/clients", m.listClients)
	router.GET("/clients/:clientID/holdings", m.clientHoldings)

	router.POST("/insights", m.generateInsights)
	router.POST("/insights/dismiss", m.dismissInsight)
	router.POST("/insights/neverShow", m.neverShowInsight)
	router.POST("/insights/helpful", m.markInsightHelpful)

	router.GET("/notifications/forYou", m.notificationsForYou)
	router.GET("/notifications/all", m.notificationsAll)
	router.GET("/notifications/archived", m.notificationsArchived)
	router.GET("/notifications/unreadCount", m.notificationsUnreadCount)
	router.GET("/notifications/digest", m.notificationsDigest)
	router.POST("/notifications/markRead", m.markNotificationRead)
	router.POST("/notifications/markAllRead", m.markAllNotificationsRead)
	router.POST("/notifications/archive", m.archiveNotification)
	router.POST("/notifications/unarchive", m.unarchiveNotification)
	router.POST("/notifications/dismissCategory", m.dismissNotificationCategory)
	router.POST("/notifications/executeAction", m.executeNotificationAction)

	router.GET("/chat/messages", m.chatMessages)
	router.POST("/chat/send", m.chatSend)
	router.POST("/chat/action", m.chatAction)

	router.GET("/session", m.getSession)
	router.POST("/session/tab", m.setActiveTab)
	router.POST("/session/client", m.setSelectedClient)
	router.POST("/session/context", m.setContextMode)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func logRequestMiddleware(ctx *gin.Context) {
	start := time.Now().UTC()
	ctx.Next()
	zap.S().Infow("request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
