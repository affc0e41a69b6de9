package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/middleware"
)

type RouterDeps struct {
	Sessions  *SessionHandler
	Documents *DocumentHandler
	Chat      *ChatHandler
	Quiz      *QuizHandler
	// AIRateWindow throttles the endpoints that hit the model gateway.
	AIRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/sessions", deps.Sessions.Create)
	api.DELETE("/sessions", deps.Sessions.Delete)

	api.POST("/documents", deps.Documents.Upload)
	api.GET("/documents", deps.Documents.List)
	api.GET("/documents/:id", deps.Documents.Get)

	aiGroup := api.Group("")
	aiGroup.Use(middleware.RateLimit(deps.AIRateWindow))
	aiGroup.POST("/chat/ask", deps.Chat.Ask)
	aiGroup.POST("/quiz", deps.Quiz.Generate)

	api.GET("/chat/history", deps.Chat.History)
	api.DELETE("/chat/history", deps.Chat.ClearHistory)
	api.GET("/chat/summary", deps.Chat.Summary)
	api.GET("/chat/export", deps.Chat.Export)
	api.DELETE("/chat/keypoints", deps.Chat.ClearKeyPoints)

	api.POST("/quiz/answers", deps.Quiz.Answer)
	api.GET("/quiz/statistics", deps.Quiz.Statistics)
	api.POST("/quiz/retake", deps.Quiz.Retake)
	api.POST("/quiz/finish", deps.Quiz.Finish)
	api.GET("/quiz/attempts", deps.Quiz.Attempts)
}
