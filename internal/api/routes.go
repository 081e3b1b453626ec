package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/api/handlers"
	"meeting_web/internal/middleware"
	"meeting_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	authHandler := handlers.NewAuthHandler(services.Auth)
	smsHandler := handlers.NewSMSHandler(services.Verification)
	userHandler := handlers.NewUserHandler(services.User)
	roomHandler := handlers.NewRoomHandler(services.Room)
	matchHandler := handlers.NewMatchHandler(services.Matching)
	chatHandler := handlers.NewChatHandler(services.Chat)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager, services.Chat)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "찾을 수 없는 경로입니다",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// 기존 모바일웹 클라이언트가 쓰는 공개 경로. 형태를 그대로 유지한다.
	{
		r.POST("/auth/kakao", authHandler.KakaoLogin)
		r.POST("/sms/send", smsHandler.Send)
		r.POST("/sms/verify", smsHandler.Verify)
		r.POST("/user/update", userHandler.Update)

		r.GET("/rooms", roomHandler.ListRooms)
		r.POST("/rooms", roomHandler.CreateRoom)
		r.POST("/rooms/join", roomHandler.JoinRoom)
		r.POST("/rooms/match", matchHandler.CreateMatch)
	}

	// 세션 토큰이 필요한 경로
	authorized := r.Group("/api")
	authorized.Use(middleware.AuthMiddleware())
	{
		rooms := authorized.Group("/rooms")
		{
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.POST("/:id/leave", roomHandler.LeaveRoom)
			rooms.POST("/:id/accept", roomHandler.AcceptInvite)

			// 카드 덱과 투표
			rooms.GET("/:id/deck", matchHandler.GetDeck)
			rooms.POST("/:id/vote", matchHandler.Vote)
		}

		matches := authorized.Group("/matches")
		{
			matches.GET("/:id", chatHandler.GetMatch)
			matches.GET("/:id/messages", chatHandler.ListMessages)
			matches.POST("/:id/messages", chatHandler.PostMessage)
			matches.POST("/:id/exit", chatHandler.ExitChat)

			// 실시간 채팅 연결
			matches.GET("/:id/ws", wsHandler.HandleWebSocket)
		}
	}
}
