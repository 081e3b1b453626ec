package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/service"
)

// ChatHandler 는 매칭 채팅 요청을 처리한다.
type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// GetMatch 는 매칭 상세(양쪽 방, 멤버 포함)를 반환한다.
func (h *ChatHandler) GetMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	match, err := h.chatService.GetMatch(matchID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// ListMessages 는 채팅 전체 기록을 작성 순으로 반환한다.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(matchID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// PostMessage 는 메시지를 작성한다. 각 방의 호스트만 보낼 수 있다.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	message, err := h.chatService.PostMessage(matchID, currentUserID(c), input.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ExitChat 은 채팅을 나가며 만족도 평가를 남긴다.
func (h *ChatHandler) ExitChat(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if err := h.chatService.ExitChat(matchID, currentUserID(c), input.Rating, input.Feedback); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
