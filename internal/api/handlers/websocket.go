package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"meeting_web/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 운영 환경에서는 origin 검사가 필요하다
	},
}

// WebSocketHandler 는 매칭 채팅의 웹소켓 연결을 처리한다.
type WebSocketHandler struct {
	wsManager   *service.WebSocketManager
	chatService *service.ChatService
}

func NewWebSocketHandler(wsManager *service.WebSocketManager, chatService *service.ChatService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		chatService: chatService,
	}
}

// HandleWebSocket 은 접근 권한을 확인한 뒤 연결을 웹소켓으로 올린다.
// 양쪽 방의 멤버만 접속할 수 있고 메시지 작성은 호스트 연결만 허용된다.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	matchID, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)

	member, host, err := h.chatService.CanAccess(matchID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "매칭에 참여한 멤버만 접속할 수 있습니다"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "웹소켓 연결에 실패했습니다"})
		return
	}

	h.wsManager.HandleConnection(conn, matchID, userID, host)
}
