package service

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// Client 는 매칭 채팅에 접속한 웹소켓 클라이언트다.
type Client struct {
	Conn     *websocket.Conn
	UserID   uint
	MatchID  uint
	CanWrite bool                     // 호스트만 true. 일반 멤버는 읽기 전용이다.
	SendChan chan *models.ChatMessage // 비동기 전송용 버퍼 채널
}

// WebSocketManager 는 매칭별 웹소켓 연결과 메시지 전달을 관리한다.
type WebSocketManager struct {
	clients    map[uint]map[*Client]bool // matchID -> client -> bool
	clientsMux sync.RWMutex
	chatRepo   repository.ChatMessageRepository
}

func NewWebSocketManager(chatRepo repository.ChatMessageRepository) *WebSocketManager {
	return &WebSocketManager{
		clients:  make(map[uint]map[*Client]bool),
		chatRepo: chatRepo,
	}
}

// HandleConnection 은 접속한 클라이언트의 읽기/쓰기 루프를 돌린다.
// 연결이 끊길 때까지 블록된다.
func (m *WebSocketManager) HandleConnection(conn *websocket.Conn, matchID, userID uint, canWrite bool) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		MatchID:  matchID,
		CanWrite: canWrite,
		SendChan: make(chan *models.ChatMessage, 256),
	}

	m.addClient(client)

	defer func() {
		m.removeClient(client)
		conn.Close()
		close(client.SendChan)
	}()

	go m.writePump(client)
	m.readPump(client)
}

// 클라이언트가 보내는 프레임 형식
type inboundMessage struct {
	Content string `json:"content"`
}

// readPump 는 클라이언트가 보낸 메시지를 기록하고 같은 매칭의 접속자에게 퍼뜨린다.
// 읽기 전용 클라이언트의 프레임은 버린다.
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		if !client.CanWrite {
			continue
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}

		message := &models.ChatMessage{
			MatchID:  client.MatchID,
			SenderID: client.UserID,
			Content:  content,
		}
		if err := m.chatRepo.Create(message); err != nil {
			log.Printf("message save error: %v", err)
			continue
		}

		m.Broadcast(client.MatchID, message)
	}
}

// writePump 는 대기 중인 메시지를 내보내고 주기적으로 핑을 보낸다.
func (m *WebSocketManager) writePump(client *Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := client.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			messageBytes, err := json.Marshal(message)
			if err != nil {
				log.Printf("message encoding error: %v", err)
				continue
			}

			if _, err := w.Write(messageBytes); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast 는 매칭에 접속한 모든 클라이언트에게 메시지를 전달한다.
func (m *WebSocketManager) Broadcast(matchID uint, message *models.ChatMessage) {
	m.clientsMux.RLock()
	clients := m.clients[matchID]
	m.clientsMux.RUnlock()

	for client := range clients {
		select {
		case client.SendChan <- message:
		default:
			// 전송 큐가 가득 찬 클라이언트는 연결을 정리한다
			m.removeClient(client)
			client.Conn.Close()
		}
	}
}

func (m *WebSocketManager) addClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.MatchID] == nil {
		m.clients[client.MatchID] = make(map[*Client]bool)
	}
	m.clients[client.MatchID][client] = true
}

func (m *WebSocketManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[client.MatchID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(m.clients, client.MatchID)
		}
	}
}

// ConnectedCount 는 매칭에 접속 중인 클라이언트 수를 반환한다.
func (m *WebSocketManager) ConnectedCount(matchID uint) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[matchID])
}
