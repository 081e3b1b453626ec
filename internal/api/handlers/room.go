package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/models"
	"meeting_web/internal/service"
)

// RoomHandler 는 방 생성/조회/참여 요청을 처리한다.
type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// ListRooms 는 방 목록을 조회한다. 상태 기본값은 waiting 이다.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	gender := models.Gender(c.Query("gender"))
	status := models.RoomStatus(c.Query("status"))

	rooms, err := h.roomService.ListRooms(gender, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// CreateRoom 은 새 방을 만든다. 요청한 호스트가 첫 멤버로 추가된다.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input struct {
		Name         string `json:"name"`
		HostID       uint   `json:"hostId"`
		Gender       string `json:"gender"`
		MaxMembers   int    `json:"maxMembers"`
		Area         string `json:"area"`
		School       string `json:"school"`
		Introduction string `json:"introduction"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	room, err := h.roomService.CreateRoom(service.CreateRoomInput{
		Name:         input.Name,
		HostID:       input.HostID,
		Gender:       models.Gender(input.Gender),
		MaxMembers:   input.MaxMembers,
		Area:         input.Area,
		School:       input.School,
		Introduction: input.Introduction,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRoom 은 방 상세를 조회한다.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// JoinRoom 은 사용자를 방에 참여시킨다.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var input struct {
		RoomID uint `json:"roomId"`
		UserID uint `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if err := h.roomService.JoinRoom(input.RoomID, input.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LeaveRoom 은 참여를 취소한다.
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.roomService.LeaveRoom(roomID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AcceptInvite 는 초대받은 멤버의 참여 확정을 기록한다.
func (h *RoomHandler) AcceptInvite(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.roomService.AcceptInvite(roomID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
