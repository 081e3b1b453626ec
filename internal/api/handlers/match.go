package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/models"
	"meeting_web/internal/service"
)

// MatchHandler 는 카드 덱 조회와 투표, 매칭 생성 요청을 처리한다.
type MatchHandler struct {
	matchingService *service.MatchingService
}

func NewMatchHandler(matchingService *service.MatchingService) *MatchHandler {
	return &MatchHandler{matchingService: matchingService}
}

// GetDeck 은 호스트가 볼 후보 카드 덱을 반환한다.
// 받은 좋아요가 먼저, 새 추천이 그 뒤에 놓인다.
func (h *MatchHandler) GetDeck(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deck, err := h.matchingService.BuildDeck(roomID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deck)
}

// Vote 는 후보 방에 대한 결정을 기록한다.
// 이번 투표로 매칭이 성사되면 matched: true 와 함께 매칭 정보를 돌려준다.
func (h *MatchHandler) Vote(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input struct {
		TargetRoomID uint   `json:"targetRoomId"`
		Decision     string `json:"decision"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	match, err := h.matchingService.Vote(roomID, currentUserID(c), input.TargetRoomID,
		models.VoteDecision(input.Decision))
	if err != nil {
		respondError(c, err)
		return
	}

	if match == nil {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matched": true, "match": match})
}

// CreateMatch 는 두 방을 직접 매칭한다.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var input struct {
		MaleRoomID   uint `json:"maleRoomId"`
		FemaleRoomID uint `json:"femaleRoomId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	match, err := h.matchingService.CreateMatch(input.MaleRoomID, input.FemaleRoomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}
