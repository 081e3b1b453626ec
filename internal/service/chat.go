package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// ChatService 는 매칭된 두 방 사이의 채팅을 담당한다.
// 메시지 작성은 각 방의 호스트만, 열람은 양쪽 방의 모든 멤버가 할 수 있다.
type ChatService struct {
	matchRepo repository.MatchRepository
	chatRepo  repository.ChatMessageRepository
	wsManager *WebSocketManager
}

func NewChatService(matchRepo repository.MatchRepository, chatRepo repository.ChatMessageRepository,
	wsManager *WebSocketManager) *ChatService {
	return &ChatService{
		matchRepo: matchRepo,
		chatRepo:  chatRepo,
		wsManager: wsManager,
	}
}

// PostMessage 는 메시지를 기록하고 접속 중인 멤버에게 전달한다.
func (s *ChatService) PostMessage(matchID, senderID uint, content string) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("메시지 내용을 입력해주세요")
	}

	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !chatOpen(match) {
		return nil, apperr.Conflict("종료된 채팅입니다")
	}
	if !isHostOf(match, senderID) {
		return nil, apperr.Authorization("호스트만 메시지를 보낼 수 있습니다")
	}

	message := &models.ChatMessage{
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.chatRepo.Create(message); err != nil {
		return nil, err
	}

	if s.wsManager != nil {
		s.wsManager.Broadcast(matchID, message)
	}
	return message, nil
}

// ListMessages 는 매칭의 전체 메시지를 작성 순으로 반환한다.
func (s *ChatService) ListMessages(matchID, requesterID uint) ([]models.ChatMessage, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !isMemberOf(match, requesterID) {
		return nil, apperr.Authorization("매칭에 참여한 멤버만 볼 수 있습니다")
	}
	return s.chatRepo.ListByMatchID(matchID)
}

// CanAccess 는 사용자가 매칭 채팅에 접근할 수 있는지와 작성 권한 여부를 반환한다.
// 웹소켓 연결 수락 시 사용한다.
func (s *ChatService) CanAccess(matchID, userID uint) (member bool, host bool, err error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return false, false, err
	}
	return isMemberOf(match, userID), isHostOf(match, userID), nil
}

// ExitChat 은 채팅을 나가며 만족도 평가를 남긴다.
// 양쪽 호스트가 모두 평가를 남기면 매칭을 completed 로 전환한다.
func (s *ChatService) ExitChat(matchID, raterID uint, score int, feedback string) error {
	if score < 1 || score > 5 {
		return apperr.Validation("평점은 1점에서 5점 사이여야 합니다")
	}

	match, err := s.loadMatch(matchID)
	if err != nil {
		return err
	}
	if !isMemberOf(match, raterID) {
		return apperr.Authorization("매칭에 참여한 멤버만 평가할 수 있습니다")
	}

	ratings, err := s.matchRepo.ListRatings(matchID)
	if err != nil {
		return err
	}
	for _, r := range ratings {
		if r.RaterID == raterID {
			return apperr.Validation("이미 평가를 남겼습니다")
		}
	}

	rating := &models.MatchRating{
		MatchID:  matchID,
		RaterID:  raterID,
		Score:    score,
		Feedback: feedback,
	}
	if err := s.matchRepo.CreateRating(rating); err != nil {
		return err
	}

	ratings = append(ratings, *rating)
	if bothHostsRated(match, ratings) {
		return s.matchRepo.UpdateStatus(matchID, models.MatchStatusCompleted)
	}
	return nil
}

// GetMatch 는 매칭 상세를 조회한다. 참여 멤버만 볼 수 있다.
func (s *ChatService) GetMatch(matchID, requesterID uint) (*models.Match, error) {
	match, err := s.loadMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !isMemberOf(match, requesterID) {
		return nil, apperr.Authorization("매칭에 참여한 멤버만 볼 수 있습니다")
	}
	return match, nil
}

func (s *ChatService) loadMatch(matchID uint) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("매칭을 찾을 수 없습니다")
		}
		return nil, err
	}
	return match, nil
}

func chatOpen(match *models.Match) bool {
	return match.Status == models.MatchStatusPending || match.Status == models.MatchStatusActive
}

func isHostOf(match *models.Match, userID uint) bool {
	if match.MaleRoom != nil && match.MaleRoom.HostID == userID {
		return true
	}
	if match.FemaleRoom != nil && match.FemaleRoom.HostID == userID {
		return true
	}
	return false
}

func isMemberOf(match *models.Match, userID uint) bool {
	for _, room := range []*models.Room{match.MaleRoom, match.FemaleRoom} {
		if room == nil {
			continue
		}
		for _, member := range room.Members {
			if member.UserID == userID {
				return true
			}
		}
	}
	return false
}

func bothHostsRated(match *models.Match, ratings []models.MatchRating) bool {
	if match.MaleRoom == nil || match.FemaleRoom == nil {
		return false
	}
	maleRated, femaleRated := false, false
	for _, r := range ratings {
		if r.RaterID == match.MaleRoom.HostID {
			maleRated = true
		}
		if r.RaterID == match.FemaleRoom.HostID {
			femaleRated = true
		}
	}
	return maleRated && femaleRated
}
