package service

import (
	"errors"

	"gorm.io/gorm"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// DefaultDailyRecommendations 는 덱에 새로 노출하는 추천 방 수의 기본 상한이다.
// 받은 좋아요는 상한 없이 항상 덱 앞쪽에 놓인다.
const DefaultDailyRecommendations = 3

// MatchingService 는 방 카드 덱 구성과 투표, 매칭 확정을 담당한다.
type MatchingService struct {
	roomRepo  repository.RoomRepository
	voteRepo  repository.VoteRepository
	matchRepo repository.MatchRepository
	deckLimit int
}

func NewMatchingService(roomRepo repository.RoomRepository, voteRepo repository.VoteRepository,
	matchRepo repository.MatchRepository, deckLimit int) *MatchingService {
	if deckLimit <= 0 {
		deckLimit = DefaultDailyRecommendations
	}
	return &MatchingService{
		roomRepo:  roomRepo,
		voteRepo:  voteRepo,
		matchRepo: matchRepo,
		deckLimit: deckLimit,
	}
}

// DeckEntry 는 덱에 노출되는 카드 한 장이다.
type DeckEntry struct {
	Room           models.Room `json:"room"`
	IsIncomingLike bool        `json:"is_incoming_like"`
}

// BuildDeck 은 방이 볼 후보 카드 덱을 구성한다.
// 받은 좋아요가 먼저, 그 뒤에 추천 방이 상한 개수만큼 이어진다.
// 이미 투표한 방과 매칭이 끝난 방은 제외되며 중복 카드는 한 번만 노출된다.
func (s *MatchingService) BuildDeck(roomID, requesterID uint) ([]DeckEntry, error) {
	room, err := s.loadRoom(roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != requesterID {
		return nil, apperr.Authorization("방 호스트만 카드를 볼 수 있습니다")
	}
	if !room.Status.IsOpen() {
		return nil, apperr.Conflict("이미 매칭이 완료된 방입니다")
	}

	// 받은 좋아요: 나를 yes 로 찍었고 내가 아직 결정하지 않은, 여전히 공개 상태인 방
	incoming, err := s.voteRepo.ListIncomingYes(roomID)
	if err != nil {
		return nil, err
	}

	var likeIDs []uint
	for _, vote := range incoming {
		mine, err := s.voteRepo.Find(roomID, vote.VotingRoomID)
		if err != nil {
			return nil, err
		}
		if mine == nil {
			likeIDs = append(likeIDs, vote.VotingRoomID)
		}
	}

	likeRooms, err := s.roomRepo.FindOpenByIDs(likeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Room, len(likeRooms))
	for _, r := range likeRooms {
		byID[r.ID] = r
	}

	deck := make([]DeckEntry, 0, len(likeIDs)+s.deckLimit)
	seen := make(map[uint]bool)
	for _, id := range likeIDs {
		r, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		deck = append(deck, DeckEntry{Room: r, IsIncomingLike: true})
	}

	recommended, err := s.roomRepo.ListCandidates(room.Gender.Opposite(), roomID, s.deckLimit)
	if err != nil {
		return nil, err
	}
	for _, r := range recommended {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		deck = append(deck, DeckEntry{Room: r, IsIncomingLike: false})
	}

	return deck, nil
}

// Vote 는 투표 방의 결정을 기록한다.
// 상대가 이미 나를 yes 로 찍어둔 상태에서 yes 를 내리면 매칭이 성사되고,
// 성사된 Match 를 반환한다. 그 외에는 nil 을 반환한다.
func (s *MatchingService) Vote(votingRoomID, requesterID, targetRoomID uint, decision models.VoteDecision) (*models.Match, error) {
	if !decision.Valid() {
		return nil, apperr.Validation("투표 값은 yes 또는 no 여야 합니다")
	}
	if votingRoomID == targetRoomID {
		return nil, apperr.Validation("자신의 방에는 투표할 수 없습니다")
	}

	votingRoom, err := s.loadRoom(votingRoomID)
	if err != nil {
		return nil, err
	}
	if votingRoom.HostID != requesterID {
		return nil, apperr.Authorization("방 호스트만 투표할 수 있습니다")
	}
	if !votingRoom.Status.IsOpen() {
		return nil, apperr.Conflict("이미 매칭이 완료된 방입니다")
	}

	targetRoom, err := s.loadRoom(targetRoomID)
	if err != nil {
		return nil, err
	}
	if !targetRoom.Status.IsOpen() {
		return nil, apperr.Conflict("상대 방은 더 이상 매칭에 참여할 수 없습니다")
	}
	if votingRoom.Gender == targetRoom.Gender {
		return nil, apperr.Validation("같은 성별의 방에는 투표할 수 없습니다")
	}

	existing, err := s.voteRepo.Find(votingRoomID, targetRoomID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("이미 결정한 카드입니다")
	}

	vote := &models.Vote{
		VotingRoomID: votingRoomID,
		TargetRoomID: targetRoomID,
		Decision:     decision,
	}
	if err := s.voteRepo.Create(vote); err != nil {
		return nil, err
	}

	if decision == models.VoteNo {
		return nil, nil
	}

	// 상대가 먼저 보낸 yes 가 있으면 이번 yes 로 매칭이 성사된다
	reciprocal, err := s.voteRepo.Find(targetRoomID, votingRoomID)
	if err != nil {
		return nil, err
	}
	if reciprocal == nil || reciprocal.Decision != models.VoteYes {
		return nil, nil
	}

	return s.confirmMatch(votingRoom, targetRoom, models.MatchStatusActive)
}

// CreateMatch 는 두 방을 직접 매칭한다 (POST /rooms/match 호환 경로).
func (s *MatchingService) CreateMatch(maleRoomID, femaleRoomID uint) (*models.Match, error) {
	if maleRoomID == 0 || femaleRoomID == 0 {
		return nil, apperr.Validation("방 ID 가 누락되었습니다")
	}
	if maleRoomID == femaleRoomID {
		return nil, apperr.Validation("같은 방끼리는 매칭할 수 없습니다")
	}

	maleRoom, err := s.loadRoom(maleRoomID)
	if err != nil {
		return nil, err
	}
	femaleRoom, err := s.loadRoom(femaleRoomID)
	if err != nil {
		return nil, err
	}
	if maleRoom.Gender != models.GenderMale || femaleRoom.Gender != models.GenderFemale {
		return nil, apperr.Validation("방 성별 구성이 올바르지 않습니다")
	}

	return s.confirmMatch(maleRoom, femaleRoom, models.MatchStatusPending)
}

// confirmMatch 는 매칭 생성과 두 방의 상태 전이를 원자적으로 수행한다.
func (s *MatchingService) confirmMatch(roomA, roomB *models.Room, status models.MatchStatus) (*models.Match, error) {
	match := &models.Match{Status: status}
	if roomA.Gender == models.GenderMale {
		match.MaleRoomID = roomA.ID
		match.FemaleRoomID = roomB.ID
	} else {
		match.MaleRoomID = roomB.ID
		match.FemaleRoomID = roomA.ID
	}

	if err := s.matchRepo.CreateMutual(match); err != nil {
		if errors.Is(err, repository.ErrRoomUnavailable) {
			return nil, apperr.Conflict("상대 방이 이미 다른 매칭에 참여했습니다")
		}
		return nil, err
	}
	return match, nil
}

func (s *MatchingService) loadRoom(roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("방을 찾을 수 없습니다")
		}
		return nil, err
	}
	return room, nil
}
