package service

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// 저장소 인터페이스의 인메모리 구현. 실제 구현과 같은 조건부 갱신 의미를 지킨다.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByKakaoID(kakaoID int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.KakaoID != nil && *user.KakaoID == kakaoID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByPhone(phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone != nil && *user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeRoomRepo struct {
	mu         sync.Mutex
	nextID     uint
	rooms      map[uint]*models.Room
	members    []*models.RoomMember
	voteSource *fakeVoteRepo
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uint]*models.Room)}
}

func (r *fakeRoomRepo) CreateWithHost(room *models.Room, hostID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	room.ID = r.nextID
	room.MemberCount = 1
	copied := *room
	r.rooms[room.ID] = &copied
	r.members = append(r.members, &models.RoomMember{
		RoomID:   room.ID,
		UserID:   hostID,
		Role:     models.RoleHost,
		Accepted: true,
		JoinedAt: time.Now(),
	})
	return nil
}

func (r *fakeRoomRepo) FindByID(id uint) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id)
}

func (r *fakeRoomRepo) findLocked(id uint) (*models.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *room
	copied.Members = nil
	for _, member := range r.members {
		if member.RoomID == id {
			copied.Members = append(copied.Members, *member)
		}
	}
	return &copied, nil
}

func (r *fakeRoomRepo) FindOpenByIDs(ids []uint) ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Room
	for _, id := range ids {
		room, ok := r.rooms[id]
		if ok && room.Status.IsOpen() {
			result = append(result, *room)
		}
	}
	return result, nil
}

func (r *fakeRoomRepo) Update(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeRoomRepo) ListByGenderAndStatus(gender models.Gender, statuses []models.RoomStatus) ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Room
	for _, room := range r.rooms {
		if gender != "" && room.Gender != gender {
			continue
		}
		for _, status := range statuses {
			if room.Status == status {
				result = append(result, *room)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeRoomRepo) votedTargets(votes *fakeVoteRepo, votingRoomID uint) map[uint]bool {
	voted := make(map[uint]bool)
	if votes == nil {
		return voted
	}
	votes.mu.Lock()
	defer votes.mu.Unlock()
	for _, vote := range votes.votes {
		if vote.VotingRoomID == votingRoomID {
			voted[vote.TargetRoomID] = true
		}
	}
	return voted
}

// ListCandidates 는 투표 기록 저장소를 공유해야 실제 쿼리와 같은 결과를 낸다.
// 테스트는 fakeVoteRepo 를 voteSource 로 연결해 둔다.
func (r *fakeRoomRepo) ListCandidates(gender models.Gender, votingRoomID uint, limit int) ([]models.Room, error) {
	voted := r.votedTargets(r.voteSource, votingRoomID)

	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Room
	for id := uint(1); id <= r.nextID; id++ {
		room, ok := r.rooms[id]
		if !ok {
			continue
		}
		if room.Gender != gender || !room.Status.IsOpen() || voted[room.ID] {
			continue
		}
		result = append(result, *room)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *fakeRoomRepo) IncrementMemberCount(roomID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if !ok || room.MemberCount >= room.MaxMembers {
		return repository.ErrNoSeat
	}
	room.MemberCount++
	return nil
}

func (r *fakeRoomRepo) DecrementMemberCount(roomID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[roomID]
	if ok && room.MemberCount > 0 {
		room.MemberCount--
	}
	return nil
}

func (r *fakeRoomRepo) AddMember(member *models.RoomMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *member
	r.members = append(r.members, &copied)
	return nil
}

func (r *fakeRoomRepo) RemoveMember(roomID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, member := range r.members {
		if member.RoomID == roomID && member.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRoomRepo) FindMember(roomID, userID uint) (*models.RoomMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.members {
		if member.RoomID == roomID && member.UserID == userID {
			copied := *member
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) UpdateMember(member *models.RoomMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.members {
		if existing.RoomID == member.RoomID && existing.UserID == member.UserID {
			copied := *member
			r.members[i] = &copied
			return nil
		}
	}
	return nil
}

var _ repository.RoomRepository = (*fakeRoomRepo)(nil)

type fakeVoteRepo struct {
	mu     sync.Mutex
	nextID uint
	votes  []*models.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{}
}

func (r *fakeVoteRepo) Create(vote *models.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	vote.ID = r.nextID
	copied := *vote
	r.votes = append(r.votes, &copied)
	return nil
}

func (r *fakeVoteRepo) Find(votingRoomID, targetRoomID uint) (*models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vote := range r.votes {
		if vote.VotingRoomID == votingRoomID && vote.TargetRoomID == targetRoomID {
			copied := *vote
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeVoteRepo) ListIncomingYes(targetRoomID uint) ([]models.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Vote
	for _, vote := range r.votes {
		if vote.TargetRoomID == targetRoomID && vote.Decision == models.VoteYes {
			result = append(result, *vote)
		}
	}
	return result, nil
}

var _ repository.VoteRepository = (*fakeVoteRepo)(nil)

type fakeMatchRepo struct {
	mu      sync.Mutex
	nextID  uint
	matches map[uint]*models.Match
	ratings []*models.MatchRating
	rooms   *fakeRoomRepo
}

func newFakeMatchRepo(rooms *fakeRoomRepo) *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[uint]*models.Match), rooms: rooms}
}

// CreateMutual 은 실제 구현과 같이 두 방이 모두 공개 상태일 때만 성공하고,
// 실패 시 어느 방의 상태도 바꾸지 않는다.
func (r *fakeMatchRepo) CreateMutual(match *models.Match) error {
	r.rooms.mu.Lock()
	defer r.rooms.mu.Unlock()

	maleRoom, okMale := r.rooms.rooms[match.MaleRoomID]
	femaleRoom, okFemale := r.rooms.rooms[match.FemaleRoomID]
	if !okMale || !okFemale || !maleRoom.Status.IsOpen() || !femaleRoom.Status.IsOpen() {
		return repository.ErrRoomUnavailable
	}
	maleRoom.Status = models.RoomStatusMatched
	femaleRoom.Status = models.RoomStatusMatched

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	match.ID = r.nextID
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) FindByID(id uint) (*models.Match, error) {
	r.mu.Lock()
	match, ok := r.matches[id]
	if !ok {
		r.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	copied := *match
	r.mu.Unlock()

	maleRoom, err := r.rooms.FindByID(copied.MaleRoomID)
	if err == nil {
		copied.MaleRoom = maleRoom
	}
	femaleRoom, err := r.rooms.FindByID(copied.FemaleRoomID)
	if err == nil {
		copied.FemaleRoom = femaleRoom
	}
	return &copied, nil
}

func (r *fakeMatchRepo) UpdateStatus(id uint, status models.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if match, ok := r.matches[id]; ok {
		match.Status = status
	}
	return nil
}

func (r *fakeMatchRepo) CreateRating(rating *models.MatchRating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rating
	r.ratings = append(r.ratings, &copied)
	return nil
}

func (r *fakeMatchRepo) ListRatings(matchID uint) ([]models.MatchRating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.MatchRating
	for _, rating := range r.ratings {
		if rating.MatchID == matchID {
			result = append(result, *rating)
		}
	}
	return result, nil
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)

type fakeChatRepo struct {
	mu       sync.Mutex
	nextID   uint
	messages []*models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{}
}

func (r *fakeChatRepo) Create(message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeChatRepo) ListByMatchID(matchID uint) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.ChatMessage{}
	for _, message := range r.messages {
		if message.MatchID == matchID {
			result = append(result, *message)
		}
	}
	return result, nil
}

var _ repository.ChatMessageRepository = (*fakeChatRepo)(nil)
