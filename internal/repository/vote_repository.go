package repository

import (
	"errors"

	"gorm.io/gorm"

	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

type VoteRepository interface {
	Create(vote *models.Vote) error
	Find(votingRoomID, targetRoomID uint) (*models.Vote, error)
	ListIncomingYes(targetRoomID uint) ([]models.Vote, error)
}

type voteRepository struct {
	db *storage.PostgresDB
}

func NewVoteRepository(db *storage.PostgresDB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

// Find 는 두 방 사이의 투표 기록을 찾는다. 없으면 (nil, nil).
func (r *voteRepository) Find(votingRoomID, targetRoomID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("voting_room_id = ? AND target_room_id = ?", votingRoomID, targetRoomID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// ListIncomingYes 는 이 방을 향한 yes 투표를 오래된 순으로 반환한다.
// 먼저 좋아요를 보낸 방이 덱 앞쪽에 놓인다.
func (r *voteRepository) ListIncomingYes(targetRoomID uint) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.Where("target_room_id = ? AND decision = ?", targetRoomID, models.VoteYes).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}
