package repository

import (
	"errors"

	"gorm.io/gorm"

	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

// ErrRoomUnavailable 은 매칭 확정 시점에 상대 방이 이미 다른 매칭에
// 묶였거나 닫혀 있어 상태 전이가 반영되지 않았음을 나타낸다.
var ErrRoomUnavailable = errors.New("room is no longer available for matching")

type MatchRepository interface {
	CreateMutual(match *models.Match) error
	FindByID(id uint) (*models.Match, error)
	UpdateStatus(id uint, status models.MatchStatus) error
	CreateRating(rating *models.MatchRating) error
	ListRatings(matchID uint) ([]models.MatchRating, error)
}

type matchRepository struct {
	db *storage.PostgresDB
}

func NewMatchRepository(db *storage.PostgresDB) MatchRepository {
	return &matchRepository{db: db}
}

// CreateMutual 은 매칭 생성과 두 방의 상태 전이를 하나의 트랜잭션으로 처리한다.
// 각 방은 아직 공개 상태일 때만 matched 로 바뀌며, 어느 한쪽이라도 조건에
// 걸리면 전체를 롤백한다. 매칭 행만 남고 방 상태가 남는 부분 반영은 생기지 않는다.
func (r *matchRepository) CreateMutual(match *models.Match) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, roomID := range []uint{match.MaleRoomID, match.FemaleRoomID} {
			result := tx.Model(&models.Room{}).
				Where("id = ? AND status IN ?", roomID, models.OpenStatuses).
				Update("status", models.RoomStatusMatched)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrRoomUnavailable
			}
		}
		return tx.Create(match).Error
	})
}

func (r *matchRepository) FindByID(id uint) (*models.Match, error) {
	var match models.Match
	err := r.db.
		Preload("MaleRoom.Host").Preload("MaleRoom.Members.User").
		Preload("FemaleRoom.Host").Preload("FemaleRoom.Members.User").
		First(&match, id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) UpdateStatus(id uint, status models.MatchStatus) error {
	return r.db.Model(&models.Match{}).Where("id = ?", id).Update("status", status).Error
}

func (r *matchRepository) CreateRating(rating *models.MatchRating) error {
	return r.db.Create(rating).Error
}

func (r *matchRepository) ListRatings(matchID uint) ([]models.MatchRating, error) {
	var ratings []models.MatchRating
	err := r.db.Where("match_id = ?", matchID).Find(&ratings).Error
	return ratings, err
}
