package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

// ErrNoSeat 는 조건부 증가가 정원 제한에 걸려 반영되지 않았음을 나타낸다.
var ErrNoSeat = errors.New("room has no remaining seat")

type RoomRepository interface {
	CreateWithHost(room *models.Room, hostID uint) error
	FindByID(id uint) (*models.Room, error)
	FindOpenByIDs(ids []uint) ([]models.Room, error)
	Update(room *models.Room) error
	ListByGenderAndStatus(gender models.Gender, statuses []models.RoomStatus) ([]models.Room, error)
	ListCandidates(gender models.Gender, votingRoomID uint, limit int) ([]models.Room, error)
	IncrementMemberCount(roomID uint) error
	DecrementMemberCount(roomID uint) error
	AddMember(member *models.RoomMember) error
	RemoveMember(roomID, userID uint) error
	FindMember(roomID, userID uint) (*models.RoomMember, error)
	UpdateMember(member *models.RoomMember) error
}

type roomRepository struct {
	db *storage.PostgresDB
}

func NewRoomRepository(db *storage.PostgresDB) RoomRepository {
	return &roomRepository{db: db}
}

// CreateWithHost 는 방과 호스트 멤버십을 하나의 트랜잭션으로 생성한다.
// 방은 member_count=1 로 시작하고 호스트는 host 역할로 추가된다.
func (r *roomRepository) CreateWithHost(room *models.Room, hostID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		room.MemberCount = 1
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		member := models.RoomMember{
			RoomID:   room.ID,
			UserID:   hostID,
			Role:     models.RoleHost,
			Accepted: true,
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
}

func (r *roomRepository) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Preload("Host").Preload("Members.User").First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindOpenByIDs 는 주어진 ID 중 아직 매칭 가능한 상태인 방만 반환한다.
func (r *roomRepository) FindOpenByIDs(ids []uint) ([]models.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []models.Room
	err := r.db.Preload("Host").Preload("Members.User").
		Where("id IN ? AND status IN ?", ids, models.OpenStatuses).
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

// ListByGenderAndStatus 는 방 목록 조회에 쓴다. 최신 생성 순으로 정렬한다.
func (r *roomRepository) ListByGenderAndStatus(gender models.Gender, statuses []models.RoomStatus) ([]models.Room, error) {
	var rooms []models.Room
	query := r.db.Preload("Host").Preload("Members.User").
		Where("status IN ?", statuses).
		Order("created_at DESC")
	if gender != "" {
		query = query.Where("gender = ?", gender)
	}
	err := query.Find(&rooms).Error
	return rooms, err
}

// ListCandidates 는 투표 방이 아직 투표하지 않은 반대 성별의 공개 방을 반환한다.
func (r *roomRepository) ListCandidates(gender models.Gender, votingRoomID uint, limit int) ([]models.Room, error) {
	voted := r.db.Model(&models.Vote{}).
		Select("target_room_id").
		Where("voting_room_id = ?", votingRoomID)

	var rooms []models.Room
	err := r.db.Preload("Host").Preload("Members.User").
		Where("gender = ? AND status IN ?", gender, models.OpenStatuses).
		Where("id NOT IN (?)", voted).
		Order("created_at DESC").
		Limit(limit).
		Find(&rooms).Error
	return rooms, err
}

// IncrementMemberCount 는 정원 내에서만 멤버 수를 1 늘린다.
// 남은 자리 하나에 동시에 두 요청이 들어와도 조건부 갱신으로 한 쪽만 성공한다.
func (r *roomRepository) IncrementMemberCount(roomID uint) error {
	result := r.db.Model(&models.Room{}).
		Where("id = ? AND member_count < max_members", roomID).
		UpdateColumn("member_count", gorm.Expr("member_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoSeat
	}
	return nil
}

// DecrementMemberCount 는 멤버 수를 1 줄인다. 0 밑으로는 내려가지 않는다.
func (r *roomRepository) DecrementMemberCount(roomID uint) error {
	return r.db.Model(&models.Room{}).
		Where("id = ? AND member_count > 0", roomID).
		UpdateColumn("member_count", gorm.Expr("member_count - 1")).Error
}

func (r *roomRepository) AddMember(member *models.RoomMember) error {
	return r.db.Create(member).Error
}

func (r *roomRepository) RemoveMember(roomID, userID uint) error {
	return r.db.Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&models.RoomMember{}).Error
}

// FindMember 는 방 멤버십을 찾는다. 없으면 (nil, nil).
func (r *roomRepository) FindMember(roomID, userID uint) (*models.RoomMember, error) {
	var member models.RoomMember
	err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *roomRepository) UpdateMember(member *models.RoomMember) error {
	return r.db.Save(member).Error
}
