package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// RoomService 는 방 생성과 멤버십 관리를 담당한다.
type RoomService struct {
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
}

func NewRoomService(roomRepo repository.RoomRepository, userRepo repository.UserRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, userRepo: userRepo}
}

// CreateRoomInput 은 방 생성에 필요한 값이다.
type CreateRoomInput struct {
	Name         string
	HostID       uint
	Gender       models.Gender
	MaxMembers   int
	Area         string
	School       string
	Introduction string
}

// CreateRoom 은 방과 호스트 멤버십을 함께 생성한다.
// 방은 생성 직후부터 waiting 상태로 후보 목록에 노출된다.
func (s *RoomService) CreateRoom(input CreateRoomInput) (*models.Room, error) {
	if input.HostID == 0 || input.Gender == "" {
		return nil, apperr.Validation("필수 항목이 누락되었습니다")
	}
	if !input.Gender.Valid() {
		return nil, apperr.Validation("성별 값이 올바르지 않습니다")
	}

	maxMembers := input.MaxMembers
	if maxMembers == 0 {
		maxMembers = 4
	}
	size := sizeForMembers(maxMembers)
	if size == "" {
		return nil, apperr.Validation("모임 인원은 2, 3, 4명 중 하나여야 합니다")
	}

	host, err := s.userRepo.FindByID(input.HostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("사용자를 찾을 수 없습니다")
		}
		return nil, err
	}

	room := &models.Room{
		HostID:       host.ID,
		Name:         input.Name,
		Introduction: input.Introduction,
		Gender:       input.Gender,
		Area:         input.Area,
		School:       input.School,
		Size:         size,
		Status:       models.RoomStatusWaiting,
		MaxMembers:   maxMembers,
	}

	if err := s.roomRepo.CreateWithHost(room, host.ID); err != nil {
		return nil, err
	}
	return s.roomRepo.FindByID(room.ID)
}

func sizeForMembers(maxMembers int) models.RoomSize {
	switch maxMembers {
	case 2:
		return models.RoomSize2v2
	case 3:
		return models.RoomSize3v3
	case 4:
		return models.RoomSize4v4
	default:
		return ""
	}
}

// GetRoom 은 방 상세(호스트, 멤버 포함)를 조회한다.
func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("방을 찾을 수 없습니다")
		}
		return nil, err
	}
	return room, nil
}

// ListRooms 는 후보 방 목록을 조회한다. 상태 기본값은 waiting 이다.
func (s *RoomService) ListRooms(gender models.Gender, status models.RoomStatus) ([]models.Room, error) {
	if gender != "" && !gender.Valid() {
		return nil, apperr.Validation("성별 값이 올바르지 않습니다")
	}
	statuses := []models.RoomStatus{models.RoomStatusWaiting}
	if status != "" {
		statuses = []models.RoomStatus{status}
	}
	return s.roomRepo.ListByGenderAndStatus(gender, statuses)
}

// JoinRoom 은 사용자를 방에 참여시킨다.
// 정원 확인은 저장소의 조건부 증가에 맡겨 동시 참여 경쟁을 한 명만 통과시킨다.
func (s *RoomService) JoinRoom(roomID, userID uint) error {
	if roomID == 0 || userID == 0 {
		return apperr.Validation("필수 항목이 누락되었습니다")
	}

	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("방을 찾을 수 없습니다")
		}
		return err
	}
	if !room.Status.IsOpen() {
		return apperr.Conflict("참여할 수 없는 방입니다")
	}

	existing, err := s.roomRepo.FindMember(roomID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Validation("이미 참여 중인 방입니다")
	}

	// 자리를 먼저 확보하고 멤버십을 넣는다. 멤버십 생성이 실패하면 자리를 되돌린다.
	if err := s.roomRepo.IncrementMemberCount(roomID); err != nil {
		if errors.Is(err, repository.ErrNoSeat) {
			return apperr.Capacity("방 정원이 가득 찼습니다")
		}
		return err
	}

	member := &models.RoomMember{
		RoomID:   roomID,
		UserID:   userID,
		Role:     models.RoleParticipant,
		JoinedAt: time.Now(),
	}
	if err := s.roomRepo.AddMember(member); err != nil {
		if decErr := s.roomRepo.DecrementMemberCount(roomID); decErr != nil {
			return decErr
		}
		return apperr.Conflict("방 참여 처리 중 충돌이 발생했습니다")
	}
	return nil
}

// LeaveRoom 은 참여를 취소한다. 호스트는 자기 방을 떠날 수 없다.
func (s *RoomService) LeaveRoom(roomID, userID uint) error {
	member, err := s.roomRepo.FindMember(roomID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.NotFound("참여 정보를 찾을 수 없습니다")
	}
	if member.Role == models.RoleHost {
		return apperr.Authorization("호스트는 자신의 방을 나갈 수 없습니다")
	}

	if err := s.roomRepo.RemoveMember(roomID, userID); err != nil {
		return err
	}
	return s.roomRepo.DecrementMemberCount(roomID)
}

// AcceptInvite 는 초대받은 멤버의 참여 확정 표시를 남긴다.
func (s *RoomService) AcceptInvite(roomID, userID uint) error {
	member, err := s.roomRepo.FindMember(roomID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.NotFound("참여 정보를 찾을 수 없습니다")
	}
	if member.Accepted {
		return nil
	}
	member.Accepted = true
	return s.roomRepo.UpdateMember(member)
}
