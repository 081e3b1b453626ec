package service

import (
	"errors"

	"gorm.io/gorm"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// UserService 는 사용자 프로필의 생성과 갱신을 담당한다.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpsertKakaoUser 는 카카오 신원으로 사용자를 찾거나 새로 만든다.
// 새로 만든 경우 두 번째 반환값이 true 다.
func (s *UserService) UpsertKakaoUser(kakaoID int64, nickname, profileImage string) (*models.User, bool, error) {
	user, err := s.userRepo.FindByKakaoID(kakaoID)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	user = &models.User{
		Name:      nickname,
		KakaoID:   &kakaoID,
		AvatarURL: profileImage,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// MarkPhoneVerified 는 인증에 성공한 번호의 사용자가 있으면 확인 완료로 표시한다.
// 아직 가입 전이면 아무것도 하지 않는다 (가입 절차가 클라이언트에서 이어진다).
func (s *UserService) MarkPhoneVerified(phone string) error {
	user, err := s.userRepo.FindByPhone(phone)
	if err != nil {
		return err
	}
	if user == nil || user.PhoneVerified {
		return nil
	}
	user.PhoneVerified = true
	return s.userRepo.Update(user)
}

// UpdateProfileInput 은 프로필 갱신 요청이다. 빈 필드는 건드리지 않는다.
type UpdateProfileInput struct {
	UserID     uint
	Name       string
	Gender     string
	Birthdate  string
	Area       string
	School     string
	Department string
	Bio        string
}

// UpdateProfile 은 프로필 작성 단계에서 전달된 필드만 갱신한다.
func (s *UserService) UpdateProfile(input UpdateProfileInput) (*models.User, error) {
	if input.UserID == 0 {
		return nil, apperr.Validation("사용자 ID 가 누락되었습니다")
	}

	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("사용자를 찾을 수 없습니다")
		}
		return nil, err
	}

	if input.Gender != "" {
		gender := models.Gender(input.Gender)
		if !gender.Valid() {
			return nil, apperr.Validation("성별 값이 올바르지 않습니다")
		}
		user.Gender = gender
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Birthdate != "" {
		user.Birthdate = input.Birthdate
	}
	if input.Area != "" {
		user.Area = input.Area
	}
	if input.School != "" {
		user.School = input.School
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser 는 사용자를 조회한다.
func (s *UserService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("사용자를 찾을 수 없습니다")
		}
		return nil, err
	}
	return user, nil
}
