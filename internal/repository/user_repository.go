package repository

import (
	"errors"

	"gorm.io/gorm"

	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByKakaoID(kakaoID int64) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
}

type userRepository struct {
	db *storage.PostgresDB
}

func NewUserRepository(db *storage.PostgresDB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByKakaoID 는 카카오 계정이 연동된 사용자를 찾는다. 없으면 (nil, nil).
func (r *userRepository) FindByKakaoID(kakaoID int64) (*models.User, error) {
	var user models.User
	err := r.db.Where("kakao_id = ?", kakaoID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone 은 휴대폰 번호로 사용자를 찾는다. 없으면 (nil, nil).
func (r *userRepository) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
