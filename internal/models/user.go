package models

import (
	"gorm.io/gorm"
)

// User 는 서비스에 가입한 사용자를 나타낸다.
// 카카오 로그인 또는 휴대폰 인증 중 하나의 경로로 생성되며,
// 이후 프로필 작성 단계에서 나머지 필드가 채워진다.
type User struct {
	gorm.Model
	Name           string  `gorm:"type:varchar(50)" json:"name"`
	Gender         Gender  `gorm:"type:varchar(10);index" json:"gender"`
	Birthdate      string  `gorm:"type:varchar(10)" json:"birthdate"`
	Area           string  `gorm:"type:varchar(50)" json:"area"`
	School         string  `gorm:"type:varchar(50)" json:"school"`
	Department     string  `gorm:"type:varchar(50)" json:"department,omitempty"`
	Bio            string  `gorm:"type:text" json:"bio,omitempty"`
	KakaoID        *int64  `gorm:"uniqueIndex" json:"kakao_id,omitempty"` // 카카오 계정 연동 시에만 존재
	Phone          *string `gorm:"type:varchar(20);uniqueIndex" json:"phone,omitempty"`
	PhoneVerified  bool    `json:"phone_verified"`
	SchoolVerified bool    `json:"school_verified"`
	AvatarURL      string  `gorm:"type:text" json:"avatar_url,omitempty"`
}

// Gender 는 사용자 성별의 타입을 정의한다.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Opposite 는 반대 성별을 반환한다. 후보 방 조회에 사용한다.
func (g Gender) Opposite() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

// Valid 는 성별 값이 허용된 값인지 확인한다.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}
