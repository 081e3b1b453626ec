package models

import (
	"gorm.io/gorm"
)

// Match 는 양방향 yes 투표로 성사된 두 방의 매칭이다.
// 방 한 쌍당 정확히 한 번 생성되며 이후에는 상태 전이만 허용된다.
// 성사 시점에 두 방 모두 matched 상태가 되어 다른 방의 후보에서 제외된다.
type Match struct {
	gorm.Model
	MaleRoomID   uint        `gorm:"not null;index" json:"male_room_id"`
	FemaleRoomID uint        `gorm:"not null;index" json:"female_room_id"`
	MaleRoom     *Room       `gorm:"foreignKey:MaleRoomID" json:"male_room,omitempty"`
	FemaleRoom   *Room       `gorm:"foreignKey:FemaleRoomID" json:"female_room,omitempty"`
	Status       MatchStatus `gorm:"type:varchar(10);not null" json:"status"`
}

// MatchStatus 는 매칭 상태의 타입을 정의한다.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusActive    MatchStatus = "active"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// MatchRating 은 채팅 나가기 시 남기는 만족도 평가다.
type MatchRating struct {
	gorm.Model
	MatchID  uint   `gorm:"not null;uniqueIndex:idx_match_rater" json:"match_id"`
	RaterID  uint   `gorm:"not null;uniqueIndex:idx_match_rater" json:"rater_id"`
	Score    int    `gorm:"not null" json:"score"` // 1~5
	Feedback string `gorm:"type:text" json:"feedback,omitempty"`
}
