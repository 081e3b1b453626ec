package models

import (
	"gorm.io/gorm"
)

// ChatMessage 는 매칭된 두 방 사이의 채팅 메시지다.
// 양쪽 방의 모든 멤버가 읽을 수 있지만 작성은 각 방의 호스트만 가능하다.
// 수정/삭제는 없는 append 전용 로그다.
type ChatMessage struct {
	gorm.Model
	MatchID  uint   `gorm:"not null;index" json:"match_id"`
	SenderID uint   `gorm:"not null" json:"sender_id"`
	Sender   *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
}
