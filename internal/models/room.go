package models

import (
	"time"

	"gorm.io/gorm"
)

// Room 은 미팅을 원하는 2~4명의 동성 친구 그룹을 나타낸다.
// 상태는 RoomStatus 상태 기계를 따라 전이하며,
// matched 가 된 방은 다른 방의 후보 목록에서 제외된다.
type Room struct {
	gorm.Model
	HostID       uint         `gorm:"not null;index" json:"host_id"`
	Host         *User        `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Name         string       `gorm:"type:varchar(50)" json:"name,omitempty"`
	Introduction string       `gorm:"type:text" json:"introduction,omitempty"`
	Gender       Gender       `gorm:"type:varchar(10);not null;index" json:"gender"` // 모든 멤버가 같은 성별
	Area         string       `gorm:"type:varchar(50)" json:"area,omitempty"`
	School       string       `gorm:"type:varchar(50)" json:"school,omitempty"`
	Size         RoomSize     `gorm:"type:varchar(5)" json:"size"`
	Status       RoomStatus   `gorm:"type:varchar(10);not null;index" json:"status"`
	MemberCount  int          `gorm:"not null;default:0" json:"member_count"`
	MaxMembers   int          `gorm:"not null" json:"max_members"`
	Members      []RoomMember `gorm:"foreignKey:RoomID" json:"members,omitempty"`
}

// RoomStatus 는 방 상태의 타입을 정의한다.
type RoomStatus string

const (
	RoomStatusDraft   RoomStatus = "draft"
	RoomStatusPending RoomStatus = "pending"
	RoomStatusWaiting RoomStatus = "waiting"
	RoomStatusActive  RoomStatus = "active"
	RoomStatusMatched RoomStatus = "matched"
	RoomStatusPaused  RoomStatus = "paused"
	RoomStatusClosed  RoomStatus = "closed"
)

// OpenStatuses 는 매칭 후보가 될 수 있는 상태 목록이다.
// 호출부마다 pending/waiting/active 표기가 섞여 있던 것을 여기로 통일한다.
var OpenStatuses = []RoomStatus{RoomStatusPending, RoomStatusWaiting, RoomStatusActive}

// IsOpen 은 방이 투표를 주고받을 수 있는 상태인지 확인한다.
func (s RoomStatus) IsOpen() bool {
	for _, open := range OpenStatuses {
		if s == open {
			return true
		}
	}
	return false
}

// RoomSize 는 매칭 양쪽의 인원 구성을 나타낸다 (방 하나의 인원이 아님).
type RoomSize string

const (
	RoomSize2v2 RoomSize = "2:2"
	RoomSize3v3 RoomSize = "3:3"
	RoomSize4v4 RoomSize = "4:4"
)

// MaxMembers 는 사이즈에 해당하는 한쪽 방의 정원을 반환한다.
func (s RoomSize) MaxMembers() int {
	switch s {
	case RoomSize2v2:
		return 2
	case RoomSize3v3:
		return 3
	case RoomSize4v4:
		return 4
	default:
		return 0
	}
}

// Valid 는 사이즈 값이 허용된 값인지 확인한다.
func (s RoomSize) Valid() bool {
	return s.MaxMembers() != 0
}

// RoomMember 는 방과 사용자의 소속 관계를 나타낸다.
// 방 생성 시 호스트가 host 역할로, 참여 시 participant 역할로 생성된다.
type RoomMember struct {
	gorm.Model
	RoomID   uint       `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	User     *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     MemberRole `gorm:"type:varchar(15);not null" json:"role"`
	Accepted bool       `gorm:"not null;default:false" json:"accepted"` // 초대된 친구의 참여 확정 여부
	JoinedAt time.Time  `json:"joined_at"`
}

// MemberRole 은 방 내에서의 역할을 정의한다.
type MemberRole string

const (
	RoleHost        MemberRole = "host"        // 방 대표, 채팅 작성 권한 보유
	RoleParticipant MemberRole = "participant" // 일반 멤버, 읽기 전용
)
