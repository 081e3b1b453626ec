package models

import (
	"gorm.io/gorm"
)

// Vote 는 한 방이 다른 방 카드에 내린 결정이다.
// (voting_room_id, target_room_id) 조합은 유일하며 한번 내린 결정은 바꿀 수 없다.
// no 를 받은 카드는 해당 방의 덱에 다시 나타나지 않는다.
type Vote struct {
	gorm.Model
	VotingRoomID uint         `gorm:"not null;uniqueIndex:idx_vote_pair" json:"voting_room_id"`
	TargetRoomID uint         `gorm:"not null;uniqueIndex:idx_vote_pair;index" json:"target_room_id"`
	Decision     VoteDecision `gorm:"type:varchar(3);not null" json:"decision"`
}

// VoteDecision 은 투표 결정 값의 타입을 정의한다.
type VoteDecision string

const (
	VoteYes VoteDecision = "yes"
	VoteNo  VoteDecision = "no"
)

// Valid 는 결정 값이 허용된 값인지 확인한다.
func (d VoteDecision) Valid() bool {
	return d == VoteYes || d == VoteNo
}
