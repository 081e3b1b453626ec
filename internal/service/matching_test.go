package service

import (
	"testing"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
)

type matchingFixture struct {
	rooms    *fakeRoomRepo
	votes    *fakeVoteRepo
	matches  *fakeMatchRepo
	matching *MatchingService
}

func newMatchingFixture(deckLimit int) *matchingFixture {
	rooms := newFakeRoomRepo()
	votes := newFakeVoteRepo()
	rooms.voteSource = votes
	matches := newFakeMatchRepo(rooms)
	return &matchingFixture{
		rooms:    rooms,
		votes:    votes,
		matches:  matches,
		matching: NewMatchingService(rooms, votes, matches, deckLimit),
	}
}

func (f *matchingFixture) seedRoom(t *testing.T, hostID uint, gender models.Gender) *models.Room {
	t.Helper()
	room := &models.Room{
		HostID:     hostID,
		Gender:     gender,
		Size:       models.RoomSize2v2,
		Status:     models.RoomStatusWaiting,
		MaxMembers: 2,
	}
	if err := f.rooms.CreateWithHost(room, hostID); err != nil {
		t.Fatalf("방 생성 실패: %v", err)
	}
	return room
}

func TestVoteMutualYesCreatesMatch(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)
	femaleRoom := f.seedRoom(t, 2, models.GenderFemale)

	// 남성 방의 일방적인 yes 로는 매칭이 생기지 않는다
	match, err := f.matching.Vote(maleRoom.ID, 1, femaleRoom.ID, models.VoteYes)
	if err != nil {
		t.Fatalf("첫 투표 실패: %v", err)
	}
	if match != nil {
		t.Fatal("일방 yes 에서 매칭이 생기면 안 된다")
	}

	// 상대 방의 yes 가 도착하면 매칭이 성사된다
	match, err = f.matching.Vote(femaleRoom.ID, 2, maleRoom.ID, models.VoteYes)
	if err != nil {
		t.Fatalf("상호 투표 실패: %v", err)
	}
	if match == nil {
		t.Fatal("상호 yes 인데 매칭이 생기지 않았다")
	}
	if match.MaleRoomID != maleRoom.ID || match.FemaleRoomID != femaleRoom.ID {
		t.Errorf("매칭 방 배정이 잘못됨: male=%d female=%d", match.MaleRoomID, match.FemaleRoomID)
	}
	if match.Status != models.MatchStatusActive {
		t.Errorf("매칭 상태 = %s, active 를 기대", match.Status)
	}

	// 두 방 모두 matched 상태로 전환되어야 한다
	for _, roomID := range []uint{maleRoom.ID, femaleRoom.ID} {
		room, err := f.rooms.FindByID(roomID)
		if err != nil {
			t.Fatalf("방 조회 실패: %v", err)
		}
		if room.Status != models.RoomStatusMatched {
			t.Errorf("방 %d 상태 = %s, matched 를 기대", roomID, room.Status)
		}
	}
}

func TestVoteYesThenNoDoesNotMatch(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)
	femaleRoom := f.seedRoom(t, 2, models.GenderFemale)

	if _, err := f.matching.Vote(maleRoom.ID, 1, femaleRoom.ID, models.VoteYes); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}
	match, err := f.matching.Vote(femaleRoom.ID, 2, maleRoom.ID, models.VoteNo)
	if err != nil {
		t.Fatalf("투표 실패: %v", err)
	}
	if match != nil {
		t.Fatal("no 투표에서 매칭이 생기면 안 된다")
	}

	room, _ := f.rooms.FindByID(maleRoom.ID)
	if room.Status != models.RoomStatusWaiting {
		t.Errorf("방 상태 = %s, waiting 을 기대", room.Status)
	}
}

func TestVoteRejectsDuplicateDecision(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)
	femaleRoom := f.seedRoom(t, 2, models.GenderFemale)

	if _, err := f.matching.Vote(maleRoom.ID, 1, femaleRoom.ID, models.VoteNo); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}
	_, err := f.matching.Vote(maleRoom.ID, 1, femaleRoom.ID, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("중복 투표 오류 = %v, Validation 을 기대", err)
	}
}

func TestVoteRejectsSameGender(t *testing.T) {
	f := newMatchingFixture(0)
	roomA := f.seedRoom(t, 1, models.GenderMale)
	roomB := f.seedRoom(t, 2, models.GenderMale)

	_, err := f.matching.Vote(roomA.ID, 1, roomB.ID, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("같은 성별 투표 오류 = %v, Validation 을 기대", err)
	}
}

func TestVoteRejectsNonHost(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)
	femaleRoom := f.seedRoom(t, 2, models.GenderFemale)

	_, err := f.matching.Vote(maleRoom.ID, 99, femaleRoom.ID, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("비호스트 투표 오류 = %v, Authorization 을 기대", err)
	}
}

func TestVoteRejectsMatchedRooms(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)
	femaleRoomA := f.seedRoom(t, 2, models.GenderFemale)
	femaleRoomB := f.seedRoom(t, 3, models.GenderFemale)

	// maleRoom 과 femaleRoomA 를 먼저 매칭시킨다
	if _, err := f.matching.Vote(maleRoom.ID, 1, femaleRoomA.ID, models.VoteYes); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}
	if _, err := f.matching.Vote(femaleRoomA.ID, 2, maleRoom.ID, models.VoteYes); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}

	// 매칭된 방은 더 이상 투표할 수 없다
	_, err := f.matching.Vote(maleRoom.ID, 1, femaleRoomB.ID, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("매칭된 방의 투표 오류 = %v, Conflict 를 기대", err)
	}

	// 매칭된 방을 대상으로도 투표할 수 없다
	_, err = f.matching.Vote(femaleRoomB.ID, 3, maleRoom.ID, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("매칭된 방 대상 투표 오류 = %v, Conflict 를 기대", err)
	}
}

func TestVoteConflictWhenTargetTakenConcurrently(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoomA := f.seedRoom(t, 1, models.GenderMale)
	maleRoomB := f.seedRoom(t, 2, models.GenderMale)
	femaleRoom := f.seedRoom(t, 3, models.GenderFemale)

	// femaleRoom 이 두 남성 방 모두에게 yes 를 보냈다
	if _, err := f.matching.Vote(femaleRoom.ID, 3, maleRoomA.ID, models.VoteYes); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}
	if _, err := f.matching.Vote(femaleRoom.ID, 3, maleRoomB.ID, models.VoteYes); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}

	// A 가 먼저 성사시키면 B 의 yes 는 경합에서 패배한다
	match, err := f.matching.Vote(maleRoomA.ID, 1, femaleRoom.ID, models.VoteYes)
	if err != nil || match == nil {
		t.Fatalf("첫 매칭 실패: match=%v err=%v", match, err)
	}
	_, err = f.matching.Vote(maleRoomB.ID, 2, femaleRoom.ID, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("경합 패배 오류 = %v, Conflict 를 기대", err)
	}
}

func TestBuildDeckIncomingLikesFirstThenCapped(t *testing.T) {
	f := newMatchingFixture(3)
	myRoom := f.seedRoom(t, 1, models.GenderMale)

	// 받은 좋아요 2개 + 추천 후보가 될 여성 방 5개
	var femaleRooms []*models.Room
	for i := 0; i < 5; i++ {
		femaleRooms = append(femaleRooms, f.seedRoom(t, uint(10+i), models.GenderFemale))
	}
	for _, liker := range femaleRooms[:2] {
		if _, err := f.matching.Vote(liker.ID, liker.HostID, myRoom.ID, models.VoteYes); err != nil {
			t.Fatalf("투표 실패: %v", err)
		}
	}

	deck, err := f.matching.BuildDeck(myRoom.ID, 1)
	if err != nil {
		t.Fatalf("덱 구성 실패: %v", err)
	}

	// 추천 상한 3장 중 좋아요와 겹치는 방은 한 번만 노출된다
	if len(deck) != 3 {
		t.Fatalf("덱 크기 = %d, 3을 기대", len(deck))
	}
	if !deck[0].IsIncomingLike || !deck[1].IsIncomingLike {
		t.Error("받은 좋아요가 덱 앞쪽에 오지 않음")
	}
	if deck[0].Room.ID != femaleRooms[0].ID || deck[1].Room.ID != femaleRooms[1].ID {
		t.Error("좋아요 카드의 순서가 투표 순서와 다름")
	}
	if deck[2].IsIncomingLike {
		t.Error("추천 카드가 좋아요로 표시됨")
	}
	seen := make(map[uint]bool)
	for _, entry := range deck {
		if seen[entry.Room.ID] {
			t.Errorf("방 %d 가 덱에 중복 노출됨", entry.Room.ID)
		}
		seen[entry.Room.ID] = true
	}
}

func TestBuildDeckExcludesVotedRooms(t *testing.T) {
	f := newMatchingFixture(10)
	myRoom := f.seedRoom(t, 1, models.GenderMale)
	rejected := f.seedRoom(t, 2, models.GenderFemale)
	f.seedRoom(t, 3, models.GenderFemale)

	if _, err := f.matching.Vote(myRoom.ID, 1, rejected.ID, models.VoteNo); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}

	deck, err := f.matching.BuildDeck(myRoom.ID, 1)
	if err != nil {
		t.Fatalf("덱 구성 실패: %v", err)
	}
	for _, entry := range deck {
		if entry.Room.ID == rejected.ID {
			t.Error("no 를 보낸 방이 덱에 다시 노출됨")
		}
	}
	if len(deck) != 1 {
		t.Errorf("덱 크기 = %d, 1을 기대", len(deck))
	}
}

func TestBuildDeckExcludesAnsweredLikes(t *testing.T) {
	f := newMatchingFixture(10)
	myRoom := f.seedRoom(t, 1, models.GenderMale)
	liker := f.seedRoom(t, 2, models.GenderFemale)

	if _, err := f.matching.Vote(liker.ID, 2, myRoom.ID, models.VoteYes); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}
	if _, err := f.matching.Vote(myRoom.ID, 1, liker.ID, models.VoteNo); err != nil {
		t.Fatalf("투표 실패: %v", err)
	}

	deck, err := f.matching.BuildDeck(myRoom.ID, 1)
	if err != nil {
		t.Fatalf("덱 구성 실패: %v", err)
	}
	if len(deck) != 0 {
		t.Errorf("이미 답한 좋아요가 덱에 남음: %d장", len(deck))
	}
}

func TestBuildDeckRequiresHost(t *testing.T) {
	f := newMatchingFixture(0)
	myRoom := f.seedRoom(t, 1, models.GenderMale)

	_, err := f.matching.BuildDeck(myRoom.ID, 99)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("비호스트 덱 조회 오류 = %v, Authorization 을 기대", err)
	}
}

func TestCreateMatchValidatesGenderRoles(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)
	femaleRoom := f.seedRoom(t, 2, models.GenderFemale)

	// 성별 역할이 뒤바뀌면 거부한다
	if _, err := f.matching.CreateMatch(femaleRoom.ID, maleRoom.ID); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("역할 오류 검증 실패: %v", err)
	}

	match, err := f.matching.CreateMatch(maleRoom.ID, femaleRoom.ID)
	if err != nil {
		t.Fatalf("직접 매칭 실패: %v", err)
	}
	if match.Status != models.MatchStatusPending {
		t.Errorf("직접 매칭 상태 = %s, pending 을 기대", match.Status)
	}

	// 이미 매칭된 방은 다시 매칭할 수 없다
	another := f.seedRoom(t, 3, models.GenderFemale)
	if _, err := f.matching.CreateMatch(maleRoom.ID, another.ID); !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("재매칭 오류 = %v, Conflict 를 기대", err)
	}
}

func TestVoteUnknownRoomReturnsNotFound(t *testing.T) {
	f := newMatchingFixture(0)
	maleRoom := f.seedRoom(t, 1, models.GenderMale)

	_, err := f.matching.Vote(maleRoom.ID, 1, 999, models.VoteYes)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("없는 방 투표 오류 = %v, NotFound 를 기대", err)
	}
}
