package repository

import "meeting_web/internal/storage"

type Repositories struct {
	User  UserRepository
	Room  RoomRepository
	Vote  VoteRepository
	Match MatchRepository
	Chat  ChatMessageRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Room:  NewRoomRepository(db),
		Vote:  NewVoteRepository(db),
		Match: NewMatchRepository(db),
		Chat:  NewChatMessageRepository(db),
	}
}
