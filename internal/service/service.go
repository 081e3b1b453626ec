package service

import (
	"meeting_web/internal/provider"
	"meeting_web/internal/repository"
)

// Services 는 도메인 서비스 묶음이다. main 에서 한 번 구성한다.
type Services struct {
	User             *UserService
	Room             *RoomService
	Matching         *MatchingService
	Chat             *ChatService
	Auth             *AuthService
	Verification     *VerificationService
	WebSocketManager *WebSocketManager
}

// Options 는 외부 제공자 어댑터와 정책 값이다.
type Options struct {
	Kakao     KakaoExchanger
	Verifier  provider.SMSVerifier
	DeckLimit int
}

func NewServices(repos *repository.Repositories, opts Options) *Services {
	wsManager := NewWebSocketManager(repos.Chat)

	userService := NewUserService(repos.User)
	roomService := NewRoomService(repos.Room, repos.User)
	matchingService := NewMatchingService(repos.Room, repos.Vote, repos.Match, opts.DeckLimit)
	chatService := NewChatService(repos.Match, repos.Chat, wsManager)
	authService := NewAuthService(opts.Kakao, userService)
	verificationService := NewVerificationService(opts.Verifier, userService)

	return &Services{
		User:             userService,
		Room:             roomService,
		Matching:         matchingService,
		Chat:             chatService,
		Auth:             authService,
		Verification:     verificationService,
		WebSocketManager: wsManager,
	}
}
