package service

import (
	"context"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
	"meeting_web/internal/provider"
	"meeting_web/internal/utils"
)

// KakaoExchanger 는 카카오 인가 코드를 계정 정보로 교환한다.
// 실제 구현은 provider.KakaoClient 다.
type KakaoExchanger interface {
	ExchangeCode(ctx context.Context, code string) (*provider.KakaoUser, error)
}

// AuthService 는 외부 신원 교환과 세션 발급을 담당한다.
type AuthService struct {
	kakao       KakaoExchanger
	userService *UserService
}

func NewAuthService(kakao KakaoExchanger, userService *UserService) *AuthService {
	return &AuthService{kakao: kakao, userService: userService}
}

// KakaoLoginResult 는 카카오 로그인의 결과다.
type KakaoLoginResult struct {
	User      *models.User
	IsNewUser bool
	Token     string
}

// KakaoLogin 은 인가 코드를 카카오 계정으로 교환하고 사용자를 찾거나 만든 뒤
// 세션 토큰을 발급한다.
func (s *AuthService) KakaoLogin(ctx context.Context, code string) (*KakaoLoginResult, error) {
	if code == "" {
		return nil, apperr.Validation("인증 코드가 누락되었습니다")
	}

	kakaoUser, err := s.kakao.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, isNew, err := s.userService.UpsertKakaoUser(kakaoUser.ID, kakaoUser.Nickname, kakaoUser.ProfileImage)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &KakaoLoginResult{User: user, IsNewUser: isNew, Token: token}, nil
}
