package service

import (
	"context"

	"meeting_web/internal/apperr"
	"meeting_web/internal/provider"
)

// VerificationService 는 휴대폰 인증 절차를 담당한다.
// 발송/확인은 SMSVerifier 구현(트윌리오 또는 로컬)에 위임한다.
type VerificationService struct {
	verifier    provider.SMSVerifier
	userService *UserService
}

func NewVerificationService(verifier provider.SMSVerifier, userService *UserService) *VerificationService {
	return &VerificationService{verifier: verifier, userService: userService}
}

// SendCode 는 인증 코드를 발송한다.
func (s *VerificationService) SendCode(ctx context.Context, phone string) (*provider.VerificationResult, error) {
	if phone == "" {
		return nil, apperr.Validation("휴대폰 번호가 누락되었습니다")
	}
	if !provider.ValidPhone(phone) {
		return nil, apperr.Validation("휴대폰 번호 형식이 올바르지 않습니다")
	}
	return s.verifier.Send(ctx, phone)
}

// VerifyCode 는 입력된 코드를 확인한다.
// 코드가 일치하지 않으면 어떤 상태도 바꾸지 않고 실패를 반환한다.
// 일치하면 해당 번호로 가입된 사용자의 phone_verified 를 켠다.
func (s *VerificationService) VerifyCode(ctx context.Context, phone, code string) (*provider.VerificationResult, error) {
	if phone == "" || code == "" {
		return nil, apperr.Validation("휴대폰 번호와 인증번호를 입력해주세요")
	}

	result, err := s.verifier.Check(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	if result.Status != provider.StatusApproved {
		return nil, apperr.Validation("인증번호가 일치하지 않습니다")
	}

	if err := s.userService.MarkPhoneVerified(phone); err != nil {
		return nil, err
	}
	return result, nil
}
