package provider

import (
	"context"
	"regexp"
)

// 검증 결과의 status 값. 트윌리오 Verify 의 status 표기를 그대로 따른다.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// VerificationResult 는 인증 발송/확인 요청의 결과다.
type VerificationResult struct {
	RequestID string `json:"requestId,omitempty"`
	Status    string `json:"status"`
}

// SMSVerifier 는 휴대폰 인증 코드의 발송과 확인을 담당한다.
// 운영 환경은 트윌리오, 개발 환경은 로컬 구현을 쓴다.
type SMSVerifier interface {
	Send(ctx context.Context, phone string) (*VerificationResult, error)
	Check(ctx context.Context, phone, code string) (*VerificationResult, error)
}

// 01x 로 시작하는 국내 휴대폰 번호 (하이픈 없이)
var phonePattern = regexp.MustCompile(`^01[016789]\d{7,8}$`)

// ValidPhone 은 국내 휴대폰 번호 형식인지 확인한다.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ToE164 는 01x 번호를 +82 국제 형식으로 바꾼다.
func ToE164(phone string) string {
	return "+82" + phone[1:]
}
