package provider

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"meeting_web/internal/apperr"
)

// OTPStore 는 발급한 인증 코드를 TTL 과 함께 보관하는 저장소다.
// 운영에서는 redis 구현(storage.RedisStore)을 쓴다.
type OTPStore interface {
	SetCode(ctx context.Context, phone, codeHash string, ttl time.Duration) error
	GetCode(ctx context.Context, phone string) (string, error)
	DeleteCode(ctx context.Context, phone string) error
	SetCooldown(ctx context.Context, phone string, ttl time.Duration) (bool, error)
}

// LocalVerifier 는 실제 SMS 를 보내지 않는 개발용 인증 구현이다.
// 6자리 코드를 생성해 bcrypt 해시로 저장하고 코드는 서버 로그로만 노출한다.
type LocalVerifier struct {
	store    OTPStore
	codeTTL  time.Duration
	cooldown time.Duration
}

func NewLocalVerifier(store OTPStore, codeTTL, cooldown time.Duration) *LocalVerifier {
	return &LocalVerifier{
		store:    store,
		codeTTL:  codeTTL,
		cooldown: cooldown,
	}
}

// Send 는 새 코드를 발급한다. 재발송 제한 시간 안의 요청은 거절한다.
func (v *LocalVerifier) Send(ctx context.Context, phone string) (*VerificationResult, error) {
	ok, err := v.store.SetCooldown(ctx, phone, v.cooldown)
	if err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}
	if !ok {
		return nil, apperr.Validation("잠시 후 다시 시도해주세요")
	}

	code, err := generateCode()
	if err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}

	// 코드 원문은 저장하지 않는다
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}
	if err := v.store.SetCode(ctx, phone, string(hash), v.codeTTL); err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}

	log.Printf("[local-sms] verification code for %s: %s", phone, code)

	return &VerificationResult{
		RequestID: uuid.NewString(),
		Status:    StatusPending,
	}, nil
}

// Check 는 입력한 코드를 저장된 해시와 비교한다.
// 코드가 틀리거나 만료된 경우 approved 가 아닌 status 를 반환한다.
func (v *LocalVerifier) Check(ctx context.Context, phone, code string) (*VerificationResult, error) {
	hash, err := v.store.GetCode(ctx, phone)
	if err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}
	if hash == "" {
		return &VerificationResult{Status: StatusPending}, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return &VerificationResult{Status: StatusPending}, nil
	}

	// 성공한 코드는 재사용할 수 없다
	if err := v.store.DeleteCode(ctx, phone); err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}
	return &VerificationResult{Status: StatusApproved}, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
