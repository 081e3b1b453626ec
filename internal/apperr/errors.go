// Package apperr 는 서비스 전역에서 쓰는 오류 분류를 정의한다.
//
// 서비스 계층은 저장소나 외부 제공자의 원시 오류를 여기 정의된 분류 중
// 하나로 감싸서 반환하고, 핸들러는 분류에 따라 HTTP 상태 코드로 변환한다.
// 원시 데이터베이스 오류 메시지는 절대 클라이언트로 내보내지 않는다.
package apperr

import (
	"errors"
	"net/http"
)

// Kind 는 오류의 분류를 나타낸다.
type Kind int

const (
	KindValidation    Kind = iota // 요청 필드 누락/형식 오류 -> 400
	KindNotFound                  // 참조한 방/사용자/매칭 없음 -> 404
	KindCapacity                  // 방 정원 초과 -> 400
	KindAuthorization             // 권한 없음 (호스트 아님 등) -> 403
	KindConflict                  // 동시 요청 경합에서 패배 -> 409
	KindUpstream                  // 외부 제공자(카카오/SMS) 실패 -> 500
)

// Error 는 분류와 사용자용 메시지를 가진 도메인 오류다.
// Detail 은 진단용 내부 원인으로, 응답에는 포함하지 않는다.
type Error struct {
	Kind    Kind
	Message string
	Detail  error
}

func (e *Error) Error() string {
	if e.Detail != nil {
		return e.Message + ": " + e.Detail.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Detail
}

// Validation 은 요청 필드 오류를 생성한다.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound 는 대상 부재 오류를 생성한다.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Capacity 는 정원 초과 오류를 생성한다.
func Capacity(message string) *Error {
	return &Error{Kind: KindCapacity, Message: message}
}

// Authorization 은 권한 오류를 생성한다.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Conflict 는 동시성 경합 오류를 생성한다.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Upstream 은 외부 제공자 오류를 생성한다. detail 은 진단용으로만 보관한다.
func Upstream(message string, detail error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Detail: detail}
}

// Internal 은 분류되지 않은 내부 오류에 쓰는 기본 메시지다.
const Internal = "요청을 처리하지 못했습니다"

// HTTPStatus 는 오류 분류에 대응하는 HTTP 상태 코드를 반환한다.
// 분류되지 않은 오류는 500으로 처리한다.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindCapacity:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage 는 클라이언트에 보여줄 메시지를 반환한다.
// 분류되지 않은 오류는 내부 메시지를 감추고 기본 문구로 대체한다.
func UserMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return Internal
	}
	return appErr.Message
}

// IsKind 는 오류가 특정 분류인지 확인한다. 테스트와 분기 판단에 쓴다.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == kind
}
