package service

import (
	"testing"

	"meeting_web/internal/apperr"
	"meeting_web/internal/models"
)

func TestUpdateProfilePartialFields(t *testing.T) {
	users := newFakeUserRepo()
	user := &models.User{Name: "지훈", Area: "서울"}
	if err := users.Create(user); err != nil {
		t.Fatalf("사용자 생성 실패: %v", err)
	}
	svc := NewUserService(users)

	updated, err := svc.UpdateProfile(UpdateProfileInput{
		UserID:    user.ID,
		Gender:    "male",
		Birthdate: "1999-03-14",
		School:    "한양대학교",
	})
	if err != nil {
		t.Fatalf("프로필 갱신 실패: %v", err)
	}

	if updated.Gender != models.GenderMale || updated.Birthdate != "1999-03-14" || updated.School != "한양대학교" {
		t.Errorf("갱신 필드가 반영되지 않음: %+v", updated)
	}
	// 비어 있는 필드는 기존 값을 유지한다
	if updated.Name != "지훈" || updated.Area != "서울" {
		t.Errorf("빈 필드가 기존 값을 덮어씀: %+v", updated)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	users := newFakeUserRepo()
	user := &models.User{Name: "지훈"}
	if err := users.Create(user); err != nil {
		t.Fatalf("사용자 생성 실패: %v", err)
	}
	svc := NewUserService(users)

	if _, err := svc.UpdateProfile(UpdateProfileInput{}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("ID 누락 오류 = %v, Validation 을 기대", err)
	}
	if _, err := svc.UpdateProfile(UpdateProfileInput{UserID: 999}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("없는 사용자 오류 = %v, NotFound 를 기대", err)
	}
	if _, err := svc.UpdateProfile(UpdateProfileInput{UserID: user.ID, Gender: "other"}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("성별 오류 = %v, Validation 을 기대", err)
	}
}
