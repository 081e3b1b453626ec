// Package provider 는 외부 제공자(카카오, SMS 인증)와의 연동 어댑터를 모아둔다.
//
// 제공자 응답은 이 경계에서 명시적인 구조체로 검증하며, 형태가 어긋나면
// 내부 엔티티를 만들지 않고 UpstreamError 로 실패 처리한다.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meeting_web/internal/apperr"
)

const (
	kakaoTokenURL = "https://kauth.kakao.com/oauth/token"
	kakaoUserURL  = "https://kapi.kakao.com/v2/user/me"
)

// KakaoUser 는 카카오에서 확인한 외부 신원이다.
type KakaoUser struct {
	ID           int64
	Nickname     string
	ProfileImage string
}

// KakaoClient 는 인가 코드를 카카오 계정 정보로 교환한다.
type KakaoClient struct {
	restKey      string
	clientSecret string
	redirectURI  string
	tokenURL     string
	userURL      string
	httpClient   *http.Client
}

func NewKakaoClient(restKey, clientSecret, redirectURI string) *KakaoClient {
	return &KakaoClient{
		restKey:      restKey,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		tokenURL:     kakaoTokenURL,
		userURL:      kakaoUserURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type kakaoTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type kakaoUserResponse struct {
	ID         int64 `json:"id"`
	Properties struct {
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
	} `json:"properties"`
	KakaoAccount struct {
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// ExchangeCode 는 인가 코드로 액세스 토큰을 받고 카카오 계정 정보를 조회한다.
func (c *KakaoClient) ExchangeCode(ctx context.Context, code string) (*KakaoUser, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {c.restKey},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURI},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperr.Upstream("로그인에 실패했습니다", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("로그인에 실패했습니다", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("로그인에 실패했습니다",
			fmt.Errorf("kakao token endpoint returned %d", resp.StatusCode))
	}

	var token kakaoTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, apperr.Upstream("로그인에 실패했습니다", err)
	}
	if token.AccessToken == "" {
		return nil, apperr.Upstream("로그인에 실패했습니다", errors.New("kakao response missing access_token"))
	}

	return c.fetchUser(ctx, token.AccessToken)
}

func (c *KakaoClient) fetchUser(ctx context.Context, accessToken string) (*KakaoUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return nil, apperr.Upstream("로그인에 실패했습니다", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("로그인에 실패했습니다", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream("로그인에 실패했습니다",
			fmt.Errorf("kakao user endpoint returned %d", resp.StatusCode))
	}

	var user kakaoUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperr.Upstream("로그인에 실패했습니다", err)
	}
	if user.ID == 0 {
		return nil, apperr.Upstream("로그인에 실패했습니다", errors.New("kakao response missing user id"))
	}

	// properties 가 비어 있으면 kakao_account.profile 로 대체한다
	nickname := user.Properties.Nickname
	if nickname == "" {
		nickname = user.KakaoAccount.Profile.Nickname
	}
	profileImage := user.Properties.ProfileImage
	if profileImage == "" {
		profileImage = user.KakaoAccount.Profile.ProfileImageURL
	}

	return &KakaoUser{
		ID:           user.ID,
		Nickname:     nickname,
		ProfileImage: profileImage,
	}, nil
}
