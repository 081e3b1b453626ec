package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meeting_web/internal/apperr"
)

const twilioBaseURL = "https://verify.twilio.com/v2"

// TwilioVerifier 는 트윌리오 Verify 서비스로 인증 코드를 발송/확인한다.
type TwilioVerifier struct {
	accountSID string
	authToken  string
	serviceSID string
	baseURL    string
	httpClient *http.Client
}

func NewTwilioVerifier(accountSID, authToken, serviceSID string) *TwilioVerifier {
	return &TwilioVerifier{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		baseURL:    twilioBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"` // 오류 응답에서만 채워진다
}

// Send 는 인증 코드를 SMS 로 발송한다.
func (t *TwilioVerifier) Send(ctx context.Context, phone string) (*VerificationResult, error) {
	form := url.Values{
		"To":      {ToE164(phone)},
		"Channel": {"sms"},
	}

	resp, err := t.post(ctx, "/Services/"+t.serviceSID+"/Verifications", form)
	if err != nil {
		return nil, err
	}
	return &VerificationResult{RequestID: resp.SID, Status: resp.Status}, nil
}

// Check 는 사용자가 입력한 코드를 확인한다.
// 코드가 틀리면 오류가 아니라 approved 가 아닌 status 로 돌아온다.
func (t *TwilioVerifier) Check(ctx context.Context, phone, code string) (*VerificationResult, error) {
	form := url.Values{
		"To":   {ToE164(phone)},
		"Code": {code},
	}

	resp, err := t.post(ctx, "/Services/"+t.serviceSID+"/VerificationCheck", form)
	if err != nil {
		return nil, err
	}
	return &VerificationResult{RequestID: resp.SID, Status: resp.Status}, nil
}

func (t *TwilioVerifier) post(ctx context.Context, path string, form url.Values) (*twilioResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}
	defer resp.Body.Close()

	var body twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperr.Upstream("인증 요청에 실패했습니다", err)
	}

	// 4xx 는 제공자가 요청 자체를 거부한 경우 (번호 형식, 시도 횟수 초과 등).
	// 제공자 메시지는 진단용으로만 남기고 사용자에게는 고정 문구를 보낸다.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: "SMS 발송에 실패했습니다",
			Detail:  fmt.Errorf("twilio rejected request: %s", body.Message),
		}
	}
	if resp.StatusCode >= 500 {
		return nil, apperr.Upstream("인증 요청에 실패했습니다",
			fmt.Errorf("twilio returned %d: %s", resp.StatusCode, body.Message))
	}
	if body.Status == "" {
		return nil, apperr.Upstream("인증 요청에 실패했습니다",
			fmt.Errorf("twilio response missing status"))
	}
	return &body, nil
}
