package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/service"
)

// SMSHandler 는 휴대폰 인증 요청을 처리한다.
type SMSHandler struct {
	verificationService *service.VerificationService
}

func NewSMSHandler(verificationService *service.VerificationService) *SMSHandler {
	return &SMSHandler{verificationService: verificationService}
}

// Send 는 인증 코드를 발송한다.
func (h *SMSHandler) Send(c *gin.Context) {
	var input struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	result, err := h.verificationService.SendCode(c.Request.Context(), input.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    result.Status,
		"requestId": result.RequestID,
	})
}

// Verify 는 입력한 인증 코드를 확인한다.
func (h *SMSHandler) Verify(c *gin.Context) {
	var input struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	result, err := h.verificationService.VerifyCode(c.Request.Context(), input.Phone, input.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  result.Status,
	})
}
