package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/service"
)

// AuthHandler 는 로그인 관련 요청을 처리한다.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// KakaoLoginInput 은 카카오 로그인 요청의 구조다.
type KakaoLoginInput struct {
	Code string `json:"code"`
}

// KakaoLogin 은 카카오 인가 코드로 로그인하고 세션 토큰을 발급한다.
func (h *AuthHandler) KakaoLogin(c *gin.Context) {
	var input KakaoLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	result, err := h.authService.KakaoLogin(c.Request.Context(), input.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           result.User.ID,
		"kakao_id":     result.User.KakaoID,
		"nickname":     result.User.Name,
		"profileImage": result.User.AvatarURL,
		"isNewUser":    result.IsNewUser,
		"token":        result.Token,
	})
}
