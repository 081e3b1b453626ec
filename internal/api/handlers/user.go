package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/service"
)

// UserHandler 는 프로필 관련 요청을 처리한다.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Update 는 프로필 작성 단계에서 전달된 필드를 갱신한다.
func (h *UserHandler) Update(c *gin.Context) {
	var input struct {
		UserID     uint   `json:"userId"`
		Name       string `json:"name"`
		Gender     string `json:"gender"`
		Birthdate  string `json:"birthdate"`
		Area       string `json:"area"`
		School     string `json:"school"`
		Department string `json:"department"`
		Bio        string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	user, err := h.userService.UpdateProfile(service.UpdateProfileInput{
		UserID:     input.UserID,
		Name:       input.Name,
		Gender:     input.Gender,
		Birthdate:  input.Birthdate,
		Area:       input.Area,
		School:     input.School,
		Department: input.Department,
		Bio:        input.Bio,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
