package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/apperr"
)

// respondError 는 서비스 오류를 분류에 맞는 상태 코드와 사용자 메시지로 변환한다.
// 분류되지 않은 내부 오류는 내용을 감추고 로그로만 남긴다.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": apperr.UserMessage(err)})
}

// currentUserID 는 인증 미들웨어가 넣어둔 사용자 ID 를 꺼낸다.
func currentUserID(c *gin.Context) uint {
	value, exists := c.Get("userID")
	if !exists {
		return 0
	}
	userID, _ := value.(uint)
	return userID
}

// parseIDParam 은 경로의 :id 를 파싱한다.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "유효하지 않은 ID 입니다"})
		return 0, false
	}
	return uint(id), true
}
