package repository

import (
	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

type ChatMessageRepository interface {
	Create(message *models.ChatMessage) error
	ListByMatchID(matchID uint) ([]models.ChatMessage, error)
}

type chatMessageRepository struct {
	db *storage.PostgresDB
}

func NewChatMessageRepository(db *storage.PostgresDB) ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// ListByMatchID 는 매칭의 전체 메시지를 작성 순으로 반환한다.
func (r *chatMessageRepository) ListByMatchID(matchID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Preload("Sender").
		Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
