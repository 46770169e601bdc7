package repositories

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/Ekhol/warbler/models"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create persists a new message for userID. Empty text or text over
// models.MaxMessageLength characters fails with ErrValidation. The limit
// counts runes, not bytes, so multibyte text gets the full 140.
func (r *messageRepository) Create(userID uint, text string) (*models.Message, error) {
	if text == "" || utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, ErrValidation
	}

	message := &models.Message{
		Text:    text,
		UserID:  userID,
		PubDate: time.Now().Unix(),
	}
	if err := r.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *messageRepository) ByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("User").First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Delete removes a message permanently, along with its likes. Only the
// owning user may delete; anyone else gets ErrForbidden and the row is
// left untouched.
func (r *messageRepository) Delete(messageID, requestingUserID uint) error {
	var message models.Message
	err := r.db.First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if message.UserID != requestingUserID {
		return ErrForbidden
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", messageID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, messageID).Error
	})
}

func (r *messageRepository) ByUser(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("author_id = ?", userID).
		Order("pub_date DESC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}
