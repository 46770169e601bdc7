package models

// Like marks a user's endorsement of a message. The composite key keeps at
// most one row per (user, message) pair.
type Like struct {
	UserID    uint `gorm:"primaryKey;column:user_id"`
	MessageID uint `gorm:"primaryKey;column:message_id"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}
