package models

// MaxMessageLength is the longest text a single message may carry.
const MaxMessageLength = 140

// Message represents a message in the system
type Message struct {
	ID      uint   `gorm:"primaryKey;column:message_id"`
	Text    string `gorm:"type:text;not null"`
	UserID  uint   `gorm:"column:author_id;not null"`
	PubDate int64  `gorm:"column:pub_date"`
	User    User   `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "messages"
}
